package authservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/hablemos-club/league-bot/app/shared/observability/attr"

	authdomain "github.com/hablemos-club/league-bot/app/modules/auth/domain"
	authjwt "github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/jwt"
	authnats "github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/nats"
	"github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/permissions"
)

// Config holds the configuration for the auth service.
type Config struct {
	DefaultTTL time.Duration
}

// service implements the Service interface.
type service struct {
	jwtProvider       authjwt.Provider
	credsBuilder      authnats.CredsBuilder
	permissionBuilder *permissions.Builder
	config            Config
	logger            *slog.Logger
	tracer            trace.Tracer
}

// NewService creates a new auth service. credsBuilder may be nil when NATS
// credential minting is disabled.
func NewService(
	jwtProvider authjwt.Provider,
	credsBuilder authnats.CredsBuilder,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 24 * time.Hour
	}
	return &service{
		jwtProvider:       jwtProvider,
		credsBuilder:      credsBuilder,
		permissionBuilder: permissions.NewBuilder(),
		config:            config,
		logger:            logger,
		tracer:            tracer,
	}
}

// IssueGatewayCredentials mints an API token and scoped NATS credentials.
func (s *service) IssueGatewayCredentials(ctx context.Context, req CredentialsRequest) (*GatewayCredentials, error) {
	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.Start(ctx, "AuthService.IssueGatewayCredentials")
		defer span.End()
	}

	s.logger.InfoContext(ctx, "Issuing gateway credentials",
		attr.String("instance", req.Instance),
		attr.String("role", req.Role.String()),
	)

	if req.Instance == "" {
		return nil, ErrMissingInstance
	}
	if !req.Role.IsValid() {
		s.logger.WarnContext(ctx, "Invalid role requested",
			attr.String("role", req.Role.String()),
		)
		return nil, ErrInvalidRole
	}
	if s.credsBuilder == nil {
		return nil, ErrCredsDisabled
	}

	ttl := s.config.DefaultTTL

	perms := s.permissionBuilder.ForRole(req.Role)
	creds, err := s.credsBuilder.BuildUserCreds(req.Instance, perms, ttl)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build NATS credentials",
			attr.Error(err),
			attr.String("instance", req.Instance),
		)
		return nil, fmt.Errorf("failed to build NATS credentials: %w", err)
	}

	apiToken, err := s.jwtProvider.GenerateToken(req.Instance, req.Role, ttl)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate API token",
			attr.Error(err),
			attr.String("instance", req.Instance),
		)
		return nil, fmt.Errorf("failed to generate API token: %w", err)
	}

	s.logger.InfoContext(ctx, "Gateway credentials issued",
		attr.String("instance", req.Instance),
		attr.String("nats_user", creds.PublicKey),
	)

	return &GatewayCredentials{
		APIToken:  apiToken,
		NATSJWT:   creds.JWT,
		NATSSeed:  creds.Seed,
		Role:      req.Role,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// ValidateToken validates a bearer token and returns the claims if valid.
func (s *service) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	claims, err := s.jwtProvider.ValidateToken(tokenString)
	if err != nil {
		s.logger.DebugContext(ctx, "Token validation failed", attr.Error(err))
		return nil, err
	}
	return claims, nil
}
