package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nkeys"

	"github.com/hablemos-club/league-bot/app/shared/observability"
	"github.com/hablemos-club/league-bot/config"

	authservice "github.com/hablemos-club/league-bot/app/modules/auth/application"
	authhandlers "github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/jwt"
	authnats "github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/nats"
)

// Module represents the auth module: gateway provisioning plus the
// bearer-authed league read API.
type Module struct {
	service    authservice.Service
	handlers   authhandlers.Handlers
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewAuthModule creates a new auth module and registers its HTTP routes.
func NewAuthModule(
	ctx context.Context,
	obs observability.Observability,
	cfg *config.Config,
	httpRouter chi.Router,
	leaderboard authhandlers.StandingsReader,
	rounds authhandlers.RoundReader,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "auth.NewAuthModule initializing")

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret)

	// NATS credential minting needs an account signing key; without one the
	// provisioning endpoint answers 503 but the read API still works.
	var credsBuilder authnats.CredsBuilder
	if cfg.NATSCreds.Enabled {
		signingKey, err := nkeys.FromSeed([]byte(cfg.NATSCreds.SigningKeySeed))
		if err != nil {
			return nil, fmt.Errorf("failed to parse NATS signing key seed: %w", err)
		}
		credsBuilder = authnats.NewCredsBuilder(signingKey, cfg.NATSCreds.IssuerAccount)
	}

	service := authservice.NewService(
		jwtProvider,
		credsBuilder,
		authservice.Config{DefaultTTL: cfg.JWT.DefaultTTL},
		logger,
		tracer,
	)

	handlers := authhandlers.NewAuthHandlers(service, leaderboard, rounds, logger, tracer)

	if httpRouter != nil {
		limiter := authhandlers.NewIPRateLimiter(5, 10)
		httpRouter.Route("/api", func(r chi.Router) {
			r.Use(authhandlers.RateLimitMiddleware(limiter))

			r.Group(func(r chi.Router) {
				r.Use(authhandlers.ProvisionKeyMiddleware(cfg.NATSCreds.ProvisionKey))
				r.Post("/auth/nats-creds", handlers.HandleNATSCredentials)
			})

			r.Group(func(r chi.Router) {
				r.Use(authhandlers.BearerAuthMiddleware(jwtProvider))
				r.Get("/league/leaderboard/{board}", handlers.HandleLeaderboard)
				r.Get("/league/rounds/current", handlers.HandleCurrentRound)
			})
		})
	}

	return &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Run keeps the module alive until the context is cancelled. All serving
// happens on the shared HTTP listener.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting auth module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Auth module goroutine stopped")
}

// Close stops the auth module.
func (m *Module) Close() error {
	m.logger.Info("Stopping auth module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.logger.Info("Auth module stopped")
	return nil
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
