package authservice

import (
	"context"
	"time"

	authdomain "github.com/hablemos-club/league-bot/app/modules/auth/domain"
)

// CredentialsRequest asks for a provisioned identity for one gateway instance.
type CredentialsRequest struct {
	Instance string
	Role     authdomain.Role
}

// GatewayCredentials is everything a gateway needs to talk to the league:
// a bearer token for the HTTP API and a NATS user identity.
type GatewayCredentials struct {
	APIToken  string
	NATSJWT   string
	NATSSeed  string
	Role      authdomain.Role
	ExpiresAt time.Time
}

// Service defines the authentication service interface.
type Service interface {
	// IssueGatewayCredentials mints an API token and scoped NATS credentials
	// for a gateway instance.
	IssueGatewayCredentials(ctx context.Context, req CredentialsRequest) (*GatewayCredentials, error)

	// ValidateToken validates a bearer token and returns the claims if valid.
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}
