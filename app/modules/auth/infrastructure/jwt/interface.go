package authjwt

import (
	"time"

	authdomain "github.com/hablemos-club/league-bot/app/modules/auth/domain"
)

// Provider defines the interface for API token operations.
type Provider interface {
	// GenerateToken creates a signed bearer token for the given subject and role.
	GenerateToken(subject string, role authdomain.Role, ttl time.Duration) (string, error)

	// ValidateToken validates a bearer token and returns the claims if valid.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
