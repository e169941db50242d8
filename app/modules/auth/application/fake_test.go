package authservice

import (
	"time"

	authdomain "github.com/hablemos-club/league-bot/app/modules/auth/domain"
	authjwt "github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/jwt"
	authnats "github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/nats"
	"github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/permissions"
)

// FakeProvider returns canned tokens; override the Func fields to steer tests.
type FakeProvider struct {
	GenerateTokenFunc func(subject string, role authdomain.Role, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeProvider) GenerateToken(subject string, role authdomain.Role, ttl time.Duration) (string, error) {
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(subject, role, ttl)
	}
	return "api-token-" + subject, nil
}

func (f *FakeProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Claims{
		Subject:   "gw-1",
		Role:      authdomain.RoleGateway,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// FakeCredsBuilder mints fixed creds and records the permissions it saw.
type FakeCredsBuilder struct {
	LastName  string
	LastPerms *permissions.Permissions
	LastTTL   time.Duration

	BuildFunc func(name string, perms *permissions.Permissions, ttl time.Duration) (*authnats.UserCreds, error)
}

func (f *FakeCredsBuilder) BuildUserCreds(name string, perms *permissions.Permissions, ttl time.Duration) (*authnats.UserCreds, error) {
	f.LastName = name
	f.LastPerms = perms
	f.LastTTL = ttl
	if f.BuildFunc != nil {
		return f.BuildFunc(name, perms, ttl)
	}
	return &authnats.UserCreds{
		JWT:       "nats-jwt-" + name,
		Seed:      "SUFAKESEED",
		PublicKey: "UFAKEPUBLIC",
	}, nil
}

// Ensure the fakes actually satisfy the interfaces
var (
	_ authjwt.Provider      = (*FakeProvider)(nil)
	_ authnats.CredsBuilder = (*FakeCredsBuilder)(nil)
)
