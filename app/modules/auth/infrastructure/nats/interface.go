package authnats

import (
	"time"

	"github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/permissions"
)

// UserCreds is a freshly minted NATS identity: a user JWT for a brand-new
// nkey, plus the seed the client authenticates with.
type UserCreds struct {
	JWT       string
	Seed      string
	PublicKey string
}

// CredsBuilder defines the interface for minting NATS user credentials.
type CredsBuilder interface {
	// BuildUserCreds generates a user nkey and a signed user JWT carrying the
	// given permissions.
	BuildUserCreds(name string, perms *permissions.Permissions, ttl time.Duration) (*UserCreds, error)
}
