package authnats

import (
	"fmt"
	"time"

	"github.com/nats-io/nkeys"

	"github.com/hablemos-club/league-bot/app/modules/auth/infrastructure/permissions"
)

// credsBuilder implements the CredsBuilder interface.
type credsBuilder struct {
	signingKey    nkeys.KeyPair
	issuerAccount string
}

// NewCredsBuilder creates a new CredsBuilder. The signing key must be the
// issuer account's key or one of its signing keys.
func NewCredsBuilder(signingKey nkeys.KeyPair, issuerAccount string) CredsBuilder {
	return &credsBuilder{
		signingKey:    signingKey,
		issuerAccount: issuerAccount,
	}
}

// BuildUserCreds generates a fresh user nkey and signs a user JWT for it.
func (b *credsBuilder) BuildUserCreds(name string, perms *permissions.Permissions, ttl time.Duration) (*UserCreds, error) {
	userKP, err := nkeys.CreateUser()
	if err != nil {
		return nil, fmt.Errorf("failed to create user nkey: %w", err)
	}

	publicKey, err := userKP.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get user public key: %w", err)
	}

	seed, err := userKP.Seed()
	if err != nil {
		return nil, fmt.Errorf("failed to get user seed: %w", err)
	}

	uc := NewUserClaims(publicKey)
	uc.Name = name
	uc.Expires = time.Now().Add(ttl).Unix()
	uc.Nats.IssuerAccount = b.issuerAccount

	uc.Nats.Pub.Allow = perms.Publish.Allow
	uc.Nats.Pub.Deny = perms.Publish.Deny
	uc.Nats.Sub.Allow = perms.Subscribe.Allow
	uc.Nats.Sub.Deny = perms.Subscribe.Deny

	token, err := uc.Encode(b.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user claims: %w", err)
	}

	return &UserCreds{
		JWT:       token,
		Seed:      string(seed),
		PublicKey: publicKey,
	}, nil
}
