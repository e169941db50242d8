package permissions

import (
	authdomain "github.com/hablemos-club/league-bot/app/modules/auth/domain"
)

// Permissions defines pub/sub permissions for a NATS user.
type Permissions struct {
	Publish   PermissionSet `json:"pub"`
	Subscribe PermissionSet `json:"sub"`
}

// PermissionSet contains allow and deny patterns.
type PermissionSet struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// Builder constructs permission sets based on roles.
type Builder struct{}

// NewBuilder creates a new permission builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ForRole builds the permission set for an API client role. Unknown roles get
// read-only permissions.
func (b *Builder) ForRole(role authdomain.Role) *Permissions {
	switch role {
	case authdomain.RoleGateway:
		return b.gatewayPermissions()
	default:
		return b.readOnlyPermissions()
	}
}

// gatewayPermissions lets a gateway instance publish league events and consume
// everything addressed to Discord. The JetStream API subjects are required for
// durable consumer management and message acks.
func (b *Builder) gatewayPermissions() *Permissions {
	return &Permissions{
		Publish: PermissionSet{
			Allow: []string{
				"league.user.>",
				"league.activity.>",
				"league.leaderboard.>",
				"league.round.>",
				"$JS.API.>",
				"$JS.ACK.>",
			},
		},
		Subscribe: PermissionSet{
			Allow: []string{
				"discord.>",
				"league.>",
				"_INBOX.>",
			},
		},
	}
}

// readOnlyPermissions can observe league results and drive JetStream
// consumers, nothing else.
func (b *Builder) readOnlyPermissions() *Permissions {
	return &Permissions{
		Publish: PermissionSet{
			Allow: []string{
				"$JS.API.CONSUMER.>",
				"$JS.ACK.>",
			},
		},
		Subscribe: PermissionSet{
			Allow: []string{
				"league.leaderboard.>",
				"league.round.>",
				"_INBOX.>",
			},
		},
	}
}
