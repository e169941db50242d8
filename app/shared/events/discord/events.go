// Package discordevents defines the gateway-bound side-effect topics. The
// backend publishes these; the Discord gateway process consumes them and
// performs the actual API calls.
package discordevents

import (
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

const (
	RoleGrantRequestedV1  = "discord.role.grant.requested.v1"
	RoleRevokeRequestedV1 = "discord.role.revoke.requested.v1"

	AnnouncementRequestedV1 = "discord.announcement.requested.v1"
)

// RoleGrantRequestedPayloadV1 asks the gateway to grant the champion role.
type RoleGrantRequestedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
	RoleID string                `json:"role_id"`
	Reason string                `json:"reason"`
}

// RoleRevokeRequestedPayloadV1 asks the gateway to revoke the champion role.
type RoleRevokeRequestedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
	RoleID string                `json:"role_id"`
	Reason string                `json:"reason"`
}

// AnnouncementRequestedPayloadV1 asks the gateway to post plain text.
type AnnouncementRequestedPayloadV1 struct {
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
	Content   string                `json:"content"`
}
