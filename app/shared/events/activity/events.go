package activityevents

import (
	"time"

	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Topics consumed and produced by the activity module.
const (
	// MessageReceivedV1 is the ingest topic; rejections are silent, so it has
	// no result topics.
	MessageReceivedV1 = "league.activity.message.received.v1"

	ChannelExcludeRequestedV1 = "league.activity.channel.exclude.requested.v1"
	ChannelExcludedV1         = "league.activity.channel.excluded.v1"
	ChannelExcludeFailedV1    = "league.activity.channel.exclude.failed.v1"

	ChannelIncludeRequestedV1 = "league.activity.channel.include.requested.v1"
	ChannelIncludedV1         = "league.activity.channel.included.v1"
	ChannelIncludeFailedV1    = "league.activity.channel.include.failed.v1"

	ExcludedChannelsRequestedV1 = "league.activity.channels.excluded.requested.v1"
	ExcludedChannelsRetrievedV1 = "league.activity.channels.excluded.retrieved.v1"
	ExcludedChannelsFailedV1    = "league.activity.channels.excluded.failed.v1"

	MessageValidateRequestedV1 = "league.activity.message.validate.requested.v1"
	MessageValidatedV1         = "league.activity.message.validated.v1"
	MessageValidateFailedV1    = "league.activity.message.validate.failed.v1"

	RecentActivityRequestedV1 = "league.activity.recent.requested.v1"
	RecentActivityRetrievedV1 = "league.activity.recent.retrieved.v1"
	RecentActivityFailedV1    = "league.activity.recent.failed.v1"
)

// MessageReceivedPayloadV1 is one inbound chat message from the gateway.
type MessageReceivedPayloadV1 struct {
	UserID        sharedtypes.DiscordID `json:"user_id"`
	Username      string                `json:"username"`
	GuildID       sharedtypes.GuildID   `json:"guild_id"`
	ChannelID     sharedtypes.ChannelID `json:"channel_id"`
	SourceEventID sharedtypes.MessageID `json:"source_event_id"`
	Content       string                `json:"content"`
	Timestamp     time.Time             `json:"timestamp"`
	IsBot         bool                  `json:"is_bot"`
}

// ChannelExcludeRequestedPayloadV1 adds a channel to the exclusion list.
type ChannelExcludeRequestedPayloadV1 struct {
	ChannelID   sharedtypes.ChannelID `json:"channel_id"`
	ChannelName string                `json:"channel_name"`
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// ChannelExcludedPayloadV1 confirms an exclusion.
type ChannelExcludedPayloadV1 struct {
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
}

// ChannelExcludeFailedPayloadV1 explains a rejected exclusion.
type ChannelExcludeFailedPayloadV1 struct {
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
	Reason    string                `json:"reason"`
}

// ChannelIncludeRequestedPayloadV1 removes a channel from the exclusion list.
type ChannelIncludeRequestedPayloadV1 struct {
	ChannelID   sharedtypes.ChannelID `json:"channel_id"`
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// ChannelIncludedPayloadV1 confirms the removal.
type ChannelIncludedPayloadV1 struct {
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
}

// ChannelIncludeFailedPayloadV1 explains a rejected removal.
type ChannelIncludeFailedPayloadV1 struct {
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
	Reason    string                `json:"reason"`
}

// ExcludedChannelsRequestedPayloadV1 asks for the exclusion list.
type ExcludedChannelsRequestedPayloadV1 struct {
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// ExcludedChannelsRetrievedPayloadV1 carries the exclusion list.
type ExcludedChannelsRetrievedPayloadV1 struct {
	Channels []activitytypes.ExcludedChannelInfo `json:"channels"`
}

// ExcludedChannelsFailedPayloadV1 reports a listing failure.
type ExcludedChannelsFailedPayloadV1 struct {
	Reason string `json:"reason"`
}

// MessageValidateRequestedPayloadV1 dry-runs the gate for one message.
type MessageValidateRequestedPayloadV1 struct {
	UserID    sharedtypes.DiscordID `json:"user_id"`
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
	Content   string                `json:"content"`
}

// MessageValidatedPayloadV1 carries the dry-run decision.
type MessageValidatedPayloadV1 struct {
	UserID   sharedtypes.DiscordID      `json:"user_id"`
	Decision activitytypes.GateDecision `json:"decision"`
}

// MessageValidateFailedPayloadV1 reports a dry-run failure.
type MessageValidateFailedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
	Reason string                `json:"reason"`
}

// RecentActivityRequestedPayloadV1 asks for the newest recorded events.
type RecentActivityRequestedPayloadV1 struct {
	Limit       int                   `json:"limit"`
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// RecentActivityRetrievedPayloadV1 carries the audit rows.
type RecentActivityRetrievedPayloadV1 struct {
	Records []activitytypes.ActivityRecord `json:"records"`
}

// RecentActivityFailedPayloadV1 reports an audit failure.
type RecentActivityFailedPayloadV1 struct {
	Reason string `json:"reason"`
}
