package activitytypes

import (
	"time"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// InboundMessage is one activity event as delivered by the gateway.
type InboundMessage struct {
	UserID        sharedtypes.DiscordID `json:"user_id"`
	Username      string                `json:"username"`
	GuildID       sharedtypes.GuildID   `json:"guild_id"`
	ChannelID     sharedtypes.ChannelID `json:"channel_id"`
	SourceEventID sharedtypes.MessageID `json:"source_event_id"`
	Content       string                `json:"content"`
	Timestamp     time.Time             `json:"timestamp"`
	IsBot         bool                  `json:"is_bot"`
}

// RejectReason explains why the gate refused an event.
type RejectReason string

const (
	RejectBotAuthor       RejectReason = "bot_author"
	RejectWrongGuild      RejectReason = "wrong_guild"
	RejectNotOptedIn      RejectReason = "not_opted_in"
	RejectBanned          RejectReason = "banned"
	RejectExcludedChannel RejectReason = "excluded_channel"
	RejectCooldown        RejectReason = "cooldown"
	RejectDailyCap        RejectReason = "daily_cap"
	RejectLanguage        RejectReason = "language_mismatch"
)

// GateDecision is the outcome of evaluating one inbound message.
type GateDecision struct {
	Accepted bool                     `json:"accepted"`
	Reason   RejectReason             `json:"reason,omitempty"`
	Language sharedtypes.LanguageCode `json:"language,omitempty"`
}

// ExcludedChannelInfo describes one exclusion-list entry.
type ExcludedChannelInfo struct {
	ChannelID   sharedtypes.ChannelID `json:"channel_id"`
	ChannelName string                `json:"channel_name"`
	AddedBy     sharedtypes.DiscordID `json:"added_by"`
	AddedAt     time.Time             `json:"added_at"`
}

// ActivityRecord is one persisted activity event, as exposed to admin audits.
type ActivityRecord struct {
	ID            int64                 `json:"id"`
	UserID        sharedtypes.DiscordID `json:"user_id"`
	Username      string                `json:"username"`
	ChannelID     sharedtypes.ChannelID `json:"channel_id"`
	Points        int                   `json:"points"`
	SourceEventID sharedtypes.MessageID `json:"source_event_id,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}
