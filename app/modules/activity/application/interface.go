package activityservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// ValidateRequest is a dry-run probe for one hypothetical message.
type ValidateRequest struct {
	UserID    sharedtypes.DiscordID `json:"user_id"`
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
	Content   string                `json:"content"`
}

// ExcludeChannelRequest adds one channel to the exclusion list.
type ExcludeChannelRequest struct {
	ChannelID   sharedtypes.ChannelID `json:"channel_id"`
	ChannelName string                `json:"channel_name"`
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// Service defines the contract for the activity module.
type Service interface {
	// ProcessMessage runs one inbound message through the eligibility gate
	// and records it when accepted. A rejection is carried in the returned
	// decision, not as an error.
	ProcessMessage(ctx context.Context, msg activitytypes.InboundMessage) (*activitytypes.GateDecision, error)

	// ValidateMessage dry-runs the gate: nothing is recorded and the
	// cooldown token is not spent.
	ValidateMessage(ctx context.Context, req ValidateRequest) (*activitytypes.GateDecision, error)

	// ExcludeChannel adds a channel to the exclusion list.
	ExcludeChannel(ctx context.Context, req ExcludeChannelRequest) (*activitytypes.ExcludedChannelInfo, error)

	// IncludeChannel removes a channel from the exclusion list.
	IncludeChannel(ctx context.Context, channelID sharedtypes.ChannelID) error

	// ListExcludedChannels returns the exclusion list ordered by channel name.
	ListExcludedChannels(ctx context.Context) ([]activitytypes.ExcludedChannelInfo, error)

	// GetRecentActivity returns the newest recorded events for admin audits.
	GetRecentActivity(ctx context.Context, limit int) ([]activitytypes.ActivityRecord, error)
}

// MemberSource provides the member lookups the gate needs. The user module's
// repository satisfies it.
type MemberSource interface {
	GetByUserID(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error)
}

// RoundSource provides the active-round lookup recording needs. The round
// module's repository satisfies it.
type RoundSource interface {
	GetActiveRound(ctx context.Context, db bun.IDB) (*rounddb.Round, error)
}

// CacheInvalidator drops cached leaderboard snapshots after a write.
type CacheInvalidator interface {
	Invalidate()
}

// Detector resolves the dominant language of a message. Implementations
// return an empty code when the language cannot be determined.
type Detector interface {
	Detect(ctx context.Context, text string) (sharedtypes.LanguageCode, error)
}

// GateConfig carries the tunable gate thresholds.
type GateConfig struct {
	GuildID          sharedtypes.GuildID
	Cooldown         time.Duration
	DailyCap         int
	PointsPerMessage int
}
