package activitydb

import (
	"time"

	"github.com/uptrace/bun"

	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// ActivityEvent represents one counted activity event. Rows are append-only
// and never mutated.
type ActivityEvent struct {
	bun.BaseModel `bun:"table:activity_events,alias:ae"`

	ID            int64                 `bun:"id,pk,autoincrement" json:"id"`
	UserID        sharedtypes.DiscordID `bun:"user_id,notnull" json:"user_id"`
	RoundID       sharedtypes.RoundID   `bun:"round_id,notnull" json:"round_id"`
	ChannelID     sharedtypes.ChannelID `bun:"channel_id,notnull" json:"channel_id"`
	SourceEventID sharedtypes.MessageID `bun:"source_event_id,nullzero" json:"source_event_id,omitempty"`
	Points        int                   `bun:"points,notnull,default:1" json:"points"`
	CreatedAt     time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// ExcludedChannel represents one exclusion-list entry consulted by the gate.
type ExcludedChannel struct {
	bun.BaseModel `bun:"table:excluded_channels,alias:ec"`

	ChannelID   sharedtypes.ChannelID `bun:"channel_id,pk" json:"channel_id"`
	ChannelName string                `bun:"channel_name,notnull" json:"channel_name"`
	AddedBy     sharedtypes.DiscordID `bun:"added_by,notnull" json:"added_by"`
	AddedAt     time.Time             `bun:"added_at,nullzero,notnull,default:current_timestamp" json:"added_at"`
}

// ToInfo converts the row to the service-level view.
func (e *ExcludedChannel) ToInfo() activitytypes.ExcludedChannelInfo {
	return activitytypes.ExcludedChannelInfo{
		ChannelID:   e.ChannelID,
		ChannelName: e.ChannelName,
		AddedBy:     e.AddedBy,
		AddedAt:     e.AddedAt,
	}
}

// AuditRow is an activity event joined with the author's username, as served
// to admin audits.
type AuditRow struct {
	ActivityEvent `bun:",extend"`

	Username string `bun:"username" json:"username"`
}

// ToRecord converts the row to the service-level view.
func (r *AuditRow) ToRecord() activitytypes.ActivityRecord {
	return activitytypes.ActivityRecord{
		ID:            r.ID,
		UserID:        r.UserID,
		Username:      r.Username,
		ChannelID:     r.ChannelID,
		Points:        r.Points,
		SourceEventID: r.SourceEventID,
		CreatedAt:     r.CreatedAt,
	}
}
