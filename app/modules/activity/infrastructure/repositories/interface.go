package activitydb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Repository defines the contract for activity persistence.
type Repository interface {
	// InsertEvent appends one activity event.
	InsertEvent(ctx context.Context, db bun.IDB, event *ActivityEvent) error

	// CountEventsSince counts a user's events recorded at or after the cutoff.
	CountEventsSince(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, since time.Time) (int, error)

	// GetRecentEvents returns the newest events with author usernames, newest first.
	GetRecentEvents(ctx context.Context, db bun.IDB, limit int) ([]AuditRow, error)

	// IsChannelExcluded reports whether a channel is on the exclusion list.
	IsChannelExcluded(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) (bool, error)

	// AddExcludedChannel puts a channel on the exclusion list (idempotent).
	AddExcludedChannel(ctx context.Context, db bun.IDB, channel *ExcludedChannel) error

	// RemoveExcludedChannel takes a channel off the exclusion list.
	RemoveExcludedChannel(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) error

	// ListExcludedChannels returns the exclusion list ordered by channel name.
	ListExcludedChannels(ctx context.Context, db bun.IDB) ([]ExcludedChannel, error)
}
