package activitydb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// ErrChannelNotExcluded is returned when removing a channel that is not on the
// exclusion list.
var ErrChannelNotExcluded = errors.New("channel is not excluded")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new activity repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// InsertEvent appends one activity event.
func (r *Impl) InsertEvent(ctx context.Context, db bun.IDB, event *ActivityEvent) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(event).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert activity event: %w", err)
	}
	return nil
}

// CountEventsSince counts a user's events recorded at or after the cutoff.
func (r *Impl) CountEventsSince(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, since time.Time) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*ActivityEvent)(nil)).
		Where("user_id = ?", userID).
		Where("created_at >= ?", since).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count activity events: %w", err)
	}
	return count, nil
}

// GetRecentEvents returns the newest events with author usernames, newest first.
func (r *Impl) GetRecentEvents(ctx context.Context, db bun.IDB, limit int) ([]AuditRow, error) {
	db = r.resolveDB(db)
	var rows []AuditRow
	err := db.NewSelect().
		Model((*ActivityEvent)(nil)).
		ColumnExpr("ae.*").
		ColumnExpr("u.username AS username").
		Join("JOIN users AS u ON u.user_id = ae.user_id").
		OrderExpr("ae.created_at DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity events: %w", err)
	}
	return rows, nil
}

// IsChannelExcluded reports whether a channel is on the exclusion list.
func (r *Impl) IsChannelExcluded(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*ExcludedChannel)(nil)).
		Where("channel_id = ?", channelID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check excluded channel: %w", err)
	}
	return exists, nil
}

// AddExcludedChannel puts a channel on the exclusion list (idempotent).
func (r *Impl) AddExcludedChannel(ctx context.Context, db bun.IDB, channel *ExcludedChannel) error {
	db = r.resolveDB(db)
	if channel.AddedAt.IsZero() {
		channel.AddedAt = time.Now()
	}
	_, err := db.NewInsert().
		Model(channel).
		On("CONFLICT (channel_id) DO UPDATE").
		Set("channel_name = EXCLUDED.channel_name").
		Set("added_by = EXCLUDED.added_by").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add excluded channel: %w", err)
	}
	return nil
}

// RemoveExcludedChannel takes a channel off the exclusion list.
func (r *Impl) RemoveExcludedChannel(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*ExcludedChannel)(nil)).
		Where("channel_id = ?", channelID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove excluded channel: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrChannelNotExcluded
	}
	return nil
}

// ListExcludedChannels returns the exclusion list ordered by channel name.
func (r *Impl) ListExcludedChannels(ctx context.Context, db bun.IDB) ([]ExcludedChannel, error) {
	db = r.resolveDB(db)
	var channels []ExcludedChannel
	err := db.NewSelect().
		Model(&channels).
		Order("channel_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list excluded channels: %w", err)
	}
	return channels, nil
}
