package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// ErrNotFound is returned when a member is not found.
var ErrNotFound = errors.New("member not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new member repository.
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

// GetByUserID retrieves a member by Discord ID.
func (r *Impl) GetByUserID(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*Member, error) {
	db = r.resolveDB(db)
	member := new(Member)
	err := db.NewSelect().
		Model(member).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member by user ID: %w", err)
	}
	return member, nil
}

// Upsert creates or updates a member keyed by Discord ID.
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, member *Member) error {
	db = r.resolveDB(db)
	member.UpdatedAt = time.Now()
	_, err := db.NewInsert().
		Model(member).
		On("CONFLICT (user_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("opted_in = EXCLUDED.opted_in").
		Set("learning_spanish = EXCLUDED.learning_spanish").
		Set("learning_english = EXCLUDED.learning_english").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}

// SetOptedIn flips the opt-in flag for an existing member.
func (r *Impl) SetOptedIn(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, optedIn bool) error {
	return r.setFlag(ctx, db, userID, "opted_in", optedIn)
}

// SetBanned flips the ban flag for an existing member.
func (r *Impl) SetBanned(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, banned bool) error {
	return r.setFlag(ctx, db, userID, "banned", banned)
}

func (r *Impl) setFlag(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID, column string, value bool) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Member)(nil)).
		Set("? = ?", bun.Ident(column), value).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", column, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
