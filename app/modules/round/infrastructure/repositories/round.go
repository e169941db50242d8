package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// ErrNotFound is returned when a round is not found.
var ErrNotFound = errors.New("round not found")

// ErrNoActiveRound is returned when no round is currently ACTIVE.
var ErrNoActiveRound = errors.New("no active round")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new round repository.
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

// GetActiveRound retrieves the single ACTIVE round.
func (r *Impl) GetActiveRound(ctx context.Context, db bun.IDB) (*Round, error) {
	db = r.resolveDB(db)
	round := new(Round)
	err := db.NewSelect().
		Model(round).
		Where("status = ?", sharedtypes.RoundStatusActive).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveRound
		}
		return nil, fmt.Errorf("failed to get active round: %w", err)
	}
	return round, nil
}

// GetByRoundNumber retrieves a round by its public counter.
func (r *Impl) GetByRoundNumber(ctx context.Context, db bun.IDB, roundNumber sharedtypes.RoundNumber) (*Round, error) {
	db = r.resolveDB(db)
	round := new(Round)
	err := db.NewSelect().
		Model(round).
		Where("round_number = ?", roundNumber).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get round by number: %w", err)
	}
	return round, nil
}

// GetLatestCompleted retrieves the most recently completed round.
func (r *Impl) GetLatestCompleted(ctx context.Context, db bun.IDB) (*Round, error) {
	db = r.resolveDB(db)
	round := new(Round)
	err := db.NewSelect().
		Model(round).
		Where("status = ?", sharedtypes.RoundStatusCompleted).
		Order("round_number DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest completed round: %w", err)
	}
	return round, nil
}

// GetLatestCompletedBefore retrieves the most recently completed round with a
// number lower than the given one. The closing round is already COMPLETED by
// the time the rotation cooldown set is computed, so the predecessor lookup
// has to exclude it explicitly.
func (r *Impl) GetLatestCompletedBefore(ctx context.Context, db bun.IDB, roundNumber sharedtypes.RoundNumber) (*Round, error) {
	db = r.resolveDB(db)
	round := new(Round)
	err := db.NewSelect().
		Model(round).
		Where("status = ?", sharedtypes.RoundStatusCompleted).
		Where("round_number < ?", roundNumber).
		Order("round_number DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest completed round before %d: %w", roundNumber, err)
	}
	return round, nil
}

// GetMaxRoundNumber returns the highest round number ever created, or 0 when
// no rounds exist.
func (r *Impl) GetMaxRoundNumber(ctx context.Context, db bun.IDB) (sharedtypes.RoundNumber, error) {
	db = r.resolveDB(db)
	var maxNumber sql.NullInt64
	err := db.NewSelect().
		Model((*Round)(nil)).
		ColumnExpr("MAX(round_number)").
		Scan(ctx, &maxNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to get max round number: %w", err)
	}
	return sharedtypes.RoundNumber(maxNumber.Int64), nil
}

// CreateRound inserts a new round row.
func (r *Impl) CreateRound(ctx context.Context, db bun.IDB, round *Round) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(round).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create round: %w", err)
	}
	return nil
}

// CompleteRound transitions a round from ACTIVE to COMPLETED. The status
// condition makes the update a compare-and-swap: concurrent closers race on
// it and exactly one sees an affected row.
func (r *Impl) CompleteRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Round)(nil)).
		Set("status = ?", sharedtypes.RoundStatusCompleted).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", roundID).
		Where("status = ?", sharedtypes.RoundStatusActive).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to complete round: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

// UpdateEndTime moves the end time of an ACTIVE round.
func (r *Impl) UpdateEndTime(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, endTime time.Time) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Round)(nil)).
		Set("end_time = ?", endTime).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", roundID).
		Where("status = ?", sharedtypes.RoundStatusActive).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update round end time: %w", err)
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
