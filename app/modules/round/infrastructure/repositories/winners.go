package rounddb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// InsertWinners persists the podium snapshot for a closed round.
func (r *Impl) InsertWinners(ctx context.Context, db bun.IDB, winners []*RoundWinner) error {
	if len(winners) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&winners).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert round winners: %w", err)
	}
	return nil
}

// GetWinnersByRound retrieves the persisted podium for a round, ordered by
// league and rank.
func (r *Impl) GetWinnersByRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]RoundWinner, error) {
	db = r.resolveDB(db)
	var winners []RoundWinner
	err := db.NewSelect().
		Model(&winners).
		Where("round_id = ?", roundID).
		Order("league_type ASC", "rank ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get round winners: %w", err)
	}
	return winners, nil
}

// InsertRecipients records champion role holders for a round. Conflicting
// rows are skipped so administrative seeding stays idempotent.
func (r *Impl) InsertRecipients(ctx context.Context, db bun.IDB, recipients []*RoleRecipient) error {
	if len(recipients) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(&recipients).
		On("CONFLICT (round_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert role recipients: %w", err)
	}
	return nil
}

// GetRecipientsByRound retrieves the champion role holders for a round.
func (r *Impl) GetRecipientsByRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]RoleRecipient, error) {
	db = r.resolveDB(db)
	var recipients []RoleRecipient
	err := db.NewSelect().
		Model(&recipients).
		Where("round_id = ?", roundID).
		Order("granted_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get role recipients: %w", err)
	}
	return recipients, nil
}
