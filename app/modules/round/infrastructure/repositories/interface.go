package rounddb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Repository defines the contract for round persistence.
type Repository interface {
	// GetActiveRound retrieves the single ACTIVE round.
	GetActiveRound(ctx context.Context, db bun.IDB) (*Round, error)

	// GetByRoundNumber retrieves a round by its public counter.
	GetByRoundNumber(ctx context.Context, db bun.IDB, roundNumber sharedtypes.RoundNumber) (*Round, error)

	// GetLatestCompleted retrieves the most recently completed round.
	GetLatestCompleted(ctx context.Context, db bun.IDB) (*Round, error)

	// GetLatestCompletedBefore retrieves the most recently completed round
	// with a number lower than the given one.
	GetLatestCompletedBefore(ctx context.Context, db bun.IDB, roundNumber sharedtypes.RoundNumber) (*Round, error)

	// GetMaxRoundNumber returns the highest round number ever created, or 0
	// when no rounds exist.
	GetMaxRoundNumber(ctx context.Context, db bun.IDB) (sharedtypes.RoundNumber, error)

	// CreateRound inserts a new round row.
	CreateRound(ctx context.Context, db bun.IDB, round *Round) error

	// CompleteRound transitions a round from ACTIVE to COMPLETED. It reports
	// whether this call performed the transition; false means another caller
	// already completed the round.
	CompleteRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) (bool, error)

	// UpdateEndTime moves the end time of an ACTIVE round.
	UpdateEndTime(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, endTime time.Time) error

	// InsertWinners persists the podium snapshot for a closed round.
	InsertWinners(ctx context.Context, db bun.IDB, winners []*RoundWinner) error

	// GetWinnersByRound retrieves the persisted podium for a round, ordered by
	// league and rank.
	GetWinnersByRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]RoundWinner, error)

	// InsertRecipients records champion role holders for a round. Rows that
	// already exist for the same round and user are left untouched.
	InsertRecipients(ctx context.Context, db bun.IDB, recipients []*RoleRecipient) error

	// GetRecipientsByRound retrieves the champion role holders for a round.
	GetRecipientsByRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]RoleRecipient, error)
}
