package roundservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	leaderboarddb "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/repositories"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// ------------------------
// Fake Round Repo
// ------------------------

type FakeRoundRepo struct {
	trace []string

	GetActiveRoundFunc           func(ctx context.Context, db bun.IDB) (*rounddb.Round, error)
	GetByRoundNumberFunc         func(ctx context.Context, db bun.IDB, roundNumber sharedtypes.RoundNumber) (*rounddb.Round, error)
	GetLatestCompletedFunc       func(ctx context.Context, db bun.IDB) (*rounddb.Round, error)
	GetLatestCompletedBeforeFunc func(ctx context.Context, db bun.IDB, roundNumber sharedtypes.RoundNumber) (*rounddb.Round, error)
	GetMaxRoundNumberFunc        func(ctx context.Context, db bun.IDB) (sharedtypes.RoundNumber, error)
	CreateRoundFunc              func(ctx context.Context, db bun.IDB, round *rounddb.Round) error
	CompleteRoundFunc            func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) (bool, error)
	UpdateEndTimeFunc            func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, endTime time.Time) error
	InsertWinnersFunc            func(ctx context.Context, db bun.IDB, winners []*rounddb.RoundWinner) error
	GetWinnersByRoundFunc        func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]rounddb.RoundWinner, error)
	InsertRecipientsFunc         func(ctx context.Context, db bun.IDB, recipients []*rounddb.RoleRecipient) error
	GetRecipientsByRoundFunc     func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]rounddb.RoleRecipient, error)

	// Captured writes, for assertions.
	CreatedRounds      []*rounddb.Round
	InsertedWinners    []*rounddb.RoundWinner
	InsertedRecipients []*rounddb.RoleRecipient
	UpdatedEndTimes    []time.Time
}

func NewFakeRoundRepo() *FakeRoundRepo {
	return &FakeRoundRepo{
		trace: []string{},
	}
}

func (f *FakeRoundRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeRoundRepo) GetActiveRound(ctx context.Context, db bun.IDB) (*rounddb.Round, error) {
	f.record("GetActiveRound")
	if f.GetActiveRoundFunc != nil {
		return f.GetActiveRoundFunc(ctx, db)
	}
	return nil, rounddb.ErrNoActiveRound
}

func (f *FakeRoundRepo) GetByRoundNumber(ctx context.Context, db bun.IDB, roundNumber sharedtypes.RoundNumber) (*rounddb.Round, error) {
	f.record("GetByRoundNumber")
	if f.GetByRoundNumberFunc != nil {
		return f.GetByRoundNumberFunc(ctx, db, roundNumber)
	}
	return nil, rounddb.ErrNotFound
}

func (f *FakeRoundRepo) GetLatestCompleted(ctx context.Context, db bun.IDB) (*rounddb.Round, error) {
	f.record("GetLatestCompleted")
	if f.GetLatestCompletedFunc != nil {
		return f.GetLatestCompletedFunc(ctx, db)
	}
	return nil, rounddb.ErrNotFound
}

func (f *FakeRoundRepo) GetLatestCompletedBefore(ctx context.Context, db bun.IDB, roundNumber sharedtypes.RoundNumber) (*rounddb.Round, error) {
	f.record("GetLatestCompletedBefore")
	if f.GetLatestCompletedBeforeFunc != nil {
		return f.GetLatestCompletedBeforeFunc(ctx, db, roundNumber)
	}
	return nil, rounddb.ErrNotFound
}

func (f *FakeRoundRepo) GetMaxRoundNumber(ctx context.Context, db bun.IDB) (sharedtypes.RoundNumber, error) {
	f.record("GetMaxRoundNumber")
	if f.GetMaxRoundNumberFunc != nil {
		return f.GetMaxRoundNumberFunc(ctx, db)
	}
	return 0, nil
}

func (f *FakeRoundRepo) CreateRound(ctx context.Context, db bun.IDB, round *rounddb.Round) error {
	f.record("CreateRound")
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, db, round)
	}
	f.CreatedRounds = append(f.CreatedRounds, round)
	return nil
}

func (f *FakeRoundRepo) CompleteRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) (bool, error) {
	f.record("CompleteRound")
	if f.CompleteRoundFunc != nil {
		return f.CompleteRoundFunc(ctx, db, roundID)
	}
	return true, nil
}

func (f *FakeRoundRepo) UpdateEndTime(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, endTime time.Time) error {
	f.record("UpdateEndTime")
	if f.UpdateEndTimeFunc != nil {
		return f.UpdateEndTimeFunc(ctx, db, roundID, endTime)
	}
	f.UpdatedEndTimes = append(f.UpdatedEndTimes, endTime)
	return nil
}

func (f *FakeRoundRepo) InsertWinners(ctx context.Context, db bun.IDB, winners []*rounddb.RoundWinner) error {
	f.record("InsertWinners")
	if f.InsertWinnersFunc != nil {
		return f.InsertWinnersFunc(ctx, db, winners)
	}
	f.InsertedWinners = append(f.InsertedWinners, winners...)
	return nil
}

func (f *FakeRoundRepo) GetWinnersByRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]rounddb.RoundWinner, error) {
	f.record("GetWinnersByRound")
	if f.GetWinnersByRoundFunc != nil {
		return f.GetWinnersByRoundFunc(ctx, db, roundID)
	}
	return nil, nil
}

func (f *FakeRoundRepo) InsertRecipients(ctx context.Context, db bun.IDB, recipients []*rounddb.RoleRecipient) error {
	f.record("InsertRecipients")
	if f.InsertRecipientsFunc != nil {
		return f.InsertRecipientsFunc(ctx, db, recipients)
	}
	f.InsertedRecipients = append(f.InsertedRecipients, recipients...)
	return nil
}

func (f *FakeRoundRepo) GetRecipientsByRound(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID) ([]rounddb.RoleRecipient, error) {
	f.record("GetRecipientsByRound")
	if f.GetRecipientsByRoundFunc != nil {
		return f.GetRecipientsByRoundFunc(ctx, db, roundID)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeRoundRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ rounddb.Repository = (*FakeRoundRepo)(nil)

// ------------------------
// Fake collaborators
// ------------------------

type FakeStandingsSource struct {
	GetBoardFunc func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus, limit int) ([]leaderboarddb.BoardRow, error)
}

func (f *FakeStandingsSource) GetBoard(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus, limit int) ([]leaderboarddb.BoardRow, error) {
	if f.GetBoardFunc != nil {
		return f.GetBoardFunc(ctx, db, roundID, board, bonus, limit)
	}
	return nil, nil
}

var _ StandingsSource = (*FakeStandingsSource)(nil)

// FakeRoleNotifier records every gateway call in order.
type FakeRoleNotifier struct {
	Granted   []sharedtypes.DiscordID
	Revoked   []sharedtypes.DiscordID
	Announced []string

	GrantFunc    func(ctx context.Context, userID sharedtypes.DiscordID) error
	RevokeFunc   func(ctx context.Context, userID sharedtypes.DiscordID) error
	AnnounceFunc func(ctx context.Context, content string) error
}

func (f *FakeRoleNotifier) GrantChampionRole(ctx context.Context, userID sharedtypes.DiscordID) error {
	f.Granted = append(f.Granted, userID)
	if f.GrantFunc != nil {
		return f.GrantFunc(ctx, userID)
	}
	return nil
}

func (f *FakeRoleNotifier) RevokeChampionRole(ctx context.Context, userID sharedtypes.DiscordID) error {
	f.Revoked = append(f.Revoked, userID)
	if f.RevokeFunc != nil {
		return f.RevokeFunc(ctx, userID)
	}
	return nil
}

func (f *FakeRoleNotifier) Announce(ctx context.Context, content string) error {
	f.Announced = append(f.Announced, content)
	if f.AnnounceFunc != nil {
		return f.AnnounceFunc(ctx, content)
	}
	return nil
}

var _ RoleNotifier = (*FakeRoleNotifier)(nil)

type FakeInvalidator struct {
	Calls int
}

func (f *FakeInvalidator) Invalidate() {
	f.Calls++
}

var _ CacheInvalidator = (*FakeInvalidator)(nil)
