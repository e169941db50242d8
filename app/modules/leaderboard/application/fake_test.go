package leaderboardservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	leaderboarddb "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/repositories"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// ------------------------
// Fake Leaderboard Repo
// ------------------------

type FakeLeaderboardRepo struct {
	trace []string

	GetBoardFunc            func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus, limit int) ([]leaderboarddb.BoardRow, error)
	GetUserBoardRankFunc    func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus int, userID sharedtypes.DiscordID) (int, error)
	GetMemberRoundStatsFunc func(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, bonus int, userID sharedtypes.DiscordID) (*leaderboarddb.MemberRoundStats, error)
	GetTotalsCountsFunc     func(ctx context.Context, db bun.IDB, eventsSince time.Time) (*leaderboarddb.TotalsCounts, error)
}

func NewFakeLeaderboardRepo() *FakeLeaderboardRepo {
	return &FakeLeaderboardRepo{
		trace: []string{},
	}
}

func (f *FakeLeaderboardRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeLeaderboardRepo) GetBoard(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus, limit int) ([]leaderboarddb.BoardRow, error) {
	f.record("GetBoard")
	if f.GetBoardFunc != nil {
		return f.GetBoardFunc(ctx, db, roundID, board, bonus, limit)
	}
	return nil, nil
}

func (f *FakeLeaderboardRepo) GetUserBoardRank(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus int, userID sharedtypes.DiscordID) (int, error) {
	f.record("GetUserBoardRank")
	if f.GetUserBoardRankFunc != nil {
		return f.GetUserBoardRankFunc(ctx, db, roundID, board, bonus, userID)
	}
	return 0, leaderboarddb.ErrNotRanked
}

func (f *FakeLeaderboardRepo) GetMemberRoundStats(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, bonus int, userID sharedtypes.DiscordID) (*leaderboarddb.MemberRoundStats, error) {
	f.record("GetMemberRoundStats")
	if f.GetMemberRoundStatsFunc != nil {
		return f.GetMemberRoundStatsFunc(ctx, db, roundID, bonus, userID)
	}
	return &leaderboarddb.MemberRoundStats{}, nil
}

func (f *FakeLeaderboardRepo) GetTotalsCounts(ctx context.Context, db bun.IDB, eventsSince time.Time) (*leaderboarddb.TotalsCounts, error) {
	f.record("GetTotalsCounts")
	if f.GetTotalsCountsFunc != nil {
		return f.GetTotalsCountsFunc(ctx, db, eventsSince)
	}
	return &leaderboarddb.TotalsCounts{}, nil
}

// --- Accessors for assertions ---

func (f *FakeLeaderboardRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ leaderboarddb.Repository = (*FakeLeaderboardRepo)(nil)

// ------------------------
// Fake collaborators
// ------------------------

type FakeMemberSource struct {
	GetByUserIDFunc func(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error)
}

func (f *FakeMemberSource) GetByUserID(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error) {
	if f.GetByUserIDFunc != nil {
		return f.GetByUserIDFunc(ctx, db, userID)
	}
	return nil, userdb.ErrNotFound
}

var _ MemberSource = (*FakeMemberSource)(nil)

type FakeRoundSource struct {
	GetActiveRoundFunc func(ctx context.Context, db bun.IDB) (*rounddb.Round, error)
}

func (f *FakeRoundSource) GetActiveRound(ctx context.Context, db bun.IDB) (*rounddb.Round, error) {
	if f.GetActiveRoundFunc != nil {
		return f.GetActiveRoundFunc(ctx, db)
	}
	return nil, rounddb.ErrNoActiveRound
}

var _ RoundSource = (*FakeRoundSource)(nil)
