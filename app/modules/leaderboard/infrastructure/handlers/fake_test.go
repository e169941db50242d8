package leaderboardhandlers

import (
	"context"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	leaderboardservice "github.com/hablemos-club/league-bot/app/modules/leaderboard/application"
)

// FakeLeaderboardService provides defaults that succeed; override the Func
// fields to steer individual tests.
type FakeLeaderboardService struct {
	trace []string

	GetLeaderboardFunc  func(ctx context.Context, board sharedtypes.BoardType, limit int) ([]leaderboardtypes.RankedEntry, error)
	GetUserStatsFunc    func(ctx context.Context, userID sharedtypes.DiscordID) (*leaderboardtypes.UserStats, error)
	GetLeagueTotalsFunc func(ctx context.Context) (*leaderboardtypes.LeagueTotals, error)
}

func NewFakeLeaderboardService() *FakeLeaderboardService {
	return &FakeLeaderboardService{
		trace: []string{},
	}
}

func (f *FakeLeaderboardService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLeaderboardService) GetLeaderboard(ctx context.Context, board sharedtypes.BoardType, limit int) ([]leaderboardtypes.RankedEntry, error) {
	f.record("GetLeaderboard")
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, board, limit)
	}
	return []leaderboardtypes.RankedEntry{
		{Rank: 1, UserID: "111111111111111111", Username: "maria", TotalScore: 52, ActiveDays: 3},
	}, nil
}

func (f *FakeLeaderboardService) GetUserStats(ctx context.Context, userID sharedtypes.DiscordID) (*leaderboardtypes.UserStats, error) {
	f.record("GetUserStats")
	if f.GetUserStatsFunc != nil {
		return f.GetUserStatsFunc(ctx, userID)
	}
	return &leaderboardtypes.UserStats{
		UserID:          userID,
		Username:        "maria",
		OptedIn:         true,
		LearningSpanish: true,
		TotalScore:      52,
		ActiveDays:      3,
	}, nil
}

func (f *FakeLeaderboardService) GetLeagueTotals(ctx context.Context) (*leaderboardtypes.LeagueTotals, error) {
	f.record("GetLeagueTotals")
	if f.GetLeagueTotalsFunc != nil {
		return f.GetLeagueTotalsFunc(ctx)
	}
	return &leaderboardtypes.LeagueTotals{
		Members:     120,
		OptedIn:     95,
		RoundNumber: 3,
	}, nil
}

func (f *FakeLeaderboardService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ leaderboardservice.Service = (*FakeLeaderboardService)(nil)
