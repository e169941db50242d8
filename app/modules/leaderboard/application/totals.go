package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// GetLeagueTotals returns the admin overview: member and channel counters,
// today's event count, and the active round's number and end time.
func (s *LeaderboardService) GetLeagueTotals(ctx context.Context) (*leaderboardtypes.LeagueTotals, error) {
	totalsTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*leaderboardtypes.LeagueTotals, error], error) {
		return s.getLeagueTotalsLogic(ctx, db)
	}

	result, err := withTelemetry(s, ctx, "GetLeagueTotals", "league", func(ctx context.Context) (results.OperationResult[*leaderboardtypes.LeagueTotals, error], error) {
		return runInTx(s, ctx, totalsTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// getLeagueTotalsLogic contains the core logic.
func (s *LeaderboardService) getLeagueTotalsLogic(ctx context.Context, db bun.IDB) (results.OperationResult[*leaderboardtypes.LeagueTotals, error], error) {
	round, err := s.rounds.GetActiveRound(ctx, db)
	if err != nil {
		if errors.Is(err, rounddb.ErrNoActiveRound) {
			return results.FailureResult[*leaderboardtypes.LeagueTotals, error](err), nil
		}
		return results.OperationResult[*leaderboardtypes.LeagueTotals, error]{}, fmt.Errorf("failed to resolve active round: %w", err)
	}

	counts, err := s.repo.GetTotalsCounts(ctx, db, startOfDayUTC(time.Now()))
	if err != nil {
		return results.OperationResult[*leaderboardtypes.LeagueTotals, error]{}, fmt.Errorf("failed to count league totals: %w", err)
	}

	totals := &leaderboardtypes.LeagueTotals{
		Members:          counts.Members,
		OptedIn:          counts.OptedIn,
		Banned:           counts.Banned,
		ExcludedChannels: counts.ExcludedChannels,
		EventsToday:      counts.EventsToday,
		RoundNumber:      round.RoundNumber,
		RoundEndsAt:      round.EndTime,
	}
	return results.SuccessResult[*leaderboardtypes.LeagueTotals, error](totals), nil
}

// startOfDayUTC truncates t to UTC midnight; "today" is a UTC day.
func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
