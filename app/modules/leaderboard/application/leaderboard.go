package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// ErrInvalidBoardType is returned for board names outside the known set.
var ErrInvalidBoardType = errors.New("unknown board type")

// maxBoardLimit caps how many rows a single request may ask for.
const maxBoardLimit = 100

// GetLeaderboard returns one board's current-round standings. Fresh cached
// snapshots are served without touching the database; limits outside
// [1, 100] are clamped before the cache key is formed.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, board sharedtypes.BoardType, limit int) ([]leaderboardtypes.RankedEntry, error) {
	if limit <= 0 {
		limit = s.config.DefaultLimit
	}
	if limit > maxBoardLimit {
		limit = maxBoardLimit
	}

	boardTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[[]leaderboardtypes.RankedEntry, error], error) {
		return s.getLeaderboardLogic(ctx, db, board, limit)
	}

	result, err := withTelemetry(s, ctx, "GetLeaderboard", fmt.Sprintf("%s limit=%d", board, limit), func(ctx context.Context) (results.OperationResult[[]leaderboardtypes.RankedEntry, error], error) {
		if !board.Valid() {
			return results.FailureResult[[]leaderboardtypes.RankedEntry, error](ErrInvalidBoardType), nil
		}

		if entries, ok := s.cache.Get(board, limit); ok {
			if s.metrics != nil {
				s.metrics.RecordCacheLookup(ctx, true)
			}
			return results.SuccessResult[[]leaderboardtypes.RankedEntry, error](entries), nil
		}
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(ctx, false)
		}

		return runInTx(s, ctx, boardTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// getLeaderboardLogic computes and caches the standings on a cache miss.
func (s *LeaderboardService) getLeaderboardLogic(ctx context.Context, db bun.IDB, board sharedtypes.BoardType, limit int) (results.OperationResult[[]leaderboardtypes.RankedEntry, error], error) {
	round, err := s.rounds.GetActiveRound(ctx, db)
	if err != nil {
		if errors.Is(err, rounddb.ErrNoActiveRound) {
			return results.FailureResult[[]leaderboardtypes.RankedEntry, error](err), nil
		}
		return results.OperationResult[[]leaderboardtypes.RankedEntry, error]{}, fmt.Errorf("failed to resolve active round: %w", err)
	}

	rows, err := s.repo.GetBoard(ctx, db, round.ID, board, s.config.ActiveDayBonus, limit)
	if err != nil {
		return results.OperationResult[[]leaderboardtypes.RankedEntry, error]{}, fmt.Errorf("failed to compute standings: %w", err)
	}

	entries := make([]leaderboardtypes.RankedEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].ToEntry())
	}

	s.cache.Put(board, limit, entries)
	return results.SuccessResult[[]leaderboardtypes.RankedEntry, error](entries), nil
}
