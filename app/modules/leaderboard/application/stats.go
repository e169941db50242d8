package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	leaderboarddb "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/repositories"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// ErrInvalidUserID is returned when a stats request lacks a user ID.
var ErrInvalidUserID = errors.New("user ID is required")

// GetUserStats returns one member's current-round score, active days, and
// per-board ranks. Ranks are populated only for boards the member competes
// on: opted in, not banned, matching learning flag set.
func (s *LeaderboardService) GetUserStats(ctx context.Context, userID sharedtypes.DiscordID) (*leaderboardtypes.UserStats, error) {
	statsTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*leaderboardtypes.UserStats, error], error) {
		return s.getUserStatsLogic(ctx, db, userID)
	}

	result, err := withTelemetry(s, ctx, "GetUserStats", string(userID), func(ctx context.Context) (results.OperationResult[*leaderboardtypes.UserStats, error], error) {
		return runInTx(s, ctx, statsTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// getUserStatsLogic contains the core logic.
func (s *LeaderboardService) getUserStatsLogic(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (results.OperationResult[*leaderboardtypes.UserStats, error], error) {
	if userID == "" {
		return results.FailureResult[*leaderboardtypes.UserStats, error](ErrInvalidUserID), nil
	}

	member, err := s.members.GetByUserID(ctx, db, userID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.FailureResult[*leaderboardtypes.UserStats, error](err), nil
		}
		return results.OperationResult[*leaderboardtypes.UserStats, error]{}, fmt.Errorf("failed to load member: %w", err)
	}

	round, err := s.rounds.GetActiveRound(ctx, db)
	if err != nil {
		if errors.Is(err, rounddb.ErrNoActiveRound) {
			return results.FailureResult[*leaderboardtypes.UserStats, error](err), nil
		}
		return results.OperationResult[*leaderboardtypes.UserStats, error]{}, fmt.Errorf("failed to resolve active round: %w", err)
	}

	agg, err := s.repo.GetMemberRoundStats(ctx, db, round.ID, s.config.ActiveDayBonus, userID)
	if err != nil {
		return results.OperationResult[*leaderboardtypes.UserStats, error]{}, fmt.Errorf("failed to aggregate member stats: %w", err)
	}

	stats := &leaderboardtypes.UserStats{
		UserID:          member.UserID,
		Username:        member.Username,
		OptedIn:         member.OptedIn,
		LearningSpanish: member.LearningSpanish,
		LearningEnglish: member.LearningEnglish,
		TotalScore:      agg.TotalScore,
		ActiveDays:      agg.ActiveDays,
	}

	if member.OptedIn && !member.Banned {
		if member.LearningSpanish {
			rank, err := s.boardRank(ctx, db, round.ID, sharedtypes.BoardSpanish, userID)
			if err != nil {
				return results.OperationResult[*leaderboardtypes.UserStats, error]{}, err
			}
			stats.SpanishRank = rank
		}
		if member.LearningEnglish {
			rank, err := s.boardRank(ctx, db, round.ID, sharedtypes.BoardEnglish, userID)
			if err != nil {
				return results.OperationResult[*leaderboardtypes.UserStats, error]{}, err
			}
			stats.EnglishRank = rank
		}
	}

	return results.SuccessResult[*leaderboardtypes.UserStats, error](stats), nil
}

// boardRank looks up one board rank, mapping "not on the board" to nil.
func (s *LeaderboardService) boardRank(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, userID sharedtypes.DiscordID) (*int, error) {
	rank, err := s.repo.GetUserBoardRank(ctx, db, roundID, board, s.config.ActiveDayBonus, userID)
	if err != nil {
		if errors.Is(err, leaderboarddb.ErrNotRanked) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to rank member on %s board: %w", board, err)
	}
	return &rank, nil
}
