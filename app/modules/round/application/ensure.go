package roundservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	roundutil "github.com/hablemos-club/league-bot/app/modules/round/utils"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// EnsureActiveRound guarantees an ACTIVE round exists. Called at startup so a
// process that died between completing a round and creating the next one
// heals itself; the partial unique index makes a racing create fail loudly
// instead of producing a second ACTIVE round.
func (s *RoundService) EnsureActiveRound(ctx context.Context) (*roundtypes.RoundInfo, error) {
	ensureTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*roundtypes.RoundInfo, error], error) {
		return s.ensureActiveRoundLogic(ctx, db)
	}

	result, err := withTelemetry(s, ctx, "EnsureActiveRound", "startup", func(ctx context.Context) (results.OperationResult[*roundtypes.RoundInfo, error], error) {
		return runInTx(s, ctx, ensureTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// ensureActiveRoundLogic contains the core logic.
func (s *RoundService) ensureActiveRoundLogic(ctx context.Context, db bun.IDB) (results.OperationResult[*roundtypes.RoundInfo, error], error) {
	round, err := s.repo.GetActiveRound(ctx, db)
	if err == nil {
		return results.SuccessResult[*roundtypes.RoundInfo, error](round.ToInfo()), nil
	}
	if !errors.Is(err, rounddb.ErrNoActiveRound) {
		return results.OperationResult[*roundtypes.RoundInfo, error]{}, fmt.Errorf("failed to read active round: %w", err)
	}

	maxNumber, err := s.repo.GetMaxRoundNumber(ctx, db)
	if err != nil {
		return results.OperationResult[*roundtypes.RoundInfo, error]{}, fmt.Errorf("failed to read max round number: %w", err)
	}

	now := s.clock.Now()
	created := &rounddb.Round{
		RoundNumber: maxNumber + 1,
		StartTime:   now,
		EndTime:     roundutil.NextSundayNoon(now),
		Status:      sharedtypes.RoundStatusActive,
	}
	if err := s.repo.CreateRound(ctx, db, created); err != nil {
		return results.OperationResult[*roundtypes.RoundInfo, error]{}, fmt.Errorf("failed to create round: %w", err)
	}

	return results.SuccessResult[*roundtypes.RoundInfo, error](created.ToInfo()), nil
}

// GetCurrentRound returns the ACTIVE round.
func (s *RoundService) GetCurrentRound(ctx context.Context) (*roundtypes.RoundInfo, error) {
	result, err := withTelemetry(s, ctx, "GetCurrentRound", "current", func(ctx context.Context) (results.OperationResult[*roundtypes.RoundInfo, error], error) {
		return s.getCurrentRoundLogic(ctx, nil)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// getCurrentRoundLogic contains the core logic.
func (s *RoundService) getCurrentRoundLogic(ctx context.Context, db bun.IDB) (results.OperationResult[*roundtypes.RoundInfo, error], error) {
	round, err := s.repo.GetActiveRound(ctx, db)
	if err != nil {
		if errors.Is(err, rounddb.ErrNoActiveRound) {
			return results.FailureResult[*roundtypes.RoundInfo, error](err), nil
		}
		return results.OperationResult[*roundtypes.RoundInfo, error]{}, fmt.Errorf("failed to read active round: %w", err)
	}
	return results.SuccessResult[*roundtypes.RoundInfo, error](round.ToInfo()), nil
}
