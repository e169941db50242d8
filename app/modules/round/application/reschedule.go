package roundservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"

	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// ErrUnparseableTime is returned when the reschedule input cannot be read as
// a point in time.
var ErrUnparseableTime = errors.New("could not recognize time format")

// ErrEndNotFuture is returned when the requested end time is not after the
// request time.
var ErrEndNotFuture = errors.New("new end time must be in the future")

// RescheduleRound moves the active round's end time. The input is natural
// language ("sunday at noon", "in 2 days") anchored at the request time, with
// RFC3339 accepted as an exact-format fallback. The league runs on UTC.
func (s *RoundService) RescheduleRound(ctx context.Context, req RescheduleRequest) (*roundtypes.RoundInfo, error) {
	rescheduleTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*roundtypes.RoundInfo, error], error) {
		return s.rescheduleRoundLogic(ctx, db, req)
	}

	result, err := withTelemetry(s, ctx, "RescheduleRound", req.When, func(ctx context.Context) (results.OperationResult[*roundtypes.RoundInfo, error], error) {
		return runInTx(s, ctx, rescheduleTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// rescheduleRoundLogic contains the core logic.
func (s *RoundService) rescheduleRoundLogic(ctx context.Context, db bun.IDB, req RescheduleRequest) (results.OperationResult[*roundtypes.RoundInfo, error], error) {
	anchor := req.RequestedAt
	if anchor.IsZero() {
		anchor = s.clock.Now()
	}
	anchor = anchor.UTC()

	newEnd, ok := parseEndTime(req.When, anchor)
	if !ok {
		return results.FailureResult[*roundtypes.RoundInfo, error](ErrUnparseableTime), nil
	}
	if !newEnd.After(anchor) {
		return results.FailureResult[*roundtypes.RoundInfo, error](ErrEndNotFuture), nil
	}

	round, err := s.repo.GetActiveRound(ctx, db)
	if err != nil {
		if errors.Is(err, rounddb.ErrNoActiveRound) {
			return results.FailureResult[*roundtypes.RoundInfo, error](err), nil
		}
		return results.OperationResult[*roundtypes.RoundInfo, error]{}, fmt.Errorf("failed to read active round: %w", err)
	}

	if err := s.repo.UpdateEndTime(ctx, db, round.ID, newEnd); err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return results.FailureResult[*roundtypes.RoundInfo, error](rounddb.ErrNoActiveRound), nil
		}
		return results.OperationResult[*roundtypes.RoundInfo, error]{}, fmt.Errorf("failed to update end time: %w", err)
	}

	info := round.ToInfo()
	info.EndTime = newEnd
	return results.SuccessResult[*roundtypes.RoundInfo, error](info), nil
}

// parseEndTime reads natural language first, exact RFC3339 second. Results
// are normalized to UTC at minute precision.
func parseEndTime(input string, anchor time.Time) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}

	w := when.New(nil)
	w.Add(en.All...)

	if r, err := w.Parse(input, anchor); err == nil && r != nil {
		return r.Time.UTC().Truncate(time.Minute), true
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t.UTC().Truncate(time.Minute), true
	}

	return time.Time{}, false
}
