package activityservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"
)

// ErrInvalidValidateRequest is returned when a dry-run probe lacks a user or
// channel.
var ErrInvalidValidateRequest = errors.New("user ID and channel ID are required")

// ValidateMessage dry-runs the gate for a hypothetical message. Nothing is
// recorded, no cache is touched, and the cooldown token is left unspent.
func (s *ActivityService) ValidateMessage(ctx context.Context, req ValidateRequest) (*activitytypes.GateDecision, error) {
	validateTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitytypes.GateDecision, error], error) {
		return s.validateMessageLogic(ctx, db, req)
	}

	result, err := withTelemetry(s, ctx, "ValidateMessage", string(req.UserID), func(ctx context.Context) (results.OperationResult[*activitytypes.GateDecision, error], error) {
		return runInTx(s, ctx, validateTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// validateMessageLogic contains the core logic.
func (s *ActivityService) validateMessageLogic(ctx context.Context, db bun.IDB, req ValidateRequest) (results.OperationResult[*activitytypes.GateDecision, error], error) {
	if req.UserID == "" || req.ChannelID == "" {
		return results.FailureResult[*activitytypes.GateDecision, error](ErrInvalidValidateRequest), nil
	}

	decision, err := s.evaluate(ctx, db, activitytypes.InboundMessage{
		UserID:    req.UserID,
		GuildID:   req.GuildID,
		ChannelID: req.ChannelID,
		Content:   req.Content,
	})
	if err != nil {
		return results.OperationResult[*activitytypes.GateDecision, error]{}, err
	}
	return results.SuccessResult[*activitytypes.GateDecision, error](&decision), nil
}
