package activityservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	activitydb "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/repositories"
)

// ProcessMessage runs one inbound message through the eligibility gate and,
// when accepted, appends an activity event and invalidates the leaderboard
// cache. A rejection is a successful outcome carrying the reason; only
// infrastructure trouble surfaces as an error so the transport can redeliver.
func (s *ActivityService) ProcessMessage(ctx context.Context, msg activitytypes.InboundMessage) (*activitytypes.GateDecision, error) {
	processTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitytypes.GateDecision, error], error) {
		return s.processMessageLogic(ctx, db, msg)
	}

	result, err := withTelemetry(s, ctx, "ProcessMessage", string(msg.UserID), func(ctx context.Context) (results.OperationResult[*activitytypes.GateDecision, error], error) {
		return runInTx(s, ctx, processTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}

	decision := *result.Success
	if s.metrics != nil {
		s.metrics.RecordGateDecision(ctx, decision.Accepted, string(decision.Reason))
	}
	return decision, nil
}

// processMessageLogic contains the core logic.
func (s *ActivityService) processMessageLogic(ctx context.Context, db bun.IDB, msg activitytypes.InboundMessage) (results.OperationResult[*activitytypes.GateDecision, error], error) {
	decision, err := s.evaluate(ctx, db, msg)
	if err != nil {
		return results.OperationResult[*activitytypes.GateDecision, error]{}, err
	}
	if !decision.Accepted {
		return results.SuccessResult[*activitytypes.GateDecision, error](&decision), nil
	}

	round, err := s.rounds.GetActiveRound(ctx, db)
	if err != nil {
		return results.OperationResult[*activitytypes.GateDecision, error]{}, fmt.Errorf("failed to resolve active round: %w", err)
	}

	s.cooldown.Consume(msg.UserID, msg.ChannelID)

	event := &activitydb.ActivityEvent{
		UserID:        msg.UserID,
		RoundID:       round.ID,
		ChannelID:     msg.ChannelID,
		SourceEventID: msg.SourceEventID,
		Points:        s.config.PointsPerMessage,
	}
	if err := s.repo.InsertEvent(ctx, db, event); err != nil {
		return results.OperationResult[*activitytypes.GateDecision, error]{}, fmt.Errorf("failed to record activity event: %w", err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}

	return results.SuccessResult[*activitytypes.GateDecision, error](&decision), nil
}
