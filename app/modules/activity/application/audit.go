package activityservice

import (
	"context"
	"fmt"

	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

// GetRecentActivity returns the newest recorded events for admin audits,
// newest first. Limits outside [1, 100] are clamped.
func (s *ActivityService) GetRecentActivity(ctx context.Context, limit int) ([]activitytypes.ActivityRecord, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	result, err := withTelemetry(s, ctx, "GetRecentActivity", fmt.Sprintf("limit=%d", limit), func(ctx context.Context) (results.OperationResult[[]activitytypes.ActivityRecord, error], error) {
		return s.getRecentActivityLogic(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// getRecentActivityLogic contains the core logic.
func (s *ActivityService) getRecentActivityLogic(ctx context.Context, limit int) (results.OperationResult[[]activitytypes.ActivityRecord, error], error) {
	rows, err := s.repo.GetRecentEvents(ctx, nil, limit)
	if err != nil {
		return results.OperationResult[[]activitytypes.ActivityRecord, error]{}, fmt.Errorf("failed to load recent events: %w", err)
	}

	records := make([]activitytypes.ActivityRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].ToRecord())
	}
	return results.SuccessResult[[]activitytypes.ActivityRecord, error](records), nil
}
