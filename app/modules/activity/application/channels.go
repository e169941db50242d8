package activityservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils/results"

	activitydb "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/repositories"
)

// ErrInvalidChannelID is returned when a channel operation lacks a channel ID.
var ErrInvalidChannelID = errors.New("channel ID is required")

// ExcludeChannel adds a channel to the exclusion list. Repeating the request
// for the same channel refreshes its name and requester.
func (s *ActivityService) ExcludeChannel(ctx context.Context, req ExcludeChannelRequest) (*activitytypes.ExcludedChannelInfo, error) {
	excludeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitytypes.ExcludedChannelInfo, error], error) {
		return s.excludeChannelLogic(ctx, db, req)
	}

	result, err := withTelemetry(s, ctx, "ExcludeChannel", string(req.ChannelID), func(ctx context.Context) (results.OperationResult[*activitytypes.ExcludedChannelInfo, error], error) {
		return runInTx(s, ctx, excludeTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// excludeChannelLogic contains the core logic.
func (s *ActivityService) excludeChannelLogic(ctx context.Context, db bun.IDB, req ExcludeChannelRequest) (results.OperationResult[*activitytypes.ExcludedChannelInfo, error], error) {
	if req.ChannelID == "" {
		return results.FailureResult[*activitytypes.ExcludedChannelInfo, error](ErrInvalidChannelID), nil
	}

	entry := &activitydb.ExcludedChannel{
		ChannelID:   req.ChannelID,
		ChannelName: req.ChannelName,
		AddedBy:     req.RequestedBy,
	}
	if err := s.repo.AddExcludedChannel(ctx, db, entry); err != nil {
		return results.OperationResult[*activitytypes.ExcludedChannelInfo, error]{}, fmt.Errorf("failed to exclude channel: %w", err)
	}

	info := entry.ToInfo()
	return results.SuccessResult[*activitytypes.ExcludedChannelInfo, error](&info), nil
}

// IncludeChannel removes a channel from the exclusion list.
func (s *ActivityService) IncludeChannel(ctx context.Context, channelID sharedtypes.ChannelID) error {
	includeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		return s.includeChannelLogic(ctx, db, channelID)
	}

	result, err := withTelemetry(s, ctx, "IncludeChannel", string(channelID), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, includeTx)
	})
	if err != nil {
		return err
	}
	if result.IsFailure() {
		return *result.Failure
	}
	return nil
}

// includeChannelLogic contains the core logic.
func (s *ActivityService) includeChannelLogic(ctx context.Context, db bun.IDB, channelID sharedtypes.ChannelID) (results.OperationResult[bool, error], error) {
	if channelID == "" {
		return results.FailureResult[bool, error](ErrInvalidChannelID), nil
	}

	if err := s.repo.RemoveExcludedChannel(ctx, db, channelID); err != nil {
		if errors.Is(err, activitydb.ErrChannelNotExcluded) {
			return results.FailureResult[bool, error](err), nil
		}
		return results.OperationResult[bool, error]{}, fmt.Errorf("failed to include channel: %w", err)
	}
	return results.SuccessResult[bool, error](true), nil
}

// ListExcludedChannels returns the exclusion list ordered by channel name.
func (s *ActivityService) ListExcludedChannels(ctx context.Context) ([]activitytypes.ExcludedChannelInfo, error) {
	result, err := withTelemetry(s, ctx, "ListExcludedChannels", "all", func(ctx context.Context) (results.OperationResult[[]activitytypes.ExcludedChannelInfo, error], error) {
		return s.listExcludedChannelsLogic(ctx, nil)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// listExcludedChannelsLogic contains the core logic.
func (s *ActivityService) listExcludedChannelsLogic(ctx context.Context, db bun.IDB) (results.OperationResult[[]activitytypes.ExcludedChannelInfo, error], error) {
	channels, err := s.repo.ListExcludedChannels(ctx, db)
	if err != nil {
		return results.OperationResult[[]activitytypes.ExcludedChannelInfo, error]{}, fmt.Errorf("failed to list excluded channels: %w", err)
	}

	infos := make([]activitytypes.ExcludedChannelInfo, 0, len(channels))
	for i := range channels {
		infos = append(infos, channels[i].ToInfo())
	}
	return results.SuccessResult[[]activitytypes.ExcludedChannelInfo, error](infos), nil
}
