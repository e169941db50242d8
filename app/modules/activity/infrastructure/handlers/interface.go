package activityhandlers

import (
	"context"

	activityevents "github.com/hablemos-club/league-bot/app/shared/events/activity"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"
)

// Handlers defines the interface for activity event handlers.
type Handlers interface {
	// HandleMessageReceived gates and records one inbound chat message.
	// Rejections are silent: no result event is published either way.
	HandleMessageReceived(ctx context.Context, payload *activityevents.MessageReceivedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleChannelExcludeRequest adds a channel to the exclusion list.
	HandleChannelExcludeRequest(ctx context.Context, payload *activityevents.ChannelExcludeRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleChannelIncludeRequest removes a channel from the exclusion list.
	HandleChannelIncludeRequest(ctx context.Context, payload *activityevents.ChannelIncludeRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleExcludedChannelsRequest serves the exclusion list.
	HandleExcludedChannelsRequest(ctx context.Context, payload *activityevents.ExcludedChannelsRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleMessageValidateRequest dry-runs the gate for one message.
	HandleMessageValidateRequest(ctx context.Context, payload *activityevents.MessageValidateRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleRecentActivityRequest serves the newest recorded events.
	HandleRecentActivityRequest(ctx context.Context, payload *activityevents.RecentActivityRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
