package activityhandlers

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	activityevents "github.com/hablemos-club/league-bot/app/shared/events/activity"
	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"

	activityservice "github.com/hablemos-club/league-bot/app/modules/activity/application"
	activitydb "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/repositories"
)

// activitytypesFromPayload maps the wire payload to the service-level message.
func activitytypesFromPayload(p *activityevents.MessageReceivedPayloadV1) activitytypes.InboundMessage {
	return activitytypes.InboundMessage{
		UserID:        p.UserID,
		Username:      p.Username,
		GuildID:       p.GuildID,
		ChannelID:     p.ChannelID,
		SourceEventID: p.SourceEventID,
		Content:       p.Content,
		Timestamp:     p.Timestamp,
		IsBot:         p.IsBot,
	}
}

// ActivityHandlers implements the Handlers interface.
type ActivityHandlers struct {
	service activityservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewActivityHandlers creates a new ActivityHandlers instance.
func NewActivityHandlers(
	service activityservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ActivityHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// isActivityDomainError reports whether err is a business rejection that
// should become a failure event rather than a redelivery.
func isActivityDomainError(err error) bool {
	return errors.Is(err, activityservice.ErrInvalidChannelID) ||
		errors.Is(err, activityservice.ErrInvalidValidateRequest) ||
		errors.Is(err, activitydb.ErrChannelNotExcluded)
}

// HandleMessageReceived gates and records one inbound chat message. The gate
// decision is deliberately not published: rejected senders get no feedback,
// and accepted ones see their score on the next leaderboard read.
func (h *ActivityHandlers) HandleMessageReceived(ctx context.Context, payload *activityevents.MessageReceivedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ActivityHandlers.HandleMessageReceived")
	defer span.End()

	_, err := h.service.ProcessMessage(ctx, activitytypesFromPayload(payload))
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// HandleChannelExcludeRequest adds a channel to the exclusion list.
func (h *ActivityHandlers) HandleChannelExcludeRequest(ctx context.Context, payload *activityevents.ChannelExcludeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ActivityHandlers.HandleChannelExcludeRequest")
	defer span.End()

	h.logger.InfoContext(ctx, "Channel exclusion requested",
		slog.String("channel_id", string(payload.ChannelID)),
		slog.String("requested_by", string(payload.RequestedBy)),
	)

	_, err := h.service.ExcludeChannel(ctx, activityservice.ExcludeChannelRequest{
		ChannelID:   payload.ChannelID,
		ChannelName: payload.ChannelName,
		RequestedBy: payload.RequestedBy,
	})
	if err != nil {
		if isActivityDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: activityevents.ChannelExcludeFailedV1,
				Payload: &activityevents.ChannelExcludeFailedPayloadV1{
					ChannelID: payload.ChannelID,
					Reason:    err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: activityevents.ChannelExcludedV1,
		Payload: &activityevents.ChannelExcludedPayloadV1{
			ChannelID: payload.ChannelID,
		},
	}}, nil
}

// HandleChannelIncludeRequest removes a channel from the exclusion list.
func (h *ActivityHandlers) HandleChannelIncludeRequest(ctx context.Context, payload *activityevents.ChannelIncludeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ActivityHandlers.HandleChannelIncludeRequest")
	defer span.End()

	err := h.service.IncludeChannel(ctx, payload.ChannelID)
	if err != nil {
		if isActivityDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: activityevents.ChannelIncludeFailedV1,
				Payload: &activityevents.ChannelIncludeFailedPayloadV1{
					ChannelID: payload.ChannelID,
					Reason:    err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: activityevents.ChannelIncludedV1,
		Payload: &activityevents.ChannelIncludedPayloadV1{
			ChannelID: payload.ChannelID,
		},
	}}, nil
}

// HandleExcludedChannelsRequest serves the exclusion list.
func (h *ActivityHandlers) HandleExcludedChannelsRequest(ctx context.Context, payload *activityevents.ExcludedChannelsRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ActivityHandlers.HandleExcludedChannelsRequest")
	defer span.End()

	channels, err := h.service.ListExcludedChannels(ctx)
	if err != nil {
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: activityevents.ExcludedChannelsRetrievedV1,
		Payload: &activityevents.ExcludedChannelsRetrievedPayloadV1{
			Channels: channels,
		},
	}}, nil
}

// HandleMessageValidateRequest dry-runs the gate for one message.
func (h *ActivityHandlers) HandleMessageValidateRequest(ctx context.Context, payload *activityevents.MessageValidateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ActivityHandlers.HandleMessageValidateRequest")
	defer span.End()

	decision, err := h.service.ValidateMessage(ctx, activityservice.ValidateRequest{
		UserID:    payload.UserID,
		GuildID:   payload.GuildID,
		ChannelID: payload.ChannelID,
		Content:   payload.Content,
	})
	if err != nil {
		if isActivityDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: activityevents.MessageValidateFailedV1,
				Payload: &activityevents.MessageValidateFailedPayloadV1{
					UserID: payload.UserID,
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: activityevents.MessageValidatedV1,
		Payload: &activityevents.MessageValidatedPayloadV1{
			UserID:   payload.UserID,
			Decision: *decision,
		},
	}}, nil
}

// HandleRecentActivityRequest serves the newest recorded events.
func (h *ActivityHandlers) HandleRecentActivityRequest(ctx context.Context, payload *activityevents.RecentActivityRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ActivityHandlers.HandleRecentActivityRequest")
	defer span.End()

	records, err := h.service.GetRecentActivity(ctx, payload.Limit)
	if err != nil {
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: activityevents.RecentActivityRetrievedV1,
		Payload: &activityevents.RecentActivityRetrievedPayloadV1{
			Records: records,
		},
	}}, nil
}
