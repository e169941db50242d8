package activityhandlers

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"

	activityevents "github.com/hablemos-club/league-bot/app/shared/events/activity"
	activitytypes "github.com/hablemos-club/league-bot/app/shared/types/activity"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	activityservice "github.com/hablemos-club/league-bot/app/modules/activity/application"
	activitydb "github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/repositories"
)

func newHandlers(svc *FakeActivityService) Handlers {
	return NewActivityHandlers(svc, slog.Default(), noop.NewTracerProvider().Tracer("test"))
}

func TestHandleMessageReceived(t *testing.T) {
	payload := &activityevents.MessageReceivedPayloadV1{
		UserID:    "111111111111111111",
		Username:  "maria",
		GuildID:   "999000000000000001",
		ChannelID: "222222222222222222",
		Content:   "hola a todos",
	}

	t.Run("accepted message publishes nothing", func(t *testing.T) {
		svc := NewFakeActivityService()

		results, err := newHandlers(svc).HandleMessageReceived(context.Background(), payload)

		assert.NoError(t, err)
		assert.Empty(t, results)
		assert.Equal(t, []string{"ProcessMessage"}, svc.Trace())
	})

	t.Run("rejected message publishes nothing either", func(t *testing.T) {
		svc := NewFakeActivityService()
		svc.ProcessMessageFunc = func(ctx context.Context, msg activitytypes.InboundMessage) (*activitytypes.GateDecision, error) {
			return &activitytypes.GateDecision{Accepted: false, Reason: activitytypes.RejectCooldown}, nil
		}

		results, err := newHandlers(svc).HandleMessageReceived(context.Background(), payload)

		assert.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("infrastructure error propagates for redelivery", func(t *testing.T) {
		svc := NewFakeActivityService()
		svc.ProcessMessageFunc = func(ctx context.Context, msg activitytypes.InboundMessage) (*activitytypes.GateDecision, error) {
			return nil, errors.New("database connection failed")
		}

		results, err := newHandlers(svc).HandleMessageReceived(context.Background(), payload)

		assert.Error(t, err)
		assert.Nil(t, results)
	})
}

func TestHandleChannelExcludeRequest(t *testing.T) {
	payload := &activityevents.ChannelExcludeRequestedPayloadV1{
		ChannelID:   "222222222222222222",
		ChannelName: "memes",
		RequestedBy: "444444444444444444",
	}

	t.Run("happy path", func(t *testing.T) {
		svc := NewFakeActivityService()

		results, err := newHandlers(svc).HandleChannelExcludeRequest(context.Background(), payload)

		assert.NoError(t, err)
		if assert.Len(t, results, 1) {
			assert.Equal(t, activityevents.ChannelExcludedV1, results[0].Topic)
		}
	})

	t.Run("validation failure becomes failure event", func(t *testing.T) {
		svc := NewFakeActivityService()
		svc.ExcludeChannelFunc = func(ctx context.Context, req activityservice.ExcludeChannelRequest) (*activitytypes.ExcludedChannelInfo, error) {
			return nil, activityservice.ErrInvalidChannelID
		}

		results, err := newHandlers(svc).HandleChannelExcludeRequest(context.Background(), payload)

		assert.NoError(t, err)
		if assert.Len(t, results, 1) {
			assert.Equal(t, activityevents.ChannelExcludeFailedV1, results[0].Topic)
		}
	})

	t.Run("infrastructure error propagates", func(t *testing.T) {
		svc := NewFakeActivityService()
		svc.ExcludeChannelFunc = func(ctx context.Context, req activityservice.ExcludeChannelRequest) (*activitytypes.ExcludedChannelInfo, error) {
			return nil, errors.New("database connection failed")
		}

		_, err := newHandlers(svc).HandleChannelExcludeRequest(context.Background(), payload)

		assert.Error(t, err)
	})
}

func TestHandleChannelIncludeRequest(t *testing.T) {
	payload := &activityevents.ChannelIncludeRequestedPayloadV1{
		ChannelID:   "222222222222222222",
		RequestedBy: "444444444444444444",
	}

	t.Run("happy path", func(t *testing.T) {
		svc := NewFakeActivityService()

		results, err := newHandlers(svc).HandleChannelIncludeRequest(context.Background(), payload)

		assert.NoError(t, err)
		if assert.Len(t, results, 1) {
			assert.Equal(t, activityevents.ChannelIncludedV1, results[0].Topic)
		}
	})

	t.Run("unknown channel becomes failure event", func(t *testing.T) {
		svc := NewFakeActivityService()
		svc.IncludeChannelFunc = func(ctx context.Context, channelID sharedtypes.ChannelID) error {
			return activitydb.ErrChannelNotExcluded
		}

		results, err := newHandlers(svc).HandleChannelIncludeRequest(context.Background(), payload)

		assert.NoError(t, err)
		if assert.Len(t, results, 1) {
			assert.Equal(t, activityevents.ChannelIncludeFailedV1, results[0].Topic)
			failure, ok := results[0].Payload.(*activityevents.ChannelIncludeFailedPayloadV1)
			if assert.True(t, ok) {
				assert.Equal(t, payload.ChannelID, failure.ChannelID)
				assert.NotEmpty(t, failure.Reason)
			}
		}
	})
}

func TestHandleMessageValidateRequest(t *testing.T) {
	payload := &activityevents.MessageValidateRequestedPayloadV1{
		UserID:    "111111111111111111",
		GuildID:   "999000000000000001",
		ChannelID: "222222222222222222",
		Content:   "hola a todos",
	}

	t.Run("decision is published", func(t *testing.T) {
		svc := NewFakeActivityService()
		svc.ValidateMessageFunc = func(ctx context.Context, req activityservice.ValidateRequest) (*activitytypes.GateDecision, error) {
			return &activitytypes.GateDecision{Accepted: false, Reason: activitytypes.RejectDailyCap}, nil
		}

		results, err := newHandlers(svc).HandleMessageValidateRequest(context.Background(), payload)

		assert.NoError(t, err)
		if assert.Len(t, results, 1) {
			assert.Equal(t, activityevents.MessageValidatedV1, results[0].Topic)
			validated, ok := results[0].Payload.(*activityevents.MessageValidatedPayloadV1)
			if assert.True(t, ok) {
				assert.False(t, validated.Decision.Accepted)
				assert.Equal(t, activitytypes.RejectDailyCap, validated.Decision.Reason)
			}
		}
	})

	t.Run("invalid probe becomes failure event", func(t *testing.T) {
		svc := NewFakeActivityService()
		svc.ValidateMessageFunc = func(ctx context.Context, req activityservice.ValidateRequest) (*activitytypes.GateDecision, error) {
			return nil, activityservice.ErrInvalidValidateRequest
		}

		results, err := newHandlers(svc).HandleMessageValidateRequest(context.Background(), payload)

		assert.NoError(t, err)
		if assert.Len(t, results, 1) {
			assert.Equal(t, activityevents.MessageValidateFailedV1, results[0].Topic)
		}
	})
}

func TestHandleExcludedChannelsRequest(t *testing.T) {
	svc := NewFakeActivityService()
	svc.ListExcludedChannelsFunc = func(ctx context.Context) ([]activitytypes.ExcludedChannelInfo, error) {
		return []activitytypes.ExcludedChannelInfo{
			{ChannelID: "222222222222222201", ChannelName: "announcements"},
		}, nil
	}

	results, err := newHandlers(svc).HandleExcludedChannelsRequest(context.Background(), &activityevents.ExcludedChannelsRequestedPayloadV1{})

	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		assert.Equal(t, activityevents.ExcludedChannelsRetrievedV1, results[0].Topic)
		retrieved, ok := results[0].Payload.(*activityevents.ExcludedChannelsRetrievedPayloadV1)
		if assert.True(t, ok) {
			assert.Len(t, retrieved.Channels, 1)
		}
	}
}

func TestHandleRecentActivityRequest(t *testing.T) {
	svc := NewFakeActivityService()
	svc.GetRecentActivityFunc = func(ctx context.Context, limit int) ([]activitytypes.ActivityRecord, error) {
		assert.Equal(t, 25, limit)
		return []activitytypes.ActivityRecord{{ID: 42, Username: "maria"}}, nil
	}

	results, err := newHandlers(svc).HandleRecentActivityRequest(context.Background(), &activityevents.RecentActivityRequestedPayloadV1{Limit: 25})

	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		assert.Equal(t, activityevents.RecentActivityRetrievedV1, results[0].Topic)
	}
}
