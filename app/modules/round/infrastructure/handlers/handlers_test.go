package roundhandlers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	roundevents "github.com/hablemos-club/league-bot/app/shared/events/round"
	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	roundservice "github.com/hablemos-club/league-bot/app/modules/round/application"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

func newHandlers(svc *FakeRoundService, scheduler CloseScheduler) Handlers {
	return NewRoundHandlers(svc, scheduler, slog.Default(), noop.NewTracerProvider().Tracer("test"))
}

func TestHandleRoundEndRequested(t *testing.T) {
	payload := &roundevents.RoundEndRequestedPayloadV1{
		RequestedBy: "999999999999999999",
	}

	t.Run("closed round emits summary and broadcast", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.CloseIfDueFunc = func(ctx context.Context, force bool) (*roundtypes.CloseResult, error) {
			assert.True(t, force, "admin end must force the close")
			closed := fakeRoundInfo(3)
			closed.Status = sharedtypes.RoundStatusCompleted
			return &roundtypes.CloseResult{
				Outcome:      roundtypes.CloseOutcomeClosed,
				ClosedRound:  closed,
				NewRound:     fakeRoundInfo(4),
				Announcement: "🏁 Round 3 has ended!",
			}, nil
		}
		scheduler := &FakeCloseScheduler{}

		results, err := newHandlers(svc, scheduler).HandleRoundEndRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, roundevents.RoundEndedV1, results[0].Topic)
		ended := results[0].Payload.(*roundevents.RoundEndedPayloadV1)
		assert.Equal(t, roundtypes.CloseOutcomeClosed, ended.Outcome)
		require.NotNil(t, ended.ClosedRound)
		assert.Equal(t, sharedtypes.RoundNumber(3), ended.ClosedRound.RoundNumber)
		require.NotNil(t, ended.NewRound)
		assert.Equal(t, sharedtypes.RoundNumber(4), ended.NewRound.RoundNumber)

		assert.Equal(t, roundevents.RoundClosedV1, results[1].Topic)
		broadcast := results[1].Payload.(*roundevents.RoundClosedPayloadV1)
		assert.Equal(t, roundtypes.CloseOutcomeClosed, broadcast.Result.Outcome)

		// The new round's one-shot close job must be lined up.
		assert.Equal(t, []sharedtypes.RoundID{fakeRoundInfo(4).ID}, scheduler.Scheduled)
		assert.Empty(t, scheduler.Cancelled)
	})

	t.Run("lost race becomes failure event", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.CloseIfDueFunc = func(ctx context.Context, force bool) (*roundtypes.CloseResult, error) {
			return &roundtypes.CloseResult{Outcome: roundtypes.CloseOutcomeLostRace}, nil
		}
		scheduler := &FakeCloseScheduler{}

		results, err := newHandlers(svc, scheduler).HandleRoundEndRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RoundEndFailedV1, results[0].Topic)
		failed := results[0].Payload.(*roundevents.RoundEndFailedPayloadV1)
		assert.Equal(t, "round was already being closed", failed.Reason)
		assert.Empty(t, scheduler.Scheduled)
	})

	t.Run("no active round becomes failure event", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.CloseIfDueFunc = func(ctx context.Context, force bool) (*roundtypes.CloseResult, error) {
			return &roundtypes.CloseResult{Outcome: roundtypes.CloseOutcomeNoActiveRound}, nil
		}

		results, err := newHandlers(svc, &FakeCloseScheduler{}).HandleRoundEndRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RoundEndFailedV1, results[0].Topic)
		failed := results[0].Payload.(*roundevents.RoundEndFailedPayloadV1)
		assert.Equal(t, "no active round", failed.Reason)
	})

	t.Run("infrastructure error is returned for redelivery", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.CloseIfDueFunc = func(ctx context.Context, force bool) (*roundtypes.CloseResult, error) {
			return nil, errors.New("database connection lost")
		}

		results, err := newHandlers(svc, &FakeCloseScheduler{}).HandleRoundEndRequested(context.Background(), payload)

		assert.Error(t, err)
		assert.Nil(t, results)
	})

	t.Run("nil scheduler is tolerated", func(t *testing.T) {
		svc := NewFakeRoundService()

		results, err := newHandlers(svc, nil).HandleRoundEndRequested(context.Background(), payload)

		assert.NoError(t, err)
		assert.Len(t, results, 2)
	})
}

func TestHandleRoundPreviewRequested(t *testing.T) {
	payload := &roundevents.RoundPreviewRequestedPayloadV1{
		RequestedBy: "999999999999999999",
	}

	t.Run("happy path", func(t *testing.T) {
		svc := NewFakeRoundService()

		results, err := newHandlers(svc, nil).HandleRoundPreviewRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RoundPreviewRetrievedV1, results[0].Topic)
		retrieved := results[0].Payload.(*roundevents.RoundPreviewRetrievedPayloadV1)
		assert.Equal(t, sharedtypes.RoundNumber(4), retrieved.Preview.Round.RoundNumber)
		assert.NotEmpty(t, retrieved.Preview.Announcement)
		assert.Equal(t, []string{"PreviewClose"}, svc.Trace())
	})

	t.Run("no active round becomes failure event", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.PreviewCloseFunc = func(ctx context.Context) (*roundtypes.ClosePreview, error) {
			return nil, rounddb.ErrNoActiveRound
		}

		results, err := newHandlers(svc, nil).HandleRoundPreviewRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RoundPreviewFailedV1, results[0].Topic)
		failed := results[0].Payload.(*roundevents.RoundPreviewFailedPayloadV1)
		assert.NotEmpty(t, failed.Reason)
	})

	t.Run("infrastructure error is returned for redelivery", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.PreviewCloseFunc = func(ctx context.Context) (*roundtypes.ClosePreview, error) {
			return nil, errors.New("database connection lost")
		}

		results, err := newHandlers(svc, nil).HandleRoundPreviewRequested(context.Background(), payload)

		assert.Error(t, err)
		assert.Nil(t, results)
	})
}

func TestHandleRoundRescheduleRequested(t *testing.T) {
	payload := &roundevents.RoundRescheduleRequestedPayloadV1{
		When:        "next sunday at 3pm",
		RequestedBy: "999999999999999999",
	}

	t.Run("happy path swaps the close job", func(t *testing.T) {
		svc := NewFakeRoundService()
		scheduler := &FakeCloseScheduler{}

		results, err := newHandlers(svc, scheduler).HandleRoundRescheduleRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RoundRescheduledV1, results[0].Topic)
		rescheduled := results[0].Payload.(*roundevents.RoundRescheduledPayloadV1)
		assert.Equal(t, sharedtypes.RoundNumber(4), rescheduled.Round.RoundNumber)

		// Stale one-shot cancelled, replacement scheduled at the new end time.
		assert.Equal(t, []sharedtypes.RoundID{rescheduled.Round.ID}, scheduler.Cancelled)
		assert.Equal(t, []sharedtypes.RoundID{rescheduled.Round.ID}, scheduler.Scheduled)
	})

	t.Run("request fields reach the service", func(t *testing.T) {
		svc := NewFakeRoundService()
		var got roundservice.RescheduleRequest
		svc.RescheduleRoundFunc = func(ctx context.Context, req roundservice.RescheduleRequest) (*roundtypes.RoundInfo, error) {
			got = req
			return fakeRoundInfo(4), nil
		}

		_, err := newHandlers(svc, nil).HandleRoundRescheduleRequested(context.Background(), payload)

		assert.NoError(t, err)
		assert.Equal(t, "next sunday at 3pm", got.When)
		assert.Equal(t, sharedtypes.DiscordID("999999999999999999"), got.RequestedBy)
	})

	t.Run("unparseable time becomes failure event", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.RescheduleRoundFunc = func(ctx context.Context, req roundservice.RescheduleRequest) (*roundtypes.RoundInfo, error) {
			return nil, roundservice.ErrUnparseableTime
		}
		scheduler := &FakeCloseScheduler{}

		results, err := newHandlers(svc, scheduler).HandleRoundRescheduleRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RoundRescheduleFailedV1, results[0].Topic)
		failed := results[0].Payload.(*roundevents.RoundRescheduleFailedPayloadV1)
		assert.NotEmpty(t, failed.Reason)
		assert.Empty(t, scheduler.Scheduled)
		assert.Empty(t, scheduler.Cancelled)
	})

	t.Run("scheduler failure does not fail the handler", func(t *testing.T) {
		svc := NewFakeRoundService()
		scheduler := &FakeCloseScheduler{
			ScheduleFunc: func(ctx context.Context, roundID sharedtypes.RoundID, endTime time.Time) error {
				return errors.New("queue unavailable")
			},
		}

		results, err := newHandlers(svc, scheduler).HandleRoundRescheduleRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RoundRescheduledV1, results[0].Topic)
	})

	t.Run("infrastructure error is returned for redelivery", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.RescheduleRoundFunc = func(ctx context.Context, req roundservice.RescheduleRequest) (*roundtypes.RoundInfo, error) {
			return nil, errors.New("database connection lost")
		}

		results, err := newHandlers(svc, nil).HandleRoundRescheduleRequested(context.Background(), payload)

		assert.Error(t, err)
		assert.Nil(t, results)
	})
}

func TestHandleRecipientsSeedRequested(t *testing.T) {
	payload := &roundevents.RecipientsSeedRequestedPayloadV1{
		League:      sharedtypes.LeagueSpanish,
		UserIDs:     []sharedtypes.DiscordID{"111111111111111111", "222222222222222222"},
		RequestedBy: "999999999999999999",
	}

	t.Run("happy path", func(t *testing.T) {
		svc := NewFakeRoundService()
		var got roundservice.SeedRequest
		svc.SeedRoleRecipientsFunc = func(ctx context.Context, req roundservice.SeedRequest) (*roundservice.SeedResult, error) {
			got = req
			return &roundservice.SeedResult{RoundNumber: 3, Seeded: 2}, nil
		}

		results, err := newHandlers(svc, nil).HandleRecipientsSeedRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RecipientsSeededV1, results[0].Topic)
		seeded := results[0].Payload.(*roundevents.RecipientsSeededPayloadV1)
		assert.Equal(t, sharedtypes.RoundNumber(3), seeded.RoundNumber)
		assert.Equal(t, 2, seeded.Seeded)

		assert.Equal(t, sharedtypes.LeagueSpanish, got.League)
		assert.Len(t, got.UserIDs, 2)
	})

	t.Run("empty user list becomes failure event", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.SeedRoleRecipientsFunc = func(ctx context.Context, req roundservice.SeedRequest) (*roundservice.SeedResult, error) {
			return nil, roundservice.ErrNoSeedUsers
		}

		results, err := newHandlers(svc, nil).HandleRecipientsSeedRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RecipientsSeedFailedV1, results[0].Topic)
	})

	t.Run("no completed round becomes failure event", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.SeedRoleRecipientsFunc = func(ctx context.Context, req roundservice.SeedRequest) (*roundservice.SeedResult, error) {
			return nil, rounddb.ErrNotFound
		}

		results, err := newHandlers(svc, nil).HandleRecipientsSeedRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RecipientsSeedFailedV1, results[0].Topic)
	})

	t.Run("infrastructure error is returned for redelivery", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.SeedRoleRecipientsFunc = func(ctx context.Context, req roundservice.SeedRequest) (*roundservice.SeedResult, error) {
			return nil, errors.New("database connection lost")
		}

		results, err := newHandlers(svc, nil).HandleRecipientsSeedRequested(context.Background(), payload)

		assert.Error(t, err)
		assert.Nil(t, results)
	})
}

func TestHandleRoundReportRequested(t *testing.T) {
	payload := &roundevents.RoundReportRequestedPayloadV1{
		RoundNumber: 3,
		ChannelID:   "777777777777777777",
		RequestedBy: "999999999999999999",
	}

	t.Run("happy path echoes the requesting channel", func(t *testing.T) {
		svc := NewFakeRoundService()

		results, err := newHandlers(svc, nil).HandleRoundReportRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RoundReportReadyV1, results[0].Topic)
		ready := results[0].Payload.(*roundevents.RoundReportReadyPayloadV1)
		assert.Equal(t, sharedtypes.RoundNumber(3), ready.RoundNumber)
		assert.Equal(t, sharedtypes.ChannelID("777777777777777777"), ready.ChannelID)
		assert.Equal(t, "round-3-report.xlsx", ready.Filename)
		assert.NotEmpty(t, ready.Data)
		assert.Equal(t, []string{"ExportRoundReport"}, svc.Trace())
	})

	t.Run("round still active becomes failure event", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.ExportRoundReportFunc = func(ctx context.Context, roundNumber sharedtypes.RoundNumber) (*roundservice.RoundReport, error) {
			return nil, roundservice.ErrRoundNotCompleted
		}

		results, err := newHandlers(svc, nil).HandleRoundReportRequested(context.Background(), payload)

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, roundevents.RoundReportFailedV1, results[0].Topic)
		failed := results[0].Payload.(*roundevents.RoundReportFailedPayloadV1)
		assert.Equal(t, sharedtypes.RoundNumber(3), failed.RoundNumber)
		assert.NotEmpty(t, failed.Reason)
	})

	t.Run("infrastructure error is returned for redelivery", func(t *testing.T) {
		svc := NewFakeRoundService()
		svc.ExportRoundReportFunc = func(ctx context.Context, roundNumber sharedtypes.RoundNumber) (*roundservice.RoundReport, error) {
			return nil, errors.New("database connection lost")
		}

		results, err := newHandlers(svc, nil).HandleRoundReportRequested(context.Background(), payload)

		assert.Error(t, err)
		assert.Nil(t, results)
	})
}
