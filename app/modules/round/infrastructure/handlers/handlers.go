package roundhandlers

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	roundevents "github.com/hablemos-club/league-bot/app/shared/events/round"
	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"

	roundservice "github.com/hablemos-club/league-bot/app/modules/round/application"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

// RoundHandlers implements the Handlers interface.
type RoundHandlers struct {
	service   roundservice.Service
	scheduler CloseScheduler
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewRoundHandlers creates a new RoundHandlers instance. scheduler may be nil
// when no queue backs the deployment; the sweep interval then sets close
// precision.
func NewRoundHandlers(
	service roundservice.Service,
	scheduler CloseScheduler,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &RoundHandlers{
		service:   service,
		scheduler: scheduler,
		logger:    logger,
		tracer:    tracer,
	}
}

// isRoundDomainError reports whether err is a business rejection that should
// become a failure event rather than a redelivery.
func isRoundDomainError(err error) bool {
	return errors.Is(err, roundservice.ErrUnparseableTime) ||
		errors.Is(err, roundservice.ErrEndNotFuture) ||
		errors.Is(err, roundservice.ErrNoSeedUsers) ||
		errors.Is(err, roundservice.ErrInvalidLeague) ||
		errors.Is(err, roundservice.ErrRoundNotCompleted) ||
		errors.Is(err, rounddb.ErrNoActiveRound) ||
		errors.Is(err, rounddb.ErrNotFound)
}

// HandleRoundEndRequested force-closes the active round and broadcasts the
// transition.
func (h *RoundHandlers) HandleRoundEndRequested(ctx context.Context, payload *roundevents.RoundEndRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleRoundEndRequested")
	defer span.End()

	h.logger.InfoContext(ctx, "Administrative round end requested",
		slog.String("requested_by", string(payload.RequestedBy)),
	)

	res, err := h.service.CloseIfDue(ctx, true)
	if err != nil {
		return nil, err
	}

	switch res.Outcome {
	case roundtypes.CloseOutcomeClosed:
		h.scheduleNextClose(ctx, res.NewRound)
		return []handlerwrapper.Result{
			{
				Topic: roundevents.RoundEndedV1,
				Payload: &roundevents.RoundEndedPayloadV1{
					Outcome:     res.Outcome,
					ClosedRound: res.ClosedRound,
					NewRound:    res.NewRound,
				},
			},
			{
				Topic:   roundevents.RoundClosedV1,
				Payload: &roundevents.RoundClosedPayloadV1{Result: *res},
			},
		}, nil
	case roundtypes.CloseOutcomeLostRace:
		return []handlerwrapper.Result{{
			Topic: roundevents.RoundEndFailedV1,
			Payload: &roundevents.RoundEndFailedPayloadV1{
				Reason: "round was already being closed",
			},
		}}, nil
	default:
		return []handlerwrapper.Result{{
			Topic: roundevents.RoundEndFailedV1,
			Payload: &roundevents.RoundEndFailedPayloadV1{
				Reason: "no active round",
			},
		}}, nil
	}
}

// HandleRoundPreviewRequested serves a read-only close dry run.
func (h *RoundHandlers) HandleRoundPreviewRequested(ctx context.Context, payload *roundevents.RoundPreviewRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleRoundPreviewRequested")
	defer span.End()

	preview, err := h.service.PreviewClose(ctx)
	if err != nil {
		if isRoundDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: roundevents.RoundPreviewFailedV1,
				Payload: &roundevents.RoundPreviewFailedPayloadV1{
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: roundevents.RoundPreviewRetrievedV1,
		Payload: &roundevents.RoundPreviewRetrievedPayloadV1{
			Preview: *preview,
		},
	}}, nil
}

// HandleRoundRescheduleRequested moves the active round's end time and keeps
// the scheduled close job in step.
func (h *RoundHandlers) HandleRoundRescheduleRequested(ctx context.Context, payload *roundevents.RoundRescheduleRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleRoundRescheduleRequested")
	defer span.End()

	h.logger.InfoContext(ctx, "Round reschedule requested",
		slog.String("when", payload.When),
		slog.String("requested_by", string(payload.RequestedBy)),
	)

	info, err := h.service.RescheduleRound(ctx, roundservice.RescheduleRequest{
		When:        payload.When,
		RequestedBy: payload.RequestedBy,
		RequestedAt: payload.RequestedAt,
	})
	if err != nil {
		if isRoundDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: roundevents.RoundRescheduleFailedV1,
				Payload: &roundevents.RoundRescheduleFailedPayloadV1{
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	if h.scheduler != nil {
		if err := h.scheduler.CancelRoundClose(ctx, info.ID); err != nil {
			h.logger.WarnContext(ctx, "Failed to cancel stale close job", attr.Error(err))
		}
		if err := h.scheduler.ScheduleRoundClose(ctx, info.ID, info.EndTime); err != nil {
			h.logger.WarnContext(ctx, "Failed to schedule close job for new end time", attr.Error(err))
		}
	}

	return []handlerwrapper.Result{{
		Topic: roundevents.RoundRescheduledV1,
		Payload: &roundevents.RoundRescheduledPayloadV1{
			Round: *info,
		},
	}}, nil
}

// HandleRecipientsSeedRequested backfills champion tracking for the latest
// completed round.
func (h *RoundHandlers) HandleRecipientsSeedRequested(ctx context.Context, payload *roundevents.RecipientsSeedRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleRecipientsSeedRequested")
	defer span.End()

	h.logger.InfoContext(ctx, "Recipient seed requested",
		slog.String("league", string(payload.League)),
		slog.Int("user_count", len(payload.UserIDs)),
		slog.String("requested_by", string(payload.RequestedBy)),
	)

	res, err := h.service.SeedRoleRecipients(ctx, roundservice.SeedRequest{
		League:      payload.League,
		UserIDs:     payload.UserIDs,
		RequestedBy: payload.RequestedBy,
	})
	if err != nil {
		if isRoundDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: roundevents.RecipientsSeedFailedV1,
				Payload: &roundevents.RecipientsSeedFailedPayloadV1{
					Reason: err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: roundevents.RecipientsSeededV1,
		Payload: &roundevents.RecipientsSeededPayloadV1{
			RoundNumber: res.RoundNumber,
			Seeded:      res.Seeded,
		},
	}}, nil
}

// HandleRoundReportRequested exports a closed round's podium as XLSX.
func (h *RoundHandlers) HandleRoundReportRequested(ctx context.Context, payload *roundevents.RoundReportRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "RoundHandlers.HandleRoundReportRequested")
	defer span.End()

	report, err := h.service.ExportRoundReport(ctx, payload.RoundNumber)
	if err != nil {
		if isRoundDomainError(err) {
			return []handlerwrapper.Result{{
				Topic: roundevents.RoundReportFailedV1,
				Payload: &roundevents.RoundReportFailedPayloadV1{
					RoundNumber: payload.RoundNumber,
					Reason:      err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: roundevents.RoundReportReadyV1,
		Payload: &roundevents.RoundReportReadyPayloadV1{
			RoundNumber: report.RoundNumber,
			ChannelID:   payload.ChannelID,
			Filename:    report.Filename,
			Data:        report.Data,
		},
	}}, nil
}

// scheduleNextClose lines up the one-shot close for a freshly created round.
func (h *RoundHandlers) scheduleNextClose(ctx context.Context, next *roundtypes.RoundInfo) {
	if h.scheduler == nil || next == nil {
		return
	}
	if err := h.scheduler.ScheduleRoundClose(ctx, next.ID, next.EndTime); err != nil {
		h.logger.WarnContext(ctx, "Failed to schedule next round close", attr.Error(err))
	}
}
