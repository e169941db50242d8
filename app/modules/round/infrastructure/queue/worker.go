package roundqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/hablemos-club/league-bot/app/eventbus"
	roundevents "github.com/hablemos-club/league-bot/app/shared/events/round"
	"github.com/hablemos-club/league-bot/app/shared/observability/attr"
	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	"github.com/hablemos-club/league-bot/app/shared/utils"
)

// CloseWorker runs the close check for both sweep and one-shot jobs. Errors
// surface to River, which retries with backoff; a lost race or a not-due
// round is a normal outcome, not an error.
type CloseWorker struct {
	river.WorkerDefaults[RoundCloseJob]

	logger    *slog.Logger
	closer    RoundCloser
	scheduler *Service
	eventBus  eventbus.EventBus
	helpers   utils.Helpers
}

// NewCloseWorker creates the worker. scheduler is the owning queue service,
// used to line up the next one-shot after a committed close.
func NewCloseWorker(logger *slog.Logger, closer RoundCloser, scheduler *Service, eventBus eventbus.EventBus, helpers utils.Helpers) *CloseWorker {
	return &CloseWorker{
		logger:    logger,
		closer:    closer,
		scheduler: scheduler,
		eventBus:  eventBus,
		helpers:   helpers,
	}
}

func (w *CloseWorker) Work(ctx context.Context, job *river.Job[RoundCloseJob]) error {
	res, err := w.closer.CloseIfDue(ctx, false)
	if err != nil {
		return fmt.Errorf("round close check failed: %w", err)
	}

	w.logger.InfoContext(ctx, "Round close check finished",
		attr.String("trigger", job.Args.Trigger),
		attr.String("outcome", string(res.Outcome)),
	)

	if res.Outcome != roundtypes.CloseOutcomeClosed {
		return nil
	}

	w.broadcastClose(ctx, res)

	if res.NewRound != nil {
		if err := w.scheduler.ScheduleRoundClose(ctx, res.NewRound.ID, res.NewRound.EndTime); err != nil {
			w.logger.WarnContext(ctx, "Failed to schedule next round close",
				attr.Int64("round_id", int64(res.NewRound.ID)),
				attr.Error(err),
			)
		}
	}
	return nil
}

// broadcastClose publishes the lifecycle event for a committed close. Best
// effort: the close already committed, so a publish failure must not make
// River retry the job and re-run the check.
func (w *CloseWorker) broadcastClose(ctx context.Context, res *roundtypes.CloseResult) {
	payload := roundevents.RoundClosedPayloadV1{Result: *res}
	msg, err := w.helpers.CreateNewMessage(payload, roundevents.RoundClosedV1)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to build round closed event", attr.Error(err))
		return
	}
	if err := w.eventBus.Publish(roundevents.RoundClosedV1, msg); err != nil {
		w.logger.ErrorContext(ctx, "Failed to publish round closed event", attr.Error(err))
	}
}
