package roundhandlers

import (
	"context"
	"time"

	roundevents "github.com/hablemos-club/league-bot/app/shared/events/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"
)

// CloseScheduler maintains the one-shot close jobs. The round queue service
// satisfies it; handlers use it to keep job timing in step with admin
// changes, best effort, with the periodic sweep as the backstop.
type CloseScheduler interface {
	ScheduleRoundClose(ctx context.Context, roundID sharedtypes.RoundID, endTime time.Time) error
	CancelRoundClose(ctx context.Context, roundID sharedtypes.RoundID) error
}

// Handlers defines the interface for round event handlers.
type Handlers interface {
	// HandleRoundEndRequested force-closes the active round.
	HandleRoundEndRequested(ctx context.Context, payload *roundevents.RoundEndRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleRoundPreviewRequested serves a read-only close dry run.
	HandleRoundPreviewRequested(ctx context.Context, payload *roundevents.RoundPreviewRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleRoundRescheduleRequested moves the active round's end time.
	HandleRoundRescheduleRequested(ctx context.Context, payload *roundevents.RoundRescheduleRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleRecipientsSeedRequested backfills champion tracking.
	HandleRecipientsSeedRequested(ctx context.Context, payload *roundevents.RecipientsSeedRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleRoundReportRequested exports a closed round's podium as XLSX.
	HandleRoundReportRequested(ctx context.Context, payload *roundevents.RoundReportRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
