package roundevents

import (
	"time"

	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Topics consumed and produced by the round module.
const (
	RoundEndRequestedV1 = "league.round.end.requested.v1"
	RoundEndedV1        = "league.round.ended.v1"
	RoundEndFailedV1    = "league.round.end.failed.v1"

	// RoundClosedV1 is the lifecycle broadcast emitted after every committed
	// close, whether triggered by the sweep or an admin.
	RoundClosedV1 = "league.round.closed.v1"

	RoundPreviewRequestedV1 = "league.round.preview.requested.v1"
	RoundPreviewRetrievedV1 = "league.round.preview.retrieved.v1"
	RoundPreviewFailedV1    = "league.round.preview.failed.v1"

	RoundRescheduleRequestedV1 = "league.round.reschedule.requested.v1"
	RoundRescheduledV1         = "league.round.rescheduled.v1"
	RoundRescheduleFailedV1    = "league.round.reschedule.failed.v1"

	RecipientsSeedRequestedV1 = "league.round.recipients.seed.requested.v1"
	RecipientsSeededV1        = "league.round.recipients.seeded.v1"
	RecipientsSeedFailedV1    = "league.round.recipients.seed.failed.v1"

	RoundReportRequestedV1 = "league.round.report.requested.v1"
	RoundReportReadyV1     = "league.round.report.ready.v1"
	RoundReportFailedV1    = "league.round.report.failed.v1"
)

// RoundEndRequestedPayloadV1 asks for an immediate administrative close.
type RoundEndRequestedPayloadV1 struct {
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// RoundEndedPayloadV1 summarizes the committed close.
type RoundEndedPayloadV1 struct {
	Outcome     roundtypes.CloseOutcome `json:"outcome"`
	ClosedRound *roundtypes.RoundInfo   `json:"closed_round,omitempty"`
	NewRound    *roundtypes.RoundInfo   `json:"new_round,omitempty"`
}

// RoundEndFailedPayloadV1 reports a failed administrative close.
type RoundEndFailedPayloadV1 struct {
	Reason string `json:"reason"`
}

// RoundClosedPayloadV1 is the full close broadcast.
type RoundClosedPayloadV1 struct {
	Result roundtypes.CloseResult `json:"result"`
}

// RoundPreviewRequestedPayloadV1 asks for a read-only close dry run.
type RoundPreviewRequestedPayloadV1 struct {
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// RoundPreviewRetrievedPayloadV1 carries the dry run.
type RoundPreviewRetrievedPayloadV1 struct {
	Preview roundtypes.ClosePreview `json:"preview"`
}

// RoundPreviewFailedPayloadV1 reports a failed dry run.
type RoundPreviewFailedPayloadV1 struct {
	Reason string `json:"reason"`
}

// RoundRescheduleRequestedPayloadV1 moves the active round's end time.
// When is parsed as natural language ("next sunday at 12pm") anchored at
// RequestedAt.
type RoundRescheduleRequestedPayloadV1 struct {
	When        string                `json:"when"`
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
	RequestedAt time.Time             `json:"requested_at"`
}

// RoundRescheduledPayloadV1 confirms the new end time.
type RoundRescheduledPayloadV1 struct {
	Round roundtypes.RoundInfo `json:"round"`
}

// RoundRescheduleFailedPayloadV1 explains a rejected reschedule.
type RoundRescheduleFailedPayloadV1 struct {
	Reason string `json:"reason"`
}

// RecipientsSeedRequestedPayloadV1 backfills champion tracking for the most
// recently completed round, for migrations from the pre-tracking era. One
// request seeds one league.
type RecipientsSeedRequestedPayloadV1 struct {
	League      sharedtypes.LeagueType  `json:"league"`
	UserIDs     []sharedtypes.DiscordID `json:"user_ids"`
	RequestedBy sharedtypes.DiscordID   `json:"requested_by"`
}

// RecipientsSeededPayloadV1 confirms the backfill.
type RecipientsSeededPayloadV1 struct {
	RoundNumber sharedtypes.RoundNumber `json:"round_number"`
	Seeded      int                     `json:"seeded"`
}

// RecipientsSeedFailedPayloadV1 explains a rejected backfill.
type RecipientsSeedFailedPayloadV1 struct {
	Reason string `json:"reason"`
}

// RoundReportRequestedPayloadV1 asks for the XLSX export of a closed round.
type RoundReportRequestedPayloadV1 struct {
	RoundNumber sharedtypes.RoundNumber `json:"round_number"`
	ChannelID   sharedtypes.ChannelID   `json:"channel_id"`
	RequestedBy sharedtypes.DiscordID   `json:"requested_by"`
}

// RoundReportReadyPayloadV1 carries the workbook for the gateway to attach.
type RoundReportReadyPayloadV1 struct {
	RoundNumber sharedtypes.RoundNumber `json:"round_number"`
	ChannelID   sharedtypes.ChannelID   `json:"channel_id"`
	Filename    string                  `json:"filename"`
	Data        []byte                  `json:"data"`
}

// RoundReportFailedPayloadV1 explains a failed export.
type RoundReportFailedPayloadV1 struct {
	RoundNumber sharedtypes.RoundNumber `json:"round_number"`
	Reason      string                  `json:"reason"`
}
