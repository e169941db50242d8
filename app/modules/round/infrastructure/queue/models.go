package roundqueue

import (
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Trigger values recorded on close jobs, for log correlation.
const (
	TriggerSchedule = "schedule"
	TriggerSweep    = "sweep"
)

// RoundCloseJob asks the worker to run a close check. RoundID is zero for
// sweep jobs; one-shot jobs carry the round they were scheduled for, which
// also makes them unique per round.
type RoundCloseJob struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Trigger string              `json:"trigger"`
}

// Kind returns the job type identifier for River.
func (RoundCloseJob) Kind() string { return "round_close" }
