package roundtypes

import (
	"time"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// RoundInfo is the service-level view of a round.
type RoundInfo struct {
	ID          sharedtypes.RoundID     `json:"id"`
	RoundNumber sharedtypes.RoundNumber `json:"round_number"`
	StartTime   time.Time               `json:"start_time"`
	EndTime     time.Time               `json:"end_time"`
	Status      sharedtypes.RoundStatus `json:"status"`
}

// WinnerRecord is one persisted podium entry for a closed round.
type WinnerRecord struct {
	RoundNumber sharedtypes.RoundNumber `json:"round_number"`
	UserID      sharedtypes.DiscordID   `json:"user_id"`
	Username    string                  `json:"username"`
	LeagueType  sharedtypes.LeagueType  `json:"league_type"`
	Rank        int                     `json:"rank"`
	TotalScore  int                     `json:"total_score"`
	ActiveDays  int                     `json:"active_days"`
}

// LeagueStandings maps each language league to its ranked entries.
type LeagueStandings map[sharedtypes.LeagueType][]leaderboardtypes.RankedEntry

// CloseOutcome says what CloseIfDue did.
type CloseOutcome string

const (
	// CloseOutcomeClosed means this invocation completed the round and opened the next one.
	CloseOutcomeClosed CloseOutcome = "closed"
	// CloseOutcomeNoActiveRound means there was nothing to close.
	CloseOutcomeNoActiveRound CloseOutcome = "no_active_round"
	// CloseOutcomeNotDue means the active round has not reached its end time.
	CloseOutcomeNotDue CloseOutcome = "not_due"
	// CloseOutcomeLostRace means a concurrent invocation closed the round first.
	CloseOutcomeLostRace CloseOutcome = "lost_race"
)

// CloseResult is the full output of a completed (or skipped) close.
type CloseResult struct {
	Outcome       CloseOutcome            `json:"outcome"`
	ClosedRound   *RoundInfo              `json:"closed_round,omitempty"`
	NewRound      *RoundInfo              `json:"new_round,omitempty"`
	Winners       []WinnerRecord          `json:"winners,omitempty"`
	NewRecipients []sharedtypes.DiscordID `json:"new_recipients,omitempty"`
	CooldownSet   []sharedtypes.DiscordID `json:"cooldown_set,omitempty"`
	Standings     LeagueStandings         `json:"standings,omitempty"`
	Champions     LeagueStandings         `json:"champions,omitempty"`
	Announcement  string                  `json:"announcement,omitempty"`
}

// ClosePreview is the read-only dry run of the close computation.
type ClosePreview struct {
	Round        *RoundInfo              `json:"round"`
	CooldownSet  []sharedtypes.DiscordID `json:"cooldown_set"`
	Standings    LeagueStandings         `json:"standings"`
	Champions    LeagueStandings         `json:"champions"`
	Announcement string                  `json:"announcement"`
}
