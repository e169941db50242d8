package leaderboarddb

import (
	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// BoardRow is one computed standings row. The leaderboard module owns no
// tables; these are projections over users and activity_events.
type BoardRow struct {
	UserID     sharedtypes.DiscordID `bun:"user_id"`
	Username   string                `bun:"username"`
	TotalScore int                   `bun:"total_score"`
	ActiveDays int                   `bun:"active_days"`
	Rank       int                   `bun:"rank"`
}

// ToEntry converts the row to the service-level view.
func (r *BoardRow) ToEntry() leaderboardtypes.RankedEntry {
	return leaderboardtypes.RankedEntry{
		Rank:       r.Rank,
		UserID:     r.UserID,
		Username:   r.Username,
		TotalScore: r.TotalScore,
		ActiveDays: r.ActiveDays,
	}
}

// MemberRoundStats is one member's aggregate for a round.
type MemberRoundStats struct {
	PointsSum  int `bun:"points_sum"`
	ActiveDays int `bun:"active_days"`
	TotalScore int `bun:"total_score"`
}

// TotalsCounts is the table-count part of the admin overview; round identity
// is filled in by the service.
type TotalsCounts struct {
	Members          int `bun:"members"`
	OptedIn          int `bun:"opted_in"`
	Banned           int `bun:"banned"`
	ExcludedChannels int `bun:"excluded_channels"`
	EventsToday      int `bun:"events_today"`
}
