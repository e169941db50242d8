package leaderboardtypes

import (
	"time"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// RankedEntry is one row of a computed leaderboard.
// Rank follows standard competition ranking: tied scores share a rank and the
// rank after a tie group of size k starting at r is r+k.
type RankedEntry struct {
	Rank       int                   `json:"rank"`
	UserID     sharedtypes.DiscordID `json:"user_id"`
	Username   string                `json:"username"`
	TotalScore int                   `json:"total_score"`
	ActiveDays int                   `json:"active_days"`
}

// UserStats is the per-member view for the current round.
type UserStats struct {
	UserID          sharedtypes.DiscordID `json:"user_id"`
	Username        string                `json:"username"`
	OptedIn         bool                  `json:"opted_in"`
	LearningSpanish bool                  `json:"learning_spanish"`
	LearningEnglish bool                  `json:"learning_english"`
	TotalScore      int                   `json:"total_score"`
	ActiveDays      int                   `json:"active_days"`
	// Per-board rank, present only when the matching learning flag is set.
	SpanishRank *int `json:"spanish_rank,omitempty"`
	EnglishRank *int `json:"english_rank,omitempty"`
}

// LeagueTotals is the admin overview snapshot.
type LeagueTotals struct {
	Members          int                     `json:"members"`
	OptedIn          int                     `json:"opted_in"`
	Banned           int                     `json:"banned"`
	ExcludedChannels int                     `json:"excluded_channels"`
	EventsToday      int                     `json:"events_today"`
	RoundNumber      sharedtypes.RoundNumber `json:"round_number"`
	RoundEndsAt      time.Time               `json:"round_ends_at"`
}
