package leaderboardevents

import (
	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Topics consumed and produced by the leaderboard module.
const (
	LeaderboardRequestedV1 = "league.leaderboard.requested.v1"
	LeaderboardRetrievedV1 = "league.leaderboard.retrieved.v1"
	LeaderboardFailedV1    = "league.leaderboard.failed.v1"

	UserStatsRequestedV1 = "league.leaderboard.stats.requested.v1"
	UserStatsRetrievedV1 = "league.leaderboard.stats.retrieved.v1"
	UserStatsFailedV1    = "league.leaderboard.stats.failed.v1"

	LeagueTotalsRequestedV1 = "league.leaderboard.totals.requested.v1"
	LeagueTotalsRetrievedV1 = "league.leaderboard.totals.retrieved.v1"
	LeagueTotalsFailedV1    = "league.leaderboard.totals.failed.v1"
)

// LeaderboardRequestedPayloadV1 asks for one board's standings.
type LeaderboardRequestedPayloadV1 struct {
	BoardType sharedtypes.BoardType `json:"board_type"`
	Limit     int                   `json:"limit"`
}

// LeaderboardRetrievedPayloadV1 carries the ranked standings.
type LeaderboardRetrievedPayloadV1 struct {
	BoardType sharedtypes.BoardType          `json:"board_type"`
	Limit     int                            `json:"limit"`
	Entries   []leaderboardtypes.RankedEntry `json:"entries"`
}

// LeaderboardFailedPayloadV1 explains a failed standings request.
type LeaderboardFailedPayloadV1 struct {
	BoardType sharedtypes.BoardType `json:"board_type"`
	Reason    string                `json:"reason"`
}

// UserStatsRequestedPayloadV1 asks for one member's current-round stats.
type UserStatsRequestedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
}

// UserStatsRetrievedPayloadV1 carries the member's stats.
type UserStatsRetrievedPayloadV1 struct {
	Stats leaderboardtypes.UserStats `json:"stats"`
}

// UserStatsFailedPayloadV1 explains a failed stats request.
type UserStatsFailedPayloadV1 struct {
	UserID sharedtypes.DiscordID `json:"user_id"`
	Reason string                `json:"reason"`
}

// LeagueTotalsRequestedPayloadV1 asks for the admin overview.
type LeagueTotalsRequestedPayloadV1 struct {
	RequestedBy sharedtypes.DiscordID `json:"requested_by"`
}

// LeagueTotalsRetrievedPayloadV1 carries the admin overview.
type LeagueTotalsRetrievedPayloadV1 struct {
	Totals leaderboardtypes.LeagueTotals `json:"totals"`
}

// LeagueTotalsFailedPayloadV1 reports an overview failure.
type LeagueTotalsFailedPayloadV1 struct {
	Reason string `json:"reason"`
}
