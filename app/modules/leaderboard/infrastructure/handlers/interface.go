package leaderboardhandlers

import (
	"context"

	leaderboardevents "github.com/hablemos-club/league-bot/app/shared/events/leaderboard"
	"github.com/hablemos-club/league-bot/app/shared/utils/handlerwrapper"
)

// Handlers defines the contract for leaderboard event handlers.
type Handlers interface {
	// HandleLeaderboardRequest serves one board's current standings.
	HandleLeaderboardRequest(ctx context.Context, payload *leaderboardevents.LeaderboardRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleUserStatsRequest serves one member's current-round stats.
	HandleUserStatsRequest(ctx context.Context, payload *leaderboardevents.UserStatsRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleLeagueTotalsRequest serves the admin overview.
	HandleLeagueTotalsRequest(ctx context.Context, payload *leaderboardevents.LeagueTotalsRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
