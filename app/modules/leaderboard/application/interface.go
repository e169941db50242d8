package leaderboardservice

import (
	"context"

	"github.com/uptrace/bun"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
	userdb "github.com/hablemos-club/league-bot/app/modules/user/infrastructure/repositories"
)

// Service defines the contract for the leaderboard module.
type Service interface {
	// GetLeaderboard returns one board's current-round standings, cached for
	// the configured TTL.
	GetLeaderboard(ctx context.Context, board sharedtypes.BoardType, limit int) ([]leaderboardtypes.RankedEntry, error)

	// GetUserStats returns one member's current-round stats with per-board
	// ranks where the member is eligible.
	GetUserStats(ctx context.Context, userID sharedtypes.DiscordID) (*leaderboardtypes.UserStats, error)

	// GetLeagueTotals returns the admin overview snapshot.
	GetLeagueTotals(ctx context.Context) (*leaderboardtypes.LeagueTotals, error)
}

// MemberSource provides the member lookups stats need. The user module's
// repository satisfies it.
type MemberSource interface {
	GetByUserID(ctx context.Context, db bun.IDB, userID sharedtypes.DiscordID) (*userdb.Member, error)
}

// RoundSource provides the active-round lookup standings are scoped to. The
// round module's repository satisfies it.
type RoundSource interface {
	GetActiveRound(ctx context.Context, db bun.IDB) (*rounddb.Round, error)
}

// BoardConfig carries the scoring and presentation tunables.
type BoardConfig struct {
	ActiveDayBonus int
	DefaultLimit   int
}
