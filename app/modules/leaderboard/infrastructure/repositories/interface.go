package leaderboarddb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Repository defines the contract for standings queries.
type Repository interface {
	// GetBoard computes one board's standings for a round: opted-in,
	// non-banned members (filtered by learning flag for language boards),
	// scored and competition-ranked, zero-activity members included.
	GetBoard(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus, limit int) ([]BoardRow, error)

	// GetUserBoardRank returns one member's rank on a board. ErrNotRanked
	// means the member is not on that board.
	GetUserBoardRank(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus int, userID sharedtypes.DiscordID) (int, error)

	// GetMemberRoundStats aggregates one member's points and active days for
	// a round. Members with no events get zeros.
	GetMemberRoundStats(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, bonus int, userID sharedtypes.DiscordID) (*MemberRoundStats, error)

	// GetTotalsCounts gathers the admin overview counters; events are counted
	// from the given cutoff.
	GetTotalsCounts(ctx context.Context, db bun.IDB, eventsSince time.Time) (*TotalsCounts, error)
}
