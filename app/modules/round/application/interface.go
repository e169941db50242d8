package roundservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	leaderboarddb "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/repositories"
)

// RescheduleRequest moves the active round's end time. When is natural
// language ("next sunday at noon"), anchored at RequestedAt.
type RescheduleRequest struct {
	When        string
	RequestedBy sharedtypes.DiscordID
	RequestedAt time.Time
}

// SeedRequest backfills champion tracking for the most recently completed
// round, for servers migrating from the era before recipients were recorded.
// One call seeds one league; seed each league separately.
type SeedRequest struct {
	League      sharedtypes.LeagueType
	UserIDs     []sharedtypes.DiscordID
	RequestedBy sharedtypes.DiscordID
}

// SeedResult reports what a backfill did.
type SeedResult struct {
	RoundNumber sharedtypes.RoundNumber
	Seeded      int
}

// RoundReport is a rendered XLSX export of one closed round's podium.
type RoundReport struct {
	RoundNumber sharedtypes.RoundNumber
	Filename    string
	Data        []byte
}

// Service defines the contract for the round module.
type Service interface {
	// CloseIfDue runs the round transition: snapshot winners, mark the round
	// COMPLETED, rotate champion roles, open the next round, announce. With
	// force=false it no-ops unless the active round's end time has passed;
	// force=true closes immediately. Concurrent invocations are safe: exactly
	// one wins the status transition, the rest report a lost race.
	CloseIfDue(ctx context.Context, force bool) (*roundtypes.CloseResult, error)

	// EnsureActiveRound guarantees an ACTIVE round exists, creating the next
	// one if the previous process died between a close and a create.
	EnsureActiveRound(ctx context.Context) (*roundtypes.RoundInfo, error)

	// GetCurrentRound returns the ACTIVE round.
	GetCurrentRound(ctx context.Context) (*roundtypes.RoundInfo, error)

	// PreviewClose computes everything a close would do, without mutating.
	PreviewClose(ctx context.Context) (*roundtypes.ClosePreview, error)

	// RescheduleRound moves the active round's end time.
	RescheduleRound(ctx context.Context, req RescheduleRequest) (*roundtypes.RoundInfo, error)

	// SeedRoleRecipients records the given users as champion role holders of
	// the most recently completed round.
	SeedRoleRecipients(ctx context.Context, req SeedRequest) (*SeedResult, error)

	// ExportRoundReport renders a closed round's persisted podium as XLSX.
	ExportRoundReport(ctx context.Context, roundNumber sharedtypes.RoundNumber) (*RoundReport, error)
}

// StandingsSource computes ranked standings for a round. The leaderboard
// module's repository satisfies it; the close reads through the transaction's
// db handle so standings and the status transition commit together.
type StandingsSource interface {
	GetBoard(ctx context.Context, db bun.IDB, roundID sharedtypes.RoundID, board sharedtypes.BoardType, bonus, limit int) ([]leaderboarddb.BoardRow, error)
}

// RoleNotifier performs the gateway-bound side effects of a close. All calls
// are best effort; failures are logged and never abort a transition.
type RoleNotifier interface {
	GrantChampionRole(ctx context.Context, userID sharedtypes.DiscordID) error
	RevokeChampionRole(ctx context.Context, userID sharedtypes.DiscordID) error
	Announce(ctx context.Context, content string) error
}

// CacheInvalidator clears cached standings after a committed transition.
type CacheInvalidator interface {
	Invalidate()
}

// RoundConfig carries the rotation tunables.
type RoundConfig struct {
	ChampionCount  int
	ActiveDayBonus int
}

// leagues fixes the iteration order for per-language computations.
var leagues = []sharedtypes.LeagueType{sharedtypes.LeagueSpanish, sharedtypes.LeagueEnglish}
