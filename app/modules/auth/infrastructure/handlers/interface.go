package authhandlers

import (
	"context"
	"net/http"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// Handlers defines the HTTP endpoints the auth module serves.
type Handlers interface {
	// HandleNATSCredentials provisions a gateway instance: POST /api/auth/nats-creds.
	HandleNATSCredentials(w http.ResponseWriter, r *http.Request)

	// HandleLeaderboard serves a ranked board: GET /api/league/leaderboard/{board}.
	HandleLeaderboard(w http.ResponseWriter, r *http.Request)

	// HandleCurrentRound serves the ACTIVE round: GET /api/league/rounds/current.
	HandleCurrentRound(w http.ResponseWriter, r *http.Request)
}

// StandingsReader is the slice of the leaderboard service the API needs.
type StandingsReader interface {
	GetLeaderboard(ctx context.Context, board sharedtypes.BoardType, limit int) ([]leaderboardtypes.RankedEntry, error)
}

// RoundReader is the slice of the round service the API needs.
type RoundReader interface {
	GetCurrentRound(ctx context.Context) (*roundtypes.RoundInfo, error)
}
