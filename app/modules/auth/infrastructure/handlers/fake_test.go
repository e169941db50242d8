package authhandlers

import (
	"context"
	"time"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	roundtypes "github.com/hablemos-club/league-bot/app/shared/types/round"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	authservice "github.com/hablemos-club/league-bot/app/modules/auth/application"
	authdomain "github.com/hablemos-club/league-bot/app/modules/auth/domain"
)

// FakeAuthService provides defaults that succeed; override the Func fields to
// steer individual tests.
type FakeAuthService struct {
	IssueGatewayCredentialsFunc func(ctx context.Context, req authservice.CredentialsRequest) (*authservice.GatewayCredentials, error)
	ValidateTokenFunc           func(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

func (f *FakeAuthService) IssueGatewayCredentials(ctx context.Context, req authservice.CredentialsRequest) (*authservice.GatewayCredentials, error) {
	if f.IssueGatewayCredentialsFunc != nil {
		return f.IssueGatewayCredentialsFunc(ctx, req)
	}
	return &authservice.GatewayCredentials{
		APIToken:  "api-token-" + req.Instance,
		NATSJWT:   "nats-jwt-" + req.Instance,
		NATSSeed:  "SUFAKESEED",
		Role:      req.Role,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *FakeAuthService) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, tokenString)
	}
	return &authdomain.Claims{
		Subject: "gw-1",
		Role:    authdomain.RoleGateway,
	}, nil
}

// FakeStandingsReader serves a canned board.
type FakeStandingsReader struct {
	GetLeaderboardFunc func(ctx context.Context, board sharedtypes.BoardType, limit int) ([]leaderboardtypes.RankedEntry, error)

	LastBoard sharedtypes.BoardType
	LastLimit int
}

func (f *FakeStandingsReader) GetLeaderboard(ctx context.Context, board sharedtypes.BoardType, limit int) ([]leaderboardtypes.RankedEntry, error) {
	f.LastBoard = board
	f.LastLimit = limit
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, board, limit)
	}
	return []leaderboardtypes.RankedEntry{
		{Rank: 1, UserID: "111111111111111111", Username: "maria", TotalScore: 52, ActiveDays: 3},
	}, nil
}

// FakeRoundReader serves a canned active round.
type FakeRoundReader struct {
	GetCurrentRoundFunc func(ctx context.Context) (*roundtypes.RoundInfo, error)
}

func (f *FakeRoundReader) GetCurrentRound(ctx context.Context) (*roundtypes.RoundInfo, error) {
	if f.GetCurrentRoundFunc != nil {
		return f.GetCurrentRoundFunc(ctx)
	}
	start := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	return &roundtypes.RoundInfo{
		ID:          7,
		RoundNumber: 4,
		StartTime:   start,
		EndTime:     start.AddDate(0, 0, 7),
		Status:      sharedtypes.RoundStatusActive,
	}, nil
}

// Ensure the fakes actually satisfy the interfaces
var (
	_ authservice.Service = (*FakeAuthService)(nil)
	_ StandingsReader     = (*FakeStandingsReader)(nil)
	_ RoundReader         = (*FakeRoundReader)(nil)
)
