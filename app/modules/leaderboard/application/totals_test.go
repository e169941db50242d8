package leaderboardservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	leaderboarddb "github.com/hablemos-club/league-bot/app/modules/leaderboard/infrastructure/repositories"
	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

func TestGetLeagueTotals(t *testing.T) {
	f := newBoardFixture()
	roundEnd := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	f.rounds.GetActiveRoundFunc = func(ctx context.Context, db bun.IDB) (*rounddb.Round, error) {
		return &rounddb.Round{ID: testRoundID, RoundNumber: 3, EndTime: roundEnd, Status: sharedtypes.RoundStatusActive}, nil
	}
	var gotSince time.Time
	f.repo.GetTotalsCountsFunc = func(ctx context.Context, db bun.IDB, eventsSince time.Time) (*leaderboarddb.TotalsCounts, error) {
		gotSince = eventsSince
		return &leaderboarddb.TotalsCounts{
			Members:          120,
			OptedIn:          95,
			Banned:           2,
			ExcludedChannels: 3,
			EventsToday:      340,
		}, nil
	}

	totals, err := f.svc.GetLeagueTotals(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 120, totals.Members)
	assert.Equal(t, 95, totals.OptedIn)
	assert.Equal(t, 2, totals.Banned)
	assert.Equal(t, 3, totals.ExcludedChannels)
	assert.Equal(t, 340, totals.EventsToday)
	assert.Equal(t, sharedtypes.RoundNumber(3), totals.RoundNumber)
	assert.Equal(t, roundEnd, totals.RoundEndsAt)

	// "Today" starts at UTC midnight.
	assert.Equal(t, time.UTC, gotSince.Location())
	assert.Equal(t, 0, gotSince.Hour())
	assert.Equal(t, 0, gotSince.Minute())
	assert.Equal(t, 0, gotSince.Second())
}

func TestGetLeagueTotalsNoActiveRound(t *testing.T) {
	f := newBoardFixture()
	f.rounds.GetActiveRoundFunc = nil // fake default: no active round

	_, err := f.svc.GetLeagueTotals(context.Background())

	assert.ErrorIs(t, err, rounddb.ErrNoActiveRound)
	assert.Empty(t, f.repo.Trace(), "counts are skipped without a round")
}
