package roundservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"

	rounddb "github.com/hablemos-club/league-bot/app/modules/round/infrastructure/repositories"
)

func TestPreviewCloseComputesWithoutWriting(t *testing.T) {
	f := newRoundFixture()
	f.repo.GetActiveRoundFunc = func(ctx context.Context, db bun.IDB) (*rounddb.Round, error) {
		return f.dueRound(7, 3), nil
	}
	f.closeBoards(t)
	f.previousChampions()

	preview, err := f.svc.PreviewClose(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, sharedtypes.RoundStatusActive, preview.Round.Status)
	assert.Equal(t, []sharedtypes.DiscordID{userAna, userErik}, preview.CooldownSet)

	spanish := preview.Champions[sharedtypes.LeagueSpanish]
	if assert.Len(t, spanish, 3) {
		assert.Equal(t, userBruno, spanish[0].UserID)
		assert.Equal(t, userCarla, spanish[1].UserID)
		assert.Equal(t, userDiego, spanish[2].UserID)
	}
	assert.Empty(t, preview.Champions[sharedtypes.LeagueEnglish])

	assert.Contains(t, preview.Announcement, "(resting)")
	assert.NotContains(t, preview.Announcement, "is live")

	// Read-only: no status change, no rows, no side effects.
	assert.Equal(t, []string{"GetActiveRound", "GetLatestCompletedBefore", "GetRecipientsByRound"}, f.repo.Trace())
	assert.Empty(t, f.repo.InsertedWinners)
	assert.Empty(t, f.repo.InsertedRecipients)
	assert.Empty(t, f.repo.CreatedRounds)
	assert.Empty(t, f.notifier.Announced)
	assert.Equal(t, 0, f.invalidator.Calls)
}

func TestPreviewCloseFirstRoundHasEmptyCooldown(t *testing.T) {
	f := newRoundFixture()
	f.repo.GetActiveRoundFunc = func(ctx context.Context, db bun.IDB) (*rounddb.Round, error) {
		return f.dueRound(1, 1), nil
	}
	f.closeBoards(t)

	preview, err := f.svc.PreviewClose(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, preview.CooldownSet)
	assert.Empty(t, preview.CooldownSet)

	spanish := preview.Champions[sharedtypes.LeagueSpanish]
	if assert.Len(t, spanish, 3) {
		assert.Equal(t, userAna, spanish[0].UserID)
	}
}

func TestPreviewCloseNoActiveRound(t *testing.T) {
	f := newRoundFixture()

	preview, err := f.svc.PreviewClose(context.Background())

	assert.Nil(t, preview)
	assert.ErrorIs(t, err, rounddb.ErrNoActiveRound)
}
