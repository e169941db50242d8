package leaderboardservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

func sampleEntries(userID sharedtypes.DiscordID) []leaderboardtypes.RankedEntry {
	return []leaderboardtypes.RankedEntry{
		{Rank: 1, UserID: userID, Username: "maria", TotalScore: 52, ActiveDays: 3},
	}
}

func TestBoardCacheScopedByBoardAndLimit(t *testing.T) {
	c := NewBoardCache(time.Minute)

	c.Put(sharedtypes.BoardSpanish, 10, sampleEntries("111111111111111111"))

	got, ok := c.Get(sharedtypes.BoardSpanish, 10)
	assert.True(t, ok)
	assert.Len(t, got, 1)

	_, ok = c.Get(sharedtypes.BoardEnglish, 10)
	assert.False(t, ok, "other boards are separate snapshots")

	_, ok = c.Get(sharedtypes.BoardSpanish, 25)
	assert.False(t, ok, "other limits are separate snapshots")
}

func TestBoardCacheExpires(t *testing.T) {
	c := NewBoardCache(10 * time.Millisecond)

	c.Put(sharedtypes.BoardCombined, 10, sampleEntries("111111111111111111"))
	_, ok := c.Get(sharedtypes.BoardCombined, 10)
	assert.True(t, ok)

	time.Sleep(15 * time.Millisecond)
	_, ok = c.Get(sharedtypes.BoardCombined, 10)
	assert.False(t, ok, "snapshots older than the TTL are not served")
}

func TestBoardCacheInvalidate(t *testing.T) {
	c := NewBoardCache(time.Minute)

	c.Put(sharedtypes.BoardSpanish, 10, sampleEntries("111111111111111111"))
	c.Put(sharedtypes.BoardEnglish, 10, sampleEntries("333333333333333333"))
	assert.Equal(t, 2, c.Len())

	c.Invalidate()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(sharedtypes.BoardSpanish, 10)
	assert.False(t, ok)
}
