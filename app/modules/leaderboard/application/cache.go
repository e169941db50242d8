package leaderboardservice

import (
	"sync"
	"time"

	leaderboardtypes "github.com/hablemos-club/league-bot/app/shared/types/leaderboard"
	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// BoardCache memoizes computed standings per (board, limit) for a short TTL.
// Every activity write and round transition clears the whole cache, so a
// served snapshot can be time-stale but never event-stale.
type BoardCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[boardKey]boardEntry
}

type boardKey struct {
	board sharedtypes.BoardType
	limit int
}

type boardEntry struct {
	entries  []leaderboardtypes.RankedEntry
	storedAt time.Time
}

// NewBoardCache creates a cache with the given TTL.
func NewBoardCache(ttl time.Duration) *BoardCache {
	return &BoardCache{
		ttl:     ttl,
		entries: make(map[boardKey]boardEntry),
	}
}

// Get returns the cached standings for (board, limit) while they are fresh.
func (c *BoardCache) Get(board sharedtypes.BoardType, limit int) ([]leaderboardtypes.RankedEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[boardKey{board: board, limit: limit}]
	if !ok || time.Since(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.entries, true
}

// Put stores one board's standings.
func (c *BoardCache) Put(board sharedtypes.BoardType, limit int, entries []leaderboardtypes.RankedEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[boardKey{board: board, limit: limit}] = boardEntry{
		entries:  entries,
		storedAt: time.Now(),
	}
}

// Invalidate drops every cached snapshot.
func (c *BoardCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[boardKey]boardEntry)
}

// Len reports the number of cached snapshots.
func (c *BoardCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
