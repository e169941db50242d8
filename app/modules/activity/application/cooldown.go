package activityservice

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// cleanupThreshold is the number of tracked sender/channel pairs above which
// stale entries are pruned inline on the next lookup, independent of the
// periodic sweep.
const cleanupThreshold = 500

// CooldownLimiter enforces the per-sender per-channel scoring cooldown. Each
// (user, channel) pair holds a one-token bucket that refills once per window,
// so at most one message per pair can score within the window. Ready peeks,
// Consume spends; the gate peeks during evaluation and spends only when the
// whole message is accepted.
type CooldownLimiter struct {
	entries map[string]*cooldownEntry
	mu      sync.Mutex
	window  time.Duration
}

type cooldownEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewCooldownLimiter creates a limiter with the given cooldown window.
func NewCooldownLimiter(window time.Duration) *CooldownLimiter {
	return &CooldownLimiter{
		entries: make(map[string]*cooldownEntry),
		window:  window,
	}
}

func cooldownKey(userID sharedtypes.DiscordID, channelID sharedtypes.ChannelID) string {
	return string(userID) + ":" + string(channelID)
}

func (l *CooldownLimiter) lookup(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if len(l.entries) > cleanupThreshold {
		l.evictStaleLocked(now)
	}

	entry, ok := l.entries[key]
	if !ok {
		entry = &cooldownEntry{
			limiter: rate.NewLimiter(rate.Every(l.window), 1),
		}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// evictStaleLocked removes entries idle for longer than twice the window;
// their bucket is full again, so dropping them loses nothing.
func (l *CooldownLimiter) evictStaleLocked(now time.Time) {
	maxIdleAge := 2 * l.window
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) > maxIdleAge {
			delete(l.entries, key)
		}
	}
}

// Ready reports whether the pair could score right now, without spending the
// token. Dry-run validation must not affect later real messages.
func (l *CooldownLimiter) Ready(userID sharedtypes.DiscordID, channelID sharedtypes.ChannelID) bool {
	return l.lookup(cooldownKey(userID, channelID)).Tokens() >= 1
}

// Consume spends the pair's token, starting the cooldown window. It reports
// whether a token was available; callers that already checked Ready may still
// see false here under concurrent sends, which is acceptable.
func (l *CooldownLimiter) Consume(userID sharedtypes.DiscordID, channelID sharedtypes.ChannelID) bool {
	return l.lookup(cooldownKey(userID, channelID)).Allow()
}

// Sweep evicts stale entries. The owning module runs this on a fixed interval
// to bound memory between bursts.
func (l *CooldownLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.evictStaleLocked(time.Now())
}

// Len reports the number of tracked pairs.
func (l *CooldownLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
