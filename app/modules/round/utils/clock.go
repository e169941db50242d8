// Package roundutil provides time helpers for round scheduling.
package roundutil

import "time"

// Clock abstracts "now" so close, reschedule, and announcement logic can be
// tested against fixed instants.
type Clock interface {
	Now() time.Time
	NowUTC() time.Time
}

// RealClock is the Clock backed by the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time    { return time.Now() }
func (RealClock) NowUTC() time.Time { return time.Now().UTC() }

// AnchorClock is a Clock whose Now/NowUTC always return the provided anchor
// time. Useful for parsing relative user input deterministically even if the
// message is processed later (e.g. queue delay / retries).
type AnchorClock struct {
	anchor time.Time
}

// NewAnchorClock creates a new AnchorClock. If t is the zero value, the
// current real UTC time is used.
func NewAnchorClock(t time.Time) AnchorClock {
	if t.IsZero() {
		return AnchorClock{anchor: time.Now().UTC()}
	}
	return AnchorClock{anchor: t.UTC()}
}

func (c AnchorClock) Now() time.Time    { return c.anchor }
func (c AnchorClock) NowUTC() time.Time { return c.anchor.UTC() }
