package roundutil

import "time"

// RoundCloseHour is the UTC hour at which rounds close on Sundays.
const RoundCloseHour = 12

// NextSundayNoon returns the next Sunday 12:00:00 UTC strictly after the
// Sunday containing t. When t already falls on a Sunday the result rolls a
// full week forward, so a round closed at its Sunday-noon deadline always
// gets a seven-day successor.
func NextSundayNoon(t time.Time) time.Time {
	t = t.UTC()
	days := (7 - int(t.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return time.Date(t.Year(), t.Month(), t.Day()+days, RoundCloseHour, 0, 0, 0, time.UTC)
}
