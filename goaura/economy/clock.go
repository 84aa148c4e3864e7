package economy

import "time"

// utcDay truncates t to its UTC calendar day. Day boundaries are UTC
// midnight for every wallet regardless of locale.
func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// secondsUntilReset returns the seconds remaining until the next UTC
// midnight.
func secondsUntilReset(t time.Time) int64 {
	next := utcDay(t).Add(24 * time.Hour)
	return int64(next.Sub(t.UTC()).Seconds())
}
