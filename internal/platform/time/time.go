// Package time contains time related helpers
package time

import "time"

// DayStart returns midnight UTC of t's UTC day
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LastDays returns [since, until) covering today and the days-1 whole UTC days before it.
// days below 1 is treated as 1
func LastDays(now time.Time, days int) (since, until time.Time) {
	if days < 1 {
		days = 1
	}
	until = now.UTC()
	return DayStart(until).AddDate(0, 0, -(days - 1)), until
}
