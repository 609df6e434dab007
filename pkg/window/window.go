// Package window computes the rolling 28-day UTC scoring window.
package window

import "time"

// Days is the fixed length of the scoring window in UTC calendar days.
const Days = 28

// Window is a closed interval of instants spanning exactly 28 UTC
// calendar days: Start is UTC midnight 27 days before the reference
// date, End is 23:59:59.999 UTC on the reference date.
type Window struct {
	Start time.Time
	End   time.Time
}

// ForReference derives the window for a reference instant. The
// instant's time-of-day is irrelevant; both edges are clamped to UTC
// day boundaries.
func ForReference(ref time.Time) Window {
	day := Midnight(ref)
	return Window{
		Start: day.AddDate(0, 0, -(Days - 1)),
		End:   day.AddDate(0, 0, 1).Add(-time.Millisecond),
	}
}

// Contains reports whether t falls within the window, inclusive on
// both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Midnight truncates an instant to UTC midnight of its calendar date.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day difference between the UTC
// calendar dates of a and b. Both are normalized to UTC midnight
// first so that time-of-day never produces fractional-day drift.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)) / (24 * time.Hour))
}
