// Package bucket groups sessions by UTC calendar date within a
// scoring window.
package bucket

import (
	"time"

	"github.com/codeGROOVE-dev/steady/pkg/session"
	"github.com/codeGROOVE-dev/steady/pkg/window"
)

// DateFormat is the ISO calendar-date layout used for bucket keys and
// chart labels.
const DateFormat = "2006-01-02"

// Buckets holds per-day session counts and the weekday histogram for
// one window. Days maps "YYYY-MM-DD" (UTC) to session count; only
// dates with at least one session are present. Weekdays is indexed by
// time.Weekday (Sunday = 0) and counts every in-window session.
type Buckets struct {
	Days     map[string]int
	Weekdays [7]int
	Total    int
}

// Collect filters sessions to the window (inclusive on both ends,
// judged by StartedAt only) and aggregates them by UTC calendar date
// and UTC weekday in a single pass. Input order has no effect on the
// result; duplicate dates accumulate, there is no deduplication.
func Collect(sessions []session.Session, w window.Window) Buckets {
	b := Buckets{Days: make(map[string]int)}
	for _, s := range sessions {
		if !w.Contains(s.StartedAt) {
			continue
		}
		start := s.StartedAt.UTC()
		b.Days[start.Format(DateFormat)]++
		b.Weekdays[start.Weekday()]++
		b.Total++
	}
	return b
}

// ActiveDays returns the number of distinct calendar dates with at
// least one session.
func (b Buckets) ActiveDays() int {
	return len(b.Days)
}

// ActiveWeekdays returns the number of distinct weekdays with at
// least one session, counted over the whole window rather than per
// individual week.
func (b Buckets) ActiveWeekdays() int {
	n := 0
	for _, count := range b.Weekdays {
		if count > 0 {
			n++
		}
	}
	return n
}

// Dates returns the active calendar dates as UTC midnights, unsorted.
func (b Buckets) Dates() []time.Time {
	dates := make([]time.Time, 0, len(b.Days))
	for day := range b.Days {
		t, err := time.ParseInLocation(DateFormat, day, time.UTC)
		if err != nil {
			continue // keys are produced by Collect, always valid
		}
		dates = append(dates, t)
	}
	return dates
}
