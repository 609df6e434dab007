package bucket

import (
	"testing"
	"time"

	"github.com/codeGROOVE-dev/steady/pkg/session"
	"github.com/codeGROOVE-dev/steady/pkg/window"
)

func sessionAt(t time.Time) session.Session {
	return session.Session{ID: "s", UserID: "u", StartedAt: t, EndedAt: t.Add(time.Hour)}
}

func TestCollectFiltersAndGroups(t *testing.T) {
	w := window.ForReference(time.Date(2024, 6, 28, 12, 0, 0, 0, time.UTC))
	sessions := []session.Session{
		sessionAt(time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC)),
		sessionAt(time.Date(2024, 6, 10, 19, 30, 0, 0, time.UTC)), // same date, second session
		sessionAt(time.Date(2024, 6, 12, 6, 0, 0, 0, time.UTC)),
		sessionAt(time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)),  // before window
		sessionAt(time.Date(2024, 7, 15, 6, 0, 0, 0, time.UTC)), // after window
	}

	b := Collect(sessions, w)

	if b.Total != 3 {
		t.Errorf("Total = %d, want 3", b.Total)
	}
	if got := b.Days["2024-06-10"]; got != 2 {
		t.Errorf("count for 2024-06-10 = %d, want 2", got)
	}
	if got := b.Days["2024-06-12"]; got != 1 {
		t.Errorf("count for 2024-06-12 = %d, want 1", got)
	}
	if b.ActiveDays() != 2 {
		t.Errorf("ActiveDays = %d, want 2", b.ActiveDays())
	}
}

func TestCollectBoundaryInstantsIncluded(t *testing.T) {
	w := window.ForReference(time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC))
	sessions := []session.Session{
		sessionAt(w.Start),
		sessionAt(w.End),
	}

	b := Collect(sessions, w)
	if b.Total != 2 {
		t.Errorf("boundary sessions counted = %d, want 2", b.Total)
	}
	if b.Days[w.Start.Format(DateFormat)] != 1 {
		t.Errorf("session at window start not bucketed")
	}
	if b.Days[w.End.Format(DateFormat)] != 1 {
		t.Errorf("session at window end not bucketed")
	}
}

func TestCollectWeekdayHistogram(t *testing.T) {
	w := window.ForReference(time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC))
	// 2024-06-23 is a Sunday, 2024-06-24 a Monday.
	sessions := []session.Session{
		sessionAt(time.Date(2024, 6, 23, 9, 0, 0, 0, time.UTC)),
		sessionAt(time.Date(2024, 6, 24, 9, 0, 0, 0, time.UTC)),
		sessionAt(time.Date(2024, 6, 24, 18, 0, 0, 0, time.UTC)),
	}

	b := Collect(sessions, w)
	if b.Weekdays[time.Sunday] != 1 {
		t.Errorf("Sunday count = %d, want 1", b.Weekdays[time.Sunday])
	}
	if b.Weekdays[time.Monday] != 2 {
		t.Errorf("Monday count = %d, want 2", b.Weekdays[time.Monday])
	}
	if b.ActiveWeekdays() != 2 {
		t.Errorf("ActiveWeekdays = %d, want 2", b.ActiveWeekdays())
	}

	sum := 0
	for _, c := range b.Weekdays {
		sum += c
	}
	if sum != b.Total {
		t.Errorf("weekday histogram sum = %d, want total %d", sum, b.Total)
	}
}

func TestCollectOrderIndependent(t *testing.T) {
	w := window.ForReference(time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC))
	a := sessionAt(time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC))
	b := sessionAt(time.Date(2024, 6, 12, 7, 0, 0, 0, time.UTC))
	c := sessionAt(time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC))

	forward := Collect([]session.Session{a, b, c}, w)
	reversed := Collect([]session.Session{c, b, a}, w)

	if forward.Total != reversed.Total {
		t.Errorf("totals differ: %d vs %d", forward.Total, reversed.Total)
	}
	for day, count := range forward.Days {
		if reversed.Days[day] != count {
			t.Errorf("count for %s differs: %d vs %d", day, count, reversed.Days[day])
		}
	}
	if forward.Weekdays != reversed.Weekdays {
		t.Errorf("weekday histograms differ: %v vs %v", forward.Weekdays, reversed.Weekdays)
	}
}

func TestCollectEmptyInput(t *testing.T) {
	w := window.ForReference(time.Now())
	b := Collect(nil, w)
	if b.Total != 0 || b.ActiveDays() != 0 || b.ActiveWeekdays() != 0 {
		t.Errorf("empty input produced nonzero buckets: %+v", b)
	}
}
