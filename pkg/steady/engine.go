// Package steady scores how consistently a user has been training
// over a rolling 28-day UTC window.
package steady

import (
	"time"

	"github.com/codeGROOVE-dev/steady/pkg/bucket"
	"github.com/codeGROOVE-dev/steady/pkg/chart"
	"github.com/codeGROOVE-dev/steady/pkg/gaps"
	"github.com/codeGROOVE-dev/steady/pkg/score"
	"github.com/codeGROOVE-dev/steady/pkg/session"
	"github.com/codeGROOVE-dev/steady/pkg/window"
)

// Compute runs the full scoring pipeline over an in-memory session
// list. It is pure: no I/O, no shared state, and identical inputs
// always produce an identical result, so it is safe to call from any
// number of goroutines. Sessions outside the window are filtered, any
// input order is accepted, and an empty list yields a zero score with
// a 28-entry zero-count chart.
func Compute(sessions []session.Session, reference time.Time) *Result {
	w := window.ForReference(reference)
	b := bucket.Collect(sessions, w)
	m := metricsFor(b, w)

	total, _ := score.Compose(m)
	return &Result{
		Score:        total,
		Explanations: score.Explain(m),
		ChartData:    chart.Series(b, w),
		PeriodStart:  w.Start.Format(bucket.DateFormat),
		PeriodEnd:    w.End.Format(bucket.DateFormat),
	}
}

func metricsFor(b bucket.Buckets, w window.Window) score.Metrics {
	m := score.Metrics{
		TotalDays:      window.Days,
		ActiveDays:     b.ActiveDays(),
		LongestGapDays: gaps.Longest(b, w),
		ActiveWeekdays: b.ActiveWeekdays(),
		TotalSessions:  b.Total,
	}
	if m.ActiveDays > 0 {
		m.AvgPerActiveDay = float64(m.TotalSessions) / float64(m.ActiveDays)
	}
	return m
}
