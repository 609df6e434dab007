// Package gaps finds the longest idle streak inside a scoring window.
package gaps

import (
	"sort"

	"github.com/codeGROOVE-dev/steady/pkg/bucket"
	"github.com/codeGROOVE-dev/steady/pkg/window"
)

// Longest returns the longest run of consecutive inactive calendar
// days within the window, in whole days. A window with no activity at
// all is one maximal gap covering every day. All arithmetic happens on
// UTC-midnight-normalized dates; raw instant deltas would produce
// fractional-day artifacts from sessions recorded at arbitrary times.
func Longest(b bucket.Buckets, w window.Window) int {
	if len(b.Days) == 0 {
		return window.Days
	}

	dates := b.Dates()
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	// Leading gap: days strictly between the window start and the
	// first active date.
	longest := window.DaysBetween(w.Start, dates[0])

	// Interior gaps: idle days strictly between consecutive active
	// dates.
	for i := 1; i < len(dates); i++ {
		if gap := window.DaysBetween(dates[i-1], dates[i]) - 1; gap > longest {
			longest = gap
		}
	}

	// Trailing gap: days strictly between the last active date and
	// the window end.
	if gap := window.DaysBetween(dates[len(dates)-1], w.End); gap > longest {
		longest = gap
	}

	return longest
}
