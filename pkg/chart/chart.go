// Package chart reconstructs the dense daily series for a scoring
// window and renders it for terminal display.
package chart

import (
	"github.com/codeGROOVE-dev/steady/pkg/bucket"
	"github.com/codeGROOVE-dev/steady/pkg/window"
)

// Point is one day of the chart series.
type Point struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Series expands the sparse bucket map into exactly 28 entries, one
// per calendar date from the window start to its end inclusive, in
// ascending order. Indexing by day offset from the window start keeps
// the slot count fixed by construction; dates absent from the buckets
// come out with a zero count. The same bucket map feeds the gap
// analysis and the score, so the chart can never disagree with them.
func Series(b bucket.Buckets, w window.Window) []Point {
	points := make([]Point, window.Days)
	for offset := range points {
		day := w.Start.AddDate(0, 0, offset).Format(bucket.DateFormat)
		points[offset] = Point{Date: day, Count: b.Days[day]}
	}
	return points
}
