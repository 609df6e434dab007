// Package score turns window metrics into a bounded consistency score
// and its human-readable explanations.
package score

import (
	"math"

	"github.com/codeGROOVE-dev/steady/pkg/window"
)

// Component weight ceilings. The four subscores sum to at most 100.
const (
	maxFrequency    = 50.0
	maxGap          = 25.0
	maxDistribution = 15.0
	maxIntensity    = 10.0

	// Gap thresholds: a break of up to gapFloor days costs nothing,
	// gapCeiling or more forfeits the whole component, with linear
	// interpolation in between.
	gapFloor   = 3
	gapCeiling = 14

	weekdayCount = 7
)

// Metrics are the per-window aggregates the composer consumes. They
// are derived once per invocation and discarded with the result.
type Metrics struct {
	TotalDays       int
	ActiveDays      int
	LongestGapDays  int
	ActiveWeekdays  int
	TotalSessions   int
	AvgPerActiveDay float64
}

// Components holds the individual weighted subscores, mostly for
// logging and debugging; consumers see only the composed score.
type Components struct {
	Frequency    float64
	Gap          float64
	Distribution float64
	Intensity    float64
}

// Compose combines the four subscores and returns the rounded,
// clamped 0-100 score. It is total: any well-formed metrics value
// yields an in-range score.
func Compose(m Metrics) (int, Components) {
	c := Components{
		Frequency:    frequency(m),
		Gap:          gap(m),
		Distribution: distribution(m),
		Intensity:    intensity(m),
	}

	total := math.Round(c.Frequency + c.Gap + c.Distribution + c.Intensity)
	switch {
	case total < 0:
		return 0, c
	case total > 100:
		return 100, c
	default:
		return int(total), c
	}
}

// frequency rewards the share of window days with any activity.
func frequency(m Metrics) float64 {
	return float64(m.ActiveDays) / float64(window.Days) * maxFrequency
}

// gap penalizes the longest idle streak, interpolating linearly
// between the harmless and forfeiting thresholds.
func gap(m Metrics) float64 {
	switch {
	case m.LongestGapDays <= gapFloor:
		return maxGap
	case m.LongestGapDays >= gapCeiling:
		return 0
	default:
		return maxGap * float64(gapCeiling-m.LongestGapDays) / float64(gapCeiling-gapFloor)
	}
}

// distribution rewards spreading sessions across distinct weekdays,
// counted over the whole window rather than per individual week.
func distribution(m Metrics) float64 {
	return float64(m.ActiveWeekdays) / weekdayCount * maxDistribution
}

// intensity rewards averaging more than one session per active day,
// saturating at two.
func intensity(m Metrics) float64 {
	if m.ActiveDays == 0 {
		return 0
	}
	r := float64(m.TotalSessions) / float64(m.ActiveDays)
	switch {
	case r <= 1:
		return 0
	case r >= 2:
		return maxIntensity
	default:
		return maxIntensity * (r - 1)
	}
}
