package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/steady/pkg/bucket"
)

// Render produces a terminal histogram of the daily series, one line
// per calendar day, with bars scaled by session count. Weekend days
// and the peak day get their own colors so the weekly rhythm is
// visible at a glance.
func Render(points []Point) string {
	var output strings.Builder

	output.WriteString("📊 Training Activity (28 days)\n")
	output.WriteString(strings.Repeat("─", 50) + "\n")

	totalSessions := 0
	maxCount := 0
	for _, p := range points {
		totalSessions += p.Count
		if p.Count > maxCount {
			maxCount = p.Count
		}
	}

	if totalSessions == 0 {
		return output.String() + "No sessions recorded in this window\n"
	}

	weekend := color.New(color.FgCyan)
	peak := color.New(color.FgYellow)
	grey := color.New(color.FgHiBlack)

	for _, p := range points {
		day, err := time.ParseInLocation(bucket.DateFormat, p.Date, time.UTC)
		if err != nil {
			continue
		}

		line := fmt.Sprintf("%s %s ", p.Date, day.Weekday().String()[:3])

		if p.Count > 0 {
			line += fmt.Sprintf("(%2d) ", p.Count)
		} else {
			line += "     " // matches "(nn) " width
		}

		switch {
		case p.Count == 0:
			// Idle day, leave the bar empty.
		case p.Count == 1:
			line += grey.Sprint("·")
		case p.Count == maxCount:
			line += peak.Sprint(strings.Repeat("█", p.Count))
		case day.Weekday() == time.Saturday || day.Weekday() == time.Sunday:
			line += weekend.Sprint(strings.Repeat("█", p.Count))
		default:
			line += grey.Sprint(strings.Repeat("█", p.Count))
		}

		output.WriteString(line + "\n")
	}

	return output.String()
}
