package score

import "fmt"

// Intensity sentences only appear once the per-active-day average
// clears this ratio.
const intensityMention = 1.4

// Explain renders the ordered explanation list for a set of metrics.
// The order is a stable contract: the training-days sentence is always
// index 0, followed by the gap sentence, then (when any weekday saw
// activity) the weekday-spread sentence, then optionally the intensity
// sentence.
func Explain(m Metrics) []string {
	explanations := []string{
		fmt.Sprintf("You trained on %d out of %d days", m.ActiveDays, m.TotalDays),
	}

	switch m.LongestGapDays {
	case 0:
		explanations = append(explanations, "No gaps in your training")
	case 1:
		explanations = append(explanations, "Longest break: 1 day")
	default:
		explanations = append(explanations, fmt.Sprintf("Longest break: %d days", m.LongestGapDays))
	}

	switch d := m.ActiveWeekdays; {
	case d >= 6:
		explanations = append(explanations, fmt.Sprintf("Great variety: you trained across %d different weekdays", d))
	case d >= 4:
		explanations = append(explanations, fmt.Sprintf("Good spread across %d different weekdays", d))
	case d > 0:
		explanations = append(explanations, fmt.Sprintf("Training focused on %d weekdays", d))
	}

	if m.AvgPerActiveDay >= intensityMention {
		explanations = append(explanations, fmt.Sprintf("Averaging %.1f sessions per active day", m.AvgPerActiveDay))
	}

	return explanations
}
