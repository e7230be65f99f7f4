package assessment

import (
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`\d+`)

// Duration bounds in minutes.
const (
	minDurationMinutes = 1
	maxDurationMinutes = 180
)

// ParseDurationEstimate extracts the minute count from a provider's free-text
// duration estimate. The first contiguous digit run wins and the value is
// clamped to [1, 180] minutes. When the estimate carries no number at all the
// fallback is three minutes per question, bounded to [5, 60].
func ParseDurationEstimate(estimate string, questionCount int) int {
	if match := digitRun.FindString(estimate); match != "" {
		minutes, err := strconv.Atoi(match)
		if err == nil {
			return clamp(minutes, minDurationMinutes, maxDurationMinutes)
		}
	}

	return clamp(questionCount*3, 5, 60)
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
