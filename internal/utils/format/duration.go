package format

import (
	"fmt"
	"math"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerYear   = 31536000

	// Unbounded is shown when no finite prediction exists.
	Unbounded = "decades or more"
)

// FormatDuration renders a predicted number of seconds. +Inf and NaN mean
// "no finite prediction". Anything from one hour up to one year is reported
// in days; beyond that, in years.
func FormatDuration(seconds float64) string {
	if math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return Unbounded
	}
	if seconds < 0 {
		seconds = 0
	}

	switch {
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%.4f seconds", seconds)
	case seconds < secondsPerHour:
		return fmt.Sprintf("%.2f minutes", seconds/secondsPerMinute)
	case seconds < secondsPerYear:
		return fmt.Sprintf("%.2f days", seconds/secondsPerDay)
	default:
		return fmt.Sprintf("%.2f years", seconds/secondsPerYear)
	}
}
