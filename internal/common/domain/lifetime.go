package domain

import (
	"math"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// ElapsedWeeks returns the number of whole weeks between birthDate and today.
// Days are counted between calendar dates. A birth date in the future gives a
// negative result, rounded towards negative infinity (-1 day is week -1).
func ElapsedWeeks(birthDate, today time.Time) int {
	// Both dates are UTC midnights, so the difference is a whole number of days.
	// time.Duration would overflow for spans over ~292 years.
	days := int((DateOf(today).Unix() - DateOf(birthDate).Unix()) / secondsPerDay)

	return floorDiv(days, 7)
}

// WeeksLeft is intentionally not clamped: it goes negative past TotalWeeks.
func WeeksLeft(weeksLived int) int {
	return TotalWeeks - weeksLived
}

// CompletionPercent returns round(100*weeksLived/totalWeeks) clamped to [0, 100].
func CompletionPercent(weeksLived, totalWeeks int) int {
	if totalWeeks <= 0 {
		panic("domain: totalWeeks must be positive")
	}

	percent := int(math.Round(100 * float64(weeksLived) / float64(totalWeeks)))

	return clamp(percent, 0, 100)
}

// ProgressBar renders percent as a bracketed bar of length glyphs.
func ProgressBar(percent, length int) string {
	if length < 0 {
		length = 0
	}

	filled := length * clamp(percent, 0, 100) / 100

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(strings.Repeat(progressFilled, filled))
	sb.WriteString(strings.Repeat(progressEmpty, length-filled))
	sb.WriteString("]")

	return sb.String()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
