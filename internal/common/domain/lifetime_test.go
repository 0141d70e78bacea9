package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestElapsedWeeks_Scenario(t *testing.T) {
	weeks := ElapsedWeeks(date(1990, time.January, 1), date(2024, time.January, 1))

	require.Equal(t, 1774, weeks)
	require.Equal(t, 2906, WeeksLeft(weeks))
	require.Equal(t, 38, CompletionPercent(weeks, TotalWeeks))
}

func TestElapsedWeeks_IgnoresTimeOfDayAndZone(t *testing.T) {
	birth := date(2000, time.March, 10)
	moscow := time.FixedZone("MSK", 3*60*60)

	// 01:30 MSK on 17.03 is still 16.03 in UTC; the local calendar date counts.
	today := time.Date(2000, time.March, 17, 1, 30, 0, 0, moscow)
	require.Equal(t, 1, ElapsedWeeks(birth, today))

	today = time.Date(2000, time.March, 16, 23, 59, 0, 0, time.UTC)
	require.Equal(t, 0, ElapsedWeeks(birth, today))
}

func TestElapsedWeeks_MonotonicAndNonNegative(t *testing.T) {
	birth := date(1985, time.July, 14)
	prev := 0

	for today := birth; today.Before(date(1990, time.January, 1)); today = today.AddDate(0, 0, 1) {
		weeks := ElapsedWeeks(birth, today)
		require.GreaterOrEqual(t, weeks, 0)
		require.GreaterOrEqual(t, weeks, prev)
		prev = weeks
	}
}

func TestElapsedWeeks_FutureBirthDateFloors(t *testing.T) {
	today := date(2024, time.January, 1)

	require.Equal(t, -1, ElapsedWeeks(date(2024, time.January, 2), today))
	require.Equal(t, -1, ElapsedWeeks(date(2024, time.January, 8), today))
	require.Equal(t, -2, ElapsedWeeks(date(2024, time.January, 9), today))
}

func TestElapsedWeeks_LongSpans(t *testing.T) {
	today := date(2024, time.January, 1)

	tests := []struct {
		birth string
		want  int
	}{
		{"01.01.1700", 16905},
		{"01.01.0001", 105555},
		{"01.01.9999", -416116},
	}

	for _, tt := range tests {
		birth, err := ParseBirthDate(tt.birth)
		require.NoError(t, err)

		require.Equal(t, tt.want, ElapsedWeeks(birth, today), tt.birth)
	}
}

func TestWeeksLeft_NotClamped(t *testing.T) {
	require.Equal(t, -20, WeeksLeft(TotalWeeks+20))
}

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		name  string
		weeks int
		want  int
	}{
		{"zero", 0, 0},
		{"rounds down", 23, 0},
		{"rounds up", 24, 1},
		{"half", 2340, 50},
		{"full", TotalWeeks, 100},
		{"beyond total", TotalWeeks * 2, 100},
		{"negative", -100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionPercent(tt.weeks, TotalWeeks)
			require.Equal(t, tt.want, got)
			require.GreaterOrEqual(t, got, 0)
			require.LessOrEqual(t, got, 100)
		})
	}
}

func TestCompletionPercent_PanicsOnNonPositiveTotal(t *testing.T) {
	require.Panics(t, func() { CompletionPercent(1, 0) })
}

func TestProgressBar(t *testing.T) {
	require.Equal(t, "[░░░░░░░░░░░░░░░]", ProgressBar(0, ProgressBarLength))
	require.Equal(t, "[█████░░░░░░░░░░]", ProgressBar(38, ProgressBarLength))
	require.Equal(t, "[███████████████]", ProgressBar(100, ProgressBarLength))
	require.Equal(t, "[███████████████]", ProgressBar(150, ProgressBarLength))
	require.Equal(t, "[██░░]", ProgressBar(50, 4))
}
