package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDateFormat = errors.New("invalid date format")

// birthDateInputLayout also accepts single-digit day and month ("1.9.1990").
const birthDateInputLayout = "2.1.2006"

// ParseBirthDate parses a DD.MM.YYYY date. The result is midnight UTC.
func ParseBirthDate(text string) (time.Time, error) {
	date, err := time.Parse(birthDateInputLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}

	return date, nil
}

func FormatBirthDate(date time.Time) string {
	return date.Format(BirthDateLayout)
}

// DateOf truncates t to its calendar date in t's location and returns it as
// midnight UTC, so that day arithmetic never crosses a DST shift.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
