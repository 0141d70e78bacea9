package domain

import "time"

// NextWeekly returns the first instant strictly after now that falls on
// weekday at hour:minute in loc.
func NextWeekly(now time.Time, weekday time.Weekday, hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	days := (int(weekday) - int(local.Weekday()) + 7) % 7

	next := time.Date(local.Year(), local.Month(), local.Day()+days, hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+days+7, hour, minute, 0, 0, loc)
	}

	return next
}
