package app

import (
	"time"

	"github.com/cesargomez89/praiseteam/internal/constants"
)

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ServiceDate returns the Sunday on or after now.
func ServiceDate(now time.Time) time.Time {
	day := StartOfDay(now)
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}

// DefaultRehearsalDate is the usual Thursday rehearsal before a Sunday service.
func DefaultRehearsalDate(service time.Time) time.Time {
	return StartOfDay(service).AddDate(0, 0, -constants.RehearsalLeadDays)
}
