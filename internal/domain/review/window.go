package review

import (
	"regexp"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
)

// Window is an inclusive date range over which a review is computed.
type Window struct {
	FirstDay time.Time
	LastDay  time.Time
}

// WeekBoundaries returns the Sunday-to-Saturday week containing the given
// date, both bounds midnight-normalized.
func WeekBoundaries(date time.Time) Window {
	day := task.DateOnly(date)
	offset := int(day.Weekday())
	return Window{
		FirstDay: day.AddDate(0, 0, -offset),
		LastDay:  day.AddDate(0, 0, 6-offset),
	}
}

// MonthBoundaries returns the first and last calendar day of the month
// containing the given date.
func MonthBoundaries(date time.Time) Window {
	day := task.DateOnly(date)
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{
		FirstDay: first,
		LastDay:  first.AddDate(0, 1, -1),
	}
}

var isoDateRegexp = regexp.MustCompile(
	`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})$`)

// IsISODateString reports whether s is a full ISO-8601 timestamp, e.g.
// "2024-07-17T00:00:00.000Z". Date validation happens before parsing so a
// malformed query string fails loudly instead of parsing as a zero time.
func IsISODateString(s string) bool {
	return isoDateRegexp.MatchString(s)
}
