package entry

import (
	"math"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
)

// SequentialValidator enforces the ordering rules that keep a task's entries
// a contiguous run of days:
//
//   - the first entry must fall on the task's starting date
//   - every later entry must be exactly one day after the task's most recent
//     entry (no gaps, no backfilling)
//   - no entry may fall outside [startingDate, endingDate]
//
// Most-recent state is tracked per task, so one task's progress never gates
// another's.
type SequentialValidator struct{}

// ValidateDate checks a candidate entry date against the task's lifetime and
// its most recent entry. Dates are compared at day precision.
func (SequentialValidator) ValidateDate(t *task.Task, date time.Time) error {
	day := task.DateOnly(date)

	if day.Before(t.StartingDate) || day.After(t.EndingDate) {
		return ErrDateOutOfRange
	}

	if t.DateOfLastTaskEntry == nil {
		if !day.Equal(t.StartingDate) {
			return ErrFirstEntryDate
		}
		return nil
	}

	last := task.DateOnly(*t.DateOfLastTaskEntry)
	gap := daysBetween(last, day)
	switch {
	case gap <= 0:
		// The day already has an entry or lies before it; the unique index
		// catches exact duplicates, but rejecting here gives a clearer error.
		return ErrDateNotSequential
	case gap > 1:
		return ErrEntryGap
	}
	return nil
}

// daysBetween returns the number of calendar days from a to b, positive when
// b is after a. Inputs are expected to be midnight-normalized; the ceiling
// guards against any residual sub-day drift.
func daysBetween(a, b time.Time) int {
	return int(math.Ceil(b.Sub(a).Hours() / 24))
}
