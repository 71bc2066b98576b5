package entry

import (
	"testing"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name      string
		lastEntry *time.Time
		candidate time.Time
		wantErr   error
	}{
		{
			name:      "first entry on starting date",
			candidate: date(2024, 7, 1),
		},
		{
			name:      "first entry after starting date",
			candidate: date(2024, 7, 2),
			wantErr:   ErrFirstEntryDate,
		},
		{
			name:      "next day after most recent entry",
			lastEntry: datePtr(date(2024, 7, 3)),
			candidate: date(2024, 7, 4),
		},
		{
			name:      "skipping a day leaves a gap",
			lastEntry: datePtr(date(2024, 7, 3)),
			candidate: date(2024, 7, 5),
			wantErr:   ErrEntryGap,
		},
		{
			name:      "same day as most recent entry",
			lastEntry: datePtr(date(2024, 7, 3)),
			candidate: date(2024, 7, 3),
			wantErr:   ErrDateNotSequential,
		},
		{
			name:      "backfilling an earlier day",
			lastEntry: datePtr(date(2024, 7, 3)),
			candidate: date(2024, 7, 2),
			wantErr:   ErrDateNotSequential,
		},
		{
			name:      "before the task started",
			candidate: date(2024, 6, 30),
			wantErr:   ErrDateOutOfRange,
		},
		{
			name:      "after the task ended",
			lastEntry: datePtr(date(2024, 7, 31)),
			candidate: date(2024, 8, 1),
			wantErr:   ErrDateOutOfRange,
		},
		{
			name:      "time of day is ignored",
			lastEntry: datePtr(date(2024, 7, 3)),
			candidate: time.Date(2024, 7, 4, 23, 59, 59, 0, time.UTC),
		},
	}

	var v SequentialValidator
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := &task.Task{
				StartingDate:        date(2024, 7, 1),
				EndingDate:          date(2024, 7, 31),
				DateOfLastTaskEntry: tt.lastEntry,
			}
			err := v.ValidateDate(tk, tt.candidate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
