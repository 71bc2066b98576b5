package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		sunday   time.Time
		saturday time.Time
	}{
		{
			name:     "Wednesday mid-week",
			input:    time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC),
			sunday:   time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
			saturday: time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Sunday maps to itself",
			input:    time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
			sunday:   time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
			saturday: time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Saturday maps to its own week",
			input:    time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
			sunday:   time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
			saturday: time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "week spanning a month boundary",
			input:    time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			sunday:   time.Date(2024, 7, 28, 0, 0, 0, 0, time.UTC),
			saturday: time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "time of day is discarded",
			input:    time.Date(2024, 7, 17, 18, 45, 12, 0, time.UTC),
			sunday:   time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
			saturday: time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WeekBoundaries(tt.input)
			assert.Equal(t, tt.sunday, w.FirstDay)
			assert.Equal(t, tt.saturday, w.LastDay)
		})
	}
}

func TestMonthBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		first time.Time
		last  time.Time
	}{
		{
			name:  "mid-month",
			input: time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC),
			first: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			last:  time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "February in a leap year",
			input: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			first: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			last:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "February outside a leap year",
			input: time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
			first: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			last:  time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "December rolls into the new year correctly",
			input: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			first: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			last:  time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := MonthBoundaries(tt.input)
			assert.Equal(t, tt.first, w.FirstDay)
			assert.Equal(t, tt.last, w.LastDay)
		})
	}
}

func TestIsISODateString(t *testing.T) {
	valid := []string{
		"2024-07-17T00:00:00.000Z",
		"2024-07-17T12:30:45Z",
		"2024-07-17T12:30:45+01:00",
		"2024-07-17T12:30:45.123456-05:00",
	}
	for _, s := range valid {
		assert.True(t, IsISODateString(s), s)
	}

	invalid := []string{
		"",
		"2024-07-17",
		"2024-07-17 12:30:45",
		"17/07/2024T00:00:00Z",
		"2024-07-17T00:00Z",
		"not a date",
	}
	for _, s := range invalid {
		assert.False(t, IsISODateString(s), s)
	}
}
