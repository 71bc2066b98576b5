package review

import (
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/entry"
)

// WeeklyReviewData is the statistics report for one Sunday-to-Saturday week.
// Average, extrema, cumulative and score fields are polymorphic across task
// types (numbers for number/minutes, HH:MM strings for time, counts for
// boolean) and null where a type has no meaningful value for them.
type WeeklyReviewData struct {
	FirstDayOfWeek         time.Time     `json:"firstDayOfWeek"`
	Entries                []entry.Entry `json:"entries"`
	BreakDaysEntriesLength int           `json:"breakDaysEntriesLength"`
	BreakDays              []string      `json:"breakDays"`
	WeeklyAverage          interface{}   `json:"weeklyAverage"`
	LowestValue            interface{}   `json:"lowestValue"`
	HighestValue           interface{}   `json:"highestValue"`
	WorkDayEntriesLength   int           `json:"workDayEntriesLength"`
	WeeklyCumulative       interface{}   `json:"weeklyCumulative"`
	IdealCumulative        interface{}   `json:"idealCumulative"`
	IdealValue             interface{}   `json:"idealValue"`
	Unit                   string        `json:"unit"`
	TimeScores             []int         `json:"timeScores,omitempty"`
	Score                  interface{}   `json:"score"`
}

// PeriodReviewData is the statistics report for an arbitrary inclusive date
// window. Monthly, custom and overall reviews all share this shape; only the
// window differs.
type PeriodReviewData struct {
	FirstDay               time.Time     `json:"firstDay"`
	LastDay                time.Time     `json:"lastDay"`
	Entries                []entry.Entry `json:"entries"`
	BreakDaysEntriesLength int           `json:"breakDaysEntriesLength"`
	BreakDays              []string      `json:"breakDays"`
	AverageValue           interface{}   `json:"averageValue"`
	LowestValue            interface{}   `json:"lowestValue"`
	HighestValue           interface{}   `json:"highestValue"`
	WorkDayEntriesLength   int           `json:"workDayEntriesLength"`
	Cumulative             interface{}   `json:"cumulative"`
	IdealCumulative        interface{}   `json:"idealCumulative"`
	IdealValue             interface{}   `json:"idealValue"`
	Unit                   string        `json:"unit"`
	TimeScores             []int         `json:"timeScores,omitempty"`
	Score                  interface{}   `json:"score"`
}
