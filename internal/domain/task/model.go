package task

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskType is the value type a task tracks. It is immutable once the task
// has at least one entry.
type TaskType string

const (
	TypeNumber  TaskType = "number"
	TypeMinutes TaskType = "minutes"
	TypeTime    TaskType = "time"
	TypeBoolean TaskType = "boolean"
)

// IsValid reports whether t is one of the four known task types.
func (t TaskType) IsValid() bool {
	switch t {
	case TypeNumber, TypeMinutes, TypeTime, TypeBoolean:
		return true
	}
	return false
}

// clockRegexp validates "HH:MM" with HH 00-23 and MM 00-59.
var clockRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// IsClockString reports whether s is a valid 24-hour "HH:MM" string.
func IsClockString(s string) bool {
	return clockRegexp.MatchString(s)
}

// validWeekdays in calendar order, Sunday-start.
var validWeekdays = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// IsWeekdayName reports whether day is a capitalized weekday name.
func IsWeekdayName(day string) bool {
	for _, d := range validWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

// WeekdayName returns the capitalized weekday name of a date.
func WeekdayName(t time.Time) string {
	return validWeekdays[int(t.Weekday())]
}

// DateOnly truncates a timestamp to midnight UTC of its calendar day. Every
// date crossing a service boundary goes through this so the validator and the
// aggregator always compare whole days in one reference timezone.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Task represents a trackable daily goal
type Task struct {
	ID                  uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID              uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index:idx_task_user"`
	Title               string         `json:"title" gorm:"size:255;not null"`
	Type                TaskType       `json:"type" gorm:"size:16;not null"`
	IdealValue          datatypes.JSON `json:"idealValue" gorm:"not null"`
	MaxTime             *string        `json:"maxTime,omitempty" gorm:"size:5"`
	BreakDays           pq.StringArray `json:"breakDays" gorm:"type:text[]"`
	Unit                string         `json:"unit" gorm:"size:64;not null"`
	Description         string         `json:"description" gorm:"type:text"`
	StartingDate        time.Time      `json:"startingDate" gorm:"not null"`
	EndingDate          time.Time      `json:"endingDate" gorm:"not null"`
	DateOfLastTaskEntry *time.Time     `json:"dateOfLastTaskEntry" gorm:"default:null"`
	ExpiresAt           time.Time      `json:"expiresAt" gorm:"not null;index:idx_task_expires"`
	CreatedAt           time.Time      `json:"createdAt" gorm:"not null;default:current_timestamp"`
	UpdatedAt           time.Time      `json:"updatedAt" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// BeforeCreate is called before inserting a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ValidateIdealValue checks that the stored ideal value's runtime type
// matches the task type: a number for number/minutes, an "HH:MM" string for
// time, a boolean for boolean.
func (t *Task) ValidateIdealValue() error {
	switch t.Type {
	case TypeNumber, TypeMinutes:
		var v float64
		if err := json.Unmarshal(t.IdealValue, &v); err != nil {
			return fmt.Errorf("%w: idealValue must be a number for type %s", ErrInvalidIdealValue, t.Type)
		}
	case TypeTime:
		var v string
		if err := json.Unmarshal(t.IdealValue, &v); err != nil || !IsClockString(v) {
			return fmt.Errorf("%w: idealValue must be an HH:MM string for type time", ErrInvalidIdealValue)
		}
	case TypeBoolean:
		var v bool
		if err := json.Unmarshal(t.IdealValue, &v); err != nil {
			return fmt.Errorf("%w: idealValue must be a boolean for type boolean", ErrInvalidIdealValue)
		}
	default:
		return ErrInvalidTaskType
	}
	return nil
}

// IdealNumber returns the ideal value for number and minutes tasks.
func (t *Task) IdealNumber() (float64, error) {
	var v float64
	if err := json.Unmarshal(t.IdealValue, &v); err != nil {
		return 0, fmt.Errorf("%w: idealValue is not a number", ErrInvalidIdealValue)
	}
	return v, nil
}

// IdealClock returns the ideal value for time tasks as an "HH:MM" string.
func (t *Task) IdealClock() (string, error) {
	var v string
	if err := json.Unmarshal(t.IdealValue, &v); err != nil || !IsClockString(v) {
		return "", fmt.Errorf("%w: idealValue is not an HH:MM string", ErrInvalidIdealValue)
	}
	return v, nil
}

// IdealValueRaw returns the ideal value decoded to its natural Go type for
// API responses.
func (t *Task) IdealValueRaw() interface{} {
	var v interface{}
	if err := json.Unmarshal(t.IdealValue, &v); err != nil {
		return nil
	}
	return v
}

// CreateTaskInput represents the input for creating a new task
type CreateTaskInput struct {
	UserID       uuid.UUID
	Title        string
	Type         string
	Unit         string
	BreakDays    []string
	StartingDate time.Time
	EndingDate   *time.Time
	IdealValue   json.RawMessage
	MaxTime      *string
	Description  string
}

// UpdateTaskInput represents the input for updating a task. It carries the
// full replacement state, mirroring the create shape.
type UpdateTaskInput struct {
	Title        string
	Type         string
	Unit         string
	BreakDays    []string
	StartingDate time.Time
	EndingDate   *time.Time
	IdealValue   json.RawMessage
	MaxTime      *string
	Description  string
}
