package entry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry is one recorded value for a task on a calendar day. A task has at
// most one entry per day; the pair (task_id, date) is unique.
type Entry struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TaskID     uuid.UUID      `json:"taskId" gorm:"type:uuid;not null;uniqueIndex:idx_entry_task_date"`
	UserID     uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index:idx_entry_user"`
	Type       task.TaskType  `json:"type" gorm:"size:16;not null"`
	Date       time.Time      `json:"date" gorm:"not null;uniqueIndex:idx_entry_task_date"`
	Value      datatypes.JSON `json:"value" gorm:"not null"`
	IsBreakDay bool           `json:"isBreakDay" gorm:"not null;default:false"`
	Comment    string         `json:"comment" gorm:"type:text;not null;default:''"`
	ExpiresAt  time.Time      `json:"expiresAt" gorm:"not null;index:idx_entry_expires"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"not null;default:current_timestamp"`
	UpdatedAt  time.Time      `json:"updatedAt" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

func (Entry) TableName() string {
	return "entries"
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// BoolValue decodes the entry value as a boolean.
func (e *Entry) BoolValue() (bool, error) {
	var v bool
	if err := json.Unmarshal(e.Value, &v); err != nil {
		return false, fmt.Errorf("entry %s: value is not a boolean: %w", e.ID, err)
	}
	return v, nil
}

// NumberValue decodes the entry value as a number. Used for both the number
// and minutes types.
func (e *Entry) NumberValue() (float64, error) {
	var v float64
	if err := json.Unmarshal(e.Value, &v); err != nil {
		return 0, fmt.Errorf("entry %s: value is not a number: %w", e.ID, err)
	}
	return v, nil
}

// ClockValue decodes the entry value as an HH:MM clock string.
func (e *Entry) ClockValue() (string, error) {
	var v string
	if err := json.Unmarshal(e.Value, &v); err != nil {
		return "", fmt.Errorf("entry %s: value is not a string: %w", e.ID, err)
	}
	if !task.IsClockString(v) {
		return "", fmt.Errorf("entry %s: %q is not a valid HH:MM time", e.ID, v)
	}
	return v, nil
}

// ClockToMinutes converts an HH:MM string to minutes since midnight.
func ClockToMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid HH:MM time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToClock converts minutes since midnight back to an HH:MM string.
// The input is clamped into a single day.
func MinutesToClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CreateEntryInput carries a new entry from the transport layer. Value is the
// raw JSON payload; the service decodes it according to the task type. Type
// is the task type the client believes it is writing and must match the
// stored one.
type CreateEntryInput struct {
	UserID     uuid.UUID
	TaskID     uuid.UUID
	Type       string
	Date       time.Time
	Value      json.RawMessage
	IsBreakDay bool
	Comment    string
}

// UpdateEntryInput replaces the mutable fields of an existing entry (value,
// isBreakDay, comment). Date is used only to confirm the caller is editing
// the day they think they are.
type UpdateEntryInput struct {
	UserID     uuid.UUID
	TaskID     uuid.UUID
	EntryID    uuid.UUID
	Type       string
	Date       time.Time
	Value      json.RawMessage
	IsBreakDay bool
	Comment    string
}
