package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest represents the request body for creating a task.
// IdealValue is raw JSON; its runtime type must match Type (number for
// number/minutes, "HH:MM" string for time, boolean for boolean).
type CreateTaskRequest struct {
	Title        string          `json:"title" binding:"required"`
	Type         string          `json:"type" binding:"required"`
	IdealValue   json.RawMessage `json:"idealValue" binding:"required"`
	MaxTime      *string         `json:"maxTime,omitempty"`
	BreakDays    []string        `json:"breakDays"`
	Unit         string          `json:"unit" binding:"required"`
	Description  string          `json:"description"`
	StartingDate time.Time       `json:"startingDate" binding:"required"`
	EndingDate   *time.Time      `json:"endingDate,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task. It
// carries the full replacement state.
type UpdateTaskRequest struct {
	Title        string          `json:"title" binding:"required"`
	Type         string          `json:"type" binding:"required"`
	IdealValue   json.RawMessage `json:"idealValue" binding:"required"`
	MaxTime      *string         `json:"maxTime,omitempty"`
	BreakDays    []string        `json:"breakDays"`
	Unit         string          `json:"unit" binding:"required"`
	Description  string          `json:"description"`
	StartingDate time.Time       `json:"startingDate" binding:"required"`
	EndingDate   *time.Time      `json:"endingDate,omitempty"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID                  uuid.UUID   `json:"id"`
	UserID              uuid.UUID   `json:"userId"`
	Title               string      `json:"title"`
	Type                string      `json:"type"`
	IdealValue          interface{} `json:"idealValue"`
	MaxTime             *string     `json:"maxTime,omitempty"`
	BreakDays           []string    `json:"breakDays"`
	Unit                string      `json:"unit"`
	Description         string      `json:"description"`
	StartingDate        time.Time   `json:"startingDate"`
	EndingDate          time.Time   `json:"endingDate"`
	DateOfLastTaskEntry *time.Time  `json:"dateOfLastTaskEntry"`
	ExpiresAt           time.Time   `json:"expiresAt"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}
