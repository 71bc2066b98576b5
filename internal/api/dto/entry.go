package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CreateEntryRequest represents the request body for recording a daily entry.
// Type must match the task's type; IsBreakDay is a pointer so an omitted
// field is distinguishable from an explicit false.
type CreateEntryRequest struct {
	Type       string          `json:"type" binding:"required"`
	Value      json.RawMessage `json:"value" binding:"required"`
	IsBreakDay *bool           `json:"isBreakDay" binding:"required"`
	Comment    string          `json:"comment"`
	Date       time.Time       `json:"date" binding:"required"`
}

// UpdateEntryRequest represents the request body for editing an entry. The
// date must equal the entry's stored date; it cannot be changed.
type UpdateEntryRequest struct {
	Type       string          `json:"type" binding:"required"`
	Value      json.RawMessage `json:"value" binding:"required"`
	IsBreakDay *bool           `json:"isBreakDay" binding:"required"`
	Comment    string          `json:"comment"`
	Date       time.Time       `json:"date" binding:"required"`
}

// EntryResponse represents an entry in API responses
type EntryResponse struct {
	ID         uuid.UUID   `json:"id"`
	TaskID     uuid.UUID   `json:"taskId"`
	Type       string      `json:"type"`
	Date       time.Time   `json:"date"`
	Value      interface{} `json:"value"`
	IsBreakDay bool        `json:"isBreakDay"`
	Comment    string      `json:"comment"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// EntriesPageResponse is one page of a task's entries plus paging metadata
type EntriesPageResponse struct {
	Entries  []EntryResponse `json:"entries"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}
