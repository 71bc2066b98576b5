package handlers

import (
	"encoding/json"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/dto"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/entry"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/user"
)

// TaskToResponse converts a task model to its API representation
func TaskToResponse(t *task.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:                  t.ID,
		UserID:              t.UserID,
		Title:               t.Title,
		Type:                string(t.Type),
		IdealValue:          t.IdealValueRaw(),
		MaxTime:             t.MaxTime,
		BreakDays:           t.BreakDays,
		Unit:                t.Unit,
		Description:         t.Description,
		StartingDate:        t.StartingDate,
		EndingDate:          t.EndingDate,
		DateOfLastTaskEntry: t.DateOfLastTaskEntry,
		ExpiresAt:           t.ExpiresAt,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// EntryToResponse converts an entry model to its API representation
func EntryToResponse(e *entry.Entry) dto.EntryResponse {
	var value interface{}
	// Value is canonical JSON written by the codec, so this cannot fail for
	// stored rows.
	_ = json.Unmarshal(e.Value, &value)

	return dto.EntryResponse{
		ID:         e.ID,
		TaskID:     e.TaskID,
		Type:       string(e.Type),
		Date:       e.Date,
		Value:      value,
		IsBreakDay: e.IsBreakDay,
		Comment:    e.Comment,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// EntriesPageToResponse converts a page of entries to its API representation
func EntriesPageToResponse(p *entry.EntriesPage) dto.EntriesPageResponse {
	out := dto.EntriesPageResponse{
		Entries:  make([]dto.EntryResponse, 0, len(p.Entries)),
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for i := range p.Entries {
		out.Entries = append(out.Entries, EntryToResponse(&p.Entries[i]))
	}
	return out
}

// UserToResponse converts a user model to its API representation
func UserToResponse(u *user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
