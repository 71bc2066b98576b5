package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/dto"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/middleware"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/entry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EntryHandler handles HTTP requests for daily entry operations
type EntryHandler struct {
	service entry.Service
}

// NewEntryHandler creates a new EntryHandler instance
func NewEntryHandler(service entry.Service) *EntryHandler {
	return &EntryHandler{service: service}
}

// CreateEntry godoc
// @Summary Record a daily entry
// @Description Record the day's value for a task. The date must continue the task's unbroken run of days.
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Param entry body dto.CreateEntryRequest true "Entry creation request"
// @Success 201 {object} dto.EntryResponse "Entry created"
// @Failure 400 {object} map[string]string "Validation failure (gap, bounds, first-entry date, type mismatch)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found"
// @Failure 409 {object} map[string]string "Entry already exists for this date"
// @Router /api/tasks/{taskId}/entries [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	input := entry.CreateEntryInput{
		UserID:     userID,
		TaskID:     taskID,
		Type:       req.Type,
		Date:       req.Date,
		Value:      req.Value,
		IsBreakDay: *req.IsBreakDay,
		Comment:    req.Comment,
	}

	created, err := h.service.CreateEntry(c.Request.Context(), input)
	if err != nil {
		// A type mismatch on a fresh entry is a malformed request.
		if errors.Is(err, entry.ErrTypeMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": EntryToResponse(created)})
}

// UpdateEntry godoc
// @Summary Edit a daily entry
// @Description Replace an entry's value, break-day flag and comment. The date cannot be changed.
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Param entryId path string true "Entry ID" format(uuid)
// @Param entry body dto.UpdateEntryRequest true "Entry update request"
// @Success 200 {object} dto.EntryResponse "Updated entry"
// @Failure 400 {object} map[string]string "Invalid request or date change attempt"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Type mismatch"
// @Router /api/tasks/{taskId}/entries/{entryId} [put]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}
	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	input := entry.UpdateEntryInput{
		UserID:     userID,
		TaskID:     taskID,
		EntryID:    entryID,
		Type:       req.Type,
		Date:       req.Date,
		Value:      req.Value,
		IsBreakDay: *req.IsBreakDay,
		Comment:    req.Comment,
	}

	updated, err := h.service.UpdateEntry(c.Request.Context(), input)
	if err != nil {
		// Editing through the wrong type is a conflict with stored state.
		if errors.Is(err, entry.ErrTypeMismatch) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": EntryToResponse(updated)})
}

// ListEntries godoc
// @Summary List a task's entries
// @Description List entries in ascending date order, 8 per page
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Param page query int false "1-indexed page number" default(1)
// @Success 200 {object} dto.EntriesPageResponse "Page of entries"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{taskId}/entries [get]
func (h *EntryHandler) ListEntries(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page number"})
			return
		}
	}

	result, err := h.service.ListEntries(c.Request.Context(), userID, taskID, page)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, EntriesPageToResponse(result))
}

// DeleteEntry godoc
// @Summary Delete the most recent entry
// @Description Delete an entry; only the task's most recent entry can be removed
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Param entryId path string true "Entry ID" format(uuid)
// @Success 200 {object} map[string]string "Entry deleted"
// @Failure 400 {object} map[string]string "Entry is not the most recent"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /api/tasks/{taskId}/entries/{entryId} [delete]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}
	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry ID"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.service.DeleteMostRecent(c.Request.Context(), userID, taskID, entryID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

// ClearEntries godoc
// @Summary Clear all entries of a task
// @Description Delete every entry of a task and reset its progress
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Success 200 {object} map[string]string "Entries cleared"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{taskId}/entries [delete]
func (h *EntryHandler) ClearEntries(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.service.DeleteAll(c.Request.Context(), userID, taskID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entries cleared"})
}
