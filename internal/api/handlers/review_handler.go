package handlers

import (
	"net/http"
	"time"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/middleware"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/review"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler handles HTTP requests for review statistics
type ReviewHandler struct {
	service review.Service
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(service review.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// parseISODate validates the strict ISO-8601 shape before parsing, so a
// malformed query value gets a clear error rather than a zero time.
func parseISODate(raw string) (time.Time, bool) {
	if !review.IsISODateString(raw) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// WeeklyReview godoc
// @Summary Weekly review statistics
// @Description Statistics for the Sunday-to-Saturday week containing the given date
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Param date query string true "ISO-8601 date inside the week"
// @Success 200 {object} review.WeeklyReviewData "Weekly statistics"
// @Failure 400 {object} map[string]string "Missing or malformed date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found or no entries in window"
// @Router /api/tasks/{taskId}/reviews/weekly [get]
func (h *ReviewHandler) WeeklyReview(c *gin.Context) {
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

	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query missing"})
		return
	}
	date, ok := parseISODate(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date not in ISO string format"})
		return
	}

	data, err := h.service.WeeklyReview(c.Request.Context(), userID, taskID, date)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

// MonthlyReview godoc
// @Summary Monthly review statistics
// @Description Statistics for the calendar month containing the given date
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Param date query string true "ISO-8601 date inside the month"
// @Success 200 {object} review.PeriodReviewData "Monthly statistics"
// @Failure 400 {object} map[string]string "Missing or malformed date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found or no entries in window"
// @Router /api/tasks/{taskId}/reviews/monthly [get]
func (h *ReviewHandler) MonthlyReview(c *gin.Context) {
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

	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query missing"})
		return
	}
	date, ok := parseISODate(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date not in ISO string format"})
		return
	}

	data, err := h.service.MonthlyReview(c.Request.Context(), userID, taskID, date)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

// CustomReview godoc
// @Summary Custom-window review statistics
// @Description Statistics for a caller-supplied inclusive date range
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Param startingDate query string true "ISO-8601 range start"
// @Param stopDate query string true "ISO-8601 range end"
// @Success 200 {object} review.PeriodReviewData "Window statistics"
// @Failure 400 {object} map[string]string "Missing or malformed dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found or no entries in window"
// @Router /api/tasks/{taskId}/reviews/custom [get]
func (h *ReviewHandler) CustomReview(c *gin.Context) {
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

	rawStart := c.Query("startingDate")
	rawStop := c.Query("stopDate")
	if rawStart == "" || rawStop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "starting or stop date query missing"})
		return
	}
	start, okStart := parseISODate(rawStart)
	stop, okStop := parseISODate(rawStop)
	if !okStart || !okStop {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates not in ISO string format"})
		return
	}

	data, err := h.service.CustomReview(c.Request.Context(), userID, taskID, start, stop)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

// OverallReview godoc
// @Summary Overall review statistics
// @Description Statistics over the task's whole lifetime
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Success 200 {object} review.PeriodReviewData "Lifetime statistics"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found or no entries"
// @Router /api/tasks/{taskId}/reviews/overall [get]
func (h *ReviewHandler) OverallReview(c *gin.Context) {
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

	data, err := h.service.OverallReview(c.Request.Context(), userID, taskID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}
