package handlers

import (
	"net/http"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/dto"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/middleware"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	service task.Service
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTask godoc
// @Summary Create a new task
// @Description Create a trackable goal with a type, ideal value and lifetime
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse "Task created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	input := task.CreateTaskInput{
		UserID:       userID,
		Title:        req.Title,
		Type:         req.Type,
		Unit:         req.Unit,
		BreakDays:    req.BreakDays,
		StartingDate: req.StartingDate,
		EndingDate:   req.EndingDate,
		IdealValue:   req.IdealValue,
		MaxTime:      req.MaxTime,
		Description:  req.Description,
	}

	created, err := h.service.CreateTask(c.Request.Context(), input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": TaskToResponse(created)})
}

// GetTask godoc
// @Summary Get a task by ID
// @Description Get detailed information about a specific task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Success 200 {object} dto.TaskResponse "Task details"
// @Failure 400 {object} map[string]string "Invalid task ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{taskId} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
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

	t, err := h.service.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": TaskToResponse(t)})
}

// ListTasks godoc
// @Summary List the authenticated user's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TaskResponse "Tasks"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": out})
}

// UpdateTask godoc
// @Summary Update a task
// @Description Replace a task's mutable fields. Type, idealValue and startingDate are locked once the task has entries.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Param task body dto.UpdateTaskRequest true "Task update request"
// @Success 200 {object} dto.TaskResponse "Updated task"
// @Failure 400 {object} map[string]string "Invalid request or immutable field change"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{taskId} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	input := task.UpdateTaskInput{
		Title:        req.Title,
		Type:         req.Type,
		Unit:         req.Unit,
		BreakDays:    req.BreakDays,
		StartingDate: req.StartingDate,
		EndingDate:   req.EndingDate,
		IdealValue:   req.IdealValue,
		MaxTime:      req.MaxTime,
		Description:  req.Description,
	}

	updated, err := h.service.UpdateTask(c.Request.Context(), userID, taskID, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": TaskToResponse(updated)})
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Delete a task and every entry recorded under it
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID" format(uuid)
// @Success 200 {object} map[string]string "Task deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
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

	if err := h.service.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
