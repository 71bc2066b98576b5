package routes

import (
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/handlers"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all task-related routes
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	tasks.Use(metrics.CollectMetrics())

	tasks.GET("", r.handler.ListTasks)
	tasks.GET("/:taskId", r.handler.GetTask)

	tasks.POST("", r.handler.CreateTask)
	tasks.PUT("/:taskId", r.handler.UpdateTask)
	tasks.DELETE("/:taskId", r.handler.DeleteTask)
}
