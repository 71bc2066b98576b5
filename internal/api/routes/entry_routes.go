package routes

import (
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/handlers"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// EntryRoutes handles the setup of daily-entry routes
type EntryRoutes struct {
	handler   *handlers.EntryHandler
	jwtSecret string
}

// NewEntryRoutes creates a new EntryRoutes instance
func NewEntryRoutes(handler *handlers.EntryHandler, jwtSecret string) *EntryRoutes {
	return &EntryRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all daily-entry routes
func (r *EntryRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	entries := router.Group("/api/tasks/:taskId/entries")
	entries.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	entries.Use(metrics.CollectMetrics())

	// Entry pages compress well; they are the largest read payloads.
	entries.GET("", gzip.Gzip(gzip.DefaultCompression), r.handler.ListEntries)

	entries.POST("", r.handler.CreateEntry)
	entries.PUT("/:entryId", r.handler.UpdateEntry)
	entries.DELETE("/:entryId", r.handler.DeleteEntry)
	entries.DELETE("", r.handler.ClearEntries)
}
