package routes

import (
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/handlers"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// ReviewRoutes handles the setup of review-statistics routes
type ReviewRoutes struct {
	handler   *handlers.ReviewHandler
	jwtSecret string
}

// NewReviewRoutes creates a new ReviewRoutes instance
func NewReviewRoutes(handler *handlers.ReviewHandler, jwtSecret string) *ReviewRoutes {
	return &ReviewRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes registers all review-statistics routes
func (r *ReviewRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	reviews := router.Group("/api/tasks/:taskId/reviews")
	reviews.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	reviews.Use(metrics.CollectMetrics())
	reviews.Use(gzip.Gzip(gzip.DefaultCompression))

	reviews.GET("/weekly", r.handler.WeeklyReview)
	reviews.GET("/monthly", r.handler.MonthlyReview)
	reviews.GET("/custom", r.handler.CustomReview)
	reviews.GET("/overall", r.handler.OverallReview)
}
