package routes

import (
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

// AuthRoutes handles the setup of authentication routes
type AuthRoutes struct {
	handler *handlers.AuthHandler
}

// NewAuthRoutes creates a new AuthRoutes instance
func NewAuthRoutes(handler *handlers.AuthHandler) *AuthRoutes {
	return &AuthRoutes{handler: handler}
}

// RegisterRoutes registers all authentication routes
func (r *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")

	auth.POST("/register", r.handler.Register)
	auth.POST("/login", r.handler.Login)
}
