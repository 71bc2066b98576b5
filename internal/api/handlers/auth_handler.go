package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/api/dto"
	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/user"
	"github.com/Emmanuel-Ibekwe/trackr-backend/pkg/config"
	"github.com/Emmanuel-Ibekwe/trackr-backend/pkg/security/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler issues access tokens. Password reset, email verification and
// OAuth live in an external identity service.
type AuthHandler struct {
	users user.Repository
	cfg   config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users user.Repository, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.users.FindByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	} else if !errors.Is(err, user.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := h.users.Create(c.Request.Context(), u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Email, h.cfg.JWTSecret, h.cfg.JWTIssuer, h.cfg.JWTExpiryHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Token: token, User: UserToResponse(u)})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse "Token issued"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Wrong email or password"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		// The same response for a missing account and a wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if !auth.CheckPassword(req.Password, u.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Email, h.cfg.JWTSecret, h.cfg.JWTIssuer, h.cfg.JWTExpiryHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: UserToResponse(u)})
}
