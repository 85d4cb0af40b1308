package delivery

import (
	"errors"
	"log"
	"net/http"

	authdomain "todo-backend/internal/auth/domain"
	authdto "todo-backend/internal/auth/dto"
	"todo-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and profile requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Signup registers a new account
// POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req authdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authUsecase.Signup(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authdto.MessageResponse{Message: "Signup successful"})
}

// Login exchanges credentials for a bearer token
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the caller's profile
// GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.authUsecase.GetProfile(c.Request.Context(), SubjectFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMe overwrites the caller's display name
// PUT /me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req authdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authUsecase.UpdateProfile(c.Request.Context(), SubjectFromContext(c), *req.Name); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authdto.MessageResponse{Message: "Profile updated"})
}

// respondBindError hides validator details from clients.
func respondBindError(c *gin.Context, err error) {
	log.Printf("[Auth] %s %s bad request: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authdomain.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": authdomain.ErrDuplicateEmail.Error()})
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": authdomain.ErrInvalidCredentials.Error()})
	case errors.Is(err, authdomain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": authdomain.ErrUserNotFound.Error()})
	default:
		log.Printf("[Auth] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
