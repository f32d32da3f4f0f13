package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jiradash/internal/jira"
)

// Handler handles authentication-related HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new authentication handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid login request",
			Details: err.Error(),
		})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.loginError(c, req.Email, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		UserEmail:   result.Session.Email,
		JiraDomain:  result.Session.JiraDomain,
		ExpiresIn:   result.ExpiresIn,
		Message:     "Login successful",
	})
}

// loginError maps service failures to the documented statuses. Upstream and
// storage details are logged with caller context, never echoed to the client.
func (h *Handler) loginError(c *gin.Context, email string, err error) {
	switch {
	case errors.Is(err, jira.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid Jira credentials. Please check your email, domain, and API token.",
		})
	case errors.Is(err, jira.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Access denied. Please check your Jira permissions.",
		})
	case errors.Is(err, jira.ErrTimeout):
		c.JSON(http.StatusRequestTimeout, ErrorResponse{
			Error:   "upstream_timeout",
			Message: "Request to Jira timed out. Please try again.",
		})
	case errors.Is(err, jira.ErrUnreachable):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_unreachable",
			Message: "Failed to connect to Jira. Please check your domain.",
		})
	default:
		slog.Error("login failed", "email", email, "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error during login",
		})
	}
}

// Logout handles POST /auth/logout (protected)
func (h *Handler) Logout(c *gin.Context) {
	sess, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Not authenticated",
		})
		return
	}

	if err := h.service.Logout(c.Request.Context(), sess.ID); err != nil {
		slog.Error("logout failed", "email", sess.Email, "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Error during logout",
		})
		return
	}

	slog.Info("user logged out", "email", sess.Email)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me handles GET /auth/me (protected)
func (h *Handler) Me(c *gin.Context) {
	sess, ok := CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":         sess.Email,
		"jira_domain":   sess.JiraDomain,
		"authenticated": true,
	})
}
