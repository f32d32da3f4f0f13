// Package projects serves the dashboard's project endpoints. Each request
// decrypts the stored Jira credential and builds a fresh upstream client;
// clients are never cached across requests, so a rotated credential can
// never be served stale.
package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jiradash/internal/auth"
	"jiradash/internal/crypto"
	"jiradash/internal/jira"
	"jiradash/internal/session"
)

// ProjectLister fetches the caller's projects. Satisfied by *jira.Client.
type ProjectLister interface {
	GetUserProjects(ctx context.Context) ([]jira.Project, error)
}

// ListerFactory builds a lister for one credential set.
type ListerFactory func(jiraDomain, email, apiToken string) ProjectLister

// ListResponse is the body of GET /projects/.
type ListResponse struct {
	Projects   []jira.Project `json:"projects"`
	TotalCount int            `json:"total_count"`
	Message    string         `json:"message"`
}

// Handler handles project data requests for authenticated users.
type Handler struct {
	cipher    *crypto.Cipher
	newLister ListerFactory
}

// NewHandler creates a projects handler. If newLister is nil, a real Jira
// client is used.
func NewHandler(cipher *crypto.Cipher, newLister ListerFactory) *Handler {
	if newLister == nil {
		newLister = func(jiraDomain, email, apiToken string) ProjectLister {
			return jira.NewClient(jiraDomain, email, apiToken)
		}
	}
	return &Handler{cipher: cipher, newLister: newLister}
}

// List handles GET /projects/
func (h *Handler) List(c *gin.Context) {
	sess, ok := auth.CurrentSession(c)
	if !ok {
		unauthenticated(c)
		return
	}

	projects, ok := h.fetchProjects(c, sess)
	if !ok {
		return
	}

	slog.Info("retrieved projects", "email", sess.Email, "count", len(projects))

	c.JSON(http.StatusOK, ListResponse{
		Projects:   projects,
		TotalCount: len(projects),
		Message:    "Projects retrieved successfully",
	})
}

// Detail handles GET /projects/:project_key
func (h *Handler) Detail(c *gin.Context) {
	sess, ok := auth.CurrentSession(c)
	if !ok {
		unauthenticated(c)
		return
	}

	projectKey := c.Param("project_key")

	projects, ok := h.fetchProjects(c, sess)
	if !ok {
		return
	}

	for i := range projects {
		if projects[i].Key == projectKey {
			c.JSON(http.StatusOK, projects[i])
			return
		}
	}

	c.JSON(http.StatusNotFound, auth.ErrorResponse{
		Error:   "not_found",
		Message: fmt.Sprintf("Project '%s' not found or access denied", projectKey),
	})
}

// fetchProjects decrypts the session credential, builds the upstream client,
// and fetches the formatted project list. On failure it writes the error
// response and returns ok=false.
func (h *Handler) fetchProjects(c *gin.Context, sess *session.Session) ([]jira.Project, bool) {
	apiToken, err := h.cipher.Decrypt(sess.EncryptedAPIToken)
	if err != nil {
		slog.Error("failed to decrypt API token", "email", sess.Email, "error", err.Error())
		c.JSON(http.StatusInternalServerError, auth.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to initialize Jira client",
		})
		return nil, false
	}

	lister := h.newLister(sess.JiraDomain, sess.Email, apiToken)
	projects, err := lister.GetUserProjects(c.Request.Context())
	if err != nil {
		h.projectsError(c, sess.Email, err)
		return nil, false
	}
	return projects, true
}

func (h *Handler) projectsError(c *gin.Context, email string, err error) {
	switch {
	case errors.Is(err, jira.ErrSessionExpired):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, auth.ErrorResponse{
			Error:   "session_expired",
			Message: "Session expired. Please log in again.",
		})
	case errors.Is(err, jira.ErrTimeout):
		c.JSON(http.StatusRequestTimeout, auth.ErrorResponse{
			Error:   "upstream_timeout",
			Message: "Request to Jira timed out. Please try again.",
		})
	case errors.Is(err, jira.ErrUnreachable):
		c.JSON(http.StatusBadGateway, auth.ErrorResponse{
			Error:   "upstream_unreachable",
			Message: "Failed to retrieve projects from Jira.",
		})
	default:
		slog.Error("error fetching projects", "email", email, "error", err.Error())
		c.JSON(http.StatusInternalServerError, auth.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve projects",
		})
	}
}

func unauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, auth.ErrorResponse{
		Error:   "unauthorized",
		Message: "Not authenticated",
	})
}
