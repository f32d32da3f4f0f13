// Package server wires middleware, routes, and the HTTP server for the
// dashboard backend.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jiradash/internal/auth"
	"jiradash/internal/config"
	"jiradash/internal/database"
	"jiradash/internal/projects"
	"jiradash/internal/session"
	"jiradash/internal/token"
)

// SetupRouter configures and returns the application router.
func SetupRouter(
	cfg *config.Config,
	db database.Service,
	authHandler *auth.Handler,
	projectsHandler *projects.Handler,
	signer *token.Signer,
	store session.Store,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler(db))

	// Public routes - no session required
	r.POST("/auth/login", authHandler.Login)

	// Protected routes - every request resolves to an active session or 401
	requireAuth := auth.RequireAuth(signer, store)

	authGroup := r.Group("/auth", requireAuth)
	{
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authHandler.Me)
	}

	projectsGroup := r.Group("/projects", requireAuth)
	{
		projectsGroup.GET("/", projectsHandler.List)
		projectsGroup.GET("/:project_key", projectsHandler.Detail)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "The requested resource was not found",
			"path":    c.Request.URL.Path,
		})
	})

	return r
}

// corsMiddleware builds the CORS policy from the configured origin list.
// A single "*" entry allows all origins.
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}

	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = origins
	}

	return cors.New(corsConfig)
}

// healthHandler reports service and database health.
func healthHandler(db database.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "down",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "up",
		})
	}
}
