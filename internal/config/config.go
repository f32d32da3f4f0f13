// Package config loads and validates application configuration from the environment.
// The signing secret and encryption key are required: a missing key must abort
// startup rather than fall back to a generated value, because regenerating
// either one silently invalidates every outstanding session.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port int

	// JWTSecretKey signs access tokens (HMAC). Required.
	JWTSecretKey string
	// EncryptionKey protects Jira API tokens at rest. Required.
	EncryptionKey string
	// DatabaseURL is the Postgres DSN for the session store. Required.
	DatabaseURL string

	AccessTokenTTL time.Duration
	SessionTTL     time.Duration

	AllowedOrigins []string

	Environment string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// requiredVars must all be present; startup fails loudly otherwise.
var requiredVars = []string{
	"JWT_SECRET_KEY",
	"ENCRYPTION_KEY",
	"DATABASE_URL",
}

// Load builds a Config from environment variables.
// It returns an error naming every missing required variable.
func Load() (*Config, error) {
	var missing []string
	for _, name := range requiredVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		Port:           getEnvInt("PORT", 8080),
		JWTSecretKey:   os.Getenv("JWT_SECRET_KEY"),
		EncryptionKey:  os.Getenv("ENCRYPTION_KEY"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AccessTokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)) * time.Minute,
		SessionTTL:     time.Duration(getEnvInt("SESSION_TIMEOUT_HOURS", 24)) * time.Hour,
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		Environment:    getEnv("APP_ENV", "development"),
		ReadTimeout:    getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:    getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}

	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TIMEOUT_HOURS must be positive")
	}

	return cfg, nil
}

// splitOrigins converts a comma-separated origin list into a slice,
// trimming whitespace around each entry.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
