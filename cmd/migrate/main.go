// Command migrate applies the embedded schema migrations.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"jiradash/internal/database"
	"jiradash/internal/logger"
)

func main() {
	logger.SetDefault(logger.New())

	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")

	err := database.Migrate(databaseURL, *direction)
	switch {
	case errors.Is(err, database.ErrNoChange):
		slog.Info("schema already up to date")
	case err != nil:
		slog.Error("migration failed", "direction", *direction, "error", err.Error())
		os.Exit(1)
	default:
		slog.Info("migration applied", "direction", *direction)
	}
}
