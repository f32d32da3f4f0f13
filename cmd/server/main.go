package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"jiradash/internal/auth"
	"jiradash/internal/config"
	"jiradash/internal/crypto"
	"jiradash/internal/database"
	"jiradash/internal/logger"
	"jiradash/internal/projects"
	"jiradash/internal/server"
	"jiradash/internal/session"
	"jiradash/internal/token"
)

func main() {
	logger.SetDefault(logger.New())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("starting jiradash server",
		"port", cfg.Port,
		"environment", cfg.Environment,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err.Error())
		os.Exit(1)
	}
	slog.Info("connected to database")

	cipher, err := crypto.New(cfg.EncryptionKey)
	if err != nil {
		slog.Error("failed to initialize credential cipher", "error", err.Error())
		os.Exit(1)
	}

	signer := token.NewSigner(cfg.JWTSecretKey, cfg.AccessTokenTTL)
	store := session.NewPostgresStore(db)

	authService := auth.NewService(store, cipher, signer, cfg.SessionTTL, nil)
	authHandler := auth.NewHandler(authService)
	projectsHandler := projects.NewHandler(cipher, nil)

	router := server.SetupRouter(cfg, db, authHandler, projectsHandler, signer, store)
	srv := server.New(cfg, router)

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err.Error())
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err.Error())
	}

	db.Close()

	slog.Info("server stopped")
}
