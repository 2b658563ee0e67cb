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

	"github.com/joho/godotenv"

	"lexidice/internal/app"
	"lexidice/internal/config"
	"lexidice/internal/oracle"
	httpTransport "lexidice/internal/transport/http"
	"lexidice/internal/words"
)

func main() {
	// Load .env if present; real environment variables win
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Set up logger
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	logger.Info("starting lexidice game server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Load word list
	dict := words.Load(cfg.Words.File, logger)
	logger.Info("word list loaded", "words", dict.Len())

	// Wire the optional oracle; without an API key every oracle-backed
	// feature degrades (bots fall back to a local search)
	var oracles app.Oracles
	if client := oracle.NewClient(cfg.Oracle.APIKey, cfg.Oracle.BaseURL, cfg.Oracle.Model, cfg.Oracle.ImageModel, logger); client != nil {
		oracles = app.Oracles{
			Proposer:    client,
			Flavor:      client,
			Illustrator: client,
		}
	} else {
		logger.Info("no oracle API key configured, running without LLM features")
	}

	// Create session hub
	hub := app.NewSessionHub(cfg, dict, oracles, logger)
	defer hub.Close()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
