package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Jeet1922/movie-rec-dashboard/internal/config"
	"github.com/Jeet1922/movie-rec-dashboard/internal/history"
	"github.com/Jeet1922/movie-rec-dashboard/internal/logging"
	"github.com/Jeet1922/movie-rec-dashboard/internal/source"
	"github.com/Jeet1922/movie-rec-dashboard/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"dataset", cfg.Dataset.Location,
		"history", cfg.History.DatabaseURL != "",
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	// The ingestion history is optional: without DATABASE_URL the store
	// is a no-op and /api/history serves an empty list.
	hist := history.New(nil)
	if cfg.History.DatabaseURL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.History.DatabaseURL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.History.MaxConns)

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		hist = history.New(pool)
		if err := hist.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare history schema", "error", err)
			os.Exit(1)
		}
		slog.Info("ingestion history enabled")
	}

	server := web.NewServer(cfg, source.New(cfg.Dataset.Location), hist)

	// Load the dataset before serving. A failure here is not fatal: the
	// server starts anyway, answers 503 on data endpoints, and a later
	// POST /api/reload can recover once the source is reachable.
	if err := server.Reload(ctx); err != nil {
		slog.Warn("initial dataset load failed, serving without data",
			"source", cfg.Dataset.Location,
			"error", err,
		)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
