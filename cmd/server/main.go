package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/universidad/internal/apiclient"
	"github.com/JonMunkholm/universidad/internal/config"
	"github.com/JonMunkholm/universidad/internal/core"
	_ "github.com/JonMunkholm/universidad/internal/core/entities" // Register all entities
	"github.com/JonMunkholm/universidad/internal/logging"
	"github.com/JonMunkholm/universidad/internal/notify"
	"github.com/JonMunkholm/universidad/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"api", cfg.API.BaseURL,
		"api_timeout", cfg.API.Timeout,
		"session_ttl", cfg.Session.TTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	api, err := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		slog.Error("failed to create API client", "error", err)
		os.Exit(1)
	}

	bus := notify.NewBus()

	slog.Info("entities registered", "count", core.Count())
	for _, e := range core.All() {
		slog.Debug("entity", "key", e.Key, "path", e.Path)
	}

	server := web.NewServer(cfg, api, bus)

	// Background jobs stop with the server.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go server.Sessions().RunJanitor(jobCtx)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
