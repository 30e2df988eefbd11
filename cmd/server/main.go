// Command server runs the econcal web application: the economic events
// calendar pages, the morning report, and the read-only JSON API.
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

	"github.com/finbrief/econcal/internal/app"
	"github.com/finbrief/econcal/internal/cache"
	"github.com/finbrief/econcal/internal/config"
)

// shutdownTimeout bounds the graceful drain on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration failed", slog.Any("error", err))
		os.Exit(1)
	}

	setupLogging(cfg)

	// Redis is the response cache, not a dependency: if it is unreachable
	// the app runs uncached against the upstream API.
	rdb, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, running without cache",
			slog.String("url", cfg.Redis.URL), slog.Any("error", err))
		rdb = nil
	}

	application := app.New(cfg, rdb)

	go func() {
		slog.Info("server starting",
			slog.Int("port", cfg.Port),
			slog.String("env", cfg.Env))
		if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", slog.Any("error", err))
	}
	if rdb != nil {
		rdb.Close()
	}
}

// setupLogging configures slog: human-readable text in development, JSON in
// production.
func setupLogging(cfg *config.Config) {
	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
