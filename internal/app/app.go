// Package app wires the application together: configuration, Redis,
// repositories, services, handlers, Echo middleware, and routes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/finbrief/econcal/internal/apperror"
	"github.com/finbrief/econcal/internal/config"
	"github.com/finbrief/econcal/internal/events"
	"github.com/finbrief/econcal/internal/middleware"
	"github.com/finbrief/econcal/internal/report"
	"github.com/finbrief/econcal/internal/templates/pages"
)

// App holds the assembled application.
type App struct {
	Config *config.Config
	Redis  *redis.Client
	Echo   *echo.Echo

	eventService  events.EventService
	reportService report.ReportService
	scheduler     *Scheduler
}

// New builds the application. rdb may be nil; the repositories then skip the
// cache layer and every request goes straight to the upstream API.
func New(cfg *config.Config, rdb *redis.Client) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	var evRepo events.EventRepository = events.NewAPIRepository(cfg.Upstream)
	var repRepo report.ReportRepository = report.NewAPIRepository(cfg.Upstream)
	if rdb != nil {
		evRepo = events.NewCachedRepository(evRepo, rdb, cfg.Redis.CacheTTL)
		repRepo = report.NewCachedRepository(repRepo, rdb, cfg.Redis.CacheTTL)
	}

	evSvc := events.NewEventService(evRepo, cfg.Calendar.PublisherTimezone)
	repSvc := report.NewReportService(repRepo, evSvc, cfg.Calendar.PublisherTimezone)

	app := &App{
		Config:        cfg,
		Redis:         rdb,
		Echo:          e,
		eventService:  evSvc,
		reportService: repSvc,
	}

	app.setupMiddleware()
	app.registerRoutes()
	e.HTTPErrorHandler = app.errorHandler

	if cfg.Calendar.RefreshCron != "" {
		app.scheduler = NewScheduler(cfg, evSvc, repSvc)
	}

	return app
}

// setupMiddleware installs the global middleware chain.
func (a *App) setupMiddleware() {
	// Deployments put a reverse proxy in front; trust forwarding headers
	// from the usual local and private ranges.
	middleware.TrustedProxies(a.Echo, []string{
		"127.0.0.1/8", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16",
	})

	a.Echo.Use(middleware.RequestLogger())
	a.Echo.Use(middleware.Recovery())
	a.Echo.Use(middleware.SecurityHeaders())
}

// Start runs the cache warmer and the HTTP server. Blocks until the server
// stops.
func (a *App) Start() error {
	if a.scheduler != nil {
		a.scheduler.Start()
	}
	return a.Echo.Start(fmt.Sprintf(":%d", a.Config.Port))
}

// Shutdown stops the scheduler and drains the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	return a.Echo.Shutdown(ctx)
}

// errorHandler is the central Echo error handler. API requests get a JSON
// error envelope; page requests get the rendered error page. Internal causes
// go to the log, never to the client.
func (a *App) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	appErr := apperror.FromError(err)

	// Echo's own errors (404 on unknown routes, 405) arrive as HTTPError.
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		appErr = &apperror.AppError{
			Code:    httpErr.Code,
			Type:    "http_error",
			Message: http.StatusText(httpErr.Code),
		}
	}

	if appErr.Code >= 500 {
		slog.Error("request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", appErr.Code),
			slog.Any("error", err),
		)
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if err := c.JSON(appErr.Code, appErr); err != nil {
			slog.Error("writing error response failed", slog.Any("error", err))
		}
		return
	}

	if err := middleware.Render(c, appErr.Code, pages.ErrorPage(appErr.Code, appErr.Message)); err != nil {
		slog.Error("rendering error page failed", slog.Any("error", err))
	}
}
