package app

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finbrief/econcal/internal/events"
	"github.com/finbrief/econcal/internal/middleware"
	"github.com/finbrief/econcal/internal/report"
	"github.com/finbrief/econcal/internal/templates/pages"
)

// registerRoutes mounts the site pages, the JSON API, and the feature routes.
func (a *App) registerRoutes() {
	e := a.Echo

	e.GET("/", func(c echo.Context) error {
		return middleware.Render(c, http.StatusOK, pages.Landing())
	})

	e.GET("/healthz", a.health)

	e.Static("/static", "static")

	// The JSON API carries its own rate limit and CORS policy; upstream
	// quota is finite and cache misses fan out to the provider.
	api := e.Group("/api/v1",
		middleware.RateLimit(60, time.Minute),
		middleware.CORS(middleware.CORSConfig{AllowedOrigins: []string{a.Config.BaseURL}}),
	)

	events.RegisterRoutes(e, api, events.NewHandler(a.eventService, a.Config))
	report.RegisterRoutes(e, api, report.NewHandler(a.reportService, a.Config))
}

// health reports process liveness and, when configured, Redis reachability.
// Redis being down degrades the response body but not the status: the
// calendar still works without its cache.
func (a *App) health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if a.Redis != nil {
		if err := a.Redis.Ping(c.Request().Context()).Err(); err != nil {
			status["cache"] = "unavailable"
		} else {
			status["cache"] = "ok"
		}
	}
	return c.JSON(http.StatusOK, status)
}
