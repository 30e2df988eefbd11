package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finbrief/econcal/internal/apperror"
	"github.com/finbrief/econcal/internal/config"
	"github.com/finbrief/econcal/internal/dates"
	"github.com/finbrief/econcal/internal/middleware"
)

// Handler processes HTTP requests for the morning report.
type Handler struct {
	svc ReportService
	cfg *config.Config
	now func() time.Time
}

// NewHandler creates a morning report Handler.
func NewHandler(svc ReportService, cfg *config.Config) *Handler {
	return &Handler{svc: svc, cfg: cfg, now: func() time.Time { return time.Now().UTC() }}
}

func (h *Handler) observerTZ(c echo.Context) string {
	if tz := c.QueryParam("tz"); dates.IsValidTimezone(tz) {
		return tz
	}
	return h.cfg.Calendar.DefaultTimezone
}

// briefing fetches the briefing and maps the not-published case to a 404.
func (h *Handler) briefing(c echo.Context) (*Briefing, error) {
	b, err := h.svc.Briefing(c.Request().Context(), h.now())
	if errors.Is(err, ErrNotPublished) {
		return nil, apperror.NewNotFound("No morning report for today. Reports are published on trading days.")
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Briefing renders the morning report page.
// GET /morning-report
func (h *Handler) Briefing(c echo.Context) error {
	b, err := h.briefing(c)
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, BriefingPage(BriefingView{
		Briefing: b,
		Timezone: h.observerTZ(c),
	}))
}

// APIBriefing returns the briefing as JSON.
// GET /api/v1/morning-report
func (h *Handler) APIBriefing(c echo.Context) error {
	b, err := h.briefing(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}
