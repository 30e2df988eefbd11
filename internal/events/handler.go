package events

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finbrief/econcal/internal/config"
	"github.com/finbrief/econcal/internal/dates"
	"github.com/finbrief/econcal/internal/middleware"
)

// Handler processes HTTP requests for the events calendar: the
// server-rendered pages, the JSON API, and the ICS export.
type Handler struct {
	svc EventService
	cfg *config.Config

	// now supplies the current instant; overridable in tests so "next
	// event" assertions don't race the wall clock.
	now func() time.Time
}

// NewHandler creates a new calendar Handler.
func NewHandler(svc EventService, cfg *config.Config) *Handler {
	return &Handler{svc: svc, cfg: cfg, now: func() time.Time { return time.Now().UTC() }}
}

// observerTZ resolves the display timezone from the tz query parameter,
// falling back to the configured default for anything off the allow-list.
func (h *Handler) observerTZ(c echo.Context) string {
	if tz := c.QueryParam("tz"); dates.IsValidTimezone(tz) {
		return tz
	}
	return h.cfg.Calendar.DefaultTimezone
}

// minImportance reads the importance filter from the query, empty when
// absent or invalid.
func (h *Handler) minImportance(c echo.Context) Importance {
	if imp := Importance(c.QueryParam("importance")); imp.Valid() {
		return imp
	}
	return ""
}

// Calendar renders the default calendar page for a named period.
// GET /calendar?period=thisWeek&tz=...&importance=...
func (h *Handler) Calendar(c echo.Context) error {
	ctx := c.Request().Context()
	now := h.now()

	period := dates.Period(c.QueryParam("period"))
	list, rng, err := h.svc.EventsForPeriod(ctx, period, now)
	if err != nil {
		return err
	}

	view := CalendarView{
		Title:         periodTitle(period, rng),
		Range:         dates.FormatForAPI(rng),
		Events:        list,
		Timezone:      h.observerTZ(c),
		MinImportance: h.minImportance(c),
		Path:          "/calendar",
	}
	h.addWeekNav(&view, rng)

	// The "up next" highlight only makes sense while looking at a span
	// that includes the present.
	if rng.Contains(now) {
		view.Current = true
		next, err := h.svc.UpcomingEvent(ctx, now)
		if err == nil {
			view.Next = next
		}
	}

	return middleware.Render(c, http.StatusOK, CalendarPage(view))
}

// Week renders the calendar page for the ISO week containing :date.
// GET /calendar/week/:date
func (h *Handler) Week(c echo.Context) error {
	ctx := c.Request().Context()
	date := c.Param("date")

	list, rng, err := h.svc.EventsForWeek(ctx, date)
	if err != nil {
		return err
	}

	view := CalendarView{
		Title:         "Week of " + rng.Start.Format("Jan 2, 2006"),
		Range:         dates.FormatForAPI(rng),
		Events:        list,
		Timezone:      h.observerTZ(c),
		MinImportance: h.minImportance(c),
		Path:          dates.WeekPathPrefix + rng.Start.Format(dates.DateLayout),
	}
	h.addWeekNav(&view, rng)

	now := h.now()
	if rng.Contains(now) {
		view.Current = true
		next, err := h.svc.UpcomingEvent(ctx, now)
		if err == nil {
			view.Next = next
		}
	}

	return middleware.Render(c, http.StatusOK, CalendarPage(view))
}

// Day renders the calendar page for a single date.
// GET /calendar/day/:date
func (h *Handler) Day(c echo.Context) error {
	ctx := c.Request().Context()
	date := c.Param("date")

	list, rng, err := h.svc.EventsForDay(ctx, date)
	if err != nil {
		return err
	}

	view := CalendarView{
		Title:         rng.Start.Format("Monday, Jan 2, 2006"),
		Range:         dates.FormatForAPI(rng),
		Events:        list,
		Timezone:      h.observerTZ(c),
		MinImportance: h.minImportance(c),
		Path:          "/calendar/day/" + rng.Start.Format(dates.DateLayout),
	}

	return middleware.Render(c, http.StatusOK, CalendarPage(view))
}

// addWeekNav fills the previous/current/next week links for a week-shaped
// range. Non-week ranges (day, month views) keep empty links.
func (h *Handler) addWeekNav(v *CalendarView, rng dates.Range) {
	monday := rng.Start.Format(dates.DateLayout)
	if rng.Start.Weekday() != time.Monday || rng.End.Sub(rng.Start) != 7*24*time.Hour-time.Millisecond {
		return
	}
	if prev, err := dates.WeekLink(monday, -7); err == nil {
		v.PrevLink = prev
	}
	if next, err := dates.WeekLink(monday, 7); err == nil {
		v.NextLink = next
	}
	if today, err := dates.WeekStartDate(h.now().Format(dates.DateLayout)); err == nil {
		v.TodayLink = dates.WeekPathPrefix + today
	}
}

// periodTitle maps a period token to a page heading.
func periodTitle(p dates.Period, rng dates.Range) string {
	switch p {
	case dates.PeriodToday:
		return "Today's Events"
	case dates.PeriodTomorrow:
		return "Tomorrow's Events"
	case dates.PeriodRecent:
		return "Recent Events"
	case dates.PeriodNextWeek:
		return "Next Week's Events"
	case dates.PeriodThisMonth, dates.PeriodNextMonth:
		return rng.Start.Format("January 2006")
	default:
		return "Week of " + rng.Start.Format("Jan 2, 2006")
	}
}

// --- JSON API ---

// calendarResponse is the JSON envelope for event list endpoints.
type calendarResponse struct {
	Range  dates.APIRange `json:"range"`
	Events []Event        `json:"events"`
}

// APICalendar returns events for a period or an explicit date range.
// GET /api/v1/calendar?period=...  or  ?fromDate=...&toDate=...
func (h *Handler) APICalendar(c echo.Context) error {
	ctx := c.Request().Context()

	// Explicit range takes precedence over a period token.
	if from, to := c.QueryParam("fromDate"), c.QueryParam("toDate"); from != "" || to != "" {
		list, rng, err := h.svc.EventsForRange(ctx, from, to)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, calendarResponse{Range: dates.FormatForAPI(rng), Events: list})
	}

	period := dates.Period(c.QueryParam("period"))
	list, rng, err := h.svc.EventsForPeriod(ctx, period, h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, calendarResponse{Range: dates.FormatForAPI(rng), Events: list})
}

// APIWeek returns the events of one ISO week.
// GET /api/v1/calendar/week/:date
func (h *Handler) APIWeek(c echo.Context) error {
	list, rng, err := h.svc.EventsForWeek(c.Request().Context(), c.Param("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, calendarResponse{Range: dates.FormatForAPI(rng), Events: list})
}

// nextResponse is the JSON envelope for the next-event endpoint. Event is
// null when nothing is scheduled; Display carries the observer-zone
// rendering of the event time.
type nextResponse struct {
	Event   *Event       `json:"event"`
	Display *dates.Parts `json:"display,omitempty"`
}

// APINext returns the next upcoming event relative to now, selected against
// the publisher timezone and formatted for the observer timezone.
// GET /api/v1/calendar/next?tz=...
func (h *Handler) APINext(c echo.Context) error {
	next, err := h.svc.UpcomingEvent(c.Request().Context(), h.now())
	if err != nil {
		return err
	}

	resp := nextResponse{Event: next}
	if next != nil {
		parts := dates.FormatInZone(next.Date, h.observerTZ(c), dates.FormatOptions{})
		resp.Display = &parts
	}
	return c.JSON(http.StatusOK, resp)
}

// APITimezones returns the display timezone allow-list.
// GET /api/v1/timezones
func (h *Handler) APITimezones(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"default":   h.cfg.Calendar.DefaultTimezone,
		"publisher": h.cfg.Calendar.PublisherTimezone,
		"supported": dates.SupportedTimezones(),
	})
}
