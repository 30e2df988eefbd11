package events

import "github.com/labstack/echo/v4"

// RegisterRoutes wires the calendar pages onto the Echo instance and the
// JSON endpoints onto the /api/v1 group.
func RegisterRoutes(e *echo.Echo, api *echo.Group, h *Handler) {
	e.GET("/calendar", h.Calendar)
	e.GET("/calendar/week/:date", h.Week)
	e.GET("/calendar/week/:date/ics", h.WeekICS)
	e.GET("/calendar/day/:date", h.Day)

	api.GET("/calendar", h.APICalendar)
	api.GET("/calendar/week/:date", h.APIWeek)
	api.GET("/calendar/next", h.APINext)
	api.GET("/timezones", h.APITimezones)
}
