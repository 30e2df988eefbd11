package report

import "github.com/labstack/echo/v4"

// RegisterRoutes wires the morning report page onto the Echo instance and
// the JSON endpoint onto the /api/v1 group.
func RegisterRoutes(e *echo.Echo, api *echo.Group, h *Handler) {
	e.GET("/morning-report", h.Briefing)
	api.GET("/morning-report", h.APIBriefing)
}
