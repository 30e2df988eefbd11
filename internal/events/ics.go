package events

import (
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/labstack/echo/v4"

	"github.com/finbrief/econcal/internal/dates"
)

// icsEventDuration is the display length of a release slot. Economic
// releases are instants, but calendar clients render zero-length events
// poorly.
const icsEventDuration = 30 * time.Minute

// WeekICS exports one week's events as an iCalendar feed.
// GET /calendar/week/:date/ics
func (h *Handler) WeekICS(c echo.Context) error {
	list, rng, err := h.svc.EventsForWeek(c.Request().Context(), c.Param("date"))
	if err != nil {
		return err
	}

	monday := rng.Start.Format(dates.DateLayout)
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//econcal//Economic Events Calendar//EN")
	cal.SetName("Economic Events — Week of " + monday)

	for i, e := range list {
		at, ok := e.When()
		if !ok {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("%s-%d@econcal", monday, i))
		ev.SetStartAt(at)
		ev.SetEndAt(at.Add(icsEventDuration))
		ev.SetSummary(fmt.Sprintf("%s (%s)", e.Title, e.Country))
		if e.Category != "" {
			ev.SetDescription(e.Category)
		}
		if e.Source.URL != "" {
			ev.SetURL(e.Source.URL)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="econcal-week-%s.ics"`, monday))
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}
