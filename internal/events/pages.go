package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/finbrief/econcal/internal/dates"
	"github.com/finbrief/econcal/internal/templates/layouts"
)

// CalendarView is the view model for the week and day calendar pages.
type CalendarView struct {
	// Title is the page heading, e.g. "Week of Aug 12, 2024".
	Title string

	// Range is the displayed span in wire form (used for labels and links).
	Range dates.APIRange

	// Events is the full, chronologically sorted list for the span.
	Events []Event

	// Next is the event highlighted as up next, nil when nothing is
	// scheduled. Only set when the view covers the current period.
	Next *Event

	// Current is true when the displayed span contains the present, which
	// is the only time the next-event banner makes sense.
	Current bool

	// Timezone is the observer's display zone (already validated).
	Timezone string

	// MinImportance is the active importance filter; empty shows all.
	MinImportance Importance

	// PrevLink/NextLink/TodayLink are week navigation paths; empty on day
	// pages, where week paging makes no sense.
	PrevLink  string
	NextLink  string
	TodayLink string

	// Path is the canonical path of this page, used to build the timezone
	// and importance filter links.
	Path string
}

// visibleEvents applies the active importance filter.
func (v CalendarView) visibleEvents() []Event {
	return FilterImportance(v.Events, v.MinImportance)
}

// CalendarPage renders a week or day calendar view with JSON-LD structured
// data in the head.
func CalendarPage(v CalendarView) templ.Component {
	return layouts.Base(v.Title+" — econcal", "/calendar", structuredData(v.visibleEvents()), calendarBody(v))
}

// calendarBody renders the heading, filters, next-event banner, and the
// events table.
func calendarBody(v CalendarView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<section class="calendar"><h1>`+templ.EscapeString(v.Title)+`</h1>`+
				`<p class="range">`+templ.EscapeString(v.Range.FromDate)+` – `+templ.EscapeString(v.Range.ToDate)+`</p>`); err != nil {
			return err
		}

		if err := weekNav(v).Render(ctx, w); err != nil {
			return err
		}
		if err := filterBar(v).Render(ctx, w); err != nil {
			return err
		}
		if err := nextBanner(v).Render(ctx, w); err != nil {
			return err
		}
		if err := eventTable(v).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// weekNav renders previous/today/next week links when present.
func weekNav(v CalendarView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if v.PrevLink == "" && v.NextLink == "" {
			return nil
		}
		if _, err := io.WriteString(w, `<nav class="week-nav">`); err != nil {
			return err
		}
		links := []struct{ href, label string }{
			{v.PrevLink, "← Previous week"},
			{v.TodayLink, "This week"},
			{v.NextLink, "Next week →"},
		}
		for _, l := range links {
			if l.href == "" {
				continue
			}
			if _, err := io.WriteString(w,
				`<a href="`+templ.EscapeString(withTZ(l.href, v.Timezone))+`">`+
					templ.EscapeString(l.label)+`</a>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav>`)
		return err
	})
}

// filterBar renders the timezone picker and importance filter links.
func filterBar(v CalendarView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="filters"><span>Timezone:</span>`); err != nil {
			return err
		}
		for _, tz := range dates.SupportedTimezones() {
			class := ""
			if tz == v.Timezone {
				class = ` class="active"`
			}
			href := v.Path + "?tz=" + tz
			if v.MinImportance != "" {
				href += "&importance=" + string(v.MinImportance)
			}
			if _, err := io.WriteString(w,
				`<a`+class+` href="`+templ.EscapeString(href)+`">`+templ.EscapeString(tz)+`</a>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<span>Importance:</span>`); err != nil {
			return err
		}
		for _, imp := range []Importance{"", ImportanceLow, ImportanceMedium, ImportanceHigh} {
			label := string(imp)
			if imp == "" {
				label = "all"
			}
			class := ""
			if imp == v.MinImportance {
				class = ` class="active"`
			}
			href := v.Path + "?tz=" + v.Timezone
			if imp != "" {
				href += "&importance=" + string(imp)
			}
			if _, err := io.WriteString(w,
				`<a`+class+` href="`+templ.EscapeString(href)+`">`+templ.EscapeString(label)+`</a>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// nextBanner renders the "up next" highlight, or the empty-schedule notice
// when the view covers the current period and nothing is upcoming. Views of
// past or future spans get no banner at all.
func nextBanner(v CalendarView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !v.Current {
			return nil
		}
		if v.Next == nil {
			_, err := io.WriteString(w,
				`<div class="next-event none">No more releases scheduled. Check back tomorrow.</div>`)
			return err
		}
		parts := dates.FormatInZone(v.Next.Date, v.Timezone, dates.FormatOptions{})
		_, err := io.WriteString(w,
			`<div class="next-event"><span class="label">Up next</span> `+
				`<strong>`+templ.EscapeString(v.Next.Title)+`</strong> `+
				`(`+templ.EscapeString(v.Next.Country)+`) — `+
				templ.EscapeString(parts.DateTime)+`</div>`)
		return err
	})
}

// eventTable renders the filtered events, or the empty state.
func eventTable(v CalendarView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		visible := v.visibleEvents()
		if len(visible) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No events scheduled for this period.</p>`)
			return err
		}

		if _, err := io.WriteString(w,
			`<table class="events"><thead><tr><th>Date</th><th>Time</th><th>Event</th>`+
				`<th>Country</th><th>Importance</th><th>Category</th><th>Source</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, e := range visible {
			parts := dates.FormatInZone(e.Date, v.Timezone, dates.FormatOptions{})
			row := `<tr class="importance-` + templ.EscapeString(string(e.Importance)) + `">` +
				`<td>` + templ.EscapeString(parts.Date) + `</td>` +
				`<td>` + templ.EscapeString(parts.Time) + `</td>` +
				`<td>` + templ.EscapeString(e.Title) + `</td>` +
				`<td>` + templ.EscapeString(e.Country) + `</td>` +
				`<td>` + templ.EscapeString(string(e.Importance)) + `</td>` +
				`<td>` + templ.EscapeString(e.Category) + `</td>`
			if e.Source.URL != "" {
				row += `<td><a rel="nofollow" href="` + templ.EscapeString(e.Source.URL) + `">` +
					templ.EscapeString(e.Source.Name) + `</a></td>`
			} else {
				row += `<td>` + templ.EscapeString(e.Source.Name) + `</td>`
			}
			row += `</tr>`
			if _, err := io.WriteString(w, row); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

// withTZ appends the timezone query parameter to a nav path.
func withTZ(path, tz string) string {
	if tz == "" {
		return path
	}
	return path + "?tz=" + tz
}

// structuredData renders the schema.org ItemList of events for SEO. Only
// events with parseable dates are included; search engines reject malformed
// startDate values, and the page table still shows the rest.
func structuredData(list []Event) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		type ldEvent struct {
			Type      string `json:"@type"`
			Name      string `json:"name"`
			StartDate string `json:"startDate"`
		}
		type ldItem struct {
			Type     string  `json:"@type"`
			Position int     `json:"position"`
			Item     ldEvent `json:"item"`
		}

		items := make([]ldItem, 0, len(list))
		for _, e := range list {
			at, ok := e.When()
			if !ok {
				continue
			}
			items = append(items, ldItem{
				Type:     "ListItem",
				Position: len(items) + 1,
				Item: ldEvent{
					Type:      "Event",
					Name:      fmt.Sprintf("%s (%s)", e.Title, e.Country),
					StartDate: at.Format("2006-01-02T15:04:05Z07:00"),
				},
			})
		}

		doc := map[string]any{
			"@context":        "https://schema.org",
			"@type":           "ItemList",
			"itemListElement": items,
		}
		// json.Marshal escapes <, >, and & in strings, so the payload is
		// safe inside a script element.
		raw, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<script type="application/ld+json">`); err != nil {
			return err
		}
		if _, err := w.Write(raw); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</script>`)
		return err
	})
}
