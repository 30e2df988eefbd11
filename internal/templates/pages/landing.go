// Package pages holds the site-level pages that belong to no feature
// package: the landing page and the error page. Feature pages live next to
// their handlers (internal/events, internal/report).
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/finbrief/econcal/internal/templates/layouts"
)

// Landing renders the home page.
func Landing() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<section class="hero"><h1>Economic Events Calendar</h1>`+
				`<p>Scheduled market-moving releases, filtered by week, day, or importance — plus the morning report briefing.</p>`+
				`<p><a class="button" href="/calendar">This week's calendar</a> `+
				`<a class="button" href="/morning-report">Morning report</a></p></section>`)
		return err
	})
	return layouts.Base("econcal — Economic Events Calendar", "/", nil, body)
}
