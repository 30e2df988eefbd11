package report

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/finbrief/econcal/internal/dates"
	"github.com/finbrief/econcal/internal/templates/layouts"
)

// BriefingView is the view model for the morning report page.
type BriefingView struct {
	Briefing *Briefing

	// Timezone is the observer's display zone for event times.
	Timezone string
}

// BriefingPage renders the morning report.
func BriefingPage(v BriefingView) templ.Component {
	title := v.Briefing.Report.Headline
	if title == "" {
		title = "Morning Report"
	}
	return layouts.Base(title+" — econcal", "/morning-report", nil, briefingBody(v))
}

func briefingBody(v BriefingView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rep := v.Briefing.Report

		if _, err := io.WriteString(w,
			`<article class="morning-report"><h1>`+templ.EscapeString(rep.Headline)+`</h1>`+
				`<p class="report-date">`+templ.EscapeString(rep.Date)+`</p>`); err != nil {
			return err
		}

		// Summary was sanitized at ingest and is deliberately written raw.
		if _, err := io.WriteString(w, `<div class="summary">`+rep.Summary+`</div>`); err != nil {
			return err
		}

		if len(rep.Markets) > 0 {
			if _, err := io.WriteString(w, `<ul class="markets">`); err != nil {
				return err
			}
			for _, m := range rep.Markets {
				if _, err := io.WriteString(w,
					`<li><strong>`+templ.EscapeString(m.Market)+`</strong> `+
						templ.EscapeString(m.Note)+`</li>`); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</ul>`); err != nil {
				return err
			}
		}

		if err := highlights(v).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</article>`)
		return err
	})
}

// highlights renders today's high-importance releases and the upcoming one.
func highlights(v BriefingView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="highlights"><h2>Today's Key Releases</h2>`); err != nil {
			return err
		}

		if next := v.Briefing.Next; next != nil {
			parts := dates.FormatInZone(next.Date, v.Timezone, dates.FormatOptions{})
			if _, err := io.WriteString(w,
				`<p class="next"><span class="label">Up next</span> <strong>`+
					templ.EscapeString(next.Title)+`</strong> — `+
					templ.EscapeString(parts.DateTime)+`</p>`); err != nil {
				return err
			}
		}

		if len(v.Briefing.Highlights) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No high-importance releases today.</p></section>`)
			return err
		}

		if _, err := io.WriteString(w, `<ul class="releases">`); err != nil {
			return err
		}
		for _, e := range v.Briefing.Highlights {
			parts := dates.FormatInZone(e.Date, v.Timezone, dates.FormatOptions{})
			if _, err := io.WriteString(w,
				`<li>`+templ.EscapeString(parts.Time)+` — `+
					templ.EscapeString(e.Title)+` (`+templ.EscapeString(e.Country)+`)</li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul></section>`)
		return err
	})
}
