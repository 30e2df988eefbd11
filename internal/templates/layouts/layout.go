// Package layouts holds the shared page chrome. Components are plain Go
// templ.Component values: the pages are small and server-rendered, and
// keeping them in Go means view models and markup live next to each other.
package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// navLink is one entry in the top navigation bar.
type navLink struct {
	Href  string
	Label string
}

// navLinks is the fixed site navigation.
var navLinks = []navLink{
	{Href: "/calendar", Label: "Calendar"},
	{Href: "/morning-report", Label: "Morning Report"},
}

// Base wraps a page body in the site chrome: doctype, head with title and
// optional extra head content (meta tags, JSON-LD), navigation, and footer.
// activePath highlights the matching nav entry.
func Base(title, activePath string, head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>`+templ.EscapeString(title)+`</title>`+
				`<link rel="stylesheet" href="/static/econcal.css">`); err != nil {
			return err
		}
		if head != nil {
			if err := head.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</head><body><header class="site-header"><a class="brand" href="/">econcal</a><nav>`); err != nil {
			return err
		}
		for _, link := range navLinks {
			class := ""
			if link.Href == activePath {
				class = ` class="active"`
			}
			if _, err := io.WriteString(w,
				`<a href="`+templ.EscapeString(link.Href)+`"`+class+`>`+
					templ.EscapeString(link.Label)+`</a>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</nav></header><main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><footer class="site-footer"><p>Data provided by the upstream events API. Times shown in your selected timezone.</p></footer></body></html>`)
		return err
	})
}
