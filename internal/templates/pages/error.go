package pages

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/finbrief/econcal/internal/templates/layouts"
)

// ErrorPage renders a full error page for browser requests. The message must
// already be client-safe; the Echo error handler takes care of that.
func ErrorPage(code int, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<section class="error-page"><h1>`+
				fmt.Sprintf("%d %s", code, templ.EscapeString(http.StatusText(code)))+
				`</h1><p>`+templ.EscapeString(message)+`</p>`+
				`<p><a href="/calendar">Back to the calendar</a></p></section>`)
		return err
	})
	return layouts.Base(fmt.Sprintf("%d — econcal", code), "", nil, body)
}
