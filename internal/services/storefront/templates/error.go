package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// ErrorView describes an error page body.
type ErrorView struct {
	StatusCode int
	Title      string
	Message    string
	HomeLabel  string
}

// ErrorPage renders an error page body.
func ErrorPage(view ErrorView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var m markup
		m.raw(`<section class="error-page"`)
		m.attr("data-status", strconv.Itoa(view.StatusCode))
		m.raw(`><p class="error-code">`)
		m.text(strconv.Itoa(view.StatusCode))
		m.raw(`</p><h1>`)
		m.text(view.Title)
		m.raw(`</h1>`)
		if view.Message != "" {
			m.raw(`<p class="error-message">`)
			m.text(view.Message)
			m.raw(`</p>`)
		}
		if view.HomeLabel != "" {
			m.raw(`<a class="btn btn-outline"`)
			m.urlAttr("href", routepath.Root)
			m.raw(`>`)
			m.text(view.HomeLabel)
			m.raw(`</a>`)
		}
		m.raw(`</section>`)
		return m.flush(w)
	})
}
