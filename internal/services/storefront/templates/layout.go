package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/storefront/internal/platform/icons"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
)

// HTMXScriptURL is the pinned htmx build loaded by every page.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// MainID is the element HTMX navigations swap.
const MainID = "main"

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang  string
	Title string
	Toast *Toast
}

// Layout renders the full document around its children.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}
		var m markup
		m.raw(`<!DOCTYPE html><html`)
		m.attr("lang", lang)
		m.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		m.text(page.Title)
		m.raw(`</title><link rel="stylesheet"`)
		m.attr("href", routepath.StaticPrefix+"storefront.css")
		m.raw(`><script defer`)
		m.attr("src", HTMXScriptURL)
		m.raw(`></script><script defer`)
		m.attr("src", routepath.StaticPrefix+"storefront.js")
		m.raw(`></script></head><body hx-boost="true" hx-target="#` + MainID + `" hx-swap="innerHTML">`)
		m.raw(icons.LucideSprite())
		m.raw(`<main`)
		m.attr("id", MainID)
		m.raw(`>`)
		if err := m.flush(w); err != nil {
			return err
		}
		if err := renderChildren(ctx, w); err != nil {
			return err
		}

		m = markup{}
		m.raw(`</main><div`)
		m.attr("id", ToastRegionID)
		m.raw(` class="toast-region" aria-live="polite">`)
		if page.Toast != nil {
			writeToast(&m, *page.Toast)
		}
		m.raw(`</div></body></html>`)
		return m.flush(w)
	})
}

// MainContent renders only the swappable page body, for HTMX requests.
func MainContent(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var m markup
		m.raw(`<title>`)
		m.text(title)
		m.raw(`</title>`)
		if err := m.flush(w); err != nil {
			return err
		}
		return renderChildren(ctx, w)
	})
}
