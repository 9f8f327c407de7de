// Package pagerender centralizes storefront page rendering behavior.
package pagerender

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	flashnotice "github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

// Page describes a page response for both full-page and HTMX flows.
type Page struct {
	Title      string
	Lang       string
	StatusCode int
	CloseLabel string
	Fragment   templ.Component
}

// Renderer writes pages using shared layout contracts.
type Renderer struct {
	Policy requestmeta.SchemePolicy
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage writes page as a full document, or as the main content only for
// HTMX requests. A pending flash notice is shown on full renders and cleared.
func (rd Renderer) WritePage(w http.ResponseWriter, r *http.Request, page Page) {
	if w == nil {
		return
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	var shell templ.Component
	if httpx.IsHTMXRequest(r) {
		shell = templates.MainContent(page.Title)
	} else {
		shell = templates.Layout(templates.PageContext{
			Lang:  page.Lang,
			Title: page.Title,
			Toast: rd.resolveFlashToast(w, r, page.CloseLabel),
		})
	}
	body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		return shell.Render(templ.WithChildren(ctx, fragment), out)
	})
	templ.Handler(body,
		templ.WithStatus(statusCode),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("title", page.Title).Msg("render page")
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}

func (rd Renderer) resolveFlashToast(w http.ResponseWriter, r *http.Request, closeLabel string) *templates.Toast {
	notice, ok := flashnotice.ReadAndClearWithPolicy(w, r, rd.Policy)
	if !ok {
		return nil
	}
	return &templates.Toast{
		Kind:        string(notice.Kind),
		Title:       notice.Title,
		Description: notice.Description,
		CloseLabel:  closeLabel,
	}
}
