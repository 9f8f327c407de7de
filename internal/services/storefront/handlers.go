package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/storefront/internal/platform/i18n/catalog"
	"github.com/louisbranch/storefront/internal/platform/timeouts"
	"github.com/louisbranch/storefront/internal/services/storefront/featured"
	apperrors "github.com/louisbranch/storefront/internal/services/storefront/platform/errors"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/observability"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/pagerender"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/toast"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

const (
	keyTitleHome         = "storefront.title.home"
	keyTitleNotFound     = "storefront.title.not_found"
	keyTitlePageNotFound = "storefront.title.page_not_found"
	keyTitleUnavailable  = "storefront.title.unavailable"
	keyTitleError        = "storefront.title.error"
	keyErrorNotFound     = "storefront.error.not_found"
	keyErrorPageNotFound = "storefront.error.page_not_found"
	keyErrorUnavailable  = "storefront.error.unavailable"
	keyErrorUnknown      = "storefront.error.unknown"
	keyErrorHome         = "storefront.error.home"
	keyToastClose        = "storefront.toast.close"
)

type handlers struct {
	products   storage.ProductReader
	featuredID string
	catalog    *catalog.Bundle
	metrics    *observability.Metrics
	health     HealthCheck
	policy     requestmeta.SchemePolicy
	renderer   pagerender.Renderer
}

// locale is the per-request language state.
type locale struct {
	tag     language.Tag
	printer *message.Printer
}

func (h handlers) resolveLocale(r *http.Request) locale {
	tag := h.catalog.Match(r.Header.Get("Accept-Language"))
	return locale{tag: tag, printer: h.catalog.Printer(tag)}
}

func (l locale) text(key string) string {
	return l.printer.Sprintf(key)
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	loc := h.resolveLocale(r)
	product, err := h.loadProduct(r.Context(), h.featuredID)
	if err != nil {
		h.writeError(w, r, loc, err)
		return
	}
	h.writeSection(w, r, loc, loc.text(keyTitleHome), product)
}

func (h handlers) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	loc := h.resolveLocale(r)
	product, err := h.loadProduct(r.Context(), r.PathValue(routepath.ProductIDParam))
	if err != nil {
		h.writeError(w, r, loc, err)
		return
	}
	h.writeSection(w, r, loc, product.Name+" | "+loc.text(keyTitleHome), product)
}

func (h handlers) writeSection(w http.ResponseWriter, r *http.Request, loc locale, title string, product featured.Product) {
	_, span := observability.StartSpan(r.Context(), "featured.render", attribute.String("product.id", product.ID))
	view := featured.RenderWithCopy(product, featured.NewCopy(loc.printer))
	span.End()

	h.renderer.WritePage(w, r, pagerender.Page{
		Title:      title,
		Lang:       loc.tag.String(),
		CloseLabel: loc.text(keyToastClose),
		Fragment:   templates.FeaturedProduct(view),
	})
}

// handleAction runs a featured section action. When the action suppresses
// default navigation, HTMX requests get the toast in place and plain form
// posts are sent back to the page they came from.
func (h handlers) handleAction(kind featured.ActionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc := h.resolveLocale(r)
		product, err := h.loadProduct(r.Context(), r.PathValue(routepath.ProductIDParam))
		if err != nil {
			h.writeError(w, r, loc, err)
			return
		}

		collector := &toast.Collector{}
		actions := featured.Actions{
			Sink: h.metrics.CountingSink(collector),
			Copy: featured.NewCopy(loc.printer),
		}
		ctx, span := observability.StartSpan(r.Context(), "featured.action",
			attribute.String("product.id", product.ID),
			attribute.String("action", string(kind)),
		)
		outcome, ok := actions.Run(ctx, kind, product)
		span.End()
		if !ok {
			h.writeError(w, r, loc, apperrors.EK(apperrors.KindNotFound, keyErrorPageNotFound, "unknown action"))
			return
		}

		if err := toast.Deliver(w, r, collector, h.policy, loc.text(keyToastClose)); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("action", string(kind)).Msg("deliver toast")
			httpx.WriteError(w, err)
			return
		}
		if httpx.IsHTMXRequest(r) {
			return
		}
		location := routepath.Product(product.ID)
		if outcome.SuppressDefault {
			location = requestmeta.RefererPath(r, h.policy, routepath.Root)
		}
		httpx.WriteRedirect(w, r, location)
	}
}

func (h handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
			_ = httpx.WriteText(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	_ = httpx.WriteText(w, http.StatusOK, "ok")
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	loc := h.resolveLocale(r)
	h.writeError(w, r, loc, apperrors.EK(apperrors.KindNotFound, keyErrorPageNotFound, "page not found"))
}

func (h handlers) loadProduct(ctx context.Context, id string) (featured.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return featured.Product{}, apperrors.EK(apperrors.KindNotFound, keyErrorNotFound, "product id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreRequest)
	defer cancel()

	product, err := h.products.GetProduct(ctx, id)
	switch {
	case err == nil:
		return product, nil
	case errors.Is(err, storage.ErrNotFound):
		return featured.Product{}, apperrors.Wrap(apperrors.KindNotFound, keyErrorNotFound, err)
	default:
		return featured.Product{}, apperrors.Wrap(apperrors.KindUnavailable, keyErrorUnavailable, fmt.Errorf("load product %q: %w", id, err))
	}
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, loc locale, err error) {
	status := apperrors.HTTPStatus(err)
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	title, messageKey := errorCopyKeys(err)
	h.renderer.WritePage(w, r, pagerender.Page{
		Title:      loc.text(title),
		Lang:       loc.tag.String(),
		StatusCode: status,
		CloseLabel: loc.text(keyToastClose),
		Fragment: templates.ErrorPage(templates.ErrorView{
			StatusCode: status,
			Title:      loc.text(title),
			Message:    loc.text(messageKey),
			HomeLabel:  loc.text(keyErrorHome),
		}),
	})
}

func errorCopyKeys(err error) (string, string) {
	key := apperrors.LocalizationKey(err)
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		if key == keyErrorPageNotFound {
			return keyTitlePageNotFound, key
		}
		return keyTitleNotFound, keyErrorNotFound
	case apperrors.KindUnavailable:
		return keyTitleUnavailable, keyErrorUnavailable
	default:
		return keyTitleError, keyErrorUnknown
	}
}
