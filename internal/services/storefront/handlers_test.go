package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/louisbranch/storefront/internal/services/storefront/featured"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
)

type fakeProducts struct {
	products map[string]featured.Product
	err      error
}

func (f fakeProducts) GetProduct(_ context.Context, id string) (featured.Product, error) {
	if f.err != nil {
		return featured.Product{}, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return featured.Product{}, storage.ErrNotFound
	}
	return p, nil
}

func testProducts() fakeProducts {
	return fakeProducts{products: map[string]featured.Product{
		"featured-1": {
			ID:            "featured-1",
			Name:          "Classic Wool Overcoat",
			Price:         189.99,
			OriginalPrice: featured.Price(249.99),
			Description:   "Tailored wool coat.",
			Images:        []string{"https://cdn.example.com/coat.jpg"},
			Rating:        4.8,
			Colors:        []featured.Color{{Name: "Camel", Value: "#c19a6b"}, {Name: "Charcoal", Value: "#36454f"}},
			Sizes:         []string{"S", "M", "L", "XL"},
		},
		"featured-2": {
			ID:     "featured-2",
			Name:   "Trail Sneaker",
			Price:  120,
			Rating: 4.5,
		},
	}}
}

func newTestHandler(t *testing.T, products storage.ProductReader) http.Handler {
	t.Helper()
	h, err := NewHandler(Config{
		FeaturedProductID: "featured-1",
		Products:          products,
		Logger:            zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestNewHandlerRequiresProducts(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{}); err == nil {
		t.Fatalf("NewHandler() error = nil, want error")
	}
}

func TestHomeRendersFeaturedProduct(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t, testProducts()), httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		"<!DOCTYPE html>",
		"<title>Storefront</title>",
		"Featured Product",
		"Classic Wool Overcoat",
		"$189.99",
		"$249.99",
		"24% OFF",
		`href="/product/featured-1"`,
		`hx-post="/product/featured-1/cart"`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
}

func TestHomeUsesAcceptLanguage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.5")
	rr := serve(newTestHandler(t, testProducts()), req)

	body := rr.Body.String()
	for _, marker := range []string{`lang="pt-BR"`, "Produto em Destaque", "Adicionar ao Carrinho"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestHomeMissingFeaturedProductIsNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t, fakeProducts{}), httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "We couldn&#39;t find that product.") {
		t.Fatalf("missing not found copy:\n%s", rr.Body.String())
	}
}

func TestStoreFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t, fakeProducts{err: errors.New("disk I/O error")}), httptest.NewRequest(http.MethodGet, "/product/featured-1", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if strings.Contains(rr.Body.String(), "disk I/O error") {
		t.Fatalf("internal error leaked into page")
	}
}

func TestProductDetailReusesSection(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testProducts())
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/product/featured-2", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Trail Sneaker") || !strings.Contains(body, `data-section="featured-product"`) {
		t.Fatalf("detail page missing section:\n%s", body)
	}
	if strings.Contains(body, "OFF") {
		t.Fatalf("product without original price shows a discount")
	}

	rr = serve(h, httptest.NewRequest(http.MethodGet, "/product/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing product status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestProductDetailHTMXRendersMainOnly(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/product/featured-1", nil)
	req.Header.Set("HX-Request", "true")
	rr := serve(newTestHandler(t, testProducts()), req)
	if strings.Contains(rr.Body.String(), "<html") {
		t.Fatalf("htmx navigation returned a full document")
	}
	if !strings.Contains(rr.Body.String(), "Classic Wool Overcoat") {
		t.Fatalf("htmx navigation missing section")
	}
}

func TestAddToCartHTMXRaisesToastWithoutNavigation(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/product/featured-1/cart", nil)
	req.Header.Set("HX-Request", "true")
	rr := serve(newTestHandler(t, testProducts()), req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Header().Get("Location") != "" || rr.Header().Get("HX-Redirect") != "" {
		t.Fatalf("action navigated: Location=%q HX-Redirect=%q", rr.Header().Get("Location"), rr.Header().Get("HX-Redirect"))
	}
	trigger := rr.Header().Get("HX-Trigger")
	if got := gjson.Get(trigger, `storefront\:toast.title`).String(); got != "Added to cart" {
		t.Fatalf("toast title = %q (%s)", got, trigger)
	}
	if got := gjson.Get(trigger, `storefront\:toast.description`).String(); got != "Classic Wool Overcoat has been added to your cart." {
		t.Fatalf("toast description = %q", got)
	}
	if strings.Count(rr.Body.String(), "data-toast") != 1 {
		t.Fatalf("expected exactly one toast:\n%s", rr.Body.String())
	}
}

func TestAddToWishlistHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/product/featured-2/wishlist", nil)
	req.Header.Set("HX-Request", "true")
	rr := serve(newTestHandler(t, testProducts()), req)

	trigger := rr.Header().Get("HX-Trigger")
	if got := gjson.Get(trigger, `storefront\:toast.title`).String(); got != "Added to wishlist" {
		t.Fatalf("toast title = %q", got)
	}
	if got := gjson.Get(trigger, `storefront\:toast.description`).String(); got != "Trail Sneaker has been added to your wishlist." {
		t.Fatalf("toast description = %q", got)
	}
}

func TestAddToCartFormPostRedirectsBackWithFlash(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testProducts())
	req := httptest.NewRequest(http.MethodPost, "http://example.com/product/featured-1/cart", nil)
	req.Header.Set("Referer", "http://example.com/")
	rr := serve(h, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want %q", got, "/")
	}

	cookie := flashCookie(t, rr)
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookie)
	page := serve(h, next)
	if !strings.Contains(page.Body.String(), "Classic Wool Overcoat has been added to your cart.") {
		t.Fatalf("follow-up page missing toast:\n%s", page.Body.String())
	}
}

func TestActionFormPostReturnsToReferer(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testProducts())
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{name: "no referer", referer: "", want: "/"},
		{name: "foreign referer", referer: "http://evil.example/", want: "/"},
		{name: "detail referer", referer: "http://example.com/product/featured-2?ref=home", want: "/product/featured-2?ref=home"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "http://example.com/product/featured-2/wishlist", nil)
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			rr := serve(h, req)
			if got := rr.Header().Get("Location"); got != tc.want {
				t.Fatalf("Location = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestActionRequiresPost(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t, testProducts()), httptest.NewRequest(http.MethodGet, "/product/featured-1/cart", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestActionOnMissingProduct(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/product/nope/cart", nil)
	req.Header.Set("HX-Request", "true")
	rr := serve(newTestHandler(t, testProducts()), req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if rr.Header().Get("HX-Trigger") != "" {
		t.Fatalf("missing product raised a toast")
	}
}

func TestMetricsCountNotifications(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testProducts())
	req := httptest.NewRequest(http.MethodPost, "/product/featured-1/cart", nil)
	req.Header.Set("HX-Request", "true")
	serve(h, req)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		`storefront_notifications_total{title="Added to cart"} 1`,
		`storefront_http_requests_total{method="POST",route="/product/{productID}/cart",status="200"} 1`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("metrics missing %q:\n%s", marker, body)
		}
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t, testProducts()), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rr.Code, rr.Body.String())
	}

	h, err := NewHandler(Config{
		Products: testProducts(),
		Logger:   zerolog.Nop(),
		Health:   func(context.Context) error { return errors.New("db closed") },
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rr = serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestUnknownPathRendersNotFoundPage(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t, testProducts()), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "Page not found") {
		t.Fatalf("missing page not found title:\n%s", rr.Body.String())
	}
}

func TestStaticAssetsServed(t *testing.T) {
	t.Parallel()

	rr := serve(newTestHandler(t, testProducts()), httptest.NewRequest(http.MethodGet, "/static/storefront.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/css") {
		t.Fatalf("Content-Type = %q", rr.Header().Get("Content-Type"))
	}
}

func TestRecoverPanicWrapsRoutes(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, panicProducts{})
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

type panicProducts struct{}

func (panicProducts) GetProduct(context.Context, string) (featured.Product, error) {
	panic("store exploded")
}

func flashCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, raw := range rr.Result().Header.Values("Set-Cookie") {
		cookie, err := http.ParseSetCookie(raw)
		if err != nil {
			continue
		}
		if cookie.Name == flash.CookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("missing flash cookie")
	return nil
}
