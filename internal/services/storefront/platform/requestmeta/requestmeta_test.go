package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTTPSWithPolicy(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "http://shop.example/", nil)
	if IsHTTPSWithPolicy(plain, SchemePolicy{}) {
		t.Fatalf("IsHTTPSWithPolicy(plain) = true")
	}

	secure := httptest.NewRequest(http.MethodGet, "/", nil)
	secure.TLS = &tls.ConnectionState{}
	if !IsHTTPSWithPolicy(secure, SchemePolicy{}) {
		t.Fatalf("IsHTTPSWithPolicy(tls) = false")
	}

	forwarded := httptest.NewRequest(http.MethodGet, "/", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "https")
	if IsHTTPSWithPolicy(forwarded, SchemePolicy{}) {
		t.Fatalf("forwarded proto should be ignored without policy")
	}
	if !IsHTTPSWithPolicy(forwarded, SchemePolicy{TrustForwardedProto: true}) {
		t.Fatalf("forwarded proto should be trusted with policy")
	}
}

func TestRefererPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{name: "missing", referer: "", want: "/"},
		{name: "same origin", referer: "http://example.com/product/featured-1", want: "/product/featured-1"},
		{name: "keeps query", referer: "http://example.com/?lang=pt-BR", want: "/?lang=pt-BR"},
		{name: "other host", referer: "http://evil.example/phish", want: "/"},
		{name: "other scheme", referer: "https://example.com/", want: "/"},
		{name: "other port", referer: "http://example.com:8080/", want: "/"},
		{name: "relative", referer: "/product/1", want: "/"},
		{name: "garbage", referer: "://", want: "/"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "http://example.com/product/featured-1/cart", nil)
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if got := RefererPath(req, SchemePolicy{}, "/"); got != tc.want {
				t.Fatalf("RefererPath() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRefererPathNilRequest(t *testing.T) {
	t.Parallel()

	if got := RefererPath(nil, SchemePolicy{}, "/home"); got != "/home" {
		t.Fatalf("RefererPath(nil) = %q", got)
	}
}
