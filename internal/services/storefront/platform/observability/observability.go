// Package observability provides request logging, metrics, and tracing
// middleware for the storefront.
package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
)

// statusRecorder captures the response status and size.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w}
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// RequestLogger logs one line per request and attaches a request-scoped
// logger to the context for zerolog.Ctx.
func RequestLogger(logger zerolog.Logger) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := strings.TrimSpace(r.Header.Get(httpx.RequestIDHeader))
			scoped := logger.With().Str("request_id", requestID).Logger()
			r = r.WithContext(scoped.WithContext(r.Context()))

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			status := rec.statusCode()
			event := scoped.Info()
			if status >= http.StatusInternalServerError {
				event = scoped.Error()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", rec.bytes).
				Dur("latency", time.Since(start)).
				Msg("http request")
		})
	}
}

func statusLabel(status int) string {
	return strconv.Itoa(status)
}
