package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	platformotel "github.com/louisbranch/storefront/internal/platform/otel"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
)

// TracerName names the storefront instrumentation scope.
const TracerName = "github.com/louisbranch/storefront"

// Tracing starts a server span per request, continuing any incoming trace.
func Tracing() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		tracer := platformotel.Tracer(TracerName)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.URL.Path),
					attribute.String("http.request_id", r.Header.Get(httpx.RequestIDHeader)),
				),
			)
			defer span.End()

			traced := r.WithContext(ctx)
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, traced)

			status := rec.statusCode()
			span.SetAttributes(semconv.HTTPResponseStatusCode(status))
			if traced.Pattern != "" {
				span.SetName(traced.Pattern)
				span.SetAttributes(semconv.HTTPRoute(traced.Pattern))
			}
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

// StartSpan starts an internal span for a unit of storefront work.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return platformotel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}
