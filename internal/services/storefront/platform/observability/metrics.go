package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/louisbranch/storefront/internal/services/storefront/featured"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
)

const unmatchedRoute = "unmatched"

// Metrics owns the storefront Prometheus registry.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	notifications *prometheus.CounterVec
}

// NewMetrics registers storefront collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP requests by method, route, and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_notifications_total",
			Help: "Notifications raised by featured product actions.",
		}, []string{"title"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency. It must wrap the mux
// directly so the matched pattern is visible after dispatch.
func (m *Metrics) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			route := routeLabel(r)
			m.requests.WithLabelValues(r.Method, route, statusLabel(rec.statusCode())).Inc()
			m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// CountingSink counts each notification before passing it to next.
func (m *Metrics) CountingSink(next featured.NotificationSink) featured.NotificationSink {
	return featured.NotificationSinkFunc(func(ctx context.Context, n featured.Notification) {
		m.notifications.WithLabelValues(n.Title).Inc()
		if next != nil {
			next.Notify(ctx, n)
		}
	})
}

func routeLabel(r *http.Request) string {
	if r == nil || r.Pattern == "" {
		return unmatchedRoute
	}
	return r.Pattern
}
