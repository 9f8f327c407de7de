// Package storefront hosts the browser-facing storefront service.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/louisbranch/storefront/internal/platform/i18n/catalog"
	"github.com/louisbranch/storefront/internal/platform/timeouts"
	"github.com/louisbranch/storefront/internal/services/storefront/featured"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/observability"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/pagerender"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/louisbranch/storefront/internal/services/storefront/routepath"
	storefrontstatic "github.com/louisbranch/storefront/internal/services/storefront/static"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
)

// HealthCheck reports whether a dependency can serve requests.
type HealthCheck func(ctx context.Context) error

// Config defines startup inputs for the storefront service.
//
// TrustForwardedProto honors X-Forwarded-Proto when deciding cookie security.
// Enable it only behind a proxy that sets the header.
type Config struct {
	HTTPAddr            string
	FeaturedProductID   string
	Products            storage.ProductReader
	Catalog             *catalog.Bundle
	Logger              zerolog.Logger
	Metrics             *observability.Metrics
	Health              HealthCheck
	TrustForwardedProto bool
}

// Server hosts the storefront HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     zerolog.Logger
}

// NewHandler builds the root handler with routes and middleware.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Products == nil {
		return nil, errors.New("product reader is required")
	}
	featuredID := strings.TrimSpace(cfg.FeaturedProductID)
	if featuredID == "" {
		featuredID = storage.DemoFeaturedProductID
	}
	bundle := cfg.Catalog
	if bundle == nil {
		bundle = catalog.Default()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}

	h := handlers{
		products:   cfg.Products,
		featuredID: featuredID,
		catalog:    bundle,
		metrics:    metrics,
		health:     cfg.Health,
		policy:     policy,
		renderer:   pagerender.Renderer{Policy: policy},
	}

	mux := http.NewServeMux()
	mux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(storefrontstatic.FS)))
	mux.Handle("GET "+routepath.Metrics, metrics.Handler())
	mux.HandleFunc("GET "+routepath.Health, h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("GET "+routepath.ProductPattern, h.handleProductDetail)
	mux.Handle(routepath.CartPattern, httpx.Chain(h.handleAction(featured.ActionAddToCart), httpx.RequireMethod(http.MethodPost)))
	mux.Handle(routepath.WishPattern, httpx.Chain(h.handleAction(featured.ActionAddToWishlist), httpx.RequireMethod(http.MethodPost)))
	mux.HandleFunc(routepath.Root, h.handleNotFound)

	return httpx.Chain(mux,
		httpx.RecoverPanic(cfg.Logger),
		httpx.RequestID(),
		observability.RequestLogger(cfg.Logger),
		observability.Tracing(),
		metrics.Middleware(),
	), nil
}

// NewServer validates config and constructs a storefront server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose storefront handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   cfg.Logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("storefront server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info().Str("addr", s.httpAddr).Msg("storefront listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown storefront http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve storefront http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
