// Package storefront parses storefront service flags and launches the service.
package storefront

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	entrypoint "github.com/louisbranch/storefront/internal/platform/cmd"
	"github.com/louisbranch/storefront/internal/platform/i18n/catalog"
	"github.com/louisbranch/storefront/internal/platform/logging"
	"github.com/louisbranch/storefront/internal/platform/timeouts"
	"github.com/louisbranch/storefront/internal/services/storefront"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/observability"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/storage/rediscache"
	"github.com/louisbranch/storefront/internal/services/storefront/storage/sqlite"
)

// Config holds storefront command configuration.
type Config struct {
	HTTPAddr            string        `env:"STOREFRONT_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string        `env:"STOREFRONT_DB_PATH" envDefault:"data/storefront.db"`
	FeaturedProductID   string        `env:"STOREFRONT_FEATURED_PRODUCT_ID" envDefault:"featured-1"`
	RedisAddr           string        `env:"STOREFRONT_REDIS_ADDR"`
	CacheTTL            time.Duration `env:"STOREFRONT_CACHE_TTL" envDefault:"5m"`
	SeedDemo            bool          `env:"STOREFRONT_SEED_DEMO" envDefault:"true"`
	TrustForwardedProto bool          `env:"STOREFRONT_TRUST_FORWARDED_PROTO"`
	LogLevel            string        `env:"STOREFRONT_LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"STOREFRONT_LOG_FORMAT" envDefault:"json"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, entrypoint.DotEnvFile); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite product database path")
	fs.StringVar(&cfg.FeaturedProductID, "featured-product-id", cfg.FeaturedProductID, "Product shown on the home page")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the product cache (empty disables caching)")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "Product cache TTL")
	fs.BoolVar(&cfg.SeedDemo, "seed-demo", cfg.SeedDemo, "Seed demo products on startup")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json or console)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the storefront web service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceStorefront, func(ctx context.Context) error {
		logger, err := logging.Init(logging.Options{
			Level:   cfg.LogLevel,
			Format:  logging.Format(cfg.LogFormat),
			Service: entrypoint.ServiceStorefront,
		})
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		return run(ctx, cfg, logger)
	})
}

func run(ctx context.Context, cfg Config, logger zerolog.Logger) error {
	if dir := filepath.Dir(cfg.DBPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open product store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("close product store")
		}
	}()

	if cfg.SeedDemo {
		// Seeding finishes even when a stop signal arrives during startup.
		seedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Seed)
		created, err := storage.Seed(seedCtx, store, storage.DemoProducts()...)
		cancel()
		if err != nil {
			return fmt.Errorf("seed demo products: %w", err)
		}
		logger.Info().Int("created", created).Msg("demo products seeded")
	}

	var products storage.ProductReader = store
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer func() {
			_ = client.Close()
		}()
		cache, err := rediscache.New(client, store, rediscache.Options{
			TTL:            cfg.CacheTTL,
			RequestTimeout: timeouts.CacheRequest,
			Logger:         logger,
		})
		if err != nil {
			return fmt.Errorf("init product cache: %w", err)
		}
		products = cache
		logger.Info().Str("addr", addr).Dur("ttl", cfg.CacheTTL).Msg("product cache enabled")
	}

	server, err := storefront.NewServer(ctx, storefront.Config{
		HTTPAddr:            cfg.HTTPAddr,
		FeaturedProductID:   cfg.FeaturedProductID,
		Products:            products,
		Catalog:             catalog.Default(),
		Logger:              logger,
		Metrics:             observability.NewMetrics(),
		Health:              store.Ping,
		TrustForwardedProto: cfg.TrustForwardedProto,
	})
	if err != nil {
		return fmt.Errorf("init storefront server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve storefront: %w", err)
	}
	return nil
}
