// Package rediscache provides a Redis read-through cache in front of a
// product store.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/louisbranch/storefront/internal/platform/timeouts"
	"github.com/louisbranch/storefront/internal/services/storefront/featured"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
)

const keyPrefix = "storefront:product:"

// DefaultTTL is used when Options.TTL is not positive.
const DefaultTTL = 5 * time.Minute

// Options configures a Cache.
type Options struct {
	TTL            time.Duration
	RequestTimeout time.Duration
	Logger         zerolog.Logger
	// FailureThreshold is the number of consecutive Redis failures that
	// opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// Cache serves product reads from Redis and falls back to the wrapped store.
// Redis failures never fail a read; they only skip the cache.
type Cache struct {
	client         *redis.Client
	next           storage.ProductStore
	ttl            time.Duration
	requestTimeout time.Duration
	breaker        *gobreaker.CircuitBreaker[[]byte]
	logger         zerolog.Logger
}

// New wraps next with a Redis cache.
func New(client *redis.Client, next storage.ProductStore, opts Options) (*Cache, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if next == nil {
		return nil, errors.New("backing product store is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = timeouts.CacheRequest
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}
	threshold := opts.FailureThreshold
	logger := opts.Logger
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "product-cache",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("cache breaker state changed")
		},
	})
	return &Cache{
		client:         client,
		next:           next,
		ttl:            opts.TTL,
		requestTimeout: opts.RequestTimeout,
		breaker:        breaker,
		logger:         logger,
	}, nil
}

// GetProduct returns a cached product or loads and caches it.
func (c *Cache) GetProduct(ctx context.Context, id string) (featured.Product, error) {
	key := productKey(id)
	data, err := c.do(ctx, func(ctx context.Context) ([]byte, error) {
		return c.client.Get(ctx, key).Bytes()
	})
	switch {
	case err == nil:
		var p featured.Product
		decodeErr := json.Unmarshal(data, &p)
		if decodeErr == nil {
			return p, nil
		}
		c.logger.Warn().Err(decodeErr).Str("key", key).Msg("discard undecodable cache entry")
	case errors.Is(err, redis.Nil):
		// miss
	default:
		c.logger.Debug().Err(err).Str("key", key).Msg("product cache read skipped")
	}

	p, err := c.next.GetProduct(ctx, id)
	if err != nil {
		return featured.Product{}, err
	}
	c.store(ctx, key, p)
	return p, nil
}

// CreateProduct writes through to the backing store.
func (c *Cache) CreateProduct(ctx context.Context, p featured.Product) error {
	if err := c.next.CreateProduct(ctx, p); err != nil {
		return err
	}
	c.Invalidate(ctx, p.ID)
	return nil
}

// UpdateProduct writes through to the backing store and drops the cached copy.
func (c *Cache) UpdateProduct(ctx context.Context, p featured.Product) error {
	if err := c.next.UpdateProduct(ctx, p); err != nil {
		return err
	}
	c.Invalidate(ctx, p.ID)
	return nil
}

// Invalidate removes a product from the cache.
func (c *Cache) Invalidate(ctx context.Context, id string) {
	key := productKey(id)
	if _, err := c.do(ctx, func(ctx context.Context) ([]byte, error) {
		return nil, c.client.Del(ctx, key).Err()
	}); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("product cache invalidate failed")
	}
}

func (c *Cache) store(ctx context.Context, key string, p featured.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("encode product for cache")
		return
	}
	if _, err := c.do(ctx, func(ctx context.Context) ([]byte, error) {
		return nil, c.client.Set(ctx, key, data, c.ttl).Err()
	}); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("product cache write skipped")
	}
}

func (c *Cache) do(ctx context.Context, op func(context.Context) ([]byte, error)) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		opCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
		data, err := op(opCtx)
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return data, err
	})
}

func productKey(id string) string {
	return keyPrefix + strings.TrimSpace(id)
}
