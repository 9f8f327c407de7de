// Package timeouts defines shared timeout constants used by the storefront
// process.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// CacheRequest caps a single round trip to the product cache. Slower
// responses are treated as misses.
const CacheRequest = 150 * time.Millisecond

// StoreRequest caps a single product lookup in the backing store.
const StoreRequest = 2 * time.Second

// Seed bounds demo data loading at startup.
const Seed = 10 * time.Second
