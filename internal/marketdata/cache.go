package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketlab/dma/internal/series"
)

// Cache fronts the provider layer with a raw-series cache (spec's domain
// stack, SPEC_FULL §4.2). Nil-safe: a nil *Cache simply misses every lookup,
// so the engine runs without Redis configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps an existing redis client. ttl bounds how long a cached raw
// series survives, typically the remainder of the trading day.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(ticker string, start, end time.Time) string {
	return fmt.Sprintf("dma:raw:%s:%s:%s", ticker, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// Get returns a cached raw series, or ok=false on any cache miss or error
// (a cache failure must never fail the fetch).
func (c *Cache) Get(ctx context.Context, ticker string, start, end time.Time) ([]series.Bar, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, cacheKey(ticker, start, end)).Bytes()
	if err != nil {
		return nil, false
	}
	var bars []series.Bar
	if err := json.Unmarshal(data, &bars); err != nil {
		return nil, false
	}
	return bars, true
}

// Set stores a raw series. Failures are swallowed; caching is best-effort.
func (c *Cache) Set(ctx context.Context, ticker string, start, end time.Time, bars []series.Bar) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(bars)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(ticker, start, end), data, c.ttl)
}
