package data

import (
	"context"
	"fmt"
	"sync"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// MemoryCache implements SeriesCache using in-memory storage.
type MemoryCache struct {
	cache map[string]types.PriceSeries
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]types.PriceSeries),
	}
}

// Get retrieves a series from cache if available.
func (c *MemoryCache) Get(key string) (types.PriceSeries, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	series, exists := c.cache[key]
	if !exists {
		return types.PriceSeries{}, false
	}
	// Return a copy to prevent external modifications
	return copySeries(series), true
}

// Set stores a series in cache.
func (c *MemoryCache) Set(key string, series types.PriceSeries) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[key] = copySeries(series)
}

// Clear removes all cached series.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string]types.PriceSeries)
}

// Size returns the number of cached entries.
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

func copySeries(series types.PriceSeries) types.PriceSeries {
	points := make([]types.PricePoint, len(series.Points))
	copy(points, series.Points)
	return types.PriceSeries{Symbol: series.Symbol, Points: points}
}

// CachedProvider wraps another PriceProvider with caching, keyed by symbol
// and day count. Useful when comparing the same token across commands in one
// session.
type CachedProvider struct {
	provider PriceProvider
	cache    SeriesCache
}

// NewCachedProvider creates a cached price provider with an in-memory cache.
func NewCachedProvider(provider PriceProvider) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    NewMemoryCache(),
	}
}

// NewCachedProviderWithCache creates a cached price provider with a custom
// cache.
func NewCachedProviderWithCache(provider PriceProvider, cache SeriesCache) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
	}
}

// GetName returns the name of the underlying provider with cache indication.
func (p *CachedProvider) GetName() string {
	return "Cached " + p.provider.GetName()
}

// GetHistoricalPrices returns the cached series when present, fetching
// through the underlying provider otherwise.
func (p *CachedProvider) GetHistoricalPrices(ctx context.Context, symbol string, days int) (types.PriceSeries, error) {
	key := cacheKey(symbol, days)
	if cached, exists := p.cache.Get(key); exists {
		return cached, nil
	}

	series, err := p.provider.GetHistoricalPrices(ctx, symbol, days)
	if err != nil {
		return types.PriceSeries{}, err
	}

	p.cache.Set(key, series)
	return series, nil
}

// ClearCache clears all cached series.
func (p *CachedProvider) ClearCache() {
	p.cache.Clear()
}

// CacheSize returns the number of cached entries.
func (p *CachedProvider) CacheSize() int {
	return p.cache.Size()
}

func cacheKey(symbol string, days int) string {
	return fmt.Sprintf("%s:%d", symbol, days)
}
