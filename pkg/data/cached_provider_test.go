package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// countingProvider records how many fetches reached it.
type countingProvider struct {
	calls  int
	series types.PriceSeries
	err    error
}

func (p *countingProvider) GetHistoricalPrices(ctx context.Context, symbol string, days int) (types.PriceSeries, error) {
	p.calls++
	if p.err != nil {
		return types.PriceSeries{}, p.err
	}
	return p.series, nil
}

func (p *countingProvider) GetName() string { return "Counting" }

func TestCachedProvider_CachesBySymbolAndDays(t *testing.T) {
	upstream := &countingProvider{series: testSeries(100, 110)}
	provider := NewCachedProvider(upstream)

	_, err := provider.GetHistoricalPrices(context.Background(), "BTC", 30)
	require.NoError(t, err)
	_, err = provider.GetHistoricalPrices(context.Background(), "BTC", 30)
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.calls, "second identical fetch must hit the cache")

	_, err = provider.GetHistoricalPrices(context.Background(), "BTC", 60)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls, "different day count is a different key")

	_, err = provider.GetHistoricalPrices(context.Background(), "ETH", 30)
	require.NoError(t, err)
	assert.Equal(t, 3, upstream.calls, "different symbol is a different key")

	assert.Equal(t, 3, provider.CacheSize())
}

func TestCachedProvider_DoesNotCacheErrors(t *testing.T) {
	upstream := &countingProvider{err: assert.AnError}
	provider := NewCachedProvider(upstream)

	_, err := provider.GetHistoricalPrices(context.Background(), "BTC", 30)
	assert.Error(t, err)
	_, err = provider.GetHistoricalPrices(context.Background(), "BTC", 30)
	assert.Error(t, err)
	assert.Equal(t, 2, upstream.calls)
	assert.Equal(t, 0, provider.CacheSize())
}

func TestCachedProvider_ClearCache(t *testing.T) {
	upstream := &countingProvider{series: testSeries(100, 110)}
	provider := NewCachedProvider(upstream)

	_, err := provider.GetHistoricalPrices(context.Background(), "BTC", 30)
	require.NoError(t, err)
	provider.ClearCache()

	_, err = provider.GetHistoricalPrices(context.Background(), "BTC", 30)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedProvider_GetName(t *testing.T) {
	provider := NewCachedProvider(&countingProvider{})
	assert.Equal(t, "Cached Counting", provider.GetName())
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	cache := NewMemoryCache()
	original := testSeries(100, 110)
	cache.Set("key", original)

	fetched, ok := cache.Get("key")
	require.True(t, ok)
	fetched.Points[0].Price = 999

	again, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, 100.0, again.Points[0].Price, "cache contents must be isolated from callers")
}

func TestMemoryCache_Miss(t *testing.T) {
	cache := NewMemoryCache()
	_, ok := cache.Get("absent")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size())
}
