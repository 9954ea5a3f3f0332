package data

import (
	"context"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// PriceProvider supplies historical daily prices for a token, ordered oldest
// to newest. Implementations must return series that pass ValidateSeries; the
// analysis core never repairs provider output.
type PriceProvider interface {
	// GetHistoricalPrices returns the last days daily prices for symbol.
	GetHistoricalPrices(ctx context.Context, symbol string, days int) (types.PriceSeries, error)

	// GetName returns the name of the provider.
	GetName() string
}

// SeriesCache caches fetched price series.
type SeriesCache interface {
	// Get retrieves a series from cache if available.
	Get(key string) (types.PriceSeries, bool)

	// Set stores a series in cache.
	Set(key string, series types.PriceSeries)

	// Clear removes all cached series.
	Clear()

	// Size returns the number of cached entries.
	Size() int
}
