package data

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinID(t *testing.T) {
	assert.Equal(t, "bitcoin", CoinID("BTC"))
	assert.Equal(t, "bitcoin", CoinID("btc"))
	assert.Equal(t, "ethereum", CoinID("ETH"))
	// Unknown symbols pass through lowercased as IDs.
	assert.Equal(t, "pepe", CoinID("PEPE"))
}

func TestCoinGeckoProvider_GetHistoricalPrices(t *testing.T) {
	day := 24 * time.Hour
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "3", r.URL.Query().Get("days"))
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))

		fmt.Fprintf(w, `{"prices": [[%d, 42000.5], [%d, 43100.0], [%d, 42800.25]]}`,
			base.UnixMilli(), base.Add(day).UnixMilli(), base.Add(2*day).UnixMilli())
	}))
	defer server.Close()

	provider := NewCoinGeckoProviderWithBaseURL(server.URL)
	series, err := provider.GetHistoricalPrices(context.Background(), "BTC", 3)
	require.NoError(t, err)

	assert.Equal(t, "BTC", series.Symbol)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, 42000.5, series.Points[0].Price)
	assert.Equal(t, base, series.Points[0].Timestamp)
	assert.Equal(t, 42800.25, series.Points[2].Price)
}

func TestCoinGeckoProvider_DeduplicatesAndSorts(t *testing.T) {
	day := 24 * time.Hour
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Out of order, with a duplicate timestamp at the live edge.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"prices": [[%d, 43100.0], [%d, 42000.5], [%d, 43200.0]]}`,
			base.Add(day).UnixMilli(), base.UnixMilli(), base.Add(day).UnixMilli())
	}))
	defer server.Close()

	provider := NewCoinGeckoProviderWithBaseURL(server.URL)
	series, err := provider.GetHistoricalPrices(context.Background(), "BTC", 2)
	require.NoError(t, err)

	require.Equal(t, 2, series.Len())
	assert.Equal(t, 42000.5, series.Points[0].Price)
	// The later observation wins on a duplicate timestamp.
	assert.Equal(t, 43200.0, series.Points[1].Price)
}

func TestCoinGeckoProvider_ErrorStatuses(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusNotFound, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		provider := NewCoinGeckoProviderWithBaseURL(server.URL)
		_, err := provider.GetHistoricalPrices(context.Background(), "BTC", 3)
		assert.Error(t, err, "status %d", status)
		server.Close()
	}
}

func TestCoinGeckoProvider_RejectsShortResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"prices": [[1704067200000, 42000.5]]}`)
	}))
	defer server.Close()

	provider := NewCoinGeckoProviderWithBaseURL(server.URL)
	_, err := provider.GetHistoricalPrices(context.Background(), "BTC", 3)
	assert.Error(t, err)
}

func TestCoinGeckoProvider_RejectsTinyDays(t *testing.T) {
	provider := NewCoinGeckoProvider()
	_, err := provider.GetHistoricalPrices(context.Background(), "BTC", 1)
	assert.Error(t, err)
}

func TestCoinGeckoProvider_GetName(t *testing.T) {
	assert.Equal(t, "CoinGecko", NewCoinGeckoProvider().GetName())
}
