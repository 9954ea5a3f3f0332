package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// DefaultCoinGeckoBaseURL is the public CoinGecko API endpoint.
const DefaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// knownCoinIDs maps common ticker symbols to CoinGecko coin IDs so users can
// type "BTC" instead of "bitcoin". Unknown symbols are passed through as IDs.
var knownCoinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"BNB":   "binancecoin",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"MATIC": "matic-network",
	"LTC":   "litecoin",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
}

// CoinGeckoProvider fetches daily close prices from the CoinGecko
// market_chart endpoint.
type CoinGeckoProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewCoinGeckoProvider creates a provider against the public CoinGecko API.
func NewCoinGeckoProvider() *CoinGeckoProvider {
	return NewCoinGeckoProviderWithBaseURL(DefaultCoinGeckoBaseURL)
}

// NewCoinGeckoProviderWithBaseURL creates a provider against a custom base
// URL, used by tests to point at a stub server.
func NewCoinGeckoProviderWithBaseURL(baseURL string) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetName returns the name of the data provider.
func (p *CoinGeckoProvider) GetName() string {
	return "CoinGecko"
}

// CoinID resolves a ticker symbol to a CoinGecko coin ID. Symbols not in the
// known map are lowercased and treated as IDs directly.
func CoinID(symbol string) string {
	if id, ok := knownCoinIDs[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}

type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

// GetHistoricalPrices fetches the last days daily prices for symbol.
func (p *CoinGeckoProvider) GetHistoricalPrices(ctx context.Context, symbol string, days int) (types.PriceSeries, error) {
	if days < 2 {
		return types.PriceSeries{}, fmt.Errorf("days must be at least 2, got %d", days)
	}

	endpoint := fmt.Sprintf("%s/coins/%s/market_chart", p.baseURL, url.PathEscape(CoinID(symbol)))
	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("days", fmt.Sprintf("%d", days))
	query.Set("interval", "daily")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("failed to build CoinGecko request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("CoinGecko request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return types.PriceSeries{}, fmt.Errorf("CoinGecko rate limit hit for %s, retry later", symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return types.PriceSeries{}, fmt.Errorf("CoinGecko returned status %d for %s", resp.StatusCode, symbol)
	}

	var chart marketChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return types.PriceSeries{}, fmt.Errorf("failed to decode CoinGecko response: %w", err)
	}

	series := types.PriceSeries{
		Symbol: strings.ToUpper(symbol),
		Points: make([]types.PricePoint, 0, len(chart.Prices)),
	}
	for _, entry := range chart.Prices {
		series.Points = append(series.Points, types.PricePoint{
			Timestamp: time.UnixMilli(int64(entry[0])).UTC(),
			Price:     entry[1],
		})
	}

	// The API occasionally returns entries out of order or duplicated at the
	// live edge; sort and keep the last observation per timestamp.
	sort.Slice(series.Points, func(i, j int) bool {
		return series.Points[i].Timestamp.Before(series.Points[j].Timestamp)
	})
	series.Points = dedupeTimestamps(series.Points)

	if err := ValidateSeries(series); err != nil {
		return types.PriceSeries{}, fmt.Errorf("CoinGecko returned unusable data for %s: %w", symbol, err)
	}
	return series, nil
}

// dedupeTimestamps keeps the last point for each timestamp in a sorted slice.
func dedupeTimestamps(points []types.PricePoint) []types.PricePoint {
	out := points[:0]
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Timestamp.Equal(p.Timestamp) {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
