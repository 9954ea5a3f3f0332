package data

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// BybitConfig holds the settings for the Bybit market data client. Kline
// endpoints are public, so the keys may be empty.
type BybitConfig struct {
	APIKey    string
	APISecret string
	Testnet   bool
}

// BybitProvider fetches daily spot klines from Bybit and exposes their close
// prices as a price series.
type BybitProvider struct {
	client *bybit_api.Client
}

// NewBybitProvider creates a Bybit-backed price provider.
func NewBybitProvider(cfg BybitConfig) *BybitProvider {
	baseURL := bybit_api.MAINNET
	if cfg.Testnet {
		baseURL = bybit_api.TESTNET
	}
	client := bybit_api.NewBybitHttpClient(
		cfg.APIKey,
		cfg.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)
	return &BybitProvider{client: client}
}

// GetName returns the name of the data provider.
func (p *BybitProvider) GetName() string {
	return "Bybit"
}

// pairSymbol maps a bare token symbol to its USDT spot pair. Symbols that
// already name a pair are used as-is.
func pairSymbol(symbol string) string {
	s := strings.ToUpper(symbol)
	if strings.HasSuffix(s, "USDT") || strings.HasSuffix(s, "USDC") {
		return s
	}
	return s + "USDT"
}

// GetHistoricalPrices fetches the last days daily close prices for symbol.
func (p *BybitProvider) GetHistoricalPrices(ctx context.Context, symbol string, days int) (types.PriceSeries, error) {
	if days < 2 {
		return types.PriceSeries{}, fmt.Errorf("days must be at least 2, got %d", days)
	}
	limit := days + 1
	if limit > 1000 {
		limit = 1000
	}

	params := map[string]interface{}{
		"category": "spot",
		"symbol":   pairSymbol(symbol),
		"interval": "D",
		"limit":    limit,
	}

	result, err := p.client.NewUtaBybitServiceWithParams(params).GetMarketKline(ctx)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("failed to get klines for %s: %w", symbol, err)
	}

	points, err := parseKlineClosePrices(result)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("failed to parse kline response for %s: %w", symbol, err)
	}

	// Bybit returns klines newest first.
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	if len(points) > days {
		points = points[len(points)-days:]
	}

	series := types.PriceSeries{Symbol: strings.ToUpper(symbol), Points: points}
	if err := ValidateSeries(series); err != nil {
		return types.PriceSeries{}, fmt.Errorf("Bybit returned unusable data for %s: %w", symbol, err)
	}
	return series, nil
}

// parseKlineClosePrices extracts timestamp and close price from a kline
// response.
func parseKlineClosePrices(response interface{}) ([]types.PricePoint, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("invalid response type")
	}
	if serverResp.RetCode != 0 {
		return nil, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var klineResult struct {
		Symbol   string     `json:"symbol"`
		Category string     `json:"category"`
		List     [][]string `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &klineResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kline result: %w", err)
	}

	points := make([]types.PricePoint, 0, len(klineResult.List))
	for _, item := range klineResult.List {
		// Bybit kline format: [startTime, open, high, low, close, volume, turnover]
		if len(item) < 5 {
			continue
		}
		millis, err := strconv.ParseInt(item[0], 10, 64)
		if err != nil {
			continue
		}
		closePrice, err := strconv.ParseFloat(item[4], 64)
		if err != nil {
			continue
		}
		points = append(points, types.PricePoint{
			Timestamp: time.UnixMilli(millis).UTC(),
			Price:     closePrice,
		})
	}
	return points, nil
}
