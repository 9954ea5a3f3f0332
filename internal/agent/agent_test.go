package agent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volquant/crypto-vol-agent/internal/config"
	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// fakeProvider serves canned series per symbol and fails for unknown ones.
type fakeProvider struct {
	series map[string]types.PriceSeries
}

func (p *fakeProvider) GetHistoricalPrices(ctx context.Context, symbol string, days int) (types.PriceSeries, error) {
	series, ok := p.series[symbol]
	if !ok {
		return types.PriceSeries{}, fmt.Errorf("unknown symbol %s", symbol)
	}
	return series, nil
}

func (p *fakeProvider) GetName() string { return "Fake" }

func pricesFor(symbol string, prices ...float64) types.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]types.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = types.PricePoint{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Price:     p,
		}
	}
	return types.PriceSeries{Symbol: symbol, Points: points}
}

func wavePrices(symbol string, n int) types.PriceSeries {
	prices := make([]float64, n)
	price := 100.0
	for i := range prices {
		if i%2 == 0 {
			price *= 1.02
		} else {
			price *= 0.99
		}
		prices[i] = price
	}
	return pricesFor(symbol, prices...)
}

func testAgent(t *testing.T, provider *fakeProvider) *Agent {
	t.Helper()
	a, err := NewWithProvider(config.Default(), provider)
	require.NoError(t, err)
	return a
}

func TestAgent_Analyze(t *testing.T) {
	a := testAgent(t, &fakeProvider{series: map[string]types.PriceSeries{
		"BTC": wavePrices("BTC", 40),
	}})

	report, err := a.Analyze(context.Background(), "BTC", 30)
	require.NoError(t, err)

	assert.Equal(t, "BTC", report.Symbol)
	assert.Equal(t, config.DefaultLambda, report.Lambda)
	assert.Equal(t, 39, report.Volatility.Len(), "one estimate per return")
	assert.Greater(t, report.Summary.Current, 0.0)

	require.NotNil(t, report.Forecast)
	assert.Len(t, report.Forecast.Values, config.DefaultHorizon)

	require.NotNil(t, report.Risk)
	assert.Greater(t, report.Risk.ExpectedShortfall, report.Risk.ValueAtRisk)

	require.NotNil(t, report.Technicals, "40 observations are enough for the indicator snapshot")
	assert.Empty(t, report.Narrative, "narrative is disabled by default")
}

func TestAgent_Analyze_ShortSeriesSkipsTechnicals(t *testing.T) {
	a := testAgent(t, &fakeProvider{series: map[string]types.PriceSeries{
		"BTC": wavePrices("BTC", 10),
	}})

	report, err := a.Analyze(context.Background(), "BTC", 10)
	require.NoError(t, err)
	assert.Nil(t, report.Technicals)
	require.NotNil(t, report.Risk)
}

func TestAgent_Analyze_UnknownSymbol(t *testing.T) {
	a := testAgent(t, &fakeProvider{series: map[string]types.PriceSeries{}})

	_, err := a.Analyze(context.Background(), "NOPE", 30)
	assert.Error(t, err)

	var agentErr *errors.AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, errors.ErrorCategoryProvider, agentErr.Category)
}

func TestAgent_Predict(t *testing.T) {
	a := testAgent(t, &fakeProvider{series: map[string]types.PriceSeries{
		"ETH": wavePrices("ETH", 20),
	}})

	forecast, err := a.Predict(context.Background(), "ETH", 20, 14)
	require.NoError(t, err)

	assert.Equal(t, "ETH", forecast.Symbol)
	require.Len(t, forecast.Values, 14)
	// Flat policy repeats the current estimate.
	for _, v := range forecast.Values {
		assert.Equal(t, forecast.Values[0], v)
	}
}

func TestAgent_AssessRisk_UsesSessionMemory(t *testing.T) {
	a := testAgent(t, &fakeProvider{series: map[string]types.PriceSeries{
		"BTC": wavePrices("BTC", 20),
	}})

	_, err := a.Analyze(context.Background(), "BTC", 20)
	require.NoError(t, err)

	// Empty symbol reuses the last analyzed token.
	report, err := a.AssessRisk(context.Background(), "", 20)
	require.NoError(t, err)
	assert.Equal(t, "BTC", report.Symbol)
}

func TestAgent_AssessRisk_NoSession(t *testing.T) {
	a := testAgent(t, &fakeProvider{series: map[string]types.PriceSeries{}})

	_, err := a.AssessRisk(context.Background(), "", 20)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no token analyzed yet")
}

func TestAgent_Compare(t *testing.T) {
	a := testAgent(t, &fakeProvider{series: map[string]types.PriceSeries{
		"BTC": wavePrices("BTC", 20),
		"ETH": pricesFor("ETH", seq(100, 1.05, 20)...),
	}})

	result, err := a.Compare(context.Background(), []string{"BTC", "ETH", "BAD"}, 20)
	require.NoError(t, err)

	assert.Len(t, result.Entries, 2)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "BAD")
}

func TestAgent_Compare_TooFewSurvivors(t *testing.T) {
	a := testAgent(t, &fakeProvider{series: map[string]types.PriceSeries{
		"BTC": wavePrices("BTC", 20),
	}})

	_, err := a.Compare(context.Background(), []string{"BTC", "BAD1", "BAD2"}, 20)
	assert.Error(t, err)
	assert.True(t, errors.IsInsufficientData(err))
}

func TestAgent_Analyze_Annualized(t *testing.T) {
	cfg := config.Default()
	cfg.Annualized = true

	provider := &fakeProvider{series: map[string]types.PriceSeries{
		"BTC": wavePrices("BTC", 20),
	}}

	daily, err := NewWithProvider(config.Default(), provider)
	require.NoError(t, err)
	annual, err := NewWithProvider(cfg, provider)
	require.NoError(t, err)

	dailyReport, err := daily.Analyze(context.Background(), "BTC", 20)
	require.NoError(t, err)
	annualReport, err := annual.Analyze(context.Background(), "BTC", 20)
	require.NoError(t, err)

	assert.True(t, annualReport.Volatility.Annualized)
	assert.Greater(t, annualReport.Summary.Current, dailyReport.Summary.Current)
	// Risk always runs on the daily series.
	assert.Equal(t, dailyReport.Risk.CurrentVolatility, annualReport.Risk.CurrentVolatility)
}

// seq builds a geometric price sequence.
func seq(start, ratio float64, n int) []float64 {
	out := make([]float64, n)
	price := start
	for i := range out {
		out[i] = price
		price *= ratio
	}
	return out
}
