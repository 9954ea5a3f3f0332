package volatility

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

func priceSeries(prices ...float64) types.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]types.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = types.PricePoint{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Price:     p,
		}
	}
	return types.PriceSeries{Symbol: "BTC", Points: points}
}

func TestCalculateReturns_Simple(t *testing.T) {
	returns, err := CalculateReturns(priceSeries(100, 110, 99), types.SimpleReturns)
	require.NoError(t, err)
	require.Equal(t, 2, returns.Len())

	assert.InDelta(t, 0.10, returns.Points[0].Value, 1e-12)
	assert.InDelta(t, -0.10, returns.Points[1].Value, 1e-12)
	assert.Equal(t, types.SimpleReturns, returns.Method)
}

func TestCalculateReturns_Log(t *testing.T) {
	returns, err := CalculateReturns(priceSeries(100, 110), types.LogReturns)
	require.NoError(t, err)
	require.Equal(t, 1, returns.Len())

	assert.InDelta(t, math.Log(1.1), returns.Points[0].Value, 1e-12)
}

func TestCalculateReturns_TimestampsCarryLaterObservation(t *testing.T) {
	prices := priceSeries(100, 110, 121)
	returns, err := CalculateReturns(prices, types.SimpleReturns)
	require.NoError(t, err)

	assert.Equal(t, prices.Points[1].Timestamp, returns.Points[0].Timestamp)
	assert.Equal(t, prices.Points[2].Timestamp, returns.Points[1].Timestamp)
}

func TestCalculateReturns_InsufficientData(t *testing.T) {
	for _, prices := range []types.PriceSeries{priceSeries(), priceSeries(100)} {
		_, err := CalculateReturns(prices, types.SimpleReturns)
		assert.Error(t, err)
		assert.True(t, errors.IsInsufficientData(err))
	}
}

func TestCalculateReturns_InvalidMethod(t *testing.T) {
	_, err := CalculateReturns(priceSeries(100, 110), "geometric")
	assert.Error(t, err)
	assert.True(t, errors.IsInvalidParameter(err))
}

func TestCalculateReturns_NonPositivePrice(t *testing.T) {
	_, err := CalculateReturns(priceSeries(100, 0, 110), types.SimpleReturns)
	assert.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))

	_, err = CalculateReturns(priceSeries(100, -5), types.SimpleReturns)
	assert.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestCalculateReturns_UnorderedTimestamps(t *testing.T) {
	prices := priceSeries(100, 110, 121)
	prices.Points[2].Timestamp = prices.Points[0].Timestamp

	_, err := CalculateReturns(prices, types.SimpleReturns)
	assert.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}
