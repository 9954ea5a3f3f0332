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

func returnSeries(values ...float64) types.ReturnSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]types.ReturnPoint, len(values))
	for i, v := range values {
		points[i] = types.ReturnPoint{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Value:     v,
		}
	}
	return types.ReturnSeries{Symbol: "BTC", Method: types.SimpleReturns, Points: points}
}

func TestNewModel_LambdaBounds(t *testing.T) {
	for _, lambda := range []float64{0, 1, -0.5, 1.5} {
		_, err := NewModel(lambda, SeedFirstReturn)
		assert.Error(t, err, "lambda %v should be rejected", lambda)
		assert.True(t, errors.IsInvalidParameter(err))
	}

	for _, lambda := range []float64{0.001, 0.5, 0.94, 0.999} {
		_, err := NewModel(lambda, SeedFirstReturn)
		assert.NoError(t, err, "lambda %v should be accepted", lambda)
	}
}

func TestNewModel_SeedPolicy(t *testing.T) {
	m, err := NewModel(0.94, "")
	require.NoError(t, err)
	assert.Equal(t, SeedFirstReturn, m.SeedPolicy())

	_, err = NewModel(0.94, "bogus")
	assert.Error(t, err)
	assert.True(t, errors.IsInvalidParameter(err))
}

func TestModel_Estimate_HandTrace(t *testing.T) {
	// lambda=0.94, returns 1% then 2%:
	//   variance_0 = 0.01^2 = 0.0001
	//   variance_1 = 0.94*0.0001 + 0.06*0.02^2 = 0.000118
	m, err := NewModel(0.94, SeedFirstReturn)
	require.NoError(t, err)

	series, err := m.Estimate(returnSeries(0.01, 0.02))
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())

	assert.InDelta(t, 0.01, series.Points[0].Value, 1e-12)
	assert.InDelta(t, math.Sqrt(0.000118), series.Points[1].Value, 1e-12)
	assert.False(t, series.Annualized)
}

func TestModel_Estimate_SampleWindowSeed(t *testing.T) {
	m, err := NewModel(0.94, SeedSampleWindow)
	require.NoError(t, err)

	series, err := m.Estimate(returnSeries(0.01, 0.03))
	require.NoError(t, err)

	// Seed is the mean of both squared returns: (0.0001 + 0.0009) / 2.
	seed := (0.01*0.01 + 0.03*0.03) / 2
	assert.InDelta(t, math.Sqrt(seed), series.Points[0].Value, 1e-12)
	assert.InDelta(t, math.Sqrt(0.94*seed+0.06*0.03*0.03), series.Points[1].Value, 1e-12)
}

func TestModel_Estimate_ReferenceTrace(t *testing.T) {
	m, err := NewModel(0.94, SeedFirstReturn)
	require.NoError(t, err)

	series, err := m.Estimate(returnSeries(0.01, -0.02, 0.015, -0.005, 0.02))
	require.NoError(t, err)
	require.Equal(t, 5, series.Len())

	variance := 0.0001
	expected := []float64{variance}
	for _, r := range []float64{-0.02, 0.015, -0.005, 0.02} {
		variance = 0.94*variance + 0.06*r*r
		expected = append(expected, variance)
	}

	assert.InDelta(t, 0.000118, expected[1], 1e-15)
	for i, want := range expected {
		assert.InDelta(t, math.Sqrt(want), series.Points[i].Value, 1e-12)
		assert.GreaterOrEqual(t, series.Points[i].Value, 0.0)
	}
}

func TestModel_Estimate_LowLambdaTracksLatestReturn(t *testing.T) {
	// With lambda near zero the estimate collapses onto the newest squared
	// return almost immediately.
	m, err := NewModel(0.001, SeedFirstReturn)
	require.NoError(t, err)

	series, err := m.Estimate(returnSeries(0.01, 0.05, -0.03))
	require.NoError(t, err)

	assert.InDelta(t, 0.05, series.Points[1].Value, 1e-3)
	assert.InDelta(t, 0.03, series.Points[2].Value, 1e-3)
}

func TestModel_Estimate_HighLambdaSmoother(t *testing.T) {
	returns := returnSeries(0.01, 0.05, 0.01, 0.04, 0.02, 0.06, 0.01)

	smooth, err := NewModel(0.99, SeedFirstReturn)
	require.NoError(t, err)
	reactive, err := NewModel(0.5, SeedFirstReturn)
	require.NoError(t, err)

	smoothSeries, err := smooth.Estimate(returns)
	require.NoError(t, err)
	reactiveSeries, err := reactive.Estimate(returns)
	require.NoError(t, err)

	assert.Less(t, spread(smoothSeries.Values()), spread(reactiveSeries.Values()))
}

func spread(values []float64) float64 {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}

func TestModel_Estimate_Deterministic(t *testing.T) {
	m, err := NewModel(0.94, SeedFirstReturn)
	require.NoError(t, err)
	returns := returnSeries(0.01, -0.02, 0.015, -0.005, 0.03)

	first, err := m.Estimate(returns)
	require.NoError(t, err)
	second, err := m.Estimate(returns)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestModel_Estimate_InsufficientData(t *testing.T) {
	m, err := NewModel(0.94, SeedFirstReturn)
	require.NoError(t, err)

	_, err = m.Estimate(returnSeries())
	assert.Error(t, err)
	assert.True(t, errors.IsInsufficientData(err))

	_, err = m.Estimate(returnSeries(0.01))
	assert.Error(t, err)
	assert.True(t, errors.IsInsufficientData(err))
}

func TestModel_Estimate_AlignedWithReturns(t *testing.T) {
	m, err := NewModel(0.94, SeedFirstReturn)
	require.NoError(t, err)
	returns := returnSeries(0.01, 0.02, 0.03)

	series, err := m.Estimate(returns)
	require.NoError(t, err)

	require.Equal(t, returns.Len(), series.Len())
	for i := range series.Points {
		assert.Equal(t, returns.Points[i].Timestamp, series.Points[i].Timestamp)
	}
}

func TestAnnualize(t *testing.T) {
	m, err := NewModel(0.94, SeedFirstReturn)
	require.NoError(t, err)
	daily, err := m.Estimate(returnSeries(0.01, 0.02, 0.015))
	require.NoError(t, err)

	annual, err := Annualize(daily, 252)
	require.NoError(t, err)

	assert.True(t, annual.Annualized)
	factor := math.Sqrt(252)
	for i := range daily.Points {
		assert.InDelta(t, daily.Points[i].Value*factor, annual.Points[i].Value, 1e-12)
	}

	// The input series is untouched.
	assert.False(t, daily.Annualized)
}

func TestAnnualize_InvalidTradingDays(t *testing.T) {
	_, err := Annualize(types.VolatilitySeries{}, 0)
	assert.Error(t, err)
	assert.True(t, errors.IsInvalidParameter(err))
}
