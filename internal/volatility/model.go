package volatility

import (
	"math"

	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// SeedPolicy selects how the variance estimate at the first observation is
// initialized. The choice affects every downstream value, so it is part of the
// model's public contract and fixed for the lifetime of a model instance.
type SeedPolicy string

const (
	// SeedFirstReturn seeds the variance with the squared first return. This
	// is the default policy.
	SeedFirstReturn SeedPolicy = "first-return"
	// SeedSampleWindow seeds the variance with the mean of the first
	// min(20, n) squared returns.
	SeedSampleWindow SeedPolicy = "sample-window"
)

// seedWindowSize is the observation window used by SeedSampleWindow.
const seedWindowSize = 20

// Model estimates volatility with an exponentially weighted moving average of
// squared returns:
//
//	variance_i = lambda*variance_{i-1} + (1-lambda)*return_i^2
//
// Higher lambda weighs the previous estimate more heavily, giving a smoother,
// slower-adapting series. A model instance is immutable after construction and
// produces bit-identical output for identical input.
type Model struct {
	lambda float64
	seed   SeedPolicy
}

// NewModel creates an EWMA model. lambda must lie in the open interval (0, 1);
// values at or outside the bounds are rejected, never clamped.
func NewModel(lambda float64, seed SeedPolicy) (*Model, error) {
	if lambda <= 0 || lambda >= 1 {
		return nil, errors.NewInvalidParameter("lambda", lambda, "must be in the open interval (0, 1)")
	}
	switch seed {
	case SeedFirstReturn, SeedSampleWindow:
	case "":
		seed = SeedFirstReturn
	default:
		return nil, errors.NewInvalidParameter("seed", string(seed), "must be first-return or sample-window")
	}
	return &Model{lambda: lambda, seed: seed}, nil
}

// Lambda returns the decay factor the model was constructed with.
func (m *Model) Lambda() float64 {
	return m.lambda
}

// SeedPolicy returns the seed policy the model was constructed with.
func (m *Model) SeedPolicy() SeedPolicy {
	return m.seed
}

// Estimate computes the daily volatility series for the given returns. The
// output is aligned 1:1 with the input: one estimate per return observation,
// each the square root of the running variance.
func (m *Model) Estimate(returns types.ReturnSeries) (types.VolatilitySeries, error) {
	if returns.Len() < 2 {
		return types.VolatilitySeries{}, errors.NewInsufficientData("EWMA estimation", 2, returns.Len())
	}

	points := make([]types.VolatilityPoint, returns.Len())
	variance := m.seedVariance(returns)
	points[0] = types.VolatilityPoint{Timestamp: returns.Points[0].Timestamp, Value: math.Sqrt(variance)}

	for i := 1; i < returns.Len(); i++ {
		r := returns.Points[i].Value
		variance = m.lambda*variance + (1-m.lambda)*r*r
		points[i] = types.VolatilityPoint{Timestamp: returns.Points[i].Timestamp, Value: math.Sqrt(variance)}
	}

	return types.VolatilitySeries{Symbol: returns.Symbol, Points: points}, nil
}

// seedVariance computes the initial variance per the configured policy.
func (m *Model) seedVariance(returns types.ReturnSeries) float64 {
	if m.seed == SeedSampleWindow {
		window := returns.Len()
		if window > seedWindowSize {
			window = seedWindowSize
		}
		sum := 0.0
		for i := 0; i < window; i++ {
			r := returns.Points[i].Value
			sum += r * r
		}
		return sum / float64(window)
	}

	first := returns.Points[0].Value
	return first * first
}

// Annualize scales a daily volatility series by sqrt(tradingDays). It is a
// pure post-processing step: the EWMA recursion itself always runs on daily
// values.
func Annualize(series types.VolatilitySeries, tradingDays int) (types.VolatilitySeries, error) {
	if tradingDays < 1 {
		return types.VolatilitySeries{}, errors.NewInvalidParameter("tradingDays", tradingDays, "must be >= 1")
	}

	factor := math.Sqrt(float64(tradingDays))
	points := make([]types.VolatilityPoint, len(series.Points))
	for i, p := range series.Points {
		points[i] = types.VolatilityPoint{Timestamp: p.Timestamp, Value: p.Value * factor}
	}

	return types.VolatilitySeries{Symbol: series.Symbol, Annualized: true, Points: points}, nil
}
