package volatility

import (
	"math"

	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// Forecaster projects an EWMA volatility estimate over a horizon of days.
//
// An EWMA model has no drift or mean-reversion term, so its h-step-ahead
// variance forecast equals the last estimated variance for every h. The
// default flat policy preserves that exactly; the cumulative policy is an
// explicit alternative that reports sqrt(h)-scaled horizon volatility instead.
type Forecaster struct {
	policy types.ForecastPolicy
}

// NewForecaster creates a forecaster with the given projection policy. An
// empty policy selects the flat projection.
func NewForecaster(policy types.ForecastPolicy) (*Forecaster, error) {
	switch policy {
	case types.ForecastFlat, types.ForecastCumulative:
	case "":
		policy = types.ForecastFlat
	default:
		return nil, errors.NewInvalidParameter("policy", string(policy), "must be flat or cumulative")
	}
	return &Forecaster{policy: policy}, nil
}

// Policy returns the projection policy the forecaster was constructed with.
func (f *Forecaster) Policy() types.ForecastPolicy {
	return f.policy
}

// Forecast projects the given current volatility over horizon days. The
// current value is expected to be the last estimate of a Model's series.
func (f *Forecaster) Forecast(symbol string, currentVolatility float64, horizon int) (types.ForecastResult, error) {
	if horizon < 1 {
		return types.ForecastResult{}, errors.NewInvalidParameter("horizon", horizon, "must be >= 1")
	}
	if currentVolatility < 0 {
		return types.ForecastResult{}, errors.NewInvalidParameter("currentVolatility", currentVolatility, "must be >= 0")
	}

	values := make([]float64, horizon)
	for day := 1; day <= horizon; day++ {
		if f.policy == types.ForecastCumulative {
			values[day-1] = currentVolatility * math.Sqrt(float64(day))
		} else {
			values[day-1] = currentVolatility
		}
	}

	return types.ForecastResult{
		Symbol:  symbol,
		Horizon: horizon,
		Policy:  f.policy,
		Values:  values,
	}, nil
}
