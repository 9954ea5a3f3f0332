package types

import "time"

// VolatilityPoint is a single volatility estimate (standard deviation of
// returns) at a point in time.
type VolatilityPoint struct {
	Timestamp time.Time
	Value     float64
}

// VolatilitySeries holds the estimated volatility per return observation,
// aligned 1:1 with the ReturnSeries it was computed from.
type VolatilitySeries struct {
	Symbol     string
	Annualized bool
	Points     []VolatilityPoint
}

// Len returns the number of volatility estimates.
func (s VolatilitySeries) Len() int {
	return len(s.Points)
}

// Current returns the most recent volatility estimate, or 0 for an empty series.
func (s VolatilitySeries) Current() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Value
}

// Values returns the raw volatility values in series order.
func (s VolatilitySeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Summary computes the headline statistics of the series.
func (s VolatilitySeries) Summary() VolatilitySummary {
	summary := VolatilitySummary{Current: s.Current()}
	if len(s.Points) == 0 {
		return summary
	}

	summary.Min = s.Points[0].Value
	summary.Max = s.Points[0].Value
	sum := 0.0
	for _, p := range s.Points {
		if p.Value > summary.Max {
			summary.Max = p.Value
		}
		if p.Value < summary.Min {
			summary.Min = p.Value
		}
		sum += p.Value
	}
	summary.Mean = sum / float64(len(s.Points))

	return summary
}

// VolatilitySummary is the compact per-token view consumed by reports and
// the comparison engine.
type VolatilitySummary struct {
	Mean    float64 `json:"mean"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Current float64 `json:"current"`
}

// ForecastPolicy names how a multi-day volatility forecast is projected.
type ForecastPolicy string

const (
	// ForecastFlat projects the last estimated daily volatility unchanged for
	// every day of the horizon. This is the only forecast consistent with an
	// EWMA model, which has no mean-reversion term.
	ForecastFlat ForecastPolicy = "flat"
	// ForecastCumulative scales the last estimate by sqrt(h) per day h,
	// giving the volatility of the cumulative h-day return instead of a
	// daily projection.
	ForecastCumulative ForecastPolicy = "cumulative"
)

// ForecastResult is a volatility projection over a horizon of trading days.
type ForecastResult struct {
	Symbol  string         `json:"symbol"`
	Horizon int            `json:"horizon"`
	Policy  ForecastPolicy `json:"policy"`
	// Values holds one projected volatility per day 1..Horizon.
	Values []float64 `json:"values"`
}
