package types

import "time"

// PricePoint is a single observed price at a point in time.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// PriceSeries is an ordered (oldest to newest) series of prices for one token.
// It is produced by a data provider and treated as read-only by the analysis
// packages.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// Len returns the number of price observations.
func (s PriceSeries) Len() int {
	return len(s.Points)
}

// Prices returns the raw price values in series order.
func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s.Points))
	for i, p := range s.Points {
		prices[i] = p.Price
	}
	return prices
}

// Last returns the most recent price point.
func (s PriceSeries) Last() PricePoint {
	if len(s.Points) == 0 {
		return PricePoint{}
	}
	return s.Points[len(s.Points)-1]
}

// ReturnMethod selects how period returns are derived from prices.
type ReturnMethod string

const (
	// SimpleReturns computes p_i/p_{i-1} - 1.
	SimpleReturns ReturnMethod = "simple"
	// LogReturns computes ln(p_i/p_{i-1}).
	LogReturns ReturnMethod = "log"
)

// ReturnPoint is a single period return.
type ReturnPoint struct {
	Timestamp time.Time
	Value     float64
}

// ReturnSeries holds period returns derived from a PriceSeries. Its length is
// always one less than the source series.
type ReturnSeries struct {
	Symbol string
	Method ReturnMethod
	Points []ReturnPoint
}

// Len returns the number of return observations.
func (s ReturnSeries) Len() int {
	return len(s.Points)
}

// Values returns the raw return values in series order.
func (s ReturnSeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}
