package risk

import "math"

// normalQuantile returns the standard normal quantile z_p for probability p
// strictly between 0 and 1 (e.g. z_0.95 ~= 1.645).
func normalQuantile(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}

// normalDensity returns the standard normal density at z.
func normalDensity(z float64) float64 {
	return math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
}
