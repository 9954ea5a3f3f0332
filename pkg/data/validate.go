package data

import (
	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// ValidateSeries checks the integrity contract every provider must satisfy:
// at least two observations, positive prices, and strictly increasing
// timestamps (no duplicates, no reordering).
func ValidateSeries(series types.PriceSeries) error {
	if series.Len() < 2 {
		return errors.NewInsufficientData("price series", 2, series.Len())
	}

	for i, p := range series.Points {
		if p.Price <= 0 {
			return errors.NewInvalidInput("price series", i, "prices must be positive")
		}
		if p.Timestamp.IsZero() {
			return errors.NewInvalidInput("price series", i, "timestamp is unset")
		}
		if i > 0 && !p.Timestamp.After(series.Points[i-1].Timestamp) {
			return errors.NewInvalidInput("price series", i, "timestamps must be strictly increasing")
		}
	}

	return nil
}
