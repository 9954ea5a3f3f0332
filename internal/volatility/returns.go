package volatility

import (
	"math"

	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// CalculateReturns derives period returns from a price series. The result has
// one observation per consecutive price pair and carries the timestamp of the
// later observation.
func CalculateReturns(prices types.PriceSeries, method types.ReturnMethod) (types.ReturnSeries, error) {
	if prices.Len() < 2 {
		return types.ReturnSeries{}, errors.NewInsufficientData("return calculation", 2, prices.Len())
	}

	switch method {
	case types.SimpleReturns, types.LogReturns:
	default:
		return types.ReturnSeries{}, errors.NewInvalidParameter("method", string(method), "must be simple or log")
	}

	points := make([]types.ReturnPoint, 0, prices.Len()-1)
	for i := 1; i < prices.Len(); i++ {
		prev, curr := prices.Points[i-1], prices.Points[i]
		if !curr.Timestamp.After(prev.Timestamp) {
			return types.ReturnSeries{}, errors.NewInvalidInput("price series", i, "timestamps must be strictly increasing")
		}
		if prev.Price <= 0 || curr.Price <= 0 {
			return types.ReturnSeries{}, errors.NewInvalidInput("price series", i, "prices must be positive")
		}

		var value float64
		if method == types.LogReturns {
			value = math.Log(curr.Price / prev.Price)
		} else {
			value = curr.Price/prev.Price - 1
		}
		points = append(points, types.ReturnPoint{Timestamp: curr.Timestamp, Value: value})
	}

	return types.ReturnSeries{Symbol: prices.Symbol, Method: method, Points: points}, nil
}
