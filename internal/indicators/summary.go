package indicators

import (
	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// Standard periods for the analysis snapshot.
const (
	ShortSMAPeriod = 5
	LongSMAPeriod  = 20
	RSIPeriod      = 14
	MACDFastSpan   = 12
	MACDSlowSpan   = 26
	MACDSignalSpan = 9
)

// minObservations is what the slowest component (the MACD slow EMA) needs to
// produce a meaningful value.
const minObservations = MACDSlowSpan

// Summarize computes the indicator snapshot for a price series. It is
// descriptive context for reports, not a trading signal.
func Summarize(prices types.PriceSeries) (types.TechnicalSummary, error) {
	if prices.Len() < minObservations {
		return types.TechnicalSummary{}, errors.NewInsufficientData("technical summary", minObservations, prices.Len())
	}

	values := prices.Prices()

	fast := EMASeries(values, MACDFastSpan)
	slow := EMASeries(values, MACDSlowSpan)
	macd := make([]float64, len(values))
	for i := range values {
		macd[i] = fast[i] - slow[i]
	}
	signal := EMASeries(macd, MACDSignalSpan)

	return types.TechnicalSummary{
		SMA5:       SMA(values, ShortSMAPeriod),
		SMA20:      SMA(values, LongSMAPeriod),
		RSI14:      RSI(values, RSIPeriod),
		MACD:       macd[len(macd)-1],
		MACDSignal: signal[len(signal)-1],
	}, nil
}
