package types

import "time"

// AnalysisReport bundles everything one full analysis of a token produced.
// It is assembled by the agent and handed to reporters as-is.
type AnalysisReport struct {
	Symbol      string            `json:"symbol"`
	GeneratedAt time.Time         `json:"generated_at"`
	Days        int               `json:"days"`
	Lambda      float64           `json:"lambda"`
	Volatility  VolatilitySeries  `json:"-"`
	Summary     VolatilitySummary `json:"summary"`
	Forecast    *ForecastResult   `json:"forecast,omitempty"`
	Risk        *RiskReport       `json:"risk,omitempty"`
	Technicals  *TechnicalSummary `json:"technicals,omitempty"`
	Narrative   string            `json:"narrative,omitempty"`
}

// TechnicalSummary is the small indicator snapshot included in an analysis
// report alongside the volatility numbers.
type TechnicalSummary struct {
	SMA5       float64 `json:"sma_5"`
	SMA20      float64 `json:"sma_20"`
	RSI14      float64 `json:"rsi_14"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
}
