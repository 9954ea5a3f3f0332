package types

// TrendDirection classifies the short-term movement of a volatility series.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendStable  TrendDirection = "stable"
)

// RiskLevel is the qualitative bucket a token's current volatility falls in.
type RiskLevel string

const (
	RiskLow        RiskLevel = "low"
	RiskMedium     RiskLevel = "medium"
	RiskMediumHigh RiskLevel = "medium-high"
	RiskHigh       RiskLevel = "high"
)

// RiskReport is the full risk assessment for one token. All numeric fields
// are final; consumers render them but never recompute them.
type RiskReport struct {
	Symbol            string         `json:"symbol"`
	Confidence        float64        `json:"confidence"`
	CurrentVolatility float64        `json:"current_volatility"`
	ValueAtRisk       float64        `json:"value_at_risk"`
	ExpectedShortfall float64        `json:"expected_shortfall"`
	Trend             TrendDirection `json:"trend"`
	Level             RiskLevel      `json:"level"`
	Recommendations   []string       `json:"recommendations"`
}

// ComparisonEntry is one token's ranked position in a comparison.
type ComparisonEntry struct {
	Symbol  string            `json:"symbol"`
	Rank    int               `json:"rank"`
	Summary VolatilitySummary `json:"summary"`
}

// ComparisonStatistic selects which summary statistic a comparison ranks by.
type ComparisonStatistic string

const (
	CompareByCurrent ComparisonStatistic = "current"
	CompareByMean    ComparisonStatistic = "mean"
	CompareByMax     ComparisonStatistic = "max"
	CompareByMin     ComparisonStatistic = "min"
)

// ComparisonResult ranks tokens by a volatility statistic. Tokens that could
// not participate (no overlapping date range, failed data) are listed in
// Warnings rather than silently dropped.
type ComparisonResult struct {
	Statistic  ComparisonStatistic `json:"statistic"`
	Descending bool                `json:"descending"`
	Entries    []ComparisonEntry   `json:"entries"`
	Warnings   []string            `json:"warnings,omitempty"`
}
