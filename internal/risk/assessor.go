package risk

import (
	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// Default classification parameters. The threshold values are daily
// volatility boundaries between adjacent risk levels.
const (
	DefaultMediumThreshold     = 0.025
	DefaultMediumHighThreshold = 0.075
	DefaultHighThreshold       = 0.10

	DefaultTrendWindow    = 5
	DefaultTrendTolerance = 0.10
)

// Thresholds are the ordered daily-volatility boundaries separating the four
// risk levels: below Medium is low, below MediumHigh is medium, below High is
// medium-high, and everything above is high.
type Thresholds struct {
	Medium     float64 `json:"medium"`
	MediumHigh float64 `json:"medium_high"`
	High       float64 `json:"high"`
}

// DefaultThresholds returns the standard classification boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Medium:     DefaultMediumThreshold,
		MediumHigh: DefaultMediumHighThreshold,
		High:       DefaultHighThreshold,
	}
}

// Config holds the assessment parameters. Each Assessor owns its own copy, so
// concurrent analyses with different parameters never interfere.
type Config struct {
	// Confidence is the VaR/ES confidence level, strictly between 0 and 1.
	Confidence float64 `json:"confidence"`
	// TrendWindow is how many preceding observations the trend comparison
	// averages over.
	TrendWindow int `json:"trend_window"`
	// TrendTolerance is the relative band around the window mean within which
	// the trend is classified as stable.
	TrendTolerance float64    `json:"trend_tolerance"`
	Thresholds     Thresholds `json:"thresholds"`
}

// DefaultConfig returns the standard assessment parameters at 95% confidence.
func DefaultConfig() Config {
	return Config{
		Confidence:     0.95,
		TrendWindow:    DefaultTrendWindow,
		TrendTolerance: DefaultTrendTolerance,
		Thresholds:     DefaultThresholds(),
	}
}

// Assessor derives VaR, expected shortfall, and qualitative risk
// classifications from a volatility series. Returns are modeled as normally
// distributed with the current EWMA volatility; this parametric approach (not
// historical simulation) is what makes the outputs reproducible from the
// volatility series alone.
type Assessor struct {
	cfg Config
}

// NewAssessor creates an assessor after validating the configuration.
func NewAssessor(cfg Config) (*Assessor, error) {
	if cfg.Confidence <= 0 || cfg.Confidence >= 1 {
		return nil, errors.NewInvalidParameter("confidence", cfg.Confidence, "must be in the open interval (0, 1)")
	}
	if cfg.TrendWindow < 1 {
		return nil, errors.NewInvalidParameter("trendWindow", cfg.TrendWindow, "must be >= 1")
	}
	if cfg.TrendTolerance < 0 {
		return nil, errors.NewInvalidParameter("trendTolerance", cfg.TrendTolerance, "must be >= 0")
	}
	t := cfg.Thresholds
	if t.Medium <= 0 || t.MediumHigh <= t.Medium || t.High <= t.MediumHigh {
		return nil, errors.NewInvalidParameter("thresholds", t, "must be positive and strictly ascending")
	}
	return &Assessor{cfg: cfg}, nil
}

// ValueAtRisk computes the parametric VaR at confidence c for volatility
// sigma: z_c * sigma.
func ValueAtRisk(sigma, c float64) (float64, error) {
	if c <= 0 || c >= 1 {
		return 0, errors.NewInvalidParameter("confidence", c, "must be in the open interval (0, 1)")
	}
	if sigma < 0 {
		return 0, errors.NewInvalidParameter("sigma", sigma, "must be >= 0")
	}
	return normalQuantile(c) * sigma, nil
}

// ExpectedShortfall computes the parametric ES at confidence c for volatility
// sigma: sigma * phi(z_c) / (1-c). It always exceeds the VaR at the same
// confidence for c < 1.
func ExpectedShortfall(sigma, c float64) (float64, error) {
	if c <= 0 || c >= 1 {
		return 0, errors.NewInvalidParameter("confidence", c, "must be in the open interval (0, 1)")
	}
	if sigma < 0 {
		return 0, errors.NewInvalidParameter("sigma", sigma, "must be >= 0")
	}
	return sigma * normalDensity(normalQuantile(c)) / (1 - c), nil
}

// Assess produces the full risk report for a volatility series.
func (a *Assessor) Assess(series types.VolatilitySeries) (types.RiskReport, error) {
	if series.Len() < 2 {
		return types.RiskReport{}, errors.NewInsufficientData("risk assessment", 2, series.Len())
	}

	sigma := series.Current()

	valueAtRisk, err := ValueAtRisk(sigma, a.cfg.Confidence)
	if err != nil {
		return types.RiskReport{}, err
	}
	shortfall, err := ExpectedShortfall(sigma, a.cfg.Confidence)
	if err != nil {
		return types.RiskReport{}, err
	}

	level := a.classifyLevel(sigma)

	return types.RiskReport{
		Symbol:            series.Symbol,
		Confidence:        a.cfg.Confidence,
		CurrentVolatility: sigma,
		ValueAtRisk:       valueAtRisk,
		ExpectedShortfall: shortfall,
		Trend:             a.classifyTrend(series),
		Level:             level,
		Recommendations:   Recommendations(level),
	}, nil
}

// classifyLevel buckets the current volatility into a risk level.
func (a *Assessor) classifyLevel(sigma float64) types.RiskLevel {
	t := a.cfg.Thresholds
	switch {
	case sigma < t.Medium:
		return types.RiskLow
	case sigma < t.MediumHigh:
		return types.RiskMedium
	case sigma < t.High:
		return types.RiskMediumHigh
	default:
		return types.RiskHigh
	}
}

// classifyTrend compares the latest estimate against the mean of the
// preceding window. A shorter series shrinks the window rather than failing.
func (a *Assessor) classifyTrend(series types.VolatilitySeries) types.TrendDirection {
	n := series.Len()
	window := a.cfg.TrendWindow
	if window > n-1 {
		window = n - 1
	}

	sum := 0.0
	for i := n - 1 - window; i < n-1; i++ {
		sum += series.Points[i].Value
	}
	mean := sum / float64(window)
	current := series.Current()

	switch {
	case mean == 0:
		if current > 0 {
			return types.TrendRising
		}
		return types.TrendStable
	case current > mean*(1+a.cfg.TrendTolerance):
		return types.TrendRising
	case current < mean*(1-a.cfg.TrendTolerance):
		return types.TrendFalling
	default:
		return types.TrendStable
	}
}
