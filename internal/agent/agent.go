package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/volquant/crypto-vol-agent/internal/comparison"
	"github.com/volquant/crypto-vol-agent/internal/config"
	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/internal/indicators"
	"github.com/volquant/crypto-vol-agent/internal/monitoring"
	"github.com/volquant/crypto-vol-agent/internal/narrative"
	"github.com/volquant/crypto-vol-agent/internal/risk"
	"github.com/volquant/crypto-vol-agent/internal/volatility"
	"github.com/volquant/crypto-vol-agent/pkg/data"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// Agent orchestrates the analysis pipeline: fetch prices, estimate
// volatility, forecast, assess risk, compare. It holds no state beyond the
// session memory; every command recomputes from fresh or cached data.
type Agent struct {
	cfg         config.Config
	provider    data.PriceProvider
	model       *volatility.Model
	forecaster  *volatility.Forecaster
	assessor    *risk.Assessor
	engine      *comparison.Engine
	commentator narrative.Commentator
	health      *monitoring.HealthChecker
	session     *session
}

// New assembles an agent from the configuration. All parameters are
// validated here so commands can assume a well-formed pipeline.
func New(cfg config.Config) (*Agent, error) {
	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryConfig, "agent", "build provider")
	}
	return NewWithProvider(cfg, provider)
}

// NewWithProvider assembles an agent around an explicit price provider.
func NewWithProvider(cfg config.Config, provider data.PriceProvider) (*Agent, error) {
	model, err := volatility.NewModel(cfg.Lambda, volatility.SeedPolicy(cfg.SeedPolicy))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryConfig, "agent", "build model")
	}

	forecaster, err := volatility.NewForecaster(types.ForecastPolicy(cfg.ForecastPolicy))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryConfig, "agent", "build forecaster")
	}

	assessor, err := risk.NewAssessor(cfg.RiskConfig())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryConfig, "agent", "build assessor")
	}

	engine, err := comparison.NewEngine(types.ComparisonStatistic(cfg.CompareStatistic), cfg.CompareDescending)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryConfig, "agent", "build comparison engine")
	}
	engine.WithWorkers(cfg.CompareWorkers)

	commentator, err := buildCommentator(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryConfig, "agent", "build commentator")
	}

	return &Agent{
		cfg:         cfg,
		provider:    provider,
		model:       model,
		forecaster:  forecaster,
		assessor:    assessor,
		engine:      engine,
		commentator: commentator,
		health:      monitoring.NewHealthChecker(),
		session:     newSession(),
	}, nil
}

// Health exposes the health checker for the optional HTTP endpoint.
func (a *Agent) Health() *monitoring.HealthChecker {
	return a.health
}

// ProviderName names the active price provider.
func (a *Agent) ProviderName() string {
	return a.provider.GetName()
}

// Analyze runs the full pipeline for one token: volatility estimation,
// forecast, risk assessment, technical snapshot, optional commentary.
func (a *Agent) Analyze(ctx context.Context, symbol string, days int) (types.AnalysisReport, error) {
	start := time.Now()

	vol, prices, err := a.estimate(ctx, symbol, days)
	if err != nil {
		return types.AnalysisReport{}, err
	}

	report := types.AnalysisReport{
		Symbol:      vol.Symbol,
		GeneratedAt: time.Now().UTC(),
		Days:        days,
		Lambda:      a.model.Lambda(),
		Volatility:  vol,
		Summary:     vol.Summary(),
	}

	forecast, err := a.forecaster.Forecast(vol.Symbol, vol.Current(), a.cfg.Horizon)
	if err != nil {
		a.recordError("forecast", err)
		return types.AnalysisReport{}, errors.Wrap(err, errors.ErrorCategoryAnalysis, "forecaster", "forecast")
	}
	report.Forecast = &forecast

	riskReport, err := a.assessor.Assess(vol)
	if err != nil {
		a.recordError("risk", err)
		return types.AnalysisReport{}, errors.Wrap(err, errors.ErrorCategoryAnalysis, "assessor", "assess")
	}
	report.Risk = &riskReport

	// Annualization is presentation only; the risk assessment above always
	// ran on the daily series.
	if a.cfg.Annualized {
		annualized, err := volatility.Annualize(vol, a.cfg.TradingDaysPerYear)
		if err != nil {
			return types.AnalysisReport{}, errors.Wrap(err, errors.ErrorCategoryAnalysis, "model", "annualize")
		}
		report.Volatility = annualized
		report.Summary = annualized.Summary()
	}

	// Technicals need a longer history than the volatility core; a short
	// series yields a report without them rather than an error.
	if technicals, err := indicators.Summarize(prices); err == nil {
		report.Technicals = &technicals
	}

	if commentary, err := a.commentator.Comment(ctx, riskReport); err != nil {
		a.recordError("narrative", err)
	} else {
		report.Narrative = commentary
	}

	a.session.rememberAnalysis(vol)
	a.health.MarkAnalysis(vol.Symbol)
	monitoring.RecordAnalysis("analyze", vol.Symbol, time.Since(start).Seconds())
	monitoring.UpdateVolatility(vol.Symbol, vol.Current())

	return report, nil
}

// Predict produces a volatility projection over the given horizon.
func (a *Agent) Predict(ctx context.Context, symbol string, days, horizon int) (types.ForecastResult, error) {
	start := time.Now()

	vol, _, err := a.estimate(ctx, symbol, days)
	if err != nil {
		return types.ForecastResult{}, err
	}

	forecast, err := a.forecaster.Forecast(vol.Symbol, vol.Current(), horizon)
	if err != nil {
		a.recordError("forecast", err)
		return types.ForecastResult{}, errors.Wrap(err, errors.ErrorCategoryAnalysis, "forecaster", "forecast")
	}

	a.session.rememberAnalysis(vol)
	a.health.MarkAnalysis(vol.Symbol)
	monitoring.RecordAnalysis("predict", vol.Symbol, time.Since(start).Seconds())

	return forecast, nil
}

// AssessRisk assesses a token's risk. An empty symbol reuses the last
// analyzed token from the session.
func (a *Agent) AssessRisk(ctx context.Context, symbol string, days int) (types.RiskReport, error) {
	start := time.Now()

	if symbol == "" {
		remembered, ok := a.session.lastAnalyzed()
		if !ok {
			return types.RiskReport{}, errors.Wrap(
				fmt.Errorf("no token analyzed yet in this session, specify one"),
				errors.ErrorCategoryAnalysis, "agent", "assess risk")
		}
		riskReport, err := a.assessor.Assess(remembered)
		if err != nil {
			a.recordError("risk", err)
			return types.RiskReport{}, errors.Wrap(err, errors.ErrorCategoryAnalysis, "assessor", "assess")
		}
		monitoring.RecordAnalysis("risk", remembered.Symbol, time.Since(start).Seconds())
		return riskReport, nil
	}

	vol, _, err := a.estimate(ctx, symbol, days)
	if err != nil {
		return types.RiskReport{}, err
	}

	riskReport, err := a.assessor.Assess(vol)
	if err != nil {
		a.recordError("risk", err)
		return types.RiskReport{}, errors.Wrap(err, errors.ErrorCategoryAnalysis, "assessor", "assess")
	}

	a.session.rememberAnalysis(vol)
	a.health.MarkAnalysis(vol.Symbol)
	monitoring.RecordAnalysis("risk", vol.Symbol, time.Since(start).Seconds())
	monitoring.UpdateVolatility(vol.Symbol, vol.Current())

	return riskReport, nil
}

// Compare ranks several tokens by volatility. Tokens whose data cannot be
// fetched or estimated are reported in the result's warnings, never silently
// dropped; at least two must survive.
func (a *Agent) Compare(ctx context.Context, symbols []string, days int) (types.ComparisonResult, error) {
	start := time.Now()

	series := make(map[string]types.VolatilitySeries, len(symbols))
	var warnings []string
	for _, symbol := range symbols {
		vol, _, err := a.estimate(ctx, symbol, days)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s excluded: %v", symbol, err))
			continue
		}
		series[vol.Symbol] = vol
	}

	if len(series) < 2 {
		for _, w := range warnings {
			a.health.MarkError(w)
		}
		return types.ComparisonResult{}, errors.Wrap(
			errors.NewInsufficientData("comparison", 2, len(series)),
			errors.ErrorCategoryAnalysis, "agent", "compare")
	}

	result, err := a.engine.Compare(series)
	if err != nil {
		a.recordError("comparison", err)
		return types.ComparisonResult{}, errors.Wrap(err, errors.ErrorCategoryAnalysis, "comparison", "compare")
	}
	result.Warnings = append(warnings, result.Warnings...)

	monitoring.RecordAnalysis("compare", fmt.Sprintf("%d tokens", len(series)), time.Since(start).Seconds())

	return result, nil
}

// estimate fetches prices and runs the EWMA core, the shared front half of
// every command.
func (a *Agent) estimate(ctx context.Context, symbol string, days int) (types.VolatilitySeries, types.PriceSeries, error) {
	prices, err := a.provider.GetHistoricalPrices(ctx, symbol, days)
	if err != nil {
		a.recordError("provider", err)
		return types.VolatilitySeries{}, types.PriceSeries{}, errors.Wrap(err, errors.ErrorCategoryProvider, a.provider.GetName(), "fetch prices")
	}

	returns, err := volatility.CalculateReturns(prices, types.ReturnMethod(a.cfg.ReturnMethod))
	if err != nil {
		a.recordError("returns", err)
		return types.VolatilitySeries{}, types.PriceSeries{}, errors.Wrap(err, errors.ErrorCategoryAnalysis, "returns", "calculate")
	}

	vol, err := a.model.Estimate(returns)
	if err != nil {
		a.recordError("estimation", err)
		return types.VolatilitySeries{}, types.PriceSeries{}, errors.Wrap(err, errors.ErrorCategoryAnalysis, "model", "estimate")
	}

	return vol, prices, nil
}

func (a *Agent) recordError(errorType string, err error) {
	monitoring.RecordError(errorType)
	a.health.MarkError(err.Error())
}
