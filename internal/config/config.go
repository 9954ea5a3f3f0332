package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/internal/risk"
)

// Defaults for the analysis pipeline. Lambda follows the RiskMetrics
// convention for daily data.
const (
	DefaultLambda             = 0.94
	DefaultTradingDaysPerYear = 252
	DefaultConfidence         = 0.95
	DefaultDays               = 30
	DefaultHorizon            = 7
	DefaultProvider           = "coingecko"
	DefaultOutputDir          = "output"
)

// NarrativeConfig configures the optional LLM commentary decorator. The API
// key is only ever read from the environment, never from the config file.
type NarrativeConfig struct {
	Enabled bool   `json:"enabled"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"-"`
}

// Config carries every tunable of the analysis pipeline. It is built once per
// invocation and handed to each component at construction; there is no shared
// mutable state between concurrent analyses.
type Config struct {
	// EWMA model parameters.
	Lambda             float64 `json:"lambda"`
	SeedPolicy         string  `json:"seed_policy"`
	ReturnMethod       string  `json:"return_method"`
	TradingDaysPerYear int     `json:"trading_days_per_year"`
	// Annualized scales reported volatility by sqrt(trading days). Risk
	// assessment always runs on the daily series.
	Annualized bool `json:"annualized"`

	// Forecast parameters.
	ForecastPolicy string `json:"forecast_policy"`
	Horizon        int    `json:"horizon"`

	// Days of price history fetched per command.
	Days int `json:"days"`

	// Risk assessment parameters.
	Confidence     float64         `json:"confidence"`
	TrendWindow    int             `json:"trend_window"`
	TrendTolerance float64         `json:"trend_tolerance"`
	RiskThresholds risk.Thresholds `json:"risk_thresholds"`

	// Comparison parameters.
	CompareStatistic  string `json:"compare_statistic"`
	CompareDescending bool   `json:"compare_descending"`
	CompareWorkers    int    `json:"compare_workers"`

	// Data provider selection: coingecko, bybit or csv.
	Provider string `json:"provider"`
	// DataDir holds per-symbol CSV files when Provider is csv.
	DataDir string `json:"data_dir"`

	// Report output directory.
	OutputDir string `json:"output_dir"`

	Narrative NarrativeConfig `json:"narrative"`

	// Exchange credentials, environment only.
	BybitAPIKey    string `json:"-"`
	BybitAPISecret string `json:"-"`
}

// Default returns the standard configuration.
func Default() Config {
	riskDefaults := risk.DefaultConfig()
	return Config{
		Lambda:             DefaultLambda,
		SeedPolicy:         "first-return",
		ReturnMethod:       "simple",
		TradingDaysPerYear: DefaultTradingDaysPerYear,
		ForecastPolicy:     "flat",
		Horizon:            DefaultHorizon,
		Days:               DefaultDays,
		Confidence:         DefaultConfidence,
		TrendWindow:        riskDefaults.TrendWindow,
		TrendTolerance:     riskDefaults.TrendTolerance,
		RiskThresholds:     riskDefaults.Thresholds,
		CompareStatistic:   "current",
		CompareDescending:  true,
		CompareWorkers:     1,
		Provider:           DefaultProvider,
		OutputDir:          DefaultOutputDir,
		Narrative: NarrativeConfig{
			BaseURL: "https://api.deepseek.com/v1/chat/completions",
			Model:   "deepseek-chat",
		},
	}
}

// Load builds the configuration from defaults, an optional JSON file, and
// environment variables, in that order of precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnvironment overlays environment variables onto the configuration.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("VOL_AGENT_LAMBDA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Lambda = f
		}
	}
	if v := os.Getenv("VOL_AGENT_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Confidence = f
		}
	}
	if v := os.Getenv("VOL_AGENT_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("VOL_AGENT_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}

	c.BybitAPIKey = os.Getenv("BYBIT_API_KEY")
	c.BybitAPISecret = os.Getenv("BYBIT_API_SECRET")
	c.Narrative.APIKey = os.Getenv("DEEPSEEK_API_KEY")
	if c.Narrative.APIKey != "" && os.Getenv("VOL_AGENT_NARRATIVE") == "1" {
		c.Narrative.Enabled = true
	}
}

// Validate checks every parameter the components would reject, so bad values
// surface before any data is fetched.
func (c Config) Validate() error {
	if c.Lambda <= 0 || c.Lambda >= 1 {
		return errors.NewInvalidParameter("lambda", c.Lambda, "must be in the open interval (0, 1)")
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return errors.NewInvalidParameter("confidence", c.Confidence, "must be in the open interval (0, 1)")
	}
	if c.TradingDaysPerYear < 1 {
		return errors.NewInvalidParameter("trading_days_per_year", c.TradingDaysPerYear, "must be >= 1")
	}
	if c.TrendWindow < 1 {
		return errors.NewInvalidParameter("trend_window", c.TrendWindow, "must be >= 1")
	}
	if c.Horizon < 1 {
		return errors.NewInvalidParameter("horizon", c.Horizon, "must be >= 1")
	}
	if c.Days < 2 {
		return errors.NewInvalidParameter("days", c.Days, "must be >= 2")
	}
	switch c.Provider {
	case "coingecko", "bybit", "csv":
	default:
		return errors.NewInvalidParameter("provider", c.Provider, "must be coingecko, bybit or csv")
	}
	if c.Provider == "csv" && c.DataDir == "" {
		return errors.NewInvalidParameter("data_dir", c.DataDir, "required when provider is csv")
	}
	return nil
}

// RiskConfig assembles the risk assessor's configuration.
func (c Config) RiskConfig() risk.Config {
	return risk.Config{
		Confidence:     c.Confidence,
		TrendWindow:    c.TrendWindow,
		TrendTolerance: c.TrendTolerance,
		Thresholds:     c.RiskThresholds,
	}
}
