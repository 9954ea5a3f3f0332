package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/volquant/crypto-vol-agent/internal/config"
)

// AgentFlags holds all command line flags for the vol-agent command.
type AgentFlags struct {
	// Configuration
	ConfigFile *string
	EnvFile    *string

	// Target selection
	Symbol  *string
	Symbols *string
	Days    *int

	// Model parameters
	Lambda       *float64
	SeedPolicy   *string
	ReturnMethod *string
	Annualized   *bool

	// Forecast parameters
	Horizon        *int
	ForecastPolicy *string

	// Risk parameters
	Confidence *float64

	// Comparison parameters
	Statistic *string
	Ascending *bool
	Workers   *int

	// Data provider
	Provider *string
	DataDir  *string

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	Narrative   *bool
	MetricsAddr *string

	// Help and version
	ShowVersion *bool
}

// NewAgentFlags creates and registers all command line flags.
func NewAgentFlags() *AgentFlags {
	return &AgentFlags{
		// Configuration
		ConfigFile: flag.String("config", "", "Path to JSON configuration file"),
		EnvFile:    flag.String("env", ".env", "Path to environment file"),

		// Target selection
		Symbol:  flag.String("symbol", "", "Token symbol (e.g., BTC, ETH)"),
		Symbols: flag.String("symbols", "", "Comma-separated token symbols for compare"),
		Days:    flag.Int("days", config.DefaultDays, "Days of price history to fetch"),

		// Model parameters
		Lambda:       flag.Float64("lambda", config.DefaultLambda, "EWMA decay factor, open interval (0, 1)"),
		SeedPolicy:   flag.String("seed", "first-return", "Variance seed policy (first-return, sample-window)"),
		ReturnMethod: flag.String("returns", "simple", "Return calculation (simple, log)"),
		Annualized:   flag.Bool("annualized", false, "Report annualized instead of daily volatility"),

		// Forecast parameters
		Horizon:        flag.Int("horizon", config.DefaultHorizon, "Forecast horizon in trading days"),
		ForecastPolicy: flag.String("forecast", "flat", "Forecast policy (flat, cumulative)"),

		// Risk parameters
		Confidence: flag.Float64("confidence", config.DefaultConfidence, "VaR/ES confidence level, open interval (0, 1)"),

		// Comparison parameters
		Statistic: flag.String("statistic", "current", "Comparison statistic (current, mean, max, min)"),
		Ascending: flag.Bool("ascending", false, "Rank comparison ascending instead of descending"),
		Workers:   flag.Int("workers", 1, "Parallel workers for comparison summaries"),

		// Data provider
		Provider: flag.String("provider", config.DefaultProvider, "Price provider (coingecko, bybit, csv)"),
		DataDir:  flag.String("data-dir", "", "Directory of per-symbol CSV files (csv provider)"),

		// Output options
		OutputDir:   flag.String("output-dir", config.DefaultOutputDir, "Directory for report files"),
		ConsoleOnly: flag.Bool("console-only", false, "Skip report files, print to console only"),
		Narrative:   flag.Bool("narrative", false, "Enable LLM commentary (needs DEEPSEEK_API_KEY)"),
		MetricsAddr: flag.String("metrics-addr", "", "Serve Prometheus metrics on this address after the command"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
	}
}

// Overlay applies the flags the user actually set on top of the loaded
// configuration, so file values survive unless overridden.
func (f *AgentFlags) Overlay(cfg *config.Config) {
	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["lambda"] {
		cfg.Lambda = *f.Lambda
	}
	if set["seed"] {
		cfg.SeedPolicy = *f.SeedPolicy
	}
	if set["returns"] {
		cfg.ReturnMethod = *f.ReturnMethod
	}
	if set["annualized"] {
		cfg.Annualized = *f.Annualized
	}
	if set["days"] {
		cfg.Days = *f.Days
	}
	if set["horizon"] {
		cfg.Horizon = *f.Horizon
	}
	if set["forecast"] {
		cfg.ForecastPolicy = *f.ForecastPolicy
	}
	if set["confidence"] {
		cfg.Confidence = *f.Confidence
	}
	if set["statistic"] {
		cfg.CompareStatistic = *f.Statistic
	}
	if set["ascending"] {
		cfg.CompareDescending = !*f.Ascending
	}
	if set["workers"] {
		cfg.CompareWorkers = *f.Workers
	}
	if set["provider"] {
		cfg.Provider = *f.Provider
	}
	if set["data-dir"] {
		cfg.DataDir = *f.DataDir
	}
	if set["output-dir"] {
		cfg.OutputDir = *f.OutputDir
	}
	if set["narrative"] && *f.Narrative {
		cfg.Narrative.Enabled = true
	}
}

// SymbolList splits the -symbols flag into trimmed, non-empty symbols.
func (f *AgentFlags) SymbolList() []string {
	var symbols []string
	for _, s := range strings.Split(*f.Symbols, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

// ValidateForCommand checks the flags a specific command requires.
func (f *AgentFlags) ValidateForCommand(command string) error {
	switch command {
	case "analyze", "predict":
		if *f.Symbol == "" {
			return fmt.Errorf("%s requires -symbol", command)
		}
	case "compare":
		if len(f.SymbolList()) < 2 {
			return fmt.Errorf("compare requires -symbols with at least two tokens")
		}
	case "risk":
		// Symbol is optional: an empty one reuses the session's last token.
	default:
		return fmt.Errorf("unknown command %q (use analyze, predict, compare or risk)", command)
	}
	return nil
}
