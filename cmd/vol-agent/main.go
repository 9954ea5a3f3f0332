package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/volquant/crypto-vol-agent/internal/agent"
	"github.com/volquant/crypto-vol-agent/internal/config"
	"github.com/volquant/crypto-vol-agent/internal/monitoring"
	"github.com/volquant/crypto-vol-agent/pkg/reporting"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

const (
	AppName    = "Crypto Vol Agent"
	AppVersion = "1.0.0"
)

func main() {
	command := ""
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command = args[0]
		args = args[1:]
	}

	flags := NewAgentFlags()
	if err := flag.CommandLine.Parse(args); err != nil {
		os.Exit(2)
	}

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}
	if command == "" || command == "help" {
		printUsageHelp()
		return
	}

	if err := flags.ValidateForCommand(command); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	printHeader()
	loadEnvironment(*flags.EnvFile)

	cfg, err := loadConfiguration(flags)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	a, err := agent.New(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to build agent: %v", err)
	}
	log.Printf("📡 Price provider: %s", a.ProviderName())

	if *flags.MetricsAddr != "" {
		startMetricsServer(*flags.MetricsAddr, a)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runCommand(ctx, a, cfg, command, flags); err != nil {
		log.Fatalf("❌ %v", err)
	}

	if *flags.MetricsAddr != "" {
		log.Printf("📊 Metrics still serving on %s, press Ctrl+C to exit", *flags.MetricsAddr)
		<-ctx.Done()
	}
}

func runCommand(ctx context.Context, a *agent.Agent, cfg config.Config, command string, flags *AgentFlags) error {
	console := reporting.NewDefaultConsoleReporter()

	switch command {
	case "analyze":
		report, err := a.Analyze(ctx, *flags.Symbol, cfg.Days)
		if err != nil {
			return err
		}
		console.PrintAnalysis(report)
		if !*flags.ConsoleOnly {
			return writeAnalysisFiles(report, cfg.OutputDir)
		}
		return nil

	case "predict":
		forecast, err := a.Predict(ctx, *flags.Symbol, cfg.Days, cfg.Horizon)
		if err != nil {
			return err
		}
		console.PrintForecast(forecast)
		return nil

	case "risk":
		report, err := a.AssessRisk(ctx, *flags.Symbol, cfg.Days)
		if err != nil {
			return err
		}
		console.PrintRisk(report)
		return nil

	case "compare":
		result, err := a.Compare(ctx, flags.SymbolList(), cfg.Days)
		if err != nil {
			return err
		}
		console.PrintComparison(result)
		if !*flags.ConsoleOnly {
			return writeComparisonFiles(result, cfg.OutputDir)
		}
		return nil
	}

	return fmt.Errorf("unknown command %q", command)
}

func writeAnalysisFiles(report types.AnalysisReport, outputDir string) error {
	dir := reporting.OutputDir(outputDir, report.Symbol)

	jsonPath := filepath.Join(dir, "analysis.json")
	if err := reporting.WriteAnalysisJSON(report, jsonPath); err != nil {
		return err
	}
	csvPath := filepath.Join(dir, "volatility.csv")
	if err := reporting.WriteVolatilityCSV(report.Volatility, csvPath); err != nil {
		return err
	}
	xlsxPath := filepath.Join(dir, "analysis.xlsx")
	if err := reporting.WriteWorkbookXLSX(report, xlsxPath); err != nil {
		return err
	}

	log.Printf("✅ Reports written to %s", dir)
	return nil
}

func writeComparisonFiles(result types.ComparisonResult, outputDir string) error {
	dir := reporting.OutputDir(outputDir, "comparison")

	jsonPath := filepath.Join(dir, "comparison.json")
	if err := reporting.WriteComparisonJSON(result, jsonPath); err != nil {
		return err
	}
	csvPath := filepath.Join(dir, "comparison.csv")
	if err := reporting.WriteComparisonCSV(result, csvPath); err != nil {
		return err
	}
	xlsxPath := filepath.Join(dir, "comparison.xlsx")
	if err := reporting.WriteComparisonXLSX(result, xlsxPath); err != nil {
		return err
	}

	log.Printf("✅ Reports written to %s", dir)
	return nil
}

func loadConfiguration(flags *AgentFlags) (config.Config, error) {
	cfg, err := config.Load(*flags.ConfigFile)
	if err != nil {
		return config.Config{}, err
	}
	flags.Overlay(&cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️  Could not load %s (%v)", envFile, err)
		}
		return
	}
	log.Printf("🔑 Environment loaded from %s", envFile)
}

func startMetricsServer(addr string, a *agent.Agent) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/healthz", a.Health())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("📊 Metrics listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("⚠️  Metrics server error: %v", err)
		}
	}()
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - EWMA volatility analysis for crypto tokens\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s COMMAND [OPTIONS]\n\n", filepath.Base(os.Args[0]))
	fmt.Println("COMMANDS:")
	fmt.Println("  analyze   Full analysis: volatility, forecast, risk, technicals")
	fmt.Println("  predict   Volatility forecast over a horizon")
	fmt.Println("  risk      Risk assessment (VaR, expected shortfall, trend)")
	fmt.Println("  compare   Rank multiple tokens by volatility")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  vol-agent analyze -symbol BTC -days 30")
	fmt.Println("  vol-agent predict -symbol ETH -horizon 14")
	fmt.Println("  vol-agent risk -symbol SOL -confidence 0.99")
	fmt.Println("  vol-agent compare -symbols BTC,ETH,SOL -statistic mean")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
}
