package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marketlab/dma/internal/clock"
	"github.com/marketlab/dma/internal/config"
	"github.com/marketlab/dma/internal/marketdata"
	"github.com/marketlab/dma/internal/orchestrator"
	"github.com/marketlab/dma/internal/secrets"
	"github.com/marketlab/dma/internal/telemetry"
	"github.com/marketlab/dma/internal/universe"
)

const appName = "dma"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Daily Market Analysis Engine",
		Long:  "End-of-day market analysis: acquisition, indicators, scoring, regime, and signals across a configured universe.",
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one end-of-day analysis pass over the configured universe",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().String("config", "config/config.yaml", "Path to the tunables config file")
	analyzeCmd.Flags().String("universe", "config/universe.yaml", "Path to the universe definition file")
	analyzeCmd.Flags().String("provider-a-base-url", "https://eodhistoricaldata.com/api", "Provider A (keyed EOD) base URL")
	analyzeCmd.Flags().String("provider-b-base-url", "https://query1.finance.yahoo.com/v7/finance/download", "Provider B (keyless history) base URL")
	analyzeCmd.Flags().String("postgres-dsn", "", "Postgres DSN for run persistence (optional)")
	analyzeCmd.Flags().String("ops-addr", "", "Ops HTTP surface address, e.g. :8080 (optional)")
	analyzeCmd.Flags().Bool("json", false, "Force JSON output even on a TTY")

	rootCmd.AddCommand(analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	universePath, _ := cmd.Flags().GetString("universe")
	baseURLA, _ := cmd.Flags().GetString("provider-a-base-url")
	baseURLB, _ := cmd.Flags().GetString("provider-b-base-url")
	dsn, _ := cmd.Flags().GetString("postgres-dsn")
	opsAddr, _ := cmd.Flags().GetString("ops-addr")
	forceJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	uni, err := universe.Load(universePath)
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}

	sec := secrets.Load()
	if !sec.HasProviderAToken() {
		log.Warn().Msg("no provider A token configured; only volatility-index fetches via provider B will succeed")
	}

	oracle, err := clock.NewSystemOracle()
	if err != nil {
		return fmt.Errorf("init clock: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics := orchestrator.NewMetrics(reg)

	var store *orchestrator.Store
	if dsn != "" {
		store, err = orchestrator.OpenStore(dsn)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()
		if err := store.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("migrate store: %w", err)
		}
	}

	if opsAddr != "" {
		srv := telemetry.NewServer(opsAddr, reg, log.Logger)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				log.Error().Err(err).Msg("ops http surface exited")
			}
		}()
	}

	fetcher := marketdata.NewFetcher(cfg, sec, oracle, nil, baseURLA, baseURLB, log.Logger)
	orch := orchestrator.New(cfg, uni, fetcher, oracle, metrics, store, log.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds*10)*time.Second)
	defer cancel()

	result, err := orch.Run(ctx)
	if err != nil {
		return fmt.Errorf("run analysis: %w", err)
	}

	return printResult(result, forceJSON)
}

func printResult(result *orchestrator.AnalysisResult, forceJSON bool) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if !forceJSON && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Printf("Run %s: %d instruments analyzed, regime=%s\n",
			result.RunID, result.Metadata.InstrumentsAnalyzed, result.MarketRegime.MarketCondition)
	}

	fmt.Println(string(data))
	return nil
}
