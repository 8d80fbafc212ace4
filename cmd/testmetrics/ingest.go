package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nithinsankar-b/TestMetricsDashboard/pkg/config"
	"github.com/nithinsankar-b/TestMetricsDashboard/pkg/ingester"
	"github.com/nithinsankar-b/TestMetricsDashboard/pkg/store"
)

var (
	inputDir string
	dryRun   bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest benchmark result files into the database",
	Long: `Scan the input directory for JSON result files, skip files already
recorded in the ledger, and load the extracted rows into the per-benchmark
tables.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&inputDir, "input-dir", "",
		"override the configured input directory")
	ingestCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"parse and extract without writing to the database")
}

func runIngest(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("config file is required (use --config)")
	}

	// A local .env file may hold database credentials.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Could not load .env file")
	}

	// Load configuration.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if inputDir != "" {
		cfg.Ingest.InputDir = inputDir
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	// Setup context with signal handling.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	}()

	st := store.NewStore(log, &cfg.Database)
	if err := st.Start(ctx); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	defer func() {
		if err := st.Stop(); err != nil {
			log.WithError(err).Warn("Closing database connection")
		}
	}()

	ing := ingester.New(log, st, dryRun)

	summary, err := ing.Run(ctx, cfg.Ingest.InputDir)
	if err != nil {
		return err
	}

	if summary.FilesFailed > 0 {
		return fmt.Errorf("%d of %d files failed to ingest",
			summary.FilesFailed, summary.FilesSeen)
	}

	return nil
}
