// retention-sync extracts per-table retention settings from Snowflake and
// pushes them to DataHub as property values on the matching dataset entries.
// Designed for repeatable, scheduled execution; every run is a full scan.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/acryldata/snowflake-retention-sync/pkg/config"
	"github.com/acryldata/snowflake-retention-sync/pkg/datahub"
	"github.com/acryldata/snowflake-retention-sync/pkg/logging"
	"github.com/acryldata/snowflake-retention-sync/pkg/models"
	"github.com/acryldata/snowflake-retention-sync/pkg/snowflake"
	"github.com/acryldata/snowflake-retention-sync/pkg/sync"
)

func main() {
	fs := flag.NewFlagSet("retention-sync", flag.ExitOnError)
	flags := config.RegisterSyncFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "retention-sync: %v\n", err)
		os.Exit(1)
	}
	flags.Apply(cfg)

	logger, err := logging.NewLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "retention-sync: build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.ValidateSync(); err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("Fatal error", zap.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting Snowflake retention data extraction")

	extractor := snowflake.NewExtractor(&snowflake.Config{
		Account:   cfg.Snowflake.Account,
		User:      cfg.Snowflake.User,
		Password:  cfg.Snowflake.Password,
		Role:      cfg.Snowflake.Role,
		Warehouse: cfg.Snowflake.Warehouse,
	}, cfg.DatabaseFilter, cfg.SchemaFilter, logger)

	if err := extractor.Connect(ctx); err != nil {
		return err
	}

	tables, err := extractor.ExtractAll(ctx)
	extractor.Close()
	if err != nil {
		return err
	}

	if len(tables) == 0 {
		logger.Warn("No tables found. Exiting.")
		return nil
	}

	logHistogram(logger, models.BuildHistogram(tables))

	if cfg.DryRun {
		logger.Info("Dry run mode - skipping DataHub sync")
		return nil
	}

	logger.Info("Starting DataHub sync")
	client := datahub.NewClient(cfg.DataHub.GMSURL, cfg.DataHub.Token, logger)
	syncer := sync.NewSyncer(client, cfg.DataHub.Env, logger)
	stats := syncer.SyncAll(ctx, tables)

	logger.Info("=== SYNC COMPLETE ===",
		zap.Int("total_tables", stats.Total()),
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed))
	return nil
}

func logHistogram(logger *zap.Logger, hist models.RetentionHistogram) {
	days := make([]int, 0, len(hist))
	for d := range hist {
		days = append(days, d)
	}
	sort.Ints(days)

	logger.Info("Retention period distribution:")
	for _, d := range days {
		logger.Info(fmt.Sprintf("  %d days: %d tables", d, hist[d]))
	}
}
