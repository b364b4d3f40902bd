// create-retention-property registers the retention period structured
// property definition in DataHub. Run this once before using retention-sync.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/acryldata/snowflake-retention-sync/pkg/config"
	"github.com/acryldata/snowflake-retention-sync/pkg/datahub"
	"github.com/acryldata/snowflake-retention-sync/pkg/logging"
	"github.com/acryldata/snowflake-retention-sync/pkg/sync"
)

func main() {
	fs := flag.NewFlagSet("create-retention-property", flag.ExitOnError)
	flags := config.RegisterDataHubFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create-retention-property: %v\n", err)
		os.Exit(1)
	}
	flags.Apply(cfg)

	logger, err := logging.NewLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create-retention-property: build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.ValidateDataHub(); err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		logger.Error("Provide DATAHUB_GMS_URL and DATAHUB_TOKEN, or --datahub-url and --datahub-token")
		os.Exit(1)
	}

	logger.Info("Connecting to DataHub", zap.String("url", cfg.DataHub.GMSURL))
	client := datahub.NewClient(cfg.DataHub.GMSURL, cfg.DataHub.Token, logger)
	properties := sync.NewPropertyService(client, logger)

	if err := properties.Register(context.Background()); err != nil {
		logger.Error("Failed to create structured property",
			zap.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}

	logger.Info("Next steps:")
	logger.Info("1. Run retention-sync to sync retention data from Snowflake")
	logger.Info("2. Filter datasets in the DataHub UI by 'Retention Period (Days)'")
}
