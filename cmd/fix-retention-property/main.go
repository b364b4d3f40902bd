// fix-retention-property patches an already created retention property so
// it shows up in search filters and the asset sidebar. Use it when the
// property was registered without a settings aspect.
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
	fs := flag.NewFlagSet("fix-retention-property", flag.ExitOnError)
	flags := config.RegisterDataHubFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fix-retention-property: %v\n", err)
		os.Exit(1)
	}
	flags.Apply(cfg)

	logger, err := logging.NewLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fix-retention-property: build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.ValidateDataHub(); err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Connecting to DataHub", zap.String("url", cfg.DataHub.GMSURL))
	client := datahub.NewClient(cfg.DataHub.GMSURL, cfg.DataHub.Token, logger)
	properties := sync.NewPropertyService(client, logger)

	changed, err := properties.EnableSearchFilters(context.Background())
	if err != nil {
		logger.Error("Failed to update property settings",
			zap.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}

	if !changed {
		logger.Info("Nothing to do; if the property is still missing from the UI, re-run retention-sync and allow time for reindexing")
		return
	}

	logger.Info("Search filters enabled for the retention property")
	logger.Info("Re-run retention-sync to re-sync all datasets, then allow a few minutes for reindexing")
}
