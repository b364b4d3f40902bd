package config

import "flag"

// Flags holds the uniform CLI flag set shared by the retention tools.
// Flags that the user sets override environment and YAML values.
type Flags struct {
	ConfigPath string

	fs *flag.FlagSet

	snowflakeAccount   *string
	snowflakeUser      *string
	snowflakePassword  *string
	snowflakeRole      *string
	snowflakeWarehouse *string
	datahubURL         *string
	datahubToken       *string
	datahubEnv         *string
	databaseFilter     *string
	schemaFilter       *string
	dryRun             *bool
	verbose            *bool
}

// RegisterDataHubFlags registers the catalog flags shared by all tools.
func RegisterDataHubFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to optional YAML config file")
	f.datahubURL = fs.String("datahub-url", "", "DataHub GMS URL (e.g. https://your-instance.acryl.io/gms)")
	f.datahubToken = fs.String("datahub-token", "", "DataHub API token")
	f.verbose = fs.Bool("verbose", false, "Enable debug logging")
	return f
}

// RegisterSyncFlags registers the full flag set for the sync tool.
func RegisterSyncFlags(fs *flag.FlagSet) *Flags {
	f := RegisterDataHubFlags(fs)
	f.snowflakeAccount = fs.String("snowflake-account", "", "Snowflake account (e.g. your-account)")
	f.snowflakeUser = fs.String("snowflake-user", "", "Snowflake username")
	f.snowflakePassword = fs.String("snowflake-password", "", "Snowflake password")
	f.snowflakeRole = fs.String("snowflake-role", "", "Snowflake role (optional)")
	f.snowflakeWarehouse = fs.String("snowflake-warehouse", "", "Snowflake warehouse (optional)")
	f.datahubEnv = fs.String("datahub-env", "", "DataHub environment label (default PROD)")
	f.databaseFilter = fs.String("database-filter", "", "Comma-separated list of databases to include")
	f.schemaFilter = fs.String("schema-filter", "", "Comma-separated list of schemas to include")
	f.dryRun = fs.Bool("dry-run", false, "Extract data but don't sync to DataHub")
	return f
}

// Apply copies flags the user actually passed onto the config and re-parses
// the filter lists. Set-ness comes from the flag set, so an explicit empty
// string clears an env or YAML value while an unset flag leaves it alone.
func (f *Flags) Apply(cfg *Config) {
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})

	override := func(name string, dst *string, src *string) {
		if src != nil && set[name] {
			*dst = *src
		}
	}
	override("snowflake-account", &cfg.Snowflake.Account, f.snowflakeAccount)
	override("snowflake-user", &cfg.Snowflake.User, f.snowflakeUser)
	override("snowflake-password", &cfg.Snowflake.Password, f.snowflakePassword)
	override("snowflake-role", &cfg.Snowflake.Role, f.snowflakeRole)
	override("snowflake-warehouse", &cfg.Snowflake.Warehouse, f.snowflakeWarehouse)
	override("datahub-url", &cfg.DataHub.GMSURL, f.datahubURL)
	override("datahub-token", &cfg.DataHub.Token, f.datahubToken)
	override("datahub-env", &cfg.DataHub.Env, f.datahubEnv)
	override("database-filter", &cfg.DatabaseFilterStr, f.databaseFilter)
	override("schema-filter", &cfg.SchemaFilterStr, f.schemaFilter)
	if f.dryRun != nil && set["dry-run"] {
		cfg.DryRun = *f.dryRun
	}
	if f.verbose != nil && set["verbose"] {
		cfg.Verbose = *f.verbose
	}
	cfg.ParseFilters()
}
