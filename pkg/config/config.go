// Package config loads tool configuration from flags, environment
// variables, and an optional YAML file.
package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/acryldata/snowflake-retention-sync/pkg/apperrors"
)

// Config holds all configuration shared by the retention tools.
// Values can come from a YAML file (via --config) or environment variables;
// environment variables override YAML, and CLI flags override both.
// Secrets (password, token) must only come from flags or environment.
type Config struct {
	Snowflake SnowflakeConfig `yaml:"snowflake"`
	DataHub   DataHubConfig   `yaml:"datahub"`

	// DatabaseFilterStr and SchemaFilterStr are comma-separated allow-lists.
	// Empty means all discovered names are used.
	DatabaseFilterStr string `yaml:"database_filter" env:"DATABASE_FILTER" env-default:""`
	SchemaFilterStr   string `yaml:"schema_filter" env:"SCHEMA_FILTER" env-default:""`

	// DryRun extracts and reports without issuing catalog writes.
	DryRun bool `yaml:"dry_run" env:"DRY_RUN" env-default:"false"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" env:"VERBOSE" env-default:"false"`

	// Parsed from the Str fields at load time, not from config.
	DatabaseFilter []string `yaml:"-"`
	SchemaFilter   []string `yaml:"-"`
}

// SnowflakeConfig holds warehouse connection settings.
type SnowflakeConfig struct {
	Account   string `yaml:"account" env:"SNOWFLAKE_ACCOUNT" env-default:""`
	User      string `yaml:"user" env:"SNOWFLAKE_USER" env-default:""`
	Password  string `yaml:"-" env:"SNOWFLAKE_PASSWORD"` // Secret - not in YAML
	Role      string `yaml:"role" env:"SNOWFLAKE_ROLE" env-default:""`
	Warehouse string `yaml:"warehouse" env:"SNOWFLAKE_WAREHOUSE" env-default:""`
}

// DataHubConfig holds metadata catalog settings.
type DataHubConfig struct {
	GMSURL string `yaml:"gms_url" env:"DATAHUB_GMS_URL" env-default:""`
	Token  string `yaml:"-" env:"DATAHUB_TOKEN"` // Secret - not in YAML
	Env    string `yaml:"env" env:"DATAHUB_ENV" env-default:"PROD"`
}

// Load reads configuration from the optional YAML file at path, with
// environment variable overrides. Pass an empty path to read environment
// variables only. Flag overrides are applied by the caller before Validate.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	return cfg, nil
}

// ParseFilters splits the comma-separated allow-list strings into slices,
// trimming whitespace and dropping empty entries.
func (c *Config) ParseFilters() {
	c.DatabaseFilter = splitFilter(c.DatabaseFilterStr)
	c.SchemaFilter = splitFilter(c.SchemaFilterStr)
}

func splitFilter(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ValidateSync checks the fields required by the sync tool.
func (c *Config) ValidateSync() error {
	var missing []string
	if c.Snowflake.Account == "" {
		missing = append(missing, "snowflake account")
	}
	if c.Snowflake.User == "" {
		missing = append(missing, "snowflake user")
	}
	if c.Snowflake.Password == "" {
		missing = append(missing, "snowflake password")
	}
	missing = append(missing, c.missingDataHub()...)
	return missingErr(missing)
}

// ValidateDataHub checks only the catalog fields, for the property tools.
func (c *Config) ValidateDataHub() error {
	return missingErr(c.missingDataHub())
}

func (c *Config) missingDataHub() []string {
	var missing []string
	if c.DataHub.GMSURL == "" {
		missing = append(missing, "datahub gms url")
	}
	if c.DataHub.Token == "" {
		missing = append(missing, "datahub token")
	}
	return missing
}

func missingErr(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", apperrors.ErrMissingConfig, strings.Join(missing, ", "))
}
