// Package snowflake extracts per-table retention settings from a Snowflake
// account by walking databases, schemas, and tables.
package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	// Registers the "snowflake" database/sql driver.
	_ "github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"

	"github.com/acryldata/snowflake-retention-sync/pkg/logging"
	"github.com/acryldata/snowflake-retention-sync/pkg/models"
)

// Extractor walks a Snowflake account and collects retention metadata.
// Connect must be called before any discovery method; the extractor owns
// its connection and must be closed when done.
type Extractor struct {
	cfg            *Config
	db             *sql.DB
	databaseFilter []string
	schemaFilter   []string
	logger         *zap.Logger
}

// NewExtractor creates an extractor. The filters are allow-lists: an empty
// filter means all discovered names are used. If logger is nil, a no-op
// logger is used.
func NewExtractor(cfg *Config, databaseFilter, schemaFilter []string, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		cfg:            cfg,
		databaseFilter: databaseFilter,
		schemaFilter:   schemaFilter,
		logger:         logger.Named("snowflake"),
	}
}

// Connect opens and verifies the Snowflake connection. A failure here is
// fatal to the run.
func (e *Extractor) Connect(ctx context.Context) error {
	dsn, err := e.cfg.DSN()
	if err != nil {
		return err
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return fmt.Errorf("open snowflake connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("connect to snowflake account %s: %s", e.cfg.Account, logging.SanitizeError(err))
	}

	e.db = db
	e.logger.Info("Connected to Snowflake", zap.String("account", e.cfg.Account))
	return nil
}

// Close releases the Snowflake connection.
func (e *Extractor) Close() error {
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	e.logger.Info("Closed Snowflake connection")
	return err
}

// ListDatabases returns database names visible to the connection, restricted
// to the allow-list when one was supplied.
func (e *Extractor) ListDatabases(ctx context.Context) ([]string, error) {
	names, err := e.showNames(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}

	filtered := applyFilter(names, e.databaseFilter)
	if len(e.databaseFilter) > 0 {
		e.logger.Info("Filtered databases",
			zap.Int("discovered", len(names)),
			zap.Strings("selected", filtered))
	} else {
		e.logger.Info("Discovered databases", zap.Int("count", len(names)))
	}
	return filtered, nil
}

// ListSchemas returns schema names in a database, restricted to the
// allow-list when one was supplied.
func (e *Extractor) ListSchemas(ctx context.Context, database string) ([]string, error) {
	names, err := e.showNames(ctx, "SHOW SCHEMAS IN DATABASE "+quoteIdent(database))
	if err != nil {
		return nil, fmt.Errorf("list schemas in %s: %w", database, err)
	}
	return applyFilter(names, e.schemaFilter), nil
}

// ListTables returns retention records for every table in a schema. Rows
// that cannot be parsed are logged and skipped rather than failing the
// schema.
func (e *Extractor) ListTables(ctx context.Context, database, schema string) ([]models.TableRetention, error) {
	query := fmt.Sprintf("SHOW TABLES IN %s.%s", quoteIdent(database), quoteIdent(schema))
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tables in %s.%s: %w", database, schema, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns for %s.%s: %w", database, schema, err)
	}

	var tables []models.TableRetention
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			e.logger.Warn("Failed to scan table row",
				zap.String("database", database),
				zap.String("schema", schema),
				zap.Error(err))
			continue
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if values[i].Valid {
				row[strings.ToLower(col)] = values[i].String
			}
		}

		table, err := tableFromRow(row)
		if err != nil {
			e.logger.Warn("Skipping unparsable table row",
				zap.String("database", database),
				zap.String("schema", schema),
				zap.Error(err))
			continue
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables in %s.%s: %w", database, schema, err)
	}

	e.logger.Info("Found tables",
		zap.String("database", database),
		zap.String("schema", schema),
		zap.Int("count", len(tables)))
	return tables, nil
}

// ExtractAll walks all selected databases and schemas and returns the
// retention records. Per-schema failures are logged and skipped so one bad
// schema does not abort the run.
func (e *Extractor) ExtractAll(ctx context.Context) ([]models.TableRetention, error) {
	databases, err := e.ListDatabases(ctx)
	if err != nil {
		// Matches the per-call policy for discovery: record and carry on
		// with an empty set rather than aborting a connected run.
		e.logger.Error("Failed to list databases", zap.Error(err))
		databases = nil
	}

	var all []models.TableRetention
	for _, database := range databases {
		schemas, err := e.ListSchemas(ctx, database)
		if err != nil {
			e.logger.Warn("Failed to list schemas",
				zap.String("database", database),
				zap.Error(err))
			continue
		}

		for _, schema := range schemas {
			if isSystemSchema(schema) {
				continue
			}
			tables, err := e.ListTables(ctx, database, schema)
			if err != nil {
				e.logger.Warn("Failed to list tables",
					zap.String("database", database),
					zap.String("schema", schema),
					zap.Error(err))
				continue
			}
			all = append(all, tables...)
		}
	}

	e.logger.Info("Extraction complete", zap.Int("total_tables", len(all)))
	return all, nil
}

// showNames runs a SHOW statement and collects the "name" column.
func (e *Extractor) showNames(ctx context.Context, query string) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	nameIdx := -1
	for i, col := range columns {
		if strings.EqualFold(col, "name") {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("no name column in result of %q", query)
	}

	var names []string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if values[nameIdx].Valid {
			names = append(names, values[nameIdx].String)
		}
	}
	return names, rows.Err()
}

// tableFromRow maps a SHOW TABLES row (lowercased column name → value) to a
// retention record. Rows without name, database_name, or schema_name are
// unparsable; everything else degrades to defaults.
func tableFromRow(row map[string]string) (models.TableRetention, error) {
	name := row["name"]
	database := row["database_name"]
	schema := row["schema_name"]
	if name == "" || database == "" || schema == "" {
		return models.TableRetention{}, fmt.Errorf("incomplete table row: name=%q database=%q schema=%q", name, database, schema)
	}

	table := models.TableRetention{
		Database:      database,
		Schema:        schema,
		Table:         name,
		RetentionDays: parseRetentionDays(row["retention_time"]),
		CreatedOn:     row["created_on"],
	}
	if v, err := strconv.ParseInt(row["rows"], 10, 64); err == nil {
		table.RowCount = &v
	}
	if v, err := strconv.ParseInt(row["bytes"], 10, 64); err == nil {
		table.Bytes = &v
	}
	return table, nil
}

// parseRetentionDays converts a retention_time value to days. Missing,
// empty, or unparsable values default to one day, never zero.
func parseRetentionDays(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.DefaultRetentionDays
	}
	// Snowflake reports retention_time as an integer string, but be tolerant
	// of a decimal rendering. Non-finite or out-of-range values are
	// unparsable; int conversion on those is platform-defined.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < math.MinInt32 || f > math.MaxInt32 {
		return models.DefaultRetentionDays
	}
	return int(f)
}

// applyFilter restricts names to the allow-list. An empty allow-list keeps
// everything.
func applyFilter(names, allow []string) []string {
	if len(allow) == 0 {
		return names
	}
	allowed := make(map[string]struct{}, len(allow))
	for _, a := range allow {
		allowed[a] = struct{}{}
	}
	var out []string
	for _, n := range names {
		if _, ok := allowed[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// isSystemSchema reports whether a schema is always excluded from
// processing.
func isSystemSchema(schema string) bool {
	return strings.EqualFold(schema, "INFORMATION_SCHEMA")
}

// quoteIdent quotes a Snowflake identifier for use in SHOW statements.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
