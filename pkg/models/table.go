// Package models defines the transient records that flow through one sync run.
package models

import "fmt"

// DefaultRetentionDays is the retention value assumed when Snowflake reports
// no retention_time for a table, or when the reported value cannot be parsed.
const DefaultRetentionDays = 1

// TableRetention describes one Snowflake table and its retention settings.
// Records live only for the duration of a run; identity is the
// (Database, Schema, Table) tuple.
type TableRetention struct {
	Database      string
	Schema        string
	Table         string
	RetentionDays int

	// Informational fields from SHOW TABLES, carried into custom properties
	// when present.
	CreatedOn string
	RowCount  *int64
	Bytes     *int64
}

// QualifiedName returns the database.schema.table identifier for the table.
func (t TableRetention) QualifiedName() string {
	return fmt.Sprintf("%s.%s.%s", t.Database, t.Schema, t.Table)
}

// RetentionHistogram counts tables per retention period.
type RetentionHistogram map[int]int

// BuildHistogram aggregates retention days across the extracted tables.
func BuildHistogram(tables []TableRetention) RetentionHistogram {
	hist := make(RetentionHistogram)
	for _, t := range tables {
		hist[t.RetentionDays]++
	}
	return hist
}

// SyncStats aggregates per-table outcomes for one run.
type SyncStats struct {
	Succeeded int
	Failed    int
}

// Total returns the number of tables processed.
func (s SyncStats) Total() int {
	return s.Succeeded + s.Failed
}
