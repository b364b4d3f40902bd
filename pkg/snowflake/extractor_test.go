package snowflake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acryldata/snowflake-retention-sync/pkg/models"
)

func TestParseRetentionDays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "missing value defaults to one", input: "", expected: 1},
		{name: "whitespace only defaults to one", input: "   ", expected: 1},
		{name: "unparsable defaults to one", input: "n/a", expected: 1},
		{name: "zero is kept", input: "0", expected: 0},
		{name: "integer string", input: "90", expected: 90},
		{name: "decimal rendering truncates", input: "30.0", expected: 30},
		{name: "typical default retention", input: "1", expected: 1},
		{name: "positive infinity defaults to one", input: "Inf", expected: 1},
		{name: "negative infinity defaults to one", input: "-Inf", expected: 1},
		{name: "nan defaults to one", input: "NaN", expected: 1},
		{name: "beyond int range defaults to one", input: "1e300", expected: 1},
		{name: "large negative defaults to one", input: "-1e300", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseRetentionDays(tt.input))
		})
	}
}

func TestTableFromRow(t *testing.T) {
	row := map[string]string{
		"created_on":     "2024-03-01 10:15:00.000 -0800",
		"name":           "EVENTS",
		"database_name":  "ANALYTICS",
		"schema_name":    "PUBLIC",
		"retention_time": "30",
		"rows":           "123456",
		"bytes":          "789012",
	}

	table, err := tableFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, "ANALYTICS", table.Database)
	assert.Equal(t, "PUBLIC", table.Schema)
	assert.Equal(t, "EVENTS", table.Table)
	assert.Equal(t, 30, table.RetentionDays)
	assert.Equal(t, "2024-03-01 10:15:00.000 -0800", table.CreatedOn)
	require.NotNil(t, table.RowCount)
	assert.Equal(t, int64(123456), *table.RowCount)
	require.NotNil(t, table.Bytes)
	assert.Equal(t, int64(789012), *table.Bytes)
}

func TestTableFromRowDefaults(t *testing.T) {
	row := map[string]string{
		"name":          "EVENTS",
		"database_name": "ANALYTICS",
		"schema_name":   "PUBLIC",
	}

	table, err := tableFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRetentionDays, table.RetentionDays)
	assert.Empty(t, table.CreatedOn)
	assert.Nil(t, table.RowCount)
	assert.Nil(t, table.Bytes)
}

func TestTableFromRowIncomplete(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]string
	}{
		{name: "missing table name", row: map[string]string{"database_name": "DB", "schema_name": "S"}},
		{name: "missing database", row: map[string]string{"name": "T", "schema_name": "S"}},
		{name: "missing schema", row: map[string]string{"name": "T", "database_name": "DB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tableFromRow(tt.row)
			assert.Error(t, err)
		})
	}
}

func TestApplyFilter(t *testing.T) {
	discovered := []string{"ANALYTICS", "RAW", "STAGING"}

	t.Run("empty filter keeps everything", func(t *testing.T) {
		assert.Equal(t, discovered, applyFilter(discovered, nil))
	})

	t.Run("filter restricts to intersection", func(t *testing.T) {
		got := applyFilter(discovered, []string{"RAW", "ANALYTICS", "MISSING"})
		assert.Equal(t, []string{"ANALYTICS", "RAW"}, got)
	})

	t.Run("disjoint filter selects nothing", func(t *testing.T) {
		assert.Empty(t, applyFilter(discovered, []string{"OTHER"}))
	})
}

func TestIsSystemSchema(t *testing.T) {
	assert.True(t, isSystemSchema("INFORMATION_SCHEMA"))
	assert.True(t, isSystemSchema("information_schema"))
	assert.True(t, isSystemSchema("Information_Schema"))
	assert.False(t, isSystemSchema("PUBLIC"))
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"ANALYTICS"`, quoteIdent("ANALYTICS"))
	assert.Equal(t, `"odd""name"`, quoteIdent(`odd"name`))
}
