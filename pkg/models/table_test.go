package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifiedName(t *testing.T) {
	table := TableRetention{Database: "ANALYTICS", Schema: "PUBLIC", Table: "EVENTS"}
	assert.Equal(t, "ANALYTICS.PUBLIC.EVENTS", table.QualifiedName())
}

func TestBuildHistogram(t *testing.T) {
	tables := []TableRetention{
		{Table: "A", RetentionDays: 1},
		{Table: "B", RetentionDays: 1},
		{Table: "C", RetentionDays: 90},
		{Table: "D", RetentionDays: 1},
	}

	hist := BuildHistogram(tables)
	assert.Equal(t, RetentionHistogram{1: 3, 90: 1}, hist)

	total := 0
	for _, count := range hist {
		total += count
	}
	assert.Equal(t, len(tables), total)
}

func TestBuildHistogramEmpty(t *testing.T) {
	assert.Empty(t, BuildHistogram(nil))
}

func TestSyncStatsTotal(t *testing.T) {
	stats := SyncStats{Succeeded: 7, Failed: 3}
	assert.Equal(t, 10, stats.Total())
}
