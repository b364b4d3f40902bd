package datahub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetURN(t *testing.T) {
	urn := DatasetURN(PlatformSnowflake, "analytics.public.events", "PROD")
	assert.Equal(t, "urn:li:dataset:(urn:li:dataPlatform:snowflake,analytics.public.events,PROD)", urn)
}

func TestStructuredPropertyURN(t *testing.T) {
	urn := StructuredPropertyURN("io.acryl.dataManagement.retentionPeriodDays")
	assert.Equal(t, "urn:li:structuredProperty:io.acryl.dataManagement.retentionPeriodDays", urn)
}
