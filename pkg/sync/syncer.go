// Package sync pushes extracted retention records into the metadata catalog
// and manages the retention structured property definition.
package sync

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/acryldata/snowflake-retention-sync/pkg/datahub"
	"github.com/acryldata/snowflake-retention-sync/pkg/models"
)

// Emitter is the subset of the GMS client the syncer needs.
type Emitter interface {
	EmitAspect(ctx context.Context, entityType, entityURN, aspectName string, aspect any) error
	GetAspect(ctx context.Context, entityURN, aspectName string, out any) error
}

// Syncer writes per-table retention values to the catalog. Each table gets
// a datasetProperties aspect with free-form custom properties and a
// structuredProperties aspect carrying the typed retention value.
type Syncer struct {
	emitter Emitter
	env     string
	now     func() time.Time
	logger  *zap.Logger
}

// NewSyncer creates a syncer. env is the catalog environment label used in
// dataset URNs (e.g. PROD). If logger is nil, a no-op logger is used.
func NewSyncer(emitter Emitter, env string, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{
		emitter: emitter,
		env:     env,
		now:     time.Now,
		logger:  logger.Named("syncer"),
	}
}

// SyncTable writes one table's retention metadata to the catalog.
func (s *Syncer) SyncTable(ctx context.Context, table models.TableRetention) error {
	urn := datahub.DatasetURN(datahub.PlatformSnowflake, strings.ToLower(table.QualifiedName()), s.env)

	customProperties := map[string]string{
		"retention_period_days":    strconv.Itoa(table.RetentionDays),
		"retention_sync_timestamp": s.now().Format(time.RFC3339),
	}
	if table.RowCount != nil {
		customProperties["row_count"] = strconv.FormatInt(*table.RowCount, 10)
	}
	if table.Bytes != nil {
		customProperties["size_bytes"] = strconv.FormatInt(*table.Bytes, 10)
	}
	if table.CreatedOn != "" {
		customProperties["created_on"] = table.CreatedOn
	}

	if err := s.emitter.EmitAspect(ctx, datahub.EntityTypeDataset, urn,
		datahub.AspectDatasetProperties,
		datahub.DatasetProperties{CustomProperties: customProperties}); err != nil {
		return err
	}

	// The typed value is written as a double per the property definition.
	structured := datahub.StructuredProperties{
		Properties: []datahub.StructuredPropertyValueAssignment{
			{
				PropertyURN: datahub.StructuredPropertyURN(RetentionPropertyID),
				Values:      []datahub.PropertyValue{datahub.DoubleValue(float64(table.RetentionDays))},
			},
		},
	}
	if err := s.emitter.EmitAspect(ctx, datahub.EntityTypeDataset, urn,
		datahub.AspectStructuredProperties, structured); err != nil {
		return err
	}

	s.logger.Debug("Synced retention data", zap.String("dataset", table.QualifiedName()))
	return nil
}

// SyncAll writes every table and aggregates outcomes. Per-table failures
// are logged and counted, never fatal.
func (s *Syncer) SyncAll(ctx context.Context, tables []models.TableRetention) models.SyncStats {
	var stats models.SyncStats
	for _, table := range tables {
		if err := s.SyncTable(ctx, table); err != nil {
			s.logger.Error("Failed to sync table",
				zap.String("dataset", table.QualifiedName()),
				zap.Error(err))
			stats.Failed++
			continue
		}
		stats.Succeeded++
	}

	s.logger.Info("Sync complete",
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed))
	return stats
}
