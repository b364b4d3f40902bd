package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/acryldata/snowflake-retention-sync/pkg/apperrors"
	"github.com/acryldata/snowflake-retention-sync/pkg/datahub"
)

// Retention structured property definition. The sync path and the property
// tools must agree on the ID.
const (
	RetentionPropertyID          = "io.acryl.dataManagement.retentionPeriodDays"
	RetentionPropertyDisplayName = "Retention Period (Days)"
)

// RetentionPropertyDescription documents the property in the catalog UI.
const RetentionPropertyDescription = `Number of days data is retained in Snowflake based on table-level retention settings.

This property is automatically synced from Snowflake by the retention-sync tool.
Use this to identify tables with high retention periods that may be candidates for:
- Data lifecycle optimization
- Storage cost reduction
- Compliance policy adjustments
- Unused table cleanup
`

// PropertyService manages the retention property definition and its display
// settings in the catalog.
type PropertyService struct {
	emitter Emitter
	now     func() time.Time
	logger  *zap.Logger
}

// NewPropertyService creates a property service. If logger is nil, a no-op
// logger is used.
func NewPropertyService(emitter Emitter, logger *zap.Logger) *PropertyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyService{
		emitter: emitter,
		now:     time.Now,
		logger:  logger.Named("property"),
	}
}

// Register creates (or overwrites) the retention property definition.
// Run once before the first sync.
func (p *PropertyService) Register(ctx context.Context) error {
	urn := datahub.StructuredPropertyURN(RetentionPropertyID)

	definition := datahub.PropertyDefinition{
		QualifiedName: RetentionPropertyID,
		DisplayName:   RetentionPropertyDisplayName,
		ValueType:     datahub.ValueTypeNumber,
		Description:   RetentionPropertyDescription,
		EntityTypes:   []string{datahub.EntityTypeDatasetURN},
		Cardinality:   datahub.CardinalitySingle,
	}
	if err := p.emitter.EmitAspect(ctx, datahub.EntityTypeStructuredProperty, urn,
		datahub.AspectPropertyDefinition, definition); err != nil {
		return fmt.Errorf("create property definition: %w", err)
	}

	p.logger.Info("Created structured property",
		zap.String("urn", urn),
		zap.String("display_name", RetentionPropertyDisplayName))
	return nil
}

// EnableSearchFilters patches the property's settings aspect so it shows up
// in search filters and the asset sidebar. Returns false without writing
// when search filters are already enabled; otherwise writes the settings
// and verifies they took effect.
func (p *PropertyService) EnableSearchFilters(ctx context.Context) (bool, error) {
	urn := datahub.StructuredPropertyURN(RetentionPropertyID)

	var current datahub.StructuredPropertySettings
	err := p.emitter.GetAspect(ctx, urn, datahub.AspectStructuredPropertySettings, &current)
	switch {
	case err == nil:
		if current.ShowInSearchFilters {
			p.logger.Info("Property already shows in search filters", zap.String("urn", urn))
			return false, nil
		}
	case errors.Is(err, datahub.ErrAspectNotFound):
		// No settings yet; fall through and create them.
	default:
		return false, fmt.Errorf("read property settings: %w", err)
	}

	settings := datahub.StructuredPropertySettings{
		IsHidden:                    false,
		ShowInSearchFilters:         true,
		ShowInAssetSummary:          true,
		HideInAssetSummaryWhenEmpty: false,
		ShowAsAssetBadge:            false,
		ShowInColumnsTable:          false,
		LastModified: datahub.AuditStamp{
			Time:  p.now().UnixMilli(),
			Actor: datahub.DefaultSettingsActor,
		},
	}
	if err := p.emitter.EmitAspect(ctx, datahub.EntityTypeStructuredProperty, urn,
		datahub.AspectStructuredPropertySettings, settings); err != nil {
		return false, fmt.Errorf("update property settings: %w", err)
	}

	var updated datahub.StructuredPropertySettings
	if err := p.emitter.GetAspect(ctx, urn, datahub.AspectStructuredPropertySettings, &updated); err != nil {
		return false, fmt.Errorf("verify property settings: %w", err)
	}
	if !updated.ShowInSearchFilters {
		return false, apperrors.ErrSettingsNotApplied
	}

	p.logger.Info("Property settings updated", zap.String("urn", urn))
	return true, nil
}
