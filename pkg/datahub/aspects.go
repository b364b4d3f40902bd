package datahub

// Entity types and aspect names used by the retention tools.
const (
	EntityTypeDataset            = "dataset"
	EntityTypeStructuredProperty = "structuredProperty"

	AspectDatasetProperties          = "datasetProperties"
	AspectStructuredProperties       = "structuredProperties"
	AspectPropertyDefinition         = "propertyDefinition"
	AspectStructuredPropertySettings = "structuredPropertySettings"
)

// DatasetProperties carries free-form custom properties for a dataset.
type DatasetProperties struct {
	CustomProperties map[string]string `json:"customProperties"`
}

// StructuredProperties assigns typed property values to an entity.
type StructuredProperties struct {
	Properties []StructuredPropertyValueAssignment `json:"properties"`
}

// StructuredPropertyValueAssignment binds one property definition to its
// values on an entity.
type StructuredPropertyValueAssignment struct {
	PropertyURN string          `json:"propertyUrn"`
	Values      []PropertyValue `json:"values"`
}

// PropertyValue is a union of the primitive value kinds the catalog accepts.
// Exactly one field should be set.
type PropertyValue struct {
	Double *float64 `json:"double,omitempty"`
	String *string  `json:"string,omitempty"`
}

// DoubleValue returns a PropertyValue holding a numeric value.
func DoubleValue(v float64) PropertyValue {
	return PropertyValue{Double: &v}
}

// PropertyDefinition declares a structured property: its type, the entity
// types it attaches to, and its display metadata.
type PropertyDefinition struct {
	QualifiedName string   `json:"qualifiedName"`
	DisplayName   string   `json:"displayName"`
	ValueType     string   `json:"valueType"`
	Description   string   `json:"description,omitempty"`
	EntityTypes   []string `json:"entityTypes"`
	Cardinality   string   `json:"cardinality"`
}

// Value type and entity type URNs for property definitions.
const (
	ValueTypeNumber      = "urn:li:dataType:datahub.number"
	EntityTypeDatasetURN = "urn:li:entityType:datahub.dataset"
	CardinalitySingle    = "SINGLE"
	DefaultSettingsActor = "urn:li:corpuser:datahub"
)

// StructuredPropertySettings controls how a property surfaces in the
// catalog UI, separate from its value.
type StructuredPropertySettings struct {
	IsHidden                    bool       `json:"isHidden"`
	ShowInSearchFilters         bool       `json:"showInSearchFilters"`
	ShowInAssetSummary          bool       `json:"showInAssetSummary"`
	HideInAssetSummaryWhenEmpty bool       `json:"hideInAssetSummaryWhenEmpty"`
	ShowAsAssetBadge            bool       `json:"showAsAssetBadge"`
	ShowInColumnsTable          bool       `json:"showInColumnsTable"`
	LastModified                AuditStamp `json:"lastModified"`
}

// AuditStamp records who changed an aspect and when (epoch millis).
type AuditStamp struct {
	Time  int64  `json:"time"`
	Actor string `json:"actor"`
}
