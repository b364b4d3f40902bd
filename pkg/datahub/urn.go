package datahub

import "fmt"

// PlatformSnowflake is the data platform identifier for Snowflake datasets.
const PlatformSnowflake = "snowflake"

// DatasetURN builds the stable identifier for a dataset entry from its
// platform, qualified name, and environment label.
func DatasetURN(platform, name, env string) string {
	return fmt.Sprintf("urn:li:dataset:(urn:li:dataPlatform:%s,%s,%s)", platform, name, env)
}

// StructuredPropertyURN builds the identifier for a structured property
// definition.
func StructuredPropertyURN(id string) string {
	return "urn:li:structuredProperty:" + id
}
