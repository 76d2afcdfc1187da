// Package config provides the validation configuration types and loader.
//
// A validation config describes one source/target comparison: which columns to
// aggregate and how, which columns to group by, the row limit, and the two
// backend connections. The query pair builder in internal/validation consumes
// it after Validate() has accepted it.
package config

import (
	"fmt"

	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/query"
)

// ValidationType is the category of comparison being performed.
type ValidationType string

const (
	// ValidationTypeColumn compares whole-table aggregates.
	ValidationTypeColumn ValidationType = "Column"
	// ValidationTypeGroupedColumn compares aggregates per grouping key.
	ValidationTypeGroupedColumn ValidationType = "GroupedColumn"
)

// SupportedValidationTypes returns the closed set of validation types.
func SupportedValidationTypes() []string {
	return []string{string(ValidationTypeColumn), string(ValidationTypeGroupedColumn)}
}

// UnsupportedValidationTypeError is returned when a config declares a
// validation type outside the closed set.
type UnsupportedValidationTypeError struct {
	Type      string
	Supported []string
}

func (e *UnsupportedValidationTypeError) Error() string {
	return fmt.Sprintf("unsupported validation type %q\nSupported types: %v", e.Type, e.Supported)
}

// AggregateSpec declares one aggregation to apply on both sides under a
// shared alias. Source and target column names may differ.
type AggregateSpec struct {
	FieldAlias   string `koanf:"field_alias"`
	SourceColumn string `koanf:"source_column"`
	TargetColumn string `koanf:"target_column"`
	Type         string `koanf:"type"`
}

// GroupSpec declares one grouping key to apply on both sides under a shared
// alias, with an optional cast applied uniformly to both sides.
type GroupSpec struct {
	FieldAlias   string `koanf:"field_alias"`
	SourceColumn string `koanf:"source_column"`
	TargetColumn string `koanf:"target_column"`
	Cast         string `koanf:"cast"`
}

// ValidationConfig is the declarative input for one validation run.
type ValidationConfig struct {
	Type ValidationType `koanf:"type"`

	SchemaName string `koanf:"schema_name"`
	TableName  string `koanf:"table_name"`

	// Target-side location; falls back to the source values when absent.
	TargetSchemaName string `koanf:"target_schema_name"`
	TargetTableName  string `koanf:"target_table_name"`

	// Limit caps the result rows of both queries identically. Nil means
	// unlimited.
	Limit *int64 `koanf:"limit"`

	Aggregates     []AggregateSpec `koanf:"aggregates"`
	GroupedColumns []GroupSpec     `koanf:"grouped_columns"`

	// Backend connections.
	Source adapter.Config `koanf:"source"`
	Target adapter.Config `koanf:"target"`
}

// ApplyDefaults fills in derivable values: a target column name defaults to
// its source column name.
func (c *ValidationConfig) ApplyDefaults() {
	for i := range c.Aggregates {
		if c.Aggregates[i].TargetColumn == "" {
			c.Aggregates[i].TargetColumn = c.Aggregates[i].SourceColumn
		}
	}
	for i := range c.GroupedColumns {
		if c.GroupedColumns[i].TargetColumn == "" {
			c.GroupedColumns[i].TargetColumn = c.GroupedColumns[i].SourceColumn
		}
	}
}

// TargetSchema returns the target-side schema, falling back to the source schema.
func (c *ValidationConfig) TargetSchema() string {
	if c.TargetSchemaName != "" {
		return c.TargetSchemaName
	}
	return c.SchemaName
}

// TargetTable returns the target-side table, falling back to the source table.
func (c *ValidationConfig) TargetTable() string {
	if c.TargetTableName != "" {
		return c.TargetTableName
	}
	return c.TableName
}

// Validate checks the config's structure: validation type in the closed set,
// a table to validate, resolvable aggregation types, alias uniqueness within
// each category, and a non-negative limit.
func (c *ValidationConfig) Validate() error {
	switch c.Type {
	case ValidationTypeColumn, ValidationTypeGroupedColumn:
	default:
		return &UnsupportedValidationTypeError{
			Type:      string(c.Type),
			Supported: SupportedValidationTypes(),
		}
	}

	if c.TableName == "" {
		return fmt.Errorf("table_name is required")
	}

	if c.Limit != nil && *c.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", *c.Limit)
	}

	aggAliases := make(map[string]struct{}, len(c.Aggregates))
	for _, agg := range c.Aggregates {
		if agg.FieldAlias == "" {
			return fmt.Errorf("aggregate on column %q is missing field_alias", agg.SourceColumn)
		}
		if _, dup := aggAliases[agg.FieldAlias]; dup {
			return fmt.Errorf("duplicate aggregate field_alias %q", agg.FieldAlias)
		}
		aggAliases[agg.FieldAlias] = struct{}{}

		if _, err := query.ParseAggregateKind(agg.Type); err != nil {
			return fmt.Errorf("aggregate %q: %w", agg.FieldAlias, err)
		}
	}

	groupAliases := make(map[string]struct{}, len(c.GroupedColumns))
	for _, grp := range c.GroupedColumns {
		if grp.FieldAlias == "" {
			return fmt.Errorf("grouped column %q is missing field_alias", grp.SourceColumn)
		}
		if _, dup := groupAliases[grp.FieldAlias]; dup {
			return fmt.Errorf("duplicate grouped field_alias %q", grp.FieldAlias)
		}
		groupAliases[grp.FieldAlias] = struct{}{}
	}

	return nil
}
