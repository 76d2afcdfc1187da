package validation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/danieldeleo/professional-services-data-validator/internal/config"
	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
	"github.com/danieldeleo/professional-services-data-validator/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is an adapter stub carrying only a dialect, for compile-side tests.
type fakeClient struct {
	adapter.BaseSQLAdapter
	d *dialect.Dialect
}

func (f *fakeClient) Connect(_ context.Context, _ adapter.Config) error { return nil }

func (f *fakeClient) GetTableMetadata(_ context.Context, _ string) (*adapter.Metadata, error) {
	return nil, nil
}

func (f *fakeClient) Dialect() *dialect.Dialect { return f.d }

func newFakeClient() *fakeClient {
	return &fakeClient{d: &dialect.Dialect{
		Name:          "fake",
		DefaultSchema: "main",
		IdentQuote:    '"',
		TypeNames:     map[string]string{"string": "VARCHAR"},
	}}
}

func groupedConfig() *config.ValidationConfig {
	limit := int64(100)
	return &config.ValidationConfig{
		Type:       config.ValidationTypeGroupedColumn,
		SchemaName: "s",
		TableName:  "t",
		Limit:      &limit,
		Aggregates: []config.AggregateSpec{
			{FieldAlias: "sum_amount", SourceColumn: "amount", TargetColumn: "amt", Type: "sum"},
		},
		GroupedColumns: []config.GroupSpec{
			{FieldAlias: "region", SourceColumn: "region", TargetColumn: "region_cd", Cast: "string"},
		},
	}
}

func TestNewBuilder_GroupedExample(t *testing.T) {
	b, err := NewBuilder(groupedConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"sum_amount"}, b.AggregateAliases())
	assert.Equal(t, []string{"region"}, b.GroupAliases())

	srcAggs := b.SourceSpec().AggregateFields()
	require.Len(t, srcAggs, 1)
	assert.Equal(t, query.AggregateField{Kind: query.KindSum, Column: "amount", Alias: "sum_amount"}, srcAggs[0])

	tgtAggs := b.TargetSpec().AggregateFields()
	require.Len(t, tgtAggs, 1)
	assert.Equal(t, query.AggregateField{Kind: query.KindSum, Column: "amt", Alias: "sum_amount"}, tgtAggs[0])

	srcGroups := b.SourceSpec().GroupedFields()
	require.Len(t, srcGroups, 1)
	assert.Equal(t, query.GroupedField{Column: "region", Alias: "region", Cast: "string"}, srcGroups[0])

	tgtGroups := b.TargetSpec().GroupedFields()
	require.Len(t, tgtGroups, 1)
	assert.Equal(t, query.GroupedField{Column: "region_cd", Alias: "region", Cast: "string"}, tgtGroups[0])

	srcLimit, ok := b.SourceSpec().Limit()
	require.True(t, ok)
	assert.Equal(t, int64(100), srcLimit)
	tgtLimit, ok := b.TargetSpec().Limit()
	require.True(t, ok)
	assert.Equal(t, int64(100), tgtLimit)
}

func TestNewBuilder_AliasParity(t *testing.T) {
	cfg := &config.ValidationConfig{
		Type:      config.ValidationTypeGroupedColumn,
		TableName: "t",
		Aggregates: []config.AggregateSpec{
			{FieldAlias: "count", SourceColumn: "*", TargetColumn: "*", Type: "count"},
			{FieldAlias: "sum_a", SourceColumn: "a", TargetColumn: "a2", Type: "sum"},
			{FieldAlias: "max_b", SourceColumn: "b", TargetColumn: "b2", Type: "max"},
		},
		GroupedColumns: []config.GroupSpec{
			{FieldAlias: "day", SourceColumn: "day", TargetColumn: "dt"},
			{FieldAlias: "region", SourceColumn: "region", TargetColumn: "region"},
		},
	}

	b, err := NewBuilder(cfg)
	require.NoError(t, err)

	// Registries reflect declaration order and count
	assert.Equal(t, []string{"count", "sum_a", "max_b"}, b.AggregateAliases())
	assert.Equal(t, []string{"day", "region"}, b.GroupAliases())

	// Each side holds exactly one descriptor per alias
	for _, spec := range []*query.Builder{b.SourceSpec(), b.TargetSpec()} {
		seen := make(map[string]int)
		for _, f := range spec.AggregateFields() {
			seen[f.Alias]++
		}
		for _, alias := range b.AggregateAliases() {
			assert.Equal(t, 1, seen[alias], "aggregate alias %q", alias)
		}

		seen = make(map[string]int)
		for _, f := range spec.GroupedFields() {
			seen[f.Alias]++
		}
		for _, alias := range b.GroupAliases() {
			assert.Equal(t, 1, seen[alias], "group alias %q", alias)
		}
	}
}

func TestNewBuilder_UnsupportedValidationType(t *testing.T) {
	cfg := groupedConfig()
	cfg.Type = "Bogus"

	b, err := NewBuilder(cfg)
	require.Error(t, err)
	assert.Nil(t, b, "no partial builder on failure")

	var typeErr *config.UnsupportedValidationTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "Bogus", typeErr.Type)
}

func TestNewBuilder_UnknownAggregation(t *testing.T) {
	cfg := groupedConfig()
	cfg.Aggregates = append(cfg.Aggregates, config.AggregateSpec{
		FieldAlias: "oops", SourceColumn: "x", TargetColumn: "x", Type: "median",
	})

	b, err := NewBuilder(cfg)
	require.Error(t, err)
	assert.Nil(t, b, "the whole build aborts, no partial specification survives")

	var unknownErr *query.UnknownAggregationError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "median", unknownErr.Kind)
}

func TestNewBuilder_NoLimit(t *testing.T) {
	cfg := groupedConfig()
	cfg.Limit = nil

	b, err := NewBuilder(cfg)
	require.NoError(t, err)

	_, ok := b.SourceSpec().Limit()
	assert.False(t, ok)
	_, ok = b.TargetSpec().Limit()
	assert.False(t, ok)
}

func TestNewBuilder_EmptyFieldsLegal(t *testing.T) {
	cfg := &config.ValidationConfig{
		Type:      config.ValidationTypeColumn,
		TableName: "t",
	}

	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	assert.Empty(t, b.SourceSpec().AggregateFields())
	assert.Empty(t, b.TargetSpec().AggregateFields())
	assert.Empty(t, b.AggregateAliases())
	assert.Empty(t, b.GroupAliases())
}

func TestNewBuilder_OneShot(t *testing.T) {
	cfg := groupedConfig()
	b, err := NewBuilder(cfg)
	require.NoError(t, err)

	// Mutating the config after construction does not affect the built pair
	cfg.Aggregates = append(cfg.Aggregates, config.AggregateSpec{
		FieldAlias: "late", SourceColumn: "x", TargetColumn: "x", Type: "sum",
	})

	assert.Equal(t, []string{"sum_amount"}, b.AggregateAliases())
	assert.Len(t, b.SourceSpec().AggregateFields(), 1)
}

func TestSourceAndTargetQuery(t *testing.T) {
	b, err := NewBuilder(groupedConfig())
	require.NoError(t, err)

	client := newFakeClient()

	src, err := b.SourceQuery(client)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT CAST("region" AS VARCHAR) AS "region", SUM("amount") AS "sum_amount" FROM "s"."t" GROUP BY 1 LIMIT 100`,
		src.SQL)

	tgt, err := b.TargetQuery(client)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT CAST("region_cd" AS VARCHAR) AS "region", SUM("amt") AS "sum_amount" FROM "s"."t" GROUP BY 1 LIMIT 100`,
		tgt.SQL)

	// Compiling is idempotent
	again, err := b.TargetQuery(client)
	require.NoError(t, err)
	assert.Equal(t, tgt, again)
}

func TestTargetQuery_LocationOverride(t *testing.T) {
	cfg := groupedConfig()
	cfg.TargetSchemaName = "s2"
	cfg.TargetTableName = "t2"

	b, err := NewBuilder(cfg)
	require.NoError(t, err)

	tgt, err := b.TargetQuery(newFakeClient())
	require.NoError(t, err)
	assert.Contains(t, tgt.SQL, `FROM "s2"."t2"`)

	src, err := b.SourceQuery(newFakeClient())
	require.NoError(t, err)
	assert.Contains(t, src.SQL, `FROM "s"."t"`)
}

func TestVerboseLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	b, err := NewBuilder(groupedConfig(), WithLogger(logger), WithVerbose(true))
	require.NoError(t, err)

	_, err = b.SourceQuery(newFakeClient())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "compiled source query")
	assert.Contains(t, buf.String(), "SUM")

	buf.Reset()
	_, err = b.TargetQuery(newFakeClient())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "compiled target query")
}

func TestQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	b, err := NewBuilder(groupedConfig(), WithLogger(logger))
	require.NoError(t, err)

	_, err = b.SourceQuery(newFakeClient())
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "no query logging without verbose")
}
