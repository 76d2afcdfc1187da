// Package validation builds the matched pair of aggregate queries for one
// validation run.
//
// From a single ValidationConfig the Builder produces two structurally
// parallel query specifications: the same aggregations and grouping keys,
// applied once against source column names and once against target column
// names, each pair under one shared alias. The shared aliases are what let
// the two result sets be matched after independent execution.
package validation

import (
	"fmt"
	"log/slog"

	"github.com/danieldeleo/professional-services-data-validator/internal/config"
	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/query"
)

// Builder holds the two query specifications and the alias registries built
// from one config. Construction is one-shot and eager: NewBuilder walks the
// whole config and either returns a fully built pair or an error, never a
// partial one.
type Builder struct {
	cfg *config.ValidationConfig

	source *query.Builder
	target *query.Builder

	aggregateAliases []string
	groupAliases     []string

	logger  *slog.Logger
	verbose bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the diagnostic sink for compiled-query logging.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithVerbose enables logging of each compiled query.
func WithVerbose(verbose bool) Option {
	return func(b *Builder) {
		b.verbose = verbose
	}
}

// NewBuilder eagerly builds the source and target query specifications from
// the config. It fails with *config.UnsupportedValidationTypeError for a
// validation type outside the closed set, and with
// *query.UnknownAggregationError for an unresolvable aggregation; any failure
// aborts the whole build.
func NewBuilder(cfg *config.ValidationConfig, opts ...Option) (*Builder, error) {
	switch cfg.Type {
	case config.ValidationTypeColumn, config.ValidationTypeGroupedColumn:
	default:
		return nil, &config.UnsupportedValidationTypeError{
			Type:      string(cfg.Type),
			Supported: config.SupportedValidationTypes(),
		}
	}

	b := &Builder{
		cfg:    cfg,
		source: query.NewBuilder(),
		target: query.NewBuilder(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.bindAggregates(); err != nil {
		return nil, err
	}
	b.bindGroups()
	b.bindLimit()

	return b, nil
}

// bindAggregates resolves each declared aggregation once and applies it to
// both sides under the shared alias, in declaration order.
func (b *Builder) bindAggregates() error {
	for _, spec := range b.cfg.Aggregates {
		kind, err := query.ParseAggregateKind(spec.Type)
		if err != nil {
			return fmt.Errorf("aggregate %q: %w", spec.FieldAlias, err)
		}

		b.source.AddAggregateField(kind.Field(spec.SourceColumn, spec.FieldAlias))
		b.target.AddAggregateField(kind.Field(spec.TargetColumn, spec.FieldAlias))
		b.aggregateAliases = append(b.aggregateAliases, spec.FieldAlias)
	}
	return nil
}

// bindGroups applies each declared grouping key to both sides under the
// shared alias, with the cast applied uniformly.
func (b *Builder) bindGroups() {
	for _, spec := range b.cfg.GroupedColumns {
		b.source.AddGroupedField(query.GroupedField{
			Column: spec.SourceColumn,
			Alias:  spec.FieldAlias,
			Cast:   spec.Cast,
		})
		b.target.AddGroupedField(query.GroupedField{
			Column: spec.TargetColumn,
			Alias:  spec.FieldAlias,
			Cast:   spec.Cast,
		})
		b.groupAliases = append(b.groupAliases, spec.FieldAlias)
	}
}

// bindLimit applies the config limit identically to both specifications.
func (b *Builder) bindLimit() {
	b.source.SetLimit(b.cfg.Limit)
	b.target.SetLimit(b.cfg.Limit)
}

// AggregateAliases returns the aggregate aliases in declaration order.
func (b *Builder) AggregateAliases() []string {
	out := make([]string, len(b.aggregateAliases))
	copy(out, b.aggregateAliases)
	return out
}

// GroupAliases returns the grouping aliases in declaration order.
func (b *Builder) GroupAliases() []string {
	out := make([]string, len(b.groupAliases))
	copy(out, b.groupAliases)
	return out
}

// SourceSpec returns the source-side query specification.
func (b *Builder) SourceSpec() *query.Builder {
	return b.source
}

// TargetSpec returns the target-side query specification.
func (b *Builder) TargetSpec() *query.Builder {
	return b.target
}

// SourceQuery compiles the source specification against the client's dialect,
// bound to the source schema and table.
func (b *Builder) SourceQuery(client adapter.Adapter) (*query.CompiledQuery, error) {
	q, err := b.source.Compile(client.Dialect(), b.cfg.SchemaName, b.cfg.TableName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile source query: %w", err)
	}
	if b.verbose {
		b.logger.Info("compiled source query",
			slog.String("dialect", q.Dialect),
			slog.String("sql", q.SQL))
	}
	return q, nil
}

// TargetQuery compiles the target specification against the client's dialect.
// The target schema and table fall back to the source values when the config
// does not override them.
func (b *Builder) TargetQuery(client adapter.Adapter) (*query.CompiledQuery, error) {
	q, err := b.target.Compile(client.Dialect(), b.cfg.TargetSchema(), b.cfg.TargetTable())
	if err != nil {
		return nil, fmt.Errorf("failed to compile target query: %w", err)
	}
	if b.verbose {
		b.logger.Info("compiled target query",
			slog.String("dialect", q.Dialect),
			slog.String("sql", q.SQL))
	}
	return q, nil
}
