// Package query provides the backend-agnostic validation query specification.
//
// A Builder accumulates aggregate and grouped field descriptors plus an
// optional row limit, and compiles them into backend SQL through a dialect.
// The builder knows nothing about which side (source or target) it describes;
// the pairing logic lives in internal/validation.
package query

// AggregateField describes one aggregated output column: an aggregation kind
// applied to a column, exposed under an alias.
type AggregateField struct {
	Kind   AggregateKind
	Column string
	Alias  string
}

// GroupedField describes one grouping key column, exposed under an alias,
// with an optional canonical cast applied before grouping.
type GroupedField struct {
	Column string
	Alias  string
	Cast   string
}

// Builder accumulates the specification for one side's validation query.
// It is a plain accumulator: appends preserve declaration order, and
// compilation never mutates it.
type Builder struct {
	aggregates []AggregateField
	groups     []GroupedField
	limit      *int64
}

// NewBuilder returns an empty query specification builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddAggregateField appends an aggregate field descriptor.
func (b *Builder) AddAggregateField(f AggregateField) {
	b.aggregates = append(b.aggregates, f)
}

// AddGroupedField appends a grouped field descriptor.
func (b *Builder) AddGroupedField(f GroupedField) {
	b.groups = append(b.groups, f)
}

// SetLimit sets the row limit. A nil limit means unlimited.
func (b *Builder) SetLimit(limit *int64) {
	if limit == nil {
		b.limit = nil
		return
	}
	v := *limit
	b.limit = &v
}

// AggregateFields returns the accumulated aggregate descriptors in order.
func (b *Builder) AggregateFields() []AggregateField {
	out := make([]AggregateField, len(b.aggregates))
	copy(out, b.aggregates)
	return out
}

// GroupedFields returns the accumulated grouped descriptors in order.
func (b *Builder) GroupedFields() []GroupedField {
	out := make([]GroupedField, len(b.groups))
	copy(out, b.groups)
	return out
}

// Limit returns the row limit and whether one is set.
func (b *Builder) Limit() (int64, bool) {
	if b.limit == nil {
		return 0, false
	}
	return *b.limit, true
}
