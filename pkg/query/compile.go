package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
)

// CompiledQuery is the result of compiling a specification against a dialect.
// It is immutable once produced; compiling again yields an equal value.
type CompiledQuery struct {
	// SQL is the executable statement text.
	SQL string

	// Dialect is the name of the dialect the SQL was rendered for.
	Dialect string

	// Columns lists the output column aliases in SELECT order
	// (grouped fields first, then aggregates).
	Columns []string
}

// Compile renders the specification into SQL for the given dialect, bound to
// a schema-qualified table. An empty schema falls back to the dialect's
// default schema. Compile does not mutate the builder and may be called any
// number of times.
func (b *Builder) Compile(d *dialect.Dialect, schema, table string) (*CompiledQuery, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	if table == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if len(b.aggregates) == 0 && len(b.groups) == 0 {
		return nil, fmt.Errorf("query specification has no fields")
	}

	selects := make([]string, 0, len(b.groups)+len(b.aggregates))
	columns := make([]string, 0, len(b.groups)+len(b.aggregates))

	for _, g := range b.groups {
		expr := d.QuoteIdent(g.Column)
		if g.Cast != "" {
			expr = d.FormatCast(expr, g.Cast)
		}
		selects = append(selects, fmt.Sprintf("%s AS %s", expr, d.QuoteIdent(g.Alias)))
		columns = append(columns, g.Alias)
	}

	for _, a := range b.aggregates {
		expr, err := aggregateExpr(d, a)
		if err != nil {
			return nil, err
		}
		selects = append(selects, fmt.Sprintf("%s AS %s", expr, d.QuoteIdent(a.Alias)))
		columns = append(columns, a.Alias)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(selects, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(d.QualifyTable(schema, table))

	if len(b.groups) > 0 {
		// Group by ordinal position; grouped fields lead the select list.
		ordinals := make([]string, len(b.groups))
		for i := range b.groups {
			ordinals[i] = strconv.Itoa(i + 1)
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(ordinals, ", "))
	}

	if limit, ok := b.Limit(); ok {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.FormatInt(limit, 10))
	}

	return &CompiledQuery{
		SQL:     sb.String(),
		Dialect: d.Name,
		Columns: columns,
	}, nil
}

// aggregateExpr renders one aggregate field as a dialect function call.
func aggregateExpr(d *dialect.Dialect, a AggregateField) (string, error) {
	fn, ok := d.AggregateFunc(a.Kind.String())
	if !ok {
		return "", fmt.Errorf("aggregation %s is not supported by dialect %s", a.Kind, d.Name)
	}

	// COUNT over no column (or "*") counts rows.
	if a.Kind == KindCount && (a.Column == "" || a.Column == "*") {
		return fn + "(*)", nil
	}
	if a.Column == "" {
		return "", fmt.Errorf("aggregation %s requires a column", a.Kind)
	}
	return fmt.Sprintf("%s(%s)", fn, d.QuoteIdent(a.Column)), nil
}
