// Package dialect provides SQL dialect configuration for query compilation.
//
// This package contains the public contract for dialect definitions used by the
// query compiler and the adapters. Concrete dialects are registered from
// pkg/adapters/*/ packages in their init() functions.
package dialect

import (
	"fmt"
	"strings"
)

// PlaceholderStyle describes how a dialect formats query parameters.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses "?" for all parameters (DuckDB, SQLite, MySQL).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses "$1", "$2", ... (Postgres).
	PlaceholderDollar
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name string

	// DefaultSchema is used when a table reference carries no schema
	// ("main" for DuckDB, "public" for Postgres).
	DefaultSchema string

	// IdentQuote is the identifier quoting character ('"' or '`').
	IdentQuote rune

	// Placeholder controls how query parameters are formatted.
	Placeholder PlaceholderStyle

	// TypeNames maps canonical cast names (string, int64, float64, date,
	// timestamp) to this dialect's type spelling. Unknown names fall back to
	// their upper-cased form.
	TypeNames map[string]string

	// AggregateFuncs maps canonical aggregation names to this dialect's
	// function spelling where it differs from the upper-cased default
	// (e.g. bit_xor → BIT_XOR on DuckDB, no mapping on SQLite).
	AggregateFuncs map[string]string
}

// QuoteIdent quotes an identifier, doubling any embedded quote characters.
func (d *Dialect) QuoteIdent(name string) string {
	q := string(d.IdentQuote)
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// QualifyTable returns the quoted schema-qualified table reference.
// An empty schema falls back to the dialect's default schema.
func (d *Dialect) QualifyTable(schema, table string) string {
	if schema == "" {
		schema = d.DefaultSchema
	}
	if schema == "" {
		return d.QuoteIdent(table)
	}
	return d.QuoteIdent(schema) + "." + d.QuoteIdent(table)
}

// TypeName resolves a canonical cast name to the dialect's type spelling.
func (d *Dialect) TypeName(cast string) string {
	if t, ok := d.TypeNames[strings.ToLower(cast)]; ok {
		return t
	}
	return strings.ToUpper(cast)
}

// FormatCast wraps an expression in a CAST to the named canonical type.
func (d *Dialect) FormatCast(expr, cast string) string {
	return fmt.Sprintf("CAST(%s AS %s)", expr, d.TypeName(cast))
}

// AggregateFunc resolves a canonical aggregation name to the dialect's
// function spelling. Returns false when the dialect has no spelling for it.
func (d *Dialect) AggregateFunc(name string) (string, bool) {
	if fn, ok := d.AggregateFuncs[strings.ToLower(name)]; ok {
		if fn == "" {
			return "", false
		}
		return fn, true
	}
	return strings.ToUpper(name), true
}

// FormatPlaceholder returns the parameter placeholder for position n (1-based).
func (d *Dialect) FormatPlaceholder(n int) string {
	if d.Placeholder == PlaceholderDollar {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
