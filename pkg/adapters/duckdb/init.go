// This file registers the DuckDB adapter and dialect with their registries.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/danieldeleo/professional-services-data-validator/pkg/adapters/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
)

// duckdbDialect configures quoting, casts, and aggregate spelling for DuckDB.
var duckdbDialect = &dialect.Dialect{
	Name:          "duckdb",
	DefaultSchema: "main",
	IdentQuote:    '"',
	Placeholder:   dialect.PlaceholderQuestion,
	TypeNames: map[string]string{
		"string":    "VARCHAR",
		"int64":     "BIGINT",
		"float64":   "DOUBLE",
		"date":      "DATE",
		"timestamp": "TIMESTAMP",
	},
	AggregateFuncs: map[string]string{
		"bit_xor": "BIT_XOR",
		"bit_and": "BIT_AND",
		"bit_or":  "BIT_OR",
	},
}

func init() {
	dialect.Register(duckdbDialect)
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
