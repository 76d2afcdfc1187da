// This file registers the PostgreSQL adapter and dialect with their registries.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/danieldeleo/professional-services-data-validator/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
)

// postgresDialect configures quoting, casts, and aggregate spelling for PostgreSQL.
// The bit-level aggregates require PostgreSQL 14 or later.
var postgresDialect = &dialect.Dialect{
	Name:          "postgres",
	DefaultSchema: "public",
	IdentQuote:    '"',
	Placeholder:   dialect.PlaceholderDollar,
	TypeNames: map[string]string{
		"string":    "TEXT",
		"int64":     "BIGINT",
		"float64":   "DOUBLE PRECISION",
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
	dialect.Register(postgresDialect)
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
