// This file registers the SQLite adapter and dialect with their registries.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/danieldeleo/professional-services-data-validator/pkg/adapters/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
)

// sqliteDialect configures quoting and casts for SQLite. SQLite has no
// bit-level aggregate functions, so those kinds are marked unsupported.
var sqliteDialect = &dialect.Dialect{
	Name:        "sqlite",
	IdentQuote:  '"',
	Placeholder: dialect.PlaceholderQuestion,
	TypeNames: map[string]string{
		"string":    "TEXT",
		"int64":     "INTEGER",
		"float64":   "REAL",
		"date":      "TEXT",
		"timestamp": "TEXT",
	},
	AggregateFuncs: map[string]string{
		"bit_xor": "",
		"bit_and": "",
		"bit_or":  "",
	},
}

func init() {
	dialect.Register(sqliteDialect)
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
