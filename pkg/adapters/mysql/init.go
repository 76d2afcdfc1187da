// This file registers the MySQL adapter and dialect with their registries.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/danieldeleo/professional-services-data-validator/pkg/adapters/mysql"
package mysql

import (
	"log/slog"

	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
)

// mysqlDialect configures quoting, casts, and aggregate spelling for MySQL.
// MySQL schemas and databases are the same thing, so there is no default schema.
var mysqlDialect = &dialect.Dialect{
	Name:        "mysql",
	IdentQuote:  '`',
	Placeholder: dialect.PlaceholderQuestion,
	TypeNames: map[string]string{
		"string":    "CHAR",
		"int64":     "SIGNED",
		"float64":   "DOUBLE",
		"date":      "DATE",
		"timestamp": "DATETIME",
	},
	AggregateFuncs: map[string]string{
		"bit_xor": "BIT_XOR",
		"bit_and": "BIT_AND",
		"bit_or":  "BIT_OR",
	},
}

func init() {
	dialect.Register(mysqlDialect)
	adapter.Register("mysql", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
