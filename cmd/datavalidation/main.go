// Package main provides the data validation CLI.
package main

import (
	"os"

	"github.com/danieldeleo/professional-services-data-validator/internal/cli"

	// Register database adapters.
	_ "github.com/danieldeleo/professional-services-data-validator/pkg/adapters/duckdb"
	_ "github.com/danieldeleo/professional-services-data-validator/pkg/adapters/mysql"
	_ "github.com/danieldeleo/professional-services-data-validator/pkg/adapters/postgres"
	_ "github.com/danieldeleo/professional-services-data-validator/pkg/adapters/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
