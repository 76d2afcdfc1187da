// Package adapter provides database adapter interfaces for the data validator.
//
// This package contains the public contract that all database adapters must
// implement. Concrete adapter implementations are in pkg/adapters/ subdirectories
// and register themselves in their init() functions.
package adapter

import (
	"context"
	"database/sql"

	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the database type (e.g., "duckdb", "postgres")
	Type string `koanf:"type"`

	// Path is the file path for file-based databases (DuckDB, SQLite)
	// Use ":memory:" for in-memory databases
	Path string `koanf:"path"`

	// Host is the hostname for network-based databases
	Host string `koanf:"host"`

	// Port is the port number for network-based databases
	Port int `koanf:"port"`

	// Database is the database name
	Database string `koanf:"database"`

	// Username for authentication
	Username string `koanf:"user"`

	// Password for authentication
	Password string `koanf:"password"`

	// Options contains additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// Column represents a column in a database table.
type Column struct {
	// Name is the column name
	Name string

	// Type is the data type of the column
	Type string

	// Nullable indicates whether the column allows NULL values
	Nullable bool

	// Position is the ordinal position of the column in the table
	Position int
}

// Metadata holds metadata about a database table.
type Metadata struct {
	// Schema is the schema containing the table
	Schema string

	// Name is the table name
	Name string

	// Columns contains metadata for each column
	Columns []Column

	// RowCount is the approximate number of rows (may not be exact)
	RowCount int64
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}

// Adapter defines the interface that all database adapters must implement.
// It provides methods for connecting to databases, executing SQL, and
// retrieving metadata.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows (e.g., INSERT, CREATE).
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// GetTableMetadata retrieves metadata for a specified table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// Dialect returns the SQL dialect configuration for this adapter.
	// The query compiler uses it for identifier quoting, cast spelling,
	// and aggregate function names.
	Dialect() *dialect.Dialect
}
