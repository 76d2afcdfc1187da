// Package sqlite provides a SQLite database adapter for the data validator.
//
// Uses the pure-Go modernc.org/sqlite driver, so no cgo is required.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQL dialect configuration for SQLite.
func (a *Adapter) Dialect() *dialect.Dialect {
	return sqliteDialect
}

// Connect establishes a connection to SQLite.
/// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// GetTableMetadata retrieves metadata for a specified table.
// SQLite has no information_schema, so this uses PRAGMA table_info.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	// SQLite table references are unqualified; strip any schema prefix
	tableName := table
	if parts := strings.Split(table, "."); len(parts) == 2 {
		tableName = parts[1]
	}

	query := fmt.Sprintf("PRAGMA table_info(%s)", sqliteDialect.QuoteIdent(tableName)) //nolint:gosec // Identifier is dialect-quoted
	rows, err := a.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table info: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []adapter.Column
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notnull    int
			defaultVal any
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}
		columns = append(columns, adapter.Column{
			Name:     name,
			Type:     typ,
			Nullable: notnull == 0,
			Position: cid + 1,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table info: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", sqliteDialect.QuoteIdent(tableName)) //nolint:gosec // Identifier is dialect-quoted
	var rowCount int64
	if err := a.DB.QueryRowContext(ctx, countQuery).Scan(&rowCount); err != nil {
		rowCount = 0
	}

	return &adapter.Metadata{
		Name:     tableName,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}

// Ensure Adapter implements the adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
