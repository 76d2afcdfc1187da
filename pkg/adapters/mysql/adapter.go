// Package mysql provides a MySQL database adapter for the data validator.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
	gomysql "github.com/go-sql-driver/mysql"
)

// Adapter implements the adapter.Adapter interface for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MySQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQL dialect configuration for MySQL.
func (a *Adapter) Dialect() *dialect.Dialect {
	return mysqlDialect
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildMySQLDSN(cfg)

	a.Logger.Debug("connecting to mysql", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mysql: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildMySQLDSN constructs a MySQL connection string using the driver's config type.
func buildMySQLDSN(cfg adapter.Config) string {
	mc := gomysql.NewConfig()

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", host, port)
	mc.DBName = cfg.Database
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.ParseTime = true

	if cfg.Options != nil {
		mc.Params = make(map[string]string, len(cfg.Options))
		for k, v := range cfg.Options {
			mc.Params[k] = v
		}
	}

	return mc.FormatDSN()
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, a.Dialect())
}

// Ensure Adapter implements the adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
