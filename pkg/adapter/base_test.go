package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDialect() *dialect.Dialect {
	return &dialect.Dialect{
		Name:          "testdb",
		DefaultSchema: "main",
		IdentQuote:    '"',
	}
}

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name    string
		setupDB bool
	}{
		{name: "close with nil DB", setupDB: false},
		{name: "close with open DB", setupDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			assert.NoError(t, base.Close())
		})
	}
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		expectErr bool
		errMsg    string
	}{
		{
			name:      "exec without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "exec success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE users").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			sql:       "CREATE TABLE users (id INT)",
			expectErr: false,
		},
		{
			name:    "exec with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INVALID SQL").WillReturnError(assert.AnError)
			},
			sql:       "INVALID SQL",
			expectErr: true,
			errMsg:    "failed to execute SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()
				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
				base.DB = db
			}

			err := base.Exec(ctx, tt.sql)
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseSQLAdapter_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("query without connection", func(t *testing.T) {
		base := &BaseSQLAdapter{}
		_, err := base.Query(ctx, "SELECT 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database connection not established")
	})

	t.Run("query success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT id FROM users").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

		base := &BaseSQLAdapter{DB: db}
		rows, err := base.Query(ctx, "SELECT id FROM users")
		require.NoError(t, err)
		defer func() { _ = rows.Close() }()

		var count int
		for rows.Next() {
			count++
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, 2, count)
	})
}

func TestBaseSQLAdapter_GetTableMetadataCommon(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("s", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
			AddRow("id", "BIGINT", "NO", 1).
			AddRow("amount", "DOUBLE", "YES", 2))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	base := &BaseSQLAdapter{DB: db}
	meta, err := base.GetTableMetadataCommon(ctx, "s.orders", testDialect())
	require.NoError(t, err)

	assert.Equal(t, "s", meta.Schema)
	assert.Equal(t, "orders", meta.Name)
	assert.Equal(t, int64(42), meta.RowCount)
	require.Len(t, meta.Columns, 2)
	assert.Equal(t, "id", meta.Columns[0].Name)
	assert.False(t, meta.Columns[0].Nullable)
	assert.True(t, meta.Columns[1].Nullable)
}

func TestBaseSQLAdapter_GetTableMetadataCommon_NotFound(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM information_schema.columns").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}))

	base := &BaseSQLAdapter{DB: db}
	_, err = base.GetTableMetadataCommon(ctx, "missing", testDialect())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseQualifiedName(t *testing.T) {
	d := testDialect()

	schema, name := ParseQualifiedName("s.t", d)
	assert.Equal(t, "s", schema)
	assert.Equal(t, "t", name)

	schema, name = ParseQualifiedName("t", d)
	assert.Equal(t, "main", schema)
	assert.Equal(t, "t", name)
}
