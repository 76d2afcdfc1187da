package postgres

import (
	"testing"

	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/danieldeleo/professional-services-data-validator/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfRegistration(t *testing.T) {
	assert.True(t, adapter.IsRegistered("postgres"), "postgres adapter should be auto-registered")

	d, ok := dialect.Get("postgres")
	require.True(t, ok, "postgres dialect should be auto-registered")
	assert.Equal(t, "public", d.DefaultSchema)
	assert.Equal(t, "$1", d.FormatPlaceholder(1))
}

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      adapter.Config
		expected string
	}{
		{
			name:     "defaults",
			cfg:      adapter.Config{Database: "warehouse"},
			expected: "host=localhost port=5432 dbname=warehouse sslmode=disable",
		},
		{
			name: "full config",
			cfg: adapter.Config{
				Host:     "db.internal",
				Port:     5433,
				Database: "warehouse",
				Username: "validator",
				Password: "secret",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=db.internal port=5433 dbname=warehouse sslmode=require user=validator password=secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.cfg))
		})
	}
}
