package main

import (
	"testing"

	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/stretchr/testify/assert"
)

func TestAdaptersRegistered(t *testing.T) {
	for _, name := range []string{"duckdb", "mysql", "postgres", "sqlite"} {
		assert.True(t, adapter.IsRegistered(name), "adapter %q should be registered", name)
	}
}
