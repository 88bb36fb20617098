package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umpire274/sw-galaxy-map/store"
)

func TestConfigValidateRejectsEmptyFields(t *testing.T) {
	cases := []store.Config{
		{DSN: "", AlgoVersion: "router_v1"},
		{DSN: "file::memory:", AlgoVersion: ""},
	}
	for _, c := range cases {
		assert.Error(t, c.Validate())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := store.DefaultConfig("galaxy.db")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "file:galaxy.db?_pragma=foreign_keys(1)", cfg.DSN)
}

func TestOpenAppliesMigrationsAndIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	// A second Migrate against the same, now-current database must be a
	// pure no-op: no error, no duplicate schema objects.
	require.NoError(t, db.Migrate(context.Background()))
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	_, err := store.Open(context.Background(), store.Config{}, nil)
	require.Error(t, err)
}
