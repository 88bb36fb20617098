package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umpire274/sw-galaxy-map/store"
)

// openTestDB opens a fresh in-memory database, one per call: the DSN
// embeds the test name so parallel tests never share a cache=shared
// instance.
func openTestDB(t *testing.T) *store.DB {
	t.Helper()

	cfg := store.Config{
		DSN:         "file:" + t.Name() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		AlgoVersion: "router_v1",
	}

	db, err := store.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func seedPlanets(t *testing.T, db *store.DB, planets ...store.Planet) {
	t.Helper()
	for _, p := range planets {
		require.NoError(t, db.UpsertPlanet(context.Background(), p))
	}
}
