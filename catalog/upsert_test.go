package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umpire274/sw-galaxy-map/catalog"
)

func TestResolveInsertsWhenNoExistingRow(t *testing.T) {
	lookup := func(catalog.Fingerprint) (int64, bool) { return 0, false }

	res := catalog.Resolve(sampleCtx(), 5, 5, lookup)
	assert.False(t, res.Reused)
	assert.NotEmpty(t, res.Name)
}

func TestResolveReusesExistingRowOnMatchingFingerprint(t *testing.T) {
	ctx := sampleCtx()
	fp := catalog.Compute(ctx, 5, 5)

	lookup := func(f catalog.Fingerprint) (int64, bool) {
		if f == fp {
			return 42, true
		}
		return 0, false
	}

	res := catalog.Resolve(ctx, 5, 5, lookup)
	require.True(t, res.Reused)
	assert.Equal(t, int64(42), res.ExistingID)
}

func TestResolveIsIdempotentAcrossRecomputes(t *testing.T) {
	ctx := sampleCtx()
	store := map[catalog.Fingerprint]int64{}
	nextID := int64(1)

	lookup := func(f catalog.Fingerprint) (int64, bool) {
		id, ok := store[f]
		return id, ok
	}

	first := catalog.Resolve(ctx, 5, 5, lookup)
	require.False(t, first.Reused)
	store[first.Fingerprint] = nextID

	second := catalog.Resolve(ctx, 5, 5, lookup)
	require.True(t, second.Reused)
	assert.Equal(t, nextID, second.ExistingID)
}

func TestNewAvoidLinkComputesDistance(t *testing.T) {
	link := catalog.NewAvoidLink(7, 9, 3, 4, 0, 0)
	assert.Equal(t, int64(7), link.WaypointID)
	assert.Equal(t, int64(9), link.ObstacleFID)
	assert.Equal(t, "avoid", link.Role)
	assert.InDelta(t, 5.0, link.Distance, 1e-9)
}
