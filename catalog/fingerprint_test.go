package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umpire274/sw-galaxy-map/catalog"
)

func sampleCtx() catalog.Context {
	return catalog.Context{FromFID: 1, ToFID: 2, ObstacleID: 9, Iteration: 0, SegmentIndex: 0}
}

func TestComputeIsDeterministic(t *testing.T) {
	ctx := sampleCtx()
	a := catalog.Compute(ctx, 5.12345, -3.98765)
	b := catalog.Compute(ctx, 5.12345, -3.98765)
	assert.Equal(t, a, b)
}

func TestComputeRoundsToFourDecimals(t *testing.T) {
	ctx := sampleCtx()
	a := catalog.Compute(ctx, 5.123449, -3.987651)
	b := catalog.Compute(ctx, 5.1234, -3.9877)
	assert.Equal(t, a, b)
}

func TestComputeDiffersOnContextFields(t *testing.T) {
	base := catalog.Compute(sampleCtx(), 1, 1)

	ctx := sampleCtx()
	ctx.Iteration = 1
	assert.NotEqual(t, base, catalog.Compute(ctx, 1, 1))

	ctx = sampleCtx()
	ctx.SegmentIndex = 1
	assert.NotEqual(t, base, catalog.Compute(ctx, 1, 1))

	ctx = sampleCtx()
	ctx.ObstacleID = 99
	assert.NotEqual(t, base, catalog.Compute(ctx, 1, 1))
}

func TestComputeDiffersOnCoordinates(t *testing.T) {
	ctx := sampleCtx()
	a := catalog.Compute(ctx, 1, 1)
	b := catalog.Compute(ctx, 1, 1.001)
	assert.NotEqual(t, a, b)
}

func TestShortNameUsesFirstEightHexChars(t *testing.T) {
	fp := catalog.Compute(sampleCtx(), 1, 1)
	name := fp.ShortName()
	assert.Equal(t, "Detour "+string(fp)[:8], name)
	assert.Len(t, name, len("Detour ")+8)
}
