package hyperspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umpire274/sw-galaxy-map/hyperspace"
)

func TestParseGalacticRegionIsPermissive(t *testing.T) {
	cases := []struct {
		in   string
		want hyperspace.GalacticRegion
	}{
		{"Outer Rim", hyperspace.OuterRim},
		{"outer-rim", hyperspace.OuterRim},
		{"  CORE__WORLDS ", hyperspace.CoreWorlds},
		{"Unknown Region", hyperspace.UnknownRegions},
	}
	for _, c := range cases {
		got, ok := hyperspace.ParseGalacticRegion(c.in)
		assert.True(t, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	_, ok := hyperspace.ParseGalacticRegion("n/a")
	assert.False(t, ok)
}

func TestParseFirstRegionSkipsEmptyAndUnparsable(t *testing.T) {
	got, ok := hyperspace.ParseFirstRegion("", "n/a", "Mid Rim")
	assert.True(t, ok)
	assert.Equal(t, hyperspace.MidRim, got)

	_, ok = hyperspace.ParseFirstRegion("", "n/a")
	assert.False(t, ok)
}

func TestWeightedAverageCompressionSkipsInvalidSegments(t *testing.T) {
	avg, ok := hyperspace.WeightedAverageCompression(
		[]float64{10, 10, -5, 10},
		[]float64{20, 40, 100, 0},
	)
	assert.True(t, ok)
	// Only the first two segments contribute: (10*20 + 10*40) / 20 = 30.
	assert.InDelta(t, 30.0, avg, 1e-9)
}

func TestWeightedAverageCompressionNoContributionsIsNotOK(t *testing.T) {
	_, ok := hyperspace.WeightedAverageCompression([]float64{-1}, []float64{10})
	assert.False(t, ok)
}

func TestBaseCompressionFactorOrdering(t *testing.T) {
	assert.Greater(t, hyperspace.DeepCore.BaseCompressionFactor(), hyperspace.OuterRim.BaseCompressionFactor())
}
