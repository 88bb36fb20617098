package geometry_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umpire274/sw-galaxy-map/geometry"
)

func TestVectorAlgebra(t *testing.T) {
	a := geometry.Point{X: 1, Y: 2}
	b := geometry.Point{X: 3, Y: -1}

	assert.Equal(t, geometry.Point{X: 4, Y: 1}, geometry.Add(a, b))
	assert.Equal(t, geometry.Point{X: -2, Y: 3}, geometry.Sub(a, b))
	assert.Equal(t, geometry.Point{X: 2, Y: 4}, geometry.Scale(a, 2))
	assert.InDelta(t, 1*3+2*-1, geometry.Dot(a, b), 1e-12)
	assert.InDelta(t, math.Sqrt(5), geometry.Norm(a), 1e-12)
	assert.InDelta(t, geometry.Norm(geometry.Sub(a, b)), geometry.Dist(a, b), 1e-12)
}

func TestNormalizeZeroVector(t *testing.T) {
	require.Equal(t, geometry.Point{}, geometry.Normalize(geometry.Point{}))
}

func TestNormalizeUnitLength(t *testing.T) {
	v := geometry.Normalize(geometry.Point{X: 3, Y: 4})
	assert.InDelta(t, 1.0, geometry.Norm(v), 1e-12)
	assert.InDelta(t, 0.6, v.X, 1e-12)
	assert.InDelta(t, 0.8, v.Y, 1e-12)
}

func TestPerpIsCounterClockwise(t *testing.T) {
	assert.Equal(t, geometry.Point{X: 0, Y: 1}, geometry.Perp(geometry.Point{X: 1, Y: 0}))
	assert.Equal(t, geometry.Point{X: -1, Y: 0}, geometry.Perp(geometry.Point{X: 0, Y: 1}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, geometry.Clamp(-5, 0, 1))
	assert.Equal(t, 1.0, geometry.Clamp(5, 0, 1))
	assert.Equal(t, 0.5, geometry.Clamp(0.5, 0, 1))
}
