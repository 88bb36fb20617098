package detour_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umpire274/sw-galaxy-map/collision"
	"github.com/umpire274/sw-galaxy-map/detour"
	"github.com/umpire274/sw-galaxy-map/geometry"
)

func TestCandidatesOffAxisFullOrderAndCount(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}
	o := collision.Obstacle{ID: 1, Center: geometry.Point{X: 5, Y: 0.4}, Radius: 1}
	hit, ok := collision.FirstCollision(a, b, []collision.Obstacle{o})
	require.True(t, ok)

	cands := detour.Candidates(a, b, hit, 0.5)
	require.Len(t, cands, 7)

	q := hit.Closest.Q

	// Candidate 1: outward push, strictly farther from the obstacle center
	// than the collision point q itself.
	assert.Greater(t, geometry.Dist(cands[0], o.Center), geometry.Dist(q, o.Center))

	// Candidate 2/3: lateral +/- n, n = perp(dir) = (0,1) for dir=(1,0).
	assert.InDelta(t, q.X, cands[1].X, 1e-9)
	assert.InDelta(t, q.Y+0.5, cands[1].Y, 1e-9)
	assert.InDelta(t, q.Y-0.5, cands[2].Y, 1e-9)

	// Candidate 4/5: forward/backward along dir.
	assert.InDelta(t, q.X+0.5, cands[3].X, 1e-9)
	assert.InDelta(t, q.X-0.5, cands[4].X, 1e-9)
}

func TestCandidatesDegenerateOutwardRadialIsSkipped(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}
	// Obstacle centered exactly on the segment: q == center, so the
	// outward radial direction is undefined and must be omitted.
	o := collision.Obstacle{ID: 1, Center: geometry.Point{X: 5, Y: 0}, Radius: 1}
	hit, ok := collision.FirstCollision(a, b, []collision.Obstacle{o})
	require.True(t, ok)

	cands := detour.Candidates(a, b, hit, 0.2)
	require.Len(t, cands, 6)
}

func TestCandidatesNeverNaN(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}
	o := collision.Obstacle{ID: 1, Center: geometry.Point{X: 5, Y: 0}, Radius: 1}
	hit, ok := collision.FirstCollision(a, b, []collision.Obstacle{o})
	require.True(t, ok)

	for _, c := range detour.Candidates(a, b, hit, 0.3) {
		assert.False(t, math.IsNaN(c.X))
		assert.False(t, math.IsNaN(c.Y))
	}
}
