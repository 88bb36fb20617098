package collision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umpire274/sw-galaxy-map/collision"
	"github.com/umpire274/sw-galaxy-map/geometry"
)

func obstacle(id int64, cx, cy, r float64) collision.Obstacle {
	return collision.Obstacle{ID: id, Name: "o", Center: geometry.Point{X: cx, Y: cy}, Radius: r}
}

func TestInteriorCollisionDetectsPiercing(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}
	o := obstacle(1, 5, 0, 1)

	assert.True(t, collision.InteriorCollision(a, b, o))
}

func TestInteriorCollisionAllowsEndpointEnclosure(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}
	o := obstacle(1, 10, 0, 2) // disc encloses destination B

	assert.False(t, collision.InteriorCollision(a, b, o))
}

func TestInteriorCollisionMissesFarObstacle(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}
	o := obstacle(1, 5, 5, 1)

	assert.False(t, collision.InteriorCollision(a, b, o))
}

func TestFirstCollisionPicksEarliestByT(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 12, Y: 0}
	obstacles := []collision.Obstacle{
		obstacle(2, 8, 0, 0.6),
		obstacle(1, 4, 0, 0.6),
	}

	hit, ok := collision.FirstCollision(a, b, obstacles)
	require.True(t, ok)
	assert.Equal(t, int64(1), hit.Obstacle.ID)
}

func TestFirstCollisionNoneWhenClear(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}

	_, ok := collision.FirstCollision(a, b, nil)
	assert.False(t, ok)
}

func TestIsSegmentSafe(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}

	assert.True(t, collision.IsSegmentSafe(a, b, []collision.Obstacle{obstacle(1, 5, 5, 1)}))
	assert.False(t, collision.IsSegmentSafe(a, b, []collision.Obstacle{obstacle(1, 5, 0, 1)}))
}

func TestProximityPenaltyBands(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}
	o := obstacle(1, 5, 1.2, 1.0) // dist from segment = 1.2, radius 1.0, margin 0.5

	// Outside the warning band entirely.
	assert.Equal(t, 0.0, collision.ProximityPenalty(a, b, []collision.Obstacle{
		obstacle(1, 5, 2.0, 1.0),
	}, 0.5, 1.0, nil))

	// Inside the warning band: quadratic ramp.
	pen := collision.ProximityPenalty(a, b, []collision.Obstacle{o}, 0.5, 1.0, nil)
	warning := o.Radius + 0.5
	x := (warning - 1.2) / 0.5
	assert.InDelta(t, x*x, pen, 1e-9)

	// Excluded obstacle contributes nothing.
	excl := o.ID
	assert.Equal(t, 0.0, collision.ProximityPenalty(a, b, []collision.Obstacle{o}, 0.5, 1.0, &excl))

	// Zero weight disables the field.
	assert.Equal(t, 0.0, collision.ProximityPenalty(a, b, []collision.Obstacle{o}, 0.5, 0, nil))
}

func TestProximityPenaltyStrongDeterrentInsideRadius(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 10, Y: 0}
	o := obstacle(1, 5, 0.5, 1.0) // dist 0.5 <= radius 1.0

	pen := collision.ProximityPenalty(a, b, []collision.Obstacle{o}, 0.5, 2.0, nil)
	assert.InDelta(t, 20.0, pen, 1e-9)
}
