package detour

import (
	"github.com/umpire274/sw-galaxy-map/collision"
	"github.com/umpire274/sw-galaxy-map/geometry"
)

// isZero reports whether v is the exact zero vector.
func isZero(v geometry.Point) bool {
	return v.X == 0 && v.Y == 0
}

// Candidates produces up to seven candidate waypoints around hit, at the
// given offset, in the stable order required by spec §4.3:
//
//  1. outward push along the obstacle's radial direction
//  2. lateral +n
//  3. lateral -n
//  4. forward +dir
//  5. backward -dir
//  6. diagonal +(dir+n)
//  7. diagonal +(dir-n)
//
// A candidate is omitted, never emitted as NaN, whenever its direction is
// degenerate (e.g. the collision point coincides with the obstacle center,
// so the outward radial is undefined).
func Candidates(a, b geometry.Point, hit collision.Hit, offset float64) []geometry.Point {
	dir := geometry.Normalize(geometry.Sub(b, a))
	n := geometry.Perp(dir)

	q := hit.Closest.Q
	center := hit.Obstacle.Center
	d := hit.Closest.Dist

	u := geometry.Normalize(geometry.Sub(q, center))

	push := offset
	if r := hit.Obstacle.Radius - d; r > 0 {
		push += r
	}

	out := make([]geometry.Point, 0, 7)

	if !isZero(u) {
		out = append(out, geometry.Add(q, geometry.Scale(u, push)))
	}

	out = append(out, geometry.Add(q, geometry.Scale(n, offset)))
	out = append(out, geometry.Sub(q, geometry.Scale(n, offset)))
	out = append(out, geometry.Add(q, geometry.Scale(dir, offset)))
	out = append(out, geometry.Sub(q, geometry.Scale(dir, offset)))

	d1 := geometry.Normalize(geometry.Add(dir, n))
	d2 := geometry.Normalize(geometry.Sub(dir, n))
	out = append(out, geometry.Add(q, geometry.Scale(d1, offset)))
	out = append(out, geometry.Add(q, geometry.Scale(d2, offset)))

	return out
}
