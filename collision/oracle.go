package collision

import "github.com/umpire274/sw-galaxy-map/geometry"

// epsilonT is the tolerance around t=0 and t=1 within which a closest-point
// projection is treated as landing on a segment endpoint rather than its
// interior. Endpoint collisions are allowed; interior ones are not.
const epsilonT = 1e-9

// Obstacle is a circular no-fly zone materialized from a planet for the
// duration of a single route compute. Radius is the caller-supplied safety
// radius, not a physical property of the planet.
type Obstacle struct {
	ID     int64
	Name   string
	Center geometry.Point
	Radius float64
}

// Hit records the first obstacle a segment collides with.
type Hit struct {
	Obstacle Obstacle
	Closest  geometry.ClosestPoint
}

// interiorCollision reports whether segment ab collides with the interior
// of obstacle o: the closest point on ab to o's center must land strictly
// inside ab (not within epsilonT of either endpoint) and strictly inside
// o's safety radius.
func interiorCollision(a, b geometry.Point, o Obstacle) (geometry.ClosestPoint, bool) {
	cp := geometry.ClosestPointOnSegment(o.Center, a, b)
	if cp.T <= epsilonT || cp.T >= 1-epsilonT {
		return cp, false
	}

	return cp, cp.Dist < o.Radius
}

// InteriorCollision reports whether segment ab collides with the interior
// of a single obstacle o, per the endpoint-exclusion rule above.
func InteriorCollision(a, b geometry.Point, o Obstacle) bool {
	_, hit := interiorCollision(a, b, o)
	return hit
}

// FirstCollision scans obstacles in slice order and returns the earliest
// interior collision on segment ab, breaking ties by smaller distance.
// It returns false if the segment is clear of every obstacle's interior.
//
// Iteration is strictly sequential over the input slice: this ordering,
// combined with the strict less-than comparisons below, is what makes two
// calls with identical inputs return byte-identical results.
func FirstCollision(a, b geometry.Point, obstacles []Obstacle) (Hit, bool) {
	var best Hit
	found := false

	for _, o := range obstacles {
		cp, collided := interiorCollision(a, b, o)
		if !collided {
			continue
		}

		if !found {
			best = Hit{Obstacle: o, Closest: cp}
			found = true
			continue
		}

		better := cp.T < best.Closest.T || (cp.T == best.Closest.T && cp.Dist < best.Closest.Dist)
		if better {
			best = Hit{Obstacle: o, Closest: cp}
		}
	}

	return best, found
}

// IsSegmentSafe reports whether segment ab is free of interior collisions
// against every obstacle in the set.
func IsSegmentSafe(a, b geometry.Point, obstacles []Obstacle) bool {
	for _, o := range obstacles {
		if InteriorCollision(a, b, o) {
			return false
		}
	}

	return true
}

// ProximityPenalty computes the warning-band penalty contribution of a
// single obstacle against segment ab. excludeID, when non-nil and equal to
// the obstacle's ID, skips that obstacle entirely — used by the planner to
// avoid punishing a detour for being close to the very obstacle it is
// skirting.
//
// margin <= 0 or weight <= 0 disables the field (returns 0 unconditionally,
// matching the "zeroed weights disable the term" contract of spec §4.4).
func ProximityPenalty(a, b geometry.Point, obstacles []Obstacle, margin, weight float64, excludeID *int64) float64 {
	if margin <= 0 || weight <= 0 {
		return 0
	}

	var penalty float64

	for _, o := range obstacles {
		if excludeID != nil && o.ID == *excludeID {
			continue
		}

		cp := geometry.ClosestPointOnSegment(o.Center, a, b)
		warning := o.Radius + margin

		switch {
		case cp.Dist >= warning:
			// Outside the warning band entirely: no contribution.
		case cp.Dist <= o.Radius:
			// Should not occur on a segment already validated as safe;
			// treat as a strong deterrent rather than ignore it.
			penalty += weight * 10
		default:
			x := (warning - cp.Dist) / margin
			penalty += weight * x * x
		}
	}

	return penalty
}
