package scoring

import (
	"github.com/umpire274/sw-galaxy-map/collision"
	"github.com/umpire274/sw-galaxy-map/geometry"
)

// Score is the weighted breakdown of a candidate detour waypoint W inserted
// between A and B. Total is the sole ordering key candidates are compared
// on; the individual terms exist for explain output and debugging.
type Score struct {
	Base      float64 // dist(A,W) + dist(W,B)
	Turn      float64 // penalty for sharp angles at W
	Back      float64 // penalty for W moving against the A->B direction
	Proximity float64 // penalty for skirting close to other obstacles
}

// Total is the single value candidates are ranked by.
func (s Score) Total() float64 {
	return s.Base + s.Turn + s.Back + s.Proximity
}

// Weights bundles the scoring coefficients a caller supplies; it mirrors
// the scoring-relevant fields of planner.RouteOptions without importing
// that package (scoring sits below planner in the dependency graph).
type Weights struct {
	TurnWeight      float64
	BackWeight      float64
	ProximityWeight float64
	ProximityMargin float64
}

// Evaluate scores inserting waypoint w between a and b. It returns false if
// either resulting segment (a,w) or (w,b) collides with the interior of any
// obstacle — such a candidate is invalid and must not be scored.
//
// excludeID, when non-nil, is passed through to the proximity term so a
// detour is not punished for passing close to the very obstacle it exists
// to avoid.
func Evaluate(a, w, b geometry.Point, obstacles []collision.Obstacle, weights Weights, excludeID *int64) (Score, bool) {
	if !collision.IsSegmentSafe(a, w, obstacles) {
		return Score{}, false
	}
	if !collision.IsSegmentSafe(w, b, obstacles) {
		return Score{}, false
	}

	base := geometry.Dist(a, w) + geometry.Dist(w, b)

	var turn float64
	u1 := geometry.Normalize(geometry.Sub(w, a))
	u2 := geometry.Normalize(geometry.Sub(b, w))
	if !isZero(u1) && !isZero(u2) {
		cosTheta := geometry.Clamp(geometry.Dot(u1, u2), -1, 1)
		turn = weights.TurnWeight * (1 - cosTheta)
	}

	var back float64
	abDir := geometry.Normalize(geometry.Sub(b, a))
	awDir := geometry.Normalize(geometry.Sub(w, a))
	if !isZero(abDir) && !isZero(awDir) {
		progress := geometry.Dot(abDir, awDir)
		if regress := -progress; regress > 0 {
			back = weights.BackWeight * regress
		}
	}

	proximity := collision.ProximityPenalty(a, w, obstacles, weights.ProximityMargin, weights.ProximityWeight, excludeID) +
		collision.ProximityPenalty(w, b, obstacles, weights.ProximityMargin, weights.ProximityWeight, excludeID)

	return Score{Base: base, Turn: turn, Back: back, Proximity: proximity}, true
}

func isZero(v geometry.Point) bool {
	return v.X == 0 && v.Y == 0
}

// Better reports whether candidate score a strictly beats b. Ties go to
// whichever candidate was evaluated first, per the caller's stable
// iteration order — this function only ever says "strictly better".
func Better(a, b Score) bool {
	return a.Total() < b.Total()
}
