package geometry

// ClosestPoint is the result of projecting a point onto a segment: the
// parametric position t along A->B, the projected point Q, and the
// distance from the original point to Q.
type ClosestPoint struct {
	T    float64
	Q    Point
	Dist float64
}

// ClosestPointOnSegment projects p onto the segment ab and returns the
// parametric position t (clamped to [0, 1]), the projected point q, and
// the distance from p to q.
//
// t is defined as 0 when a == b (a degenerate, zero-length segment), never
// a division by zero. Tie-breaking at t = 0 and t = 1 is exact: the
// clamp is applied to the raw projection before q is computed, so
// endpoints are returned verbatim.
func ClosestPointOnSegment(p, a, b Point) ClosestPoint {
	ab := Sub(b, a)
	ap := Sub(p, a)
	ab2 := Norm2(ab)

	var t float64
	if ab2 != 0 {
		t = Clamp(Dot(ap, ab)/ab2, 0, 1)
	}

	q := Add(a, Scale(ab, t))

	return ClosestPoint{T: t, Q: q, Dist: Dist(p, q)}
}
