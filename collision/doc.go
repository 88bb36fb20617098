// Package collision implements the navicomputer's collision oracle: given a
// segment and a set of circular no-fly zones (Obstacle), it answers "does
// this segment pierce any obstacle's interior", "which obstacle is hit
// first", and "how much should a nearby-but-clear segment be penalized".
//
// Endpoint collisions — where the closest point on the segment to an
// obstacle's center lands on (or within epsilon of) one of the segment's
// own endpoints — are deliberately allowed. This lets the planner route
// all the way into a destination whose safety disc enclodes the
// destination itself; only interior piercings count as collisions.
//
// Obstacle ordering is caller-controlled and significant: FirstCollision
// scans obstacles in slice order and this order, together with strict
// less-than tie-breaking on (t, dist), is what makes the planner's output
// deterministic (spec property P4).
package collision
