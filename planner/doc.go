// Package planner computes a collision-free polyline between two points by
// iteratively detecting the first obstacle a straight segment collides
// with and inserting a scored detour waypoint around it, repeating until
// the whole polyline is clear or an iteration/try budget is exhausted.
//
// The package exposes two layers: ComputeRoute works purely on geometry
// (geometry.Point, collision.Obstacle) and never fails on coincident
// endpoints — two distinct planets that happen to share a position still
// produce a degenerate, zero-length route. Compute sits above it, resolving
// named planet references through a PlanetResolver and rejecting a
// request where both references resolve to the same planet identity.
package planner
