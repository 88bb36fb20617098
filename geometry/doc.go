// Package geometry provides the 2-D vector primitives the navicomputer's
// route planner is built on: points, the usual vector algebra, and closest
// point-on-segment projection.
//
// All operations are total over float64 and never error: a zero-length
// vector normalizes to the zero vector rather than dividing by zero, and
// closest-point projection clamps its parameter to [0, 1] instead of
// extrapolating past a segment's endpoints.
//
// Everything here is a pure function of its inputs; there is no shared
// state and nothing in this package allocates beyond its return value.
package geometry
