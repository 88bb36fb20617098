package catalog

import "math"

// Lookup resolves an existing ComputedWaypoint id by fingerprint. The store
// implements this against its SQL table; keeping it as a function type
// lets Resolve be tested without a database.
type Lookup func(Fingerprint) (id int64, found bool)

// Resolution is the upsert-by-fingerprint decision for a single detour
// waypoint: either reuse an existing catalog row or insert a new one under
// the given Name.
type Resolution struct {
	Fingerprint Fingerprint
	Reused      bool
	ExistingID  int64 // valid when Reused
	Name        string
}

// Resolve computes the fingerprint of the waypoint at (x, y) under ctx and
// decides whether it matches an existing ComputedWaypoint. This is what
// guarantees bitwise-identical recomputes produce no new catalog rows
// (spec §4.7, property P6).
func Resolve(ctx Context, x, y float64, lookup Lookup) Resolution {
	fp := Compute(ctx, x, y)

	if id, found := lookup(fp); found {
		return Resolution{Fingerprint: fp, Reused: true, ExistingID: id}
	}

	return Resolution{Fingerprint: fp, Name: fp.ShortName()}
}

// AvoidLink is the optional association between a computed waypoint and
// the obstacle planet it was inserted to avoid, under role "avoid".
type AvoidLink struct {
	WaypointID  int64
	ObstacleFID int64
	Distance    float64
	Role        string
}

// NewAvoidLink builds the avoid-role link for a computed waypoint at
// (wx, wy) relative to an obstacle centered at (ox, oy).
func NewAvoidLink(waypointID, obstacleFID int64, wx, wy, ox, oy float64) AvoidLink {
	dx := wx - ox
	dy := wy - oy
	return AvoidLink{
		WaypointID:  waypointID,
		ObstacleFID: obstacleFID,
		Distance:    math.Hypot(dx, dy),
		Role:        "avoid",
	}
}
