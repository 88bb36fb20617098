// Package detour generates candidate waypoints around a collision: given a
// segment A->B, a collision Hit against an obstacle, and an offset
// distance, it produces an ordered, stable list of up to seven candidate
// points for the planner to score.
//
// Candidate order matters: it is the tie-break of last resort when two
// candidates score identically (spec property P4, determinism). Degenerate
// directions (e.g. an obstacle centered exactly on the segment, where the
// outward radial is undefined) are skipped rather than replaced with NaN.
package detour
