// Package main root documents the sw-galaxy-map navicomputer core: a
// point-to-point hyperspace route planner and its SQLite-backed store.
//
// The packages are organized by concern:
//
//	geometry/   — vector algebra and segment/point primitives
//	collision/  — circular-obstacle collision oracle
//	detour/     — candidate detour waypoint generation
//	scoring/    — candidate scoring and acceptance
//	planner/    — iterative detour-insertion route search
//	obstacle/   — bounding-box obstacle prefilter
//	catalog/    — deterministic waypoint fingerprinting and dedup
//	store/      — SQLite schema, route persistence, explain, prune
//	hyperspace/ — travel-time estimation, orthogonal to the planner
package sw_galaxy_map
