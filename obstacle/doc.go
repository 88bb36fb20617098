// Package obstacle turns raw planet rows into the in-memory collision.Obstacle
// set a single route compute should treat as no-fly zones: a bounding-box
// prefilter around the requested endpoints, endpoint exclusion, a
// defensive result cap, and a two-source fallback (an annotated routing
// view first, the plain planet catalog second).
package obstacle
