// Package hyperspace estimates hyperspace travel time from a route's
// Euclidean length in parsecs: galactic region sets a base compression
// factor, and a route's detour ratio (routed length over direct length)
// further penalizes that factor before the time estimate is derived.
//
// This package is orthogonal to the planner: it never consumes a
// planner.Route directly, only the plain numbers (distance, compression,
// hyperdrive class) a caller derives from one.
package hyperspace
