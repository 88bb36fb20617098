// Package scoring evaluates a single detour candidate: is the resulting
// two-segment path (A->W and W->B) free of interior collisions, and if so,
// how good is it relative to other candidates.
//
// A score is a sum of independently-weighted terms, so that a zeroed weight
// in RouteOptions disables that term entirely rather than distorting the
// total.
package scoring
