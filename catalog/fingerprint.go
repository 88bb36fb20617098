package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
)

// Fingerprint is the hex-SHA-256 identity of a single detour waypoint,
// stable across recomputes that produce the same waypoint from the same
// planning context.
type Fingerprint string

// Context is the planning context that, together with a waypoint's
// coordinates, determines its fingerprint.
type Context struct {
	FromFID      int64
	ToFID        int64
	ObstacleID   int64
	Iteration    int
	SegmentIndex int
}

// round4 rounds v to 4 decimal places, matching spec's round(v*10000)/10000.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// canonical builds the exact text the fingerprint hashes:
//
//	detour|from=<from_fid>|to=<to_fid>|ob=<obstacle_id>|it=<iter>|seg=<seg>|x=<round4(x)>|y=<round4(y)>
func canonical(ctx Context, x, y float64) string {
	return fmt.Sprintf(
		"detour|from=%d|to=%d|ob=%d|it=%d|seg=%d|x=%.4f|y=%.4f",
		ctx.FromFID, ctx.ToFID, ctx.ObstacleID, ctx.Iteration, ctx.SegmentIndex,
		round4(x), round4(y),
	)
}

// Compute returns the fingerprint of a waypoint at (x, y) produced under
// ctx. Two calls with the same ctx and coordinates that round to the same
// 4-decimal key always produce the same Fingerprint.
func Compute(ctx Context, x, y float64) Fingerprint {
	sum := sha256.Sum256([]byte(canonical(ctx, x, y)))
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// ShortName is the display name assigned to a newly-inserted computed
// waypoint: "Detour <first 8 hex chars of fingerprint>".
func (f Fingerprint) ShortName() string {
	s := string(f)
	if len(s) > 8 {
		s = s[:8]
	}
	return "Detour " + s
}

// String returns the fingerprint's hex representation.
func (f Fingerprint) String() string {
	return string(f)
}
