package planner

import (
	"fmt"

	"github.com/umpire274/sw-galaxy-map/scoring"
)

// RouteOptions tunes the detour search and candidate scoring. All fields
// are plain values so a RouteOptions can be round-tripped to and from
// persisted storage without reconstruction logic.
type RouteOptions struct {
	// Clearance is added to an obstacle's radius to compute the base
	// offset a detour search starts expanding from.
	Clearance float64

	// MaxIters bounds the number of detour insertions attempted before
	// the planner gives up with ErrKindMaxItersExceeded.
	MaxIters int

	// MaxOffsetTries bounds how many times the offset is grown while
	// searching for a valid candidate around a single collision.
	MaxOffsetTries int

	// OffsetGrowth multiplies the offset between tries; must exceed 1.0
	// so the search makes forward progress.
	OffsetGrowth float64

	// TurnWeight penalizes sharp angles at the inserted waypoint.
	TurnWeight float64

	// BackWeight penalizes a waypoint that moves against the A->B
	// direction (backtracking).
	BackWeight float64

	// ProximityWeight scales the warning-band penalty from skirting
	// other obstacles.
	ProximityWeight float64

	// ProximityMargin is the extra distance beyond an obstacle's radius
	// where the proximity penalty begins to ramp up.
	ProximityMargin float64
}

// DefaultRouteOptions returns the baseline tuning used when a caller
// supplies none of its own, mirroring the original planner's defaults.
func DefaultRouteOptions() RouteOptions {
	return RouteOptions{
		Clearance:       0.2,
		MaxIters:        32,
		MaxOffsetTries:  6,
		OffsetGrowth:    1.4,
		TurnWeight:      0.8,
		BackWeight:      3.0,
		ProximityWeight: 1.5,
		ProximityMargin: 0.5,
	}
}

// Validate reports whether o is usable. It never panics: a bad
// RouteOptions is a routine, expected caller error at the API boundary,
// not a programmer bug.
func (o RouteOptions) Validate() error {
	switch {
	case o.Clearance < 0:
		return fmt.Errorf("planner: invalid options: %w: clearance must be >= 0", ErrInvalidOptions)
	case o.MaxIters < 1:
		return fmt.Errorf("planner: invalid options: %w: max_iters must be >= 1", ErrInvalidOptions)
	case o.MaxOffsetTries < 1:
		return fmt.Errorf("planner: invalid options: %w: max_offset_tries must be >= 1", ErrInvalidOptions)
	case o.OffsetGrowth <= 1.0:
		return fmt.Errorf("planner: invalid options: %w: offset_growth must be > 1.0", ErrInvalidOptions)
	case o.TurnWeight < 0:
		return fmt.Errorf("planner: invalid options: %w: turn_weight must be >= 0", ErrInvalidOptions)
	case o.BackWeight < 0:
		return fmt.Errorf("planner: invalid options: %w: back_weight must be >= 0", ErrInvalidOptions)
	case o.ProximityWeight < 0:
		return fmt.Errorf("planner: invalid options: %w: proximity_weight must be >= 0", ErrInvalidOptions)
	case o.ProximityMargin < 0:
		return fmt.Errorf("planner: invalid options: %w: proximity_margin must be >= 0", ErrInvalidOptions)
	default:
		return nil
	}
}

// Option customizes a RouteOptions built from DefaultRouteOptions, in the
// functional-option style used across this codebase.
type Option func(*RouteOptions)

// WithClearance overrides Clearance.
func WithClearance(v float64) Option { return func(o *RouteOptions) { o.Clearance = v } }

// WithMaxIters overrides MaxIters.
func WithMaxIters(v int) Option { return func(o *RouteOptions) { o.MaxIters = v } }

// WithMaxOffsetTries overrides MaxOffsetTries.
func WithMaxOffsetTries(v int) Option { return func(o *RouteOptions) { o.MaxOffsetTries = v } }

// WithOffsetGrowth overrides OffsetGrowth.
func WithOffsetGrowth(v float64) Option { return func(o *RouteOptions) { o.OffsetGrowth = v } }

// WithTurnWeight overrides TurnWeight.
func WithTurnWeight(v float64) Option { return func(o *RouteOptions) { o.TurnWeight = v } }

// WithBackWeight overrides BackWeight.
func WithBackWeight(v float64) Option { return func(o *RouteOptions) { o.BackWeight = v } }

// WithProximityWeight overrides ProximityWeight.
func WithProximityWeight(v float64) Option { return func(o *RouteOptions) { o.ProximityWeight = v } }

// WithProximityMargin overrides ProximityMargin.
func WithProximityMargin(v float64) Option { return func(o *RouteOptions) { o.ProximityMargin = v } }

// NewRouteOptions applies opts over DefaultRouteOptions.
func NewRouteOptions(opts ...Option) RouteOptions {
	o := DefaultRouteOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o RouteOptions) scoringWeights() scoring.Weights {
	return scoring.Weights{
		TurnWeight:      o.TurnWeight,
		BackWeight:      o.BackWeight,
		ProximityWeight: o.ProximityWeight,
		ProximityMargin: o.ProximityMargin,
	}
}
