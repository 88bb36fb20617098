package planner

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying a failure class. Wrap these with fmt.Errorf's
// %w so callers can still errors.Is against the class while getting a
// detailed message; Error below additionally carries the machine-readable
// fields a caller needs to format its own diagnostics.
var (
	// ErrPlanetNotFound indicates from_ref or to_ref did not resolve to a
	// known planet.
	ErrPlanetNotFound = errors.New("planner: planet not found")

	// ErrSamePoint indicates from_ref and to_ref resolved to the same
	// planet identity. This is an identity check, not a coordinate check:
	// two distinct planets sharing coordinates are not rejected here.
	ErrSamePoint = errors.New("planner: from and to resolve to the same planet")

	// ErrInvalidOptions indicates RouteOptions failed Validate.
	ErrInvalidOptions = errors.New("planner: invalid route options")

	// ErrNoDetour indicates the offset-expansion search exhausted
	// MaxOffsetTries without finding a valid candidate around an
	// obstacle.
	ErrNoDetour = errors.New("planner: no valid detour found")

	// ErrMaxItersExceeded indicates the detour-insertion loop reached
	// MaxIters without producing a collision-free polyline.
	ErrMaxItersExceeded = errors.New("planner: route computation exceeded max_iters")

	// ErrStorage wraps a failure surfaced by the backing store.
	ErrStorage = errors.New("planner: storage error")
)

// ErrorKind classifies a planner Error for programmatic dispatch, matching
// the enum spec.md's compute() signature documents.
type ErrorKind int

const (
	// ErrKindPlanetNotFound wraps ErrPlanetNotFound.
	ErrKindPlanetNotFound ErrorKind = iota
	// ErrKindSamePoint wraps ErrSamePoint.
	ErrKindSamePoint
	// ErrKindInvalidOptions wraps ErrInvalidOptions.
	ErrKindInvalidOptions
	// ErrKindNoDetour wraps ErrNoDetour.
	ErrKindNoDetour
	// ErrKindMaxItersExceeded wraps ErrMaxItersExceeded.
	ErrKindMaxItersExceeded
	// ErrKindStorageError wraps ErrStorage.
	ErrKindStorageError
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindPlanetNotFound:
		return "PlanetNotFound"
	case ErrKindSamePoint:
		return "SamePoint"
	case ErrKindInvalidOptions:
		return "InvalidOptions"
	case ErrKindNoDetour:
		return "NoDetour"
	case ErrKindMaxItersExceeded:
		return "MaxItersExceeded"
	case ErrKindStorageError:
		return "StorageError"
	default:
		return "Unknown"
	}
}

// Error is the structured error type returned by Compute and ComputeRoute.
// It carries the machine-readable fields a caller needs to build its own
// diagnostic message without re-parsing Error().
type Error struct {
	Kind ErrorKind

	// ObstacleID / SegmentIndex are populated for ErrKindNoDetour.
	ObstacleID   int64
	SegmentIndex int

	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func newNoDetourError(obstacleID int64, segmentIndex int, err error) *Error {
	return &Error{Kind: ErrKindNoDetour, ObstacleID: obstacleID, SegmentIndex: segmentIndex, Err: err}
}
