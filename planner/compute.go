package planner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/umpire274/sw-galaxy-map/collision"
	"github.com/umpire274/sw-galaxy-map/geometry"
)

// Planet is the read-only slice of planet data the planner needs: identity,
// position, and display name. It mirrors store.Planet without importing the
// store package, which itself depends on planner's Route/DetourDecision
// types and would otherwise form an import cycle.
type Planet struct {
	FID  int64
	Name string
	X, Y float64
}

func (p Planet) point() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

// PlanetRef identifies a planet either by its stable numeric fid or by its
// exact normalized name. Exactly one field should be set; Numeric selects
// which.
type PlanetRef struct {
	FID        int64
	PlanetNorm string
	Numeric    bool
}

// FIDRef builds a PlanetRef that resolves by numeric fid.
func FIDRef(fid int64) PlanetRef { return PlanetRef{FID: fid, Numeric: true} }

// NameRef builds a PlanetRef that resolves by exact normalized name.
func NameRef(planetNorm string) PlanetRef { return PlanetRef{PlanetNorm: planetNorm} }

// PlanetResolver resolves a PlanetRef to a Planet. Implemented by store.DB;
// kept as a narrow interface here so planner has no dependency on the store
// package.
type PlanetResolver interface {
	ResolvePlanet(ctx context.Context, ref PlanetRef) (Planet, error)
}

// ObstacleSource supplies the candidate obstacles for a compute, already
// filtered to the caller's chosen policy (bounding box, catalog query,
// annotated list, ...). See the obstacle package for the built-in
// implementation.
type ObstacleSource interface {
	Obstacles(ctx context.Context, from, to geometry.Point) ([]collision.Obstacle, error)
}

// ErrPlanetResolverNil / ErrObstacleSourceNil guard against a programmer
// wiring mistake, not a routine caller error, so Compute reports them as
// ordinary errors rather than panicking.
var (
	ErrPlanetResolverNil = errors.New("planner: planet resolver is nil")
	ErrObstacleSourceNil = errors.New("planner: obstacle source is nil")
)

// Compute resolves fromRef/toRef to planets, rejects the request if they
// are the same planet identity, gathers obstacles from source, and runs
// ComputeRoute. It is the public entry point; ComputeRoute itself never
// does planet resolution or identity checks.
func Compute(ctx context.Context, resolver PlanetResolver, source ObstacleSource, fromRef, toRef PlanetRef, opts RouteOptions, log *zap.SugaredLogger) (Route, Planet, Planet, error) {
	if resolver == nil {
		return Route{}, Planet{}, Planet{}, newError(ErrKindStorageError, fmt.Errorf("planner: compute: %w", ErrPlanetResolverNil))
	}
	if source == nil {
		return Route{}, Planet{}, Planet{}, newError(ErrKindStorageError, fmt.Errorf("planner: compute: %w", ErrObstacleSourceNil))
	}

	from, err := resolver.ResolvePlanet(ctx, fromRef)
	if err != nil {
		return Route{}, Planet{}, Planet{}, newError(ErrKindPlanetNotFound, fmt.Errorf("planner: resolve from: %w", ErrPlanetNotFound))
	}

	to, err := resolver.ResolvePlanet(ctx, toRef)
	if err != nil {
		return Route{}, Planet{}, Planet{}, newError(ErrKindPlanetNotFound, fmt.Errorf("planner: resolve to: %w", ErrPlanetNotFound))
	}

	if from.FID == to.FID {
		return Route{}, from, to, newError(ErrKindSamePoint, ErrSamePoint)
	}

	obstacles, err := source.Obstacles(ctx, from.point(), to.point())
	if err != nil {
		return Route{}, from, to, newError(ErrKindStorageError, fmt.Errorf("planner: load obstacles: %w: %w", ErrStorage, err))
	}

	route, err := ComputeRoute(from.point(), to.point(), obstacles, opts, log)
	if err != nil {
		return Route{}, from, to, err
	}

	return route, from, to, nil
}
