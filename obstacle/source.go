package obstacle

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/umpire274/sw-galaxy-map/collision"
	"github.com/umpire274/sw-galaxy-map/geometry"
)

// Row is a single planet as returned by a catalog query: just enough to
// materialize a collision.Obstacle, nothing the planner needs beyond that.
type Row struct {
	FID    int64
	Name   string
	X, Y   float64
	Safety float64 // annotated safety role radius; zero when the row came from the plain catalog
}

// BBoxReader lists planets inside an axis-aligned bounding box, already
// filtered to deleted == 0 and capped at limit, ordered by name. It is
// implemented by store.DB against the plain planets table.
type BBoxReader interface {
	ListPlanetsInBBox(ctx context.Context, minX, maxX, minY, maxY float64, limit int) ([]Row, error)
}

// AnnotatedBBoxReader is the optional "routing obstacles" view: planets
// with a configured safety role. When it yields rows for a given bbox they
// are preferred over the plain catalog.
type AnnotatedBBoxReader interface {
	ListAnnotatedObstaclesInBBox(ctx context.Context, minX, maxX, minY, maxY float64, limit int) ([]Row, error)
}

// Options tunes how wide the bounding box is cast and how safety radii are
// assigned to plain-catalog rows (annotated rows carry their own Safety).
type Options struct {
	// BBoxMargin extends the A/B bounding box by this amount on every side.
	BBoxMargin float64

	// MaxObstacles caps the number of rows considered, defending against a
	// pathological bounding box pulling in the whole catalog.
	MaxObstacles int

	// DefaultSafety is the radius assigned to a plain-catalog row (one
	// with no annotated safety role).
	DefaultSafety float64
}

// Validate mirrors planner.RouteOptions.Validate's non-panicking contract.
func (o Options) Validate() error {
	switch {
	case o.BBoxMargin < 0:
		return fmt.Errorf("obstacle: invalid options: bbox_margin must be >= 0")
	case o.MaxObstacles < 1:
		return fmt.Errorf("obstacle: invalid options: max_obstacles must be >= 1")
	case o.DefaultSafety < 0:
		return fmt.Errorf("obstacle: invalid options: default_safety must be >= 0")
	default:
		return nil
	}
}

// DefaultOptions returns a reasonable default prefilter policy.
func DefaultOptions() Options {
	return Options{BBoxMargin: 5, MaxObstacles: 500, DefaultSafety: 0.5}
}

// Source implements planner.ObstacleSource: given two endpoint planet
// FIDs and their coordinates, it produces the obstacle set for one
// compute.
type Source struct {
	Catalog   BBoxReader
	Annotated AnnotatedBBoxReader // optional; nil disables the preferred path
	Options   Options
	FromFID   int64
	ToFID     int64
}

// NewSource builds a Source that excludes the two named endpoint FIDs from
// the resulting obstacle set.
func NewSource(catalog BBoxReader, annotated AnnotatedBBoxReader, opts Options, fromFID, toFID int64) Source {
	return Source{Catalog: catalog, Annotated: annotated, Options: opts, FromFID: fromFID, ToFID: toFID}
}

// Obstacles materializes the obstacle set for a compute between from and
// to, per spec §4.6: bounding box around the two points plus margin,
// annotated view preferred over the plain catalog when it yields rows,
// endpoint exclusion, deterministic name ordering, capped at MaxObstacles.
func (s Source) Obstacles(ctx context.Context, from, to geometry.Point) ([]collision.Obstacle, error) {
	minX, maxX := minMax(from.X, to.X)
	minY, maxY := minMax(from.Y, to.Y)
	minX -= s.Options.BBoxMargin
	maxX += s.Options.BBoxMargin
	minY -= s.Options.BBoxMargin
	maxY += s.Options.BBoxMargin

	rows, err := s.rows(ctx, minX, maxX, minY, maxY)
	if err != nil {
		return nil, fmt.Errorf("obstacle: list obstacles: %w", err)
	}

	return materialize(rows, s.Options, s.FromFID, s.ToFID), nil
}

func (s Source) rows(ctx context.Context, minX, maxX, minY, maxY float64) ([]Row, error) {
	if s.Annotated != nil {
		rows, err := s.Annotated.ListAnnotatedObstaclesInBBox(ctx, minX, maxX, minY, maxY, s.Options.MaxObstacles)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}

	return s.Catalog.ListPlanetsInBBox(ctx, minX, maxX, minY, maxY, s.Options.MaxObstacles)
}

func materialize(rows []Row, opts Options, fromFID, toFID int64) []collision.Obstacle {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	out := make([]collision.Obstacle, 0, len(sorted))
	for _, r := range sorted {
		if r.FID == fromFID || r.FID == toFID {
			continue
		}

		radius := r.Safety
		if radius == 0 {
			radius = opts.DefaultSafety
		}

		out = append(out, collision.Obstacle{
			ID:     r.FID,
			Name:   r.Name,
			Center: geometry.Point{X: r.X, Y: r.Y},
			Radius: radius,
		})

		if len(out) >= opts.MaxObstacles {
			break
		}
	}

	return out
}

func minMax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}
