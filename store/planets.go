package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/umpire274/sw-galaxy-map/obstacle"
	"github.com/umpire274/sw-galaxy-map/planner"
)

// Planet mirrors a single row of the planets table.
type Planet struct {
	FID        int64
	Name       string
	PlanetNorm string
	X, Y       float64
	Deleted    bool
}

// ResolvePlanet implements planner.PlanetResolver: exact-match resolution
// only, by numeric fid or by exact planet_norm string. Fuzzy/alias search
// is out of scope here (spec.md's CLI-layer concern).
func (d *DB) ResolvePlanet(ctx context.Context, ref planner.PlanetRef) (planner.Planet, error) {
	var row *sql.Row
	if ref.Numeric {
		row = d.sql.QueryRowContext(ctx,
			`SELECT fid, name, x, y FROM planets WHERE deleted = 0 AND fid = ?`, ref.FID)
	} else {
		row = d.sql.QueryRowContext(ctx,
			`SELECT fid, name, x, y FROM planets WHERE deleted = 0 AND planet_norm = ?`, ref.PlanetNorm)
	}

	var p planner.Planet
	if err := row.Scan(&p.FID, &p.Name, &p.X, &p.Y); err != nil {
		if err == sql.ErrNoRows {
			return planner.Planet{}, planner.ErrPlanetNotFound
		}
		return planner.Planet{}, fmt.Errorf("store: resolve planet: %w", err)
	}

	return p, nil
}

// ListPlanetsInBBox implements obstacle.BBoxReader against the plain
// planet catalog, grounded on the teacher-adjacent Rust
// list_planets_in_bbox query.
func (d *DB) ListPlanetsInBBox(ctx context.Context, minX, maxX, minY, maxY float64, limit int) ([]obstacle.Row, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT fid, name, x, y
		FROM planets
		WHERE deleted = 0
		  AND x BETWEEN ? AND ?
		  AND y BETWEEN ? AND ?
		ORDER BY name COLLATE NOCASE
		LIMIT ?
	`, minX, maxX, minY, maxY, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list planets in bbox: %w", err)
	}
	defer rows.Close()

	return scanObstacleRows(rows)
}

// ListAnnotatedObstaclesInBBox implements obstacle.AnnotatedBBoxReader
// against the routing_obstacles view: planets with a configured safety
// role take precedence over the plain catalog for a given compute.
func (d *DB) ListAnnotatedObstaclesInBBox(ctx context.Context, minX, maxX, minY, maxY float64, limit int) ([]obstacle.Row, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT p.fid, p.name, p.x, p.y, ro.safety
		FROM routing_obstacles ro
		JOIN planets p ON p.fid = ro.planet_fid
		WHERE p.deleted = 0
		  AND p.x BETWEEN ? AND ?
		  AND p.y BETWEEN ? AND ?
		ORDER BY p.name COLLATE NOCASE
		LIMIT ?
	`, minX, maxX, minY, maxY, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list annotated obstacles in bbox: %w", err)
	}
	defer rows.Close()

	var out []obstacle.Row
	for rows.Next() {
		var r obstacle.Row
		if err := rows.Scan(&r.FID, &r.Name, &r.X, &r.Y, &r.Safety); err != nil {
			return nil, fmt.Errorf("store: scan annotated obstacle row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanObstacleRows(rows *sql.Rows) ([]obstacle.Row, error) {
	var out []obstacle.Row
	for rows.Next() {
		var r obstacle.Row
		if err := rows.Scan(&r.FID, &r.Name, &r.X, &r.Y); err != nil {
			return nil, fmt.Errorf("store: scan planet row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertPlanet inserts or replaces a planet row, used by tests and an
// out-of-scope catalog importer to seed the planets table.
func (d *DB) UpsertPlanet(ctx context.Context, p Planet) error {
	deleted := 0
	if p.Deleted {
		deleted = 1
	}

	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO planets(fid, name, planet_norm, x, y, deleted)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(fid) DO UPDATE SET
			name = excluded.name,
			planet_norm = excluded.planet_norm,
			x = excluded.x,
			y = excluded.y,
			deleted = excluded.deleted
	`, p.FID, p.Name, p.PlanetNorm, p.X, p.Y, deleted)
	if err != nil {
		return fmt.Errorf("store: upsert planet: %w", err)
	}
	return nil
}

// SetRoutingObstacle annotates a planet with a safety role, making it
// surface via ListAnnotatedObstaclesInBBox ahead of the plain catalog.
func (d *DB) SetRoutingObstacle(ctx context.Context, planetFID int64, safety float64) error {
	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO routing_obstacles(planet_fid, safety) VALUES (?, ?)
		ON CONFLICT(planet_fid) DO UPDATE SET safety = excluded.safety
	`, planetFID, safety)
	if err != nil {
		return fmt.Errorf("store: set routing obstacle: %w", err)
	}
	return nil
}
