package store

import (
	"context"
	"database/sql"
	"fmt"
)

const latestSchemaVersion = 5

// migrationStep is one additive schema change, mirroring the teacher
// source's from/to/label/apply shape: each step runs in its own
// transaction and is only ever applied once, tracked via meta.schema_version.
type migrationStep struct {
	from, to int
	label    string
	apply    func(tx *sql.Tx) error
}

func migrationSteps() []migrationStep {
	return []migrationStep{
		{0, 1, "planets + meta", m1CreatePlanets},
		{1, 2, "waypoints catalog + links", m2CreateWaypoints},
		{2, 3, "routes header", m3CreateRoutes},
		{3, 4, "route_waypoints + route_detours", m4CreateRouteChildren},
		{4, 5, "routing obstacle annotation view", m5CreateRoutingObstacles},
	}
}

// Migrate brings the database up to latestSchemaVersion, applying any
// pending steps in order. Calling it against an up-to-date database is a
// no-op: every step is skipped once meta.schema_version has passed it.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.sql.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("store: create meta table: %w", err)
	}

	current, err := d.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, step := range migrationSteps() {
		if current >= step.to {
			continue
		}

		if err := d.applyStep(ctx, step); err != nil {
			return fmt.Errorf("store: migration %s (v%d->v%d): %w", step.label, step.from, step.to, err)
		}

		current = step.to
		d.log.Infow("applied schema migration", "label", step.label, "from", step.from, "to", step.to)
	}

	return nil
}

func (d *DB) applyStep(ctx context.Context, step migrationStep) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if err := step.apply(tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprint(step.to)); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *DB) schemaVersion(ctx context.Context) (int, error) {
	var v string
	err := d.sql.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("store: read schema_version: %w", err)
	}

	var version int
	if _, err := fmt.Sscanf(v, "%d", &version); err != nil {
		return 0, fmt.Errorf("store: parse schema_version %q: %w", v, err)
	}
	return version, nil
}

func m1CreatePlanets(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS planets (
			fid         INTEGER PRIMARY KEY,
			name        TEXT NOT NULL,
			planet_norm TEXT NOT NULL UNIQUE,
			x           REAL NOT NULL,
			y           REAL NOT NULL,
			deleted     INTEGER NOT NULL DEFAULT 0,
			arcgis_hash TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_planets_bbox ON planets(x, y);
	`)
	return err
}

func m2CreateWaypoints(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS waypoints (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			name_norm   TEXT NOT NULL UNIQUE,
			x           REAL NOT NULL,
			y           REAL NOT NULL,
			kind        TEXT NOT NULL,
			note        TEXT,
			fingerprint TEXT UNIQUE,
			created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		);

		CREATE TABLE IF NOT EXISTS waypoint_planets (
			waypoint_id INTEGER NOT NULL REFERENCES waypoints(id) ON DELETE CASCADE,
			planet_fid  INTEGER NOT NULL REFERENCES planets(fid) ON DELETE CASCADE,
			role        TEXT NOT NULL,
			distance    REAL,
			PRIMARY KEY (waypoint_id, planet_fid)
		);
	`)
	return err
}

func m3CreateRoutes(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS routes (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			from_planet_fid INTEGER NOT NULL REFERENCES planets(fid),
			to_planet_fid   INTEGER NOT NULL REFERENCES planets(fid),
			algo_version    TEXT NOT NULL,
			options_json    TEXT NOT NULL,
			length          REAL NOT NULL,
			iterations      INTEGER NOT NULL,
			status          TEXT NOT NULL DEFAULT 'ok',
			error           TEXT,
			created_at      TEXT NOT NULL,
			updated_at      TEXT NOT NULL,
			UNIQUE (from_planet_fid, to_planet_fid)
		);
		CREATE INDEX IF NOT EXISTS idx_routes_status ON routes(status);
	`)
	return err
}

func m4CreateRouteChildren(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS route_waypoints (
			route_id    INTEGER NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
			seq         INTEGER NOT NULL,
			x           REAL NOT NULL,
			y           REAL NOT NULL,
			waypoint_id INTEGER REFERENCES waypoints(id) ON DELETE SET NULL,
			PRIMARY KEY (route_id, seq)
		);

		CREATE TABLE IF NOT EXISTS route_detours (
			route_id        INTEGER NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
			idx             INTEGER NOT NULL,
			iteration       INTEGER NOT NULL,
			segment_index   INTEGER NOT NULL,

			obstacle_id     INTEGER NOT NULL,
			obstacle_x      REAL NOT NULL,
			obstacle_y      REAL NOT NULL,
			obstacle_radius REAL NOT NULL,

			closest_t       REAL NOT NULL,
			closest_qx      REAL NOT NULL,
			closest_qy      REAL NOT NULL,
			closest_dist    REAL NOT NULL,

			offset_used     REAL NOT NULL,

			wp_x            REAL NOT NULL,
			wp_y            REAL NOT NULL,
			waypoint_id     INTEGER REFERENCES waypoints(id) ON DELETE SET NULL,

			score_base      REAL NOT NULL,
			score_turn      REAL NOT NULL,
			score_back      REAL NOT NULL,
			score_proximity REAL NOT NULL,
			score_total     REAL NOT NULL,

			tries_used      INTEGER,
			tries_exhausted INTEGER NOT NULL DEFAULT 0,

			PRIMARY KEY (route_id, idx)
		);
	`)
	return err
}

func m5CreateRoutingObstacles(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS routing_obstacles (
			planet_fid INTEGER PRIMARY KEY REFERENCES planets(fid) ON DELETE CASCADE,
			safety     REAL NOT NULL
		);
	`)
	return err
}
