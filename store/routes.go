package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"github.com/umpire274/sw-galaxy-map/catalog"
	"github.com/umpire274/sw-galaxy-map/planner"
)

// RouteHeader is the routes table row joined with its endpoint planet
// names.
type RouteHeader struct {
	ID            int64
	FromFID       int64
	ToFID         int64
	FromName      string
	ToName        string
	AlgoVersion   string
	OptionsJSON   string
	Length        float64
	Iterations    int
	Status        string
	Error         sql.NullString
	CreatedAt     string
	UpdatedAt     string
}

// RouteWaypointRow is one polyline point, with its catalog link resolved.
type RouteWaypointRow struct {
	Seq          int
	X, Y         float64
	WaypointID   sql.NullInt64
	WaypointName sql.NullString
	WaypointKind sql.NullString
}

// RouteDetourRow is one persisted DetourDecision, with the obstacle's
// current name resolved via a LEFT JOIN (so a deleted obstacle planet
// still renders, with an empty name).
type RouteDetourRow struct {
	Idx          int
	Iteration    int
	SegmentIndex int

	ObstacleID     int64
	ObstacleName   string
	ObstacleX      float64
	ObstacleY      float64
	ObstacleRadius float64

	ClosestT    float64
	ClosestQX   float64
	ClosestQY   float64
	ClosestDist float64

	OffsetUsed float64

	WPX        float64
	WPY        float64
	WaypointID sql.NullInt64

	ScoreBase      float64
	ScoreTurn      float64
	ScoreBack      float64
	ScoreProximity float64
	ScoreTotal     float64

	TriesUsed      sql.NullInt64
	TriesExhausted bool
}

// PersistedRoute is the full Load result: header, ordered polyline, and
// ordered detour decisions.
type PersistedRoute struct {
	Header    RouteHeader
	Waypoints []RouteWaypointRow
	Detours   []RouteDetourRow
}

type optionsJSON struct {
	Clearance       float64 `json:"clearance"`
	MaxIters        int     `json:"max_iters"`
	MaxOffsetTries  int     `json:"max_offset_tries"`
	OffsetGrowth    float64 `json:"offset_growth"`
	TurnWeight      float64 `json:"turn_weight"`
	BackWeight      float64 `json:"back_weight"`
	ProximityWeight float64 `json:"proximity_weight"`
	ProximityMargin float64 `json:"proximity_margin"`
}

func marshalOptions(o planner.RouteOptions) (string, error) {
	b, err := json.Marshal(optionsJSON{
		Clearance:       o.Clearance,
		MaxIters:        o.MaxIters,
		MaxOffsetTries:  o.MaxOffsetTries,
		OffsetGrowth:    o.OffsetGrowth,
		TurnWeight:      o.TurnWeight,
		BackWeight:      o.BackWeight,
		ProximityWeight: o.ProximityWeight,
		ProximityMargin: o.ProximityMargin,
	})
	return string(b), err
}

func round4Key(x, y float64) string {
	return fmt.Sprintf("%.4f,%.4f", math.Round(x*10000)/10000, math.Round(y*10000)/10000)
}

// UpsertRoute persists route as the current (fromFID, toFID) route, in a
// single transaction: upsert the header (preserving created_at on
// update), delete the existing children, then re-insert the detour and
// polyline children from scratch. This is only ever called with a
// successfully-computed Route — a failed compute is never persisted, so
// a previous successful route for the same pair survives a failed
// recompute untouched.
func (d *DB) UpsertRoute(ctx context.Context, fromFID, toFID int64, route planner.Route, opts planner.RouteOptions) (int64, error) {
	optsJSON, err := marshalOptions(opts)
	if err != nil {
		return 0, fmt.Errorf("store: marshal options: %w", err)
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: upsert route: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	routeID, err := upsertRouteHeader(ctx, tx, fromFID, toFID, d.cfg.AlgoVersion, optsJSON, route.Length, route.Iterations)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_waypoints WHERE route_id = ?`, routeID); err != nil {
		return 0, fmt.Errorf("store: delete route_waypoints: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM route_detours WHERE route_id = ?`, routeID); err != nil {
		return 0, fmt.Errorf("store: delete route_detours: %w", err)
	}

	waypointIDByKey := make(map[string]int64, len(route.Detours))

	for idx, dec := range route.Detours {
		wpID, err := upsertDetourWaypoint(ctx, tx, fromFID, toFID, dec)
		if err != nil {
			return 0, err
		}

		if err := linkAvoid(ctx, tx, wpID, dec); err != nil {
			return 0, err
		}

		if err := insertRouteDetour(ctx, tx, routeID, idx, dec, wpID); err != nil {
			return 0, err
		}

		waypointIDByKey[round4Key(dec.Waypoint.X, dec.Waypoint.Y)] = wpID
	}

	for seq, p := range route.Waypoints {
		var waypointID sql.NullInt64
		if id, ok := waypointIDByKey[round4Key(p.X, p.Y)]; ok {
			waypointID = sql.NullInt64{Int64: id, Valid: true}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO route_waypoints(route_id, seq, x, y, waypoint_id) VALUES (?, ?, ?, ?, ?)`,
			routeID, seq, p.X, p.Y, waypointID); err != nil {
			return 0, fmt.Errorf("store: insert route_waypoint: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: upsert route: commit: %w", err)
	}

	return routeID, nil
}

func upsertRouteHeader(ctx context.Context, tx *sql.Tx, fromFID, toFID int64, algoVersion, optionsJSON string, length float64, iterations int) (int64, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO routes(from_planet_fid, to_planet_fid, algo_version, options_json, length, iterations, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 'ok', NULL, strftime('%Y-%m-%dT%H:%M:%fZ','now'), strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT(from_planet_fid, to_planet_fid) DO UPDATE SET
			algo_version = excluded.algo_version,
			options_json = excluded.options_json,
			length       = excluded.length,
			iterations   = excluded.iterations,
			status       = 'ok',
			error        = NULL,
			updated_at   = strftime('%Y-%m-%dT%H:%M:%fZ','now')
	`, fromFID, toFID, algoVersion, optionsJSON, length, iterations)
	if err != nil {
		return 0, fmt.Errorf("store: upsert routes header: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM routes WHERE from_planet_fid = ? AND to_planet_fid = ?`, fromFID, toFID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: read upserted route id: %w", err)
	}
	return id, nil
}

func upsertDetourWaypoint(ctx context.Context, tx *sql.Tx, fromFID, toFID int64, dec planner.DetourDecision) (int64, error) {
	fpCtx := catalog.Context{
		FromFID:      fromFID,
		ToFID:        toFID,
		ObstacleID:   dec.ObstacleID,
		Iteration:    dec.Iteration,
		SegmentIndex: dec.SegmentIndex,
	}

	var existingID int64
	var found bool

	lookup := func(fp catalog.Fingerprint) (int64, bool) {
		err := tx.QueryRowContext(ctx, `SELECT id FROM waypoints WHERE fingerprint = ?`, fp.String()).Scan(&existingID)
		if err == nil {
			found = true
		}
		return existingID, found
	}

	res := catalog.Resolve(fpCtx, dec.Waypoint.X, dec.Waypoint.Y, lookup)
	if res.Reused {
		return res.ExistingID, nil
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO waypoints(name, name_norm, x, y, kind, note, fingerprint)
		VALUES (?, ?, ?, ?, 'computed', 'Computed detour waypoint', ?)
	`, res.Name, res.Fingerprint.String(), dec.Waypoint.X, dec.Waypoint.Y, res.Fingerprint.String())
	if err != nil {
		return 0, fmt.Errorf("store: insert computed waypoint: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: read computed waypoint id: %w", err)
	}
	return id, nil
}

func linkAvoid(ctx context.Context, tx *sql.Tx, waypointID int64, dec planner.DetourDecision) error {
	link := catalog.NewAvoidLink(waypointID, dec.ObstacleID, dec.Waypoint.X, dec.Waypoint.Y, dec.ObstacleCenter.X, dec.ObstacleCenter.Y)

	_, err := tx.ExecContext(ctx, `
		INSERT INTO waypoint_planets(waypoint_id, planet_fid, role, distance)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(waypoint_id, planet_fid) DO UPDATE SET role = excluded.role, distance = excluded.distance
	`, link.WaypointID, link.ObstacleFID, link.Role, link.Distance)
	if err != nil {
		return fmt.Errorf("store: link avoid: %w", err)
	}
	return nil
}

func insertRouteDetour(ctx context.Context, tx *sql.Tx, routeID int64, idx int, dec planner.DetourDecision, waypointID int64) error {
	var triesUsed sql.NullInt64
	if dec.TriesUsed > 0 {
		triesUsed = sql.NullInt64{Int64: int64(dec.TriesUsed), Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO route_detours(
			route_id, idx, iteration, segment_index,
			obstacle_id, obstacle_x, obstacle_y, obstacle_radius,
			closest_t, closest_qx, closest_qy, closest_dist,
			offset_used, wp_x, wp_y, waypoint_id,
			score_base, score_turn, score_back, score_proximity, score_total,
			tries_used, tries_exhausted
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		routeID, idx, dec.Iteration, dec.SegmentIndex,
		dec.ObstacleID, dec.ObstacleCenter.X, dec.ObstacleCenter.Y, dec.ObstacleRadius,
		dec.ClosestT, dec.ClosestQ.X, dec.ClosestQ.Y, dec.ClosestDist,
		dec.OffsetUsed, dec.Waypoint.X, dec.Waypoint.Y, waypointID,
		dec.Score.Base, dec.Score.Turn, dec.Score.Back, dec.Score.Proximity, dec.Score.Total(),
		triesUsed, boolToInt(dec.TriesExhausted),
	)
	if err != nil {
		return fmt.Errorf("store: insert route_detour: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// GetRouteByFromTo resolves the unique (from, to) route id, implementing
// the "last" API boundary operation.
func (d *DB) GetRouteByFromTo(ctx context.Context, fromFID, toFID int64) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`SELECT id FROM routes WHERE from_planet_fid = ? AND to_planet_fid = ?`, fromFID, toFID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrRouteNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("store: get route by from/to: %w", err)
	}
	return id, nil
}

// LoadRoute fetches the route header joined with endpoint planet names,
// the ordered polyline, and the ordered detour list with resolved
// obstacle names.
func (d *DB) LoadRoute(ctx context.Context, routeID int64) (PersistedRoute, error) {
	header, err := d.loadHeader(ctx, routeID)
	if err != nil {
		return PersistedRoute{}, err
	}

	waypoints, err := d.loadWaypoints(ctx, routeID)
	if err != nil {
		return PersistedRoute{}, err
	}

	detours, err := d.loadDetours(ctx, routeID)
	if err != nil {
		return PersistedRoute{}, err
	}

	return PersistedRoute{Header: header, Waypoints: waypoints, Detours: detours}, nil
}

func (d *DB) loadHeader(ctx context.Context, routeID int64) (RouteHeader, error) {
	var h RouteHeader
	err := d.sql.QueryRowContext(ctx, `
		SELECT r.id, r.from_planet_fid, r.to_planet_fid, pf.name, pt.name,
		       r.algo_version, r.options_json, r.length, r.iterations,
		       r.status, r.error, r.created_at, r.updated_at
		FROM routes r
		JOIN planets pf ON pf.fid = r.from_planet_fid
		JOIN planets pt ON pt.fid = r.to_planet_fid
		WHERE r.id = ?
	`, routeID).Scan(
		&h.ID, &h.FromFID, &h.ToFID, &h.FromName, &h.ToName,
		&h.AlgoVersion, &h.OptionsJSON, &h.Length, &h.Iterations,
		&h.Status, &h.Error, &h.CreatedAt, &h.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return RouteHeader{}, ErrRouteNotFound
	}
	if err != nil {
		return RouteHeader{}, fmt.Errorf("store: load route header: %w", err)
	}
	return h, nil
}

func (d *DB) loadWaypoints(ctx context.Context, routeID int64) ([]RouteWaypointRow, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT rw.seq, rw.x, rw.y, rw.waypoint_id, w.name, w.kind
		FROM route_waypoints rw
		LEFT JOIN waypoints w ON w.id = rw.waypoint_id
		WHERE rw.route_id = ?
		ORDER BY rw.seq ASC
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("store: load route_waypoints: %w", err)
	}
	defer rows.Close()

	var out []RouteWaypointRow
	for rows.Next() {
		var r RouteWaypointRow
		if err := rows.Scan(&r.Seq, &r.X, &r.Y, &r.WaypointID, &r.WaypointName, &r.WaypointKind); err != nil {
			return nil, fmt.Errorf("store: scan route_waypoint: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) loadDetours(ctx context.Context, routeID int64) ([]RouteDetourRow, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT d.idx, d.iteration, d.segment_index,
		       d.obstacle_id, COALESCE(p.name, ''), d.obstacle_x, d.obstacle_y, d.obstacle_radius,
		       d.closest_t, d.closest_qx, d.closest_qy, d.closest_dist,
		       d.offset_used, d.wp_x, d.wp_y, d.waypoint_id,
		       d.score_base, d.score_turn, d.score_back, d.score_proximity, d.score_total,
		       d.tries_used, d.tries_exhausted
		FROM route_detours d
		LEFT JOIN planets p ON p.fid = d.obstacle_id
		WHERE d.route_id = ?
		ORDER BY d.idx ASC
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("store: load route_detours: %w", err)
	}
	defer rows.Close()

	var out []RouteDetourRow
	for rows.Next() {
		var r RouteDetourRow
		var triesExhausted int
		if err := rows.Scan(
			&r.Idx, &r.Iteration, &r.SegmentIndex,
			&r.ObstacleID, &r.ObstacleName, &r.ObstacleX, &r.ObstacleY, &r.ObstacleRadius,
			&r.ClosestT, &r.ClosestQX, &r.ClosestQY, &r.ClosestDist,
			&r.OffsetUsed, &r.WPX, &r.WPY, &r.WaypointID,
			&r.ScoreBase, &r.ScoreTurn, &r.ScoreBack, &r.ScoreProximity, &r.ScoreTotal,
			&r.TriesUsed, &triesExhausted,
		); err != nil {
			return nil, fmt.Errorf("store: scan route_detour: %w", err)
		}
		r.TriesExhausted = triesExhausted != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// Clear deletes every persisted route (and its children, via ON DELETE
// CASCADE); the computed-waypoint catalog itself is untouched — use
// Prune for that.
func (d *DB) Clear(ctx context.Context) error {
	if _, err := d.sql.ExecContext(ctx, `DELETE FROM routes`); err != nil {
		return fmt.Errorf("store: clear routes: %w", err)
	}
	return nil
}
