package store

import (
	"context"
	"fmt"
)

// PruneMode selects how aggressively Prune reclaims computed waypoints.
type PruneMode int

const (
	// PruneSafe only removes computed waypoints that are referenced by no
	// route_waypoints row and carry no waypoint_planets link of any role
	// (including "avoid"). This is the default: a waypoint still linked to
	// a planet is left alone even if no route currently points at it.
	PruneSafe PruneMode = iota

	// PruneIncludeLinked additionally drops the waypoint_planets links
	// first, then removes any computed waypoint with no remaining
	// route_waypoints reference, regardless of prior planet links.
	PruneIncludeLinked
)

func (m PruneMode) String() string {
	if m == PruneIncludeLinked {
		return "include_linked"
	}
	return "safe"
}

// PruneResult summarizes a prune run, mirroring the candidate/deleted
// counts the teacher-adjacent CLI prints after a waypoint prune.
type PruneResult struct {
	Mode      PruneMode
	DryRun    bool
	Candidate int
	Deleted   int
}

// Prune removes orphaned computed waypoints: rows in waypoints with
// kind = 'computed' that no route_waypoints row points at. In PruneSafe
// mode a waypoint also linked to a planet (waypoint_planets, any role) is
// treated as still in use and kept; PruneIncludeLinked drops those links
// first so the waypoint becomes eligible too. The whole operation runs in
// one transaction; dryRun reports what would be deleted without deleting it.
func (d *DB) Prune(ctx context.Context, mode PruneMode, dryRun bool) (PruneResult, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return PruneResult{}, fmt.Errorf("store: prune: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	candidateQuery := `
		SELECT w.id FROM waypoints w
		WHERE w.kind = 'computed'
		  AND NOT EXISTS (SELECT 1 FROM route_waypoints rw WHERE rw.waypoint_id = w.id)
	`
	if mode == PruneSafe {
		candidateQuery += `
		  AND NOT EXISTS (SELECT 1 FROM waypoint_planets wp WHERE wp.waypoint_id = w.id)
		`
	}

	rows, err := tx.QueryContext(ctx, candidateQuery)
	if err != nil {
		return PruneResult{}, fmt.Errorf("store: prune: list candidates: %w", err)
	}

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return PruneResult{}, fmt.Errorf("store: prune: scan candidate: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return PruneResult{}, fmt.Errorf("store: prune: iterate candidates: %w", err)
	}
	rows.Close()

	result := PruneResult{Mode: mode, DryRun: dryRun, Candidate: len(ids)}

	if dryRun || len(ids) == 0 {
		if err := tx.Commit(); err != nil {
			return PruneResult{}, fmt.Errorf("store: prune: commit: %w", err)
		}
		d.log.Infow("prune summary", "mode", mode.String(), "dry_run", dryRun,
			"candidates", result.Candidate, "deleted", 0)
		return result, nil
	}

	for _, id := range ids {
		if mode == PruneIncludeLinked {
			if _, err := tx.ExecContext(ctx, `DELETE FROM waypoint_planets WHERE waypoint_id = ?`, id); err != nil {
				return PruneResult{}, fmt.Errorf("store: prune: unlink waypoint %d: %w", id, err)
			}
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM waypoints WHERE id = ?`, id)
		if err != nil {
			return PruneResult{}, fmt.Errorf("store: prune: delete waypoint %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return PruneResult{}, fmt.Errorf("store: prune: rows affected for waypoint %d: %w", id, err)
		}
		result.Deleted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return PruneResult{}, fmt.Errorf("store: prune: commit: %w", err)
	}

	d.log.Infow("prune summary", "mode", mode.String(), "dry_run", dryRun,
		"candidates", result.Candidate, "deleted", result.Deleted)

	return result, nil
}
