// Package store persists planets, the computed-waypoint catalog, and
// routes in a single embedded SQLite database, and answers the planner's
// planet-resolution and obstacle-prefilter queries.
//
// Schema migrations are strictly additive, run one step per transaction,
// and are idempotent: re-running Migrate against an already-migrated
// database is a no-op. Route persistence follows the same upsert-then-
// replace-children contract documented on DB.UpsertRoute.
package store
