// Package catalog computes the deterministic fingerprint that identifies a
// detour waypoint across recomputes, and the pure upsert-by-fingerprint
// dedup decision the store executes against its ComputedWaypoint table.
//
// Nothing here touches SQL: catalog is a logic layer the store package
// calls into, so the fingerprint algorithm and its "reuse existing id vs.
// insert a new row" decision can be tested without a database.
package catalog
