package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Config configures a database connection. Like planner.RouteOptions, it is
// a plain value struct with a non-panicking Validate.
type Config struct {
	// DSN is the database/sql data source name, e.g.
	// "file:galaxy.db?_pragma=foreign_keys(1)" or
	// "file::memory:?cache=shared&_pragma=foreign_keys(1)" for tests. SQLite
	// (and modernc.org/sqlite) default foreign key enforcement to OFF, but
	// the schema's ON DELETE CASCADE / ON DELETE SET NULL are load-bearing
	// (spec §3 invariant 5: deleting a route cascades to its children), so
	// every caller-supplied DSN must turn the pragma on.
	DSN string

	// AlgoVersion is stamped on every persisted route's algo_version
	// column, letting a future schema change distinguish routes computed
	// under different planner revisions.
	AlgoVersion string
}

// DefaultConfig returns a Config pointed at an on-disk database file with
// the current algorithm version tag and foreign key enforcement on,
// mirroring provision.rs's "PRAGMA foreign_keys=ON" at connection setup.
func DefaultConfig(path string) Config {
	return Config{DSN: fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path), AlgoVersion: "router_v1"}
}

// Validate reports whether c is usable.
func (c Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("store: invalid config: dsn must not be empty")
	}
	if c.AlgoVersion == "" {
		return fmt.Errorf("store: invalid config: algo_version must not be empty")
	}
	return nil
}

// DB wraps a database/sql handle together with the logger and config used
// for every query this package issues.
type DB struct {
	sql *sql.DB
	cfg Config
	log *zap.SugaredLogger
}

// Open validates cfg, opens the database, and applies any pending
// migrations. Passing a nil logger is safe; it defaults to a no-op
// logger.
func Open(ctx context.Context, cfg Config, log *zap.SugaredLogger) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", cfg.DSN, err)
	}

	db := &DB{sql: sqlDB, cfg: cfg, log: nopSafe(log)}

	if err := db.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.sql.Close()
}

func nopSafe(log *zap.SugaredLogger) *zap.SugaredLogger {
	if log != nil {
		return log
	}
	return zap.NewNop().Sugar()
}
