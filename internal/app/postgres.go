package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/p2pulse/config"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// pingTimeout bounds the connectivity check done on startup and by /readyz.
const pingTimeout = 5 * time.Second

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens the read-only connection used by the postgres trade source.
//
// Behavior:
//   - Builds the DSN with cfg.Postgres.DSN().
//   - Opens a database handle with sql.Open.
//   - Pings the database (bounded by pingTimeout) to validate connectivity.
//
// Returns:
//   - *sql.DB: an open database connection pool (safe for concurrent use).
//   - error: if opening or pinging the database fails.
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpener("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// postgresOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
