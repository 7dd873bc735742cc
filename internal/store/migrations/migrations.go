// Package migrations creates and evolves the journal schema. Each
// migration runs at most once; applied versions are tracked in
// schema_migrations so Run is idempotent.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	stmt    string
}

var migrations = []migration{
	{
		version: 1,
		stmt: `
			CREATE TABLE IF NOT EXISTS sessions (
				id          VARCHAR PRIMARY KEY,
				target      VARCHAR NOT NULL,
				started_at  TIMESTAMP NOT NULL,
				finished_at TIMESTAMP
			)`,
	},
	{
		version: 2,
		stmt: `
			CREATE TABLE IF NOT EXISTS invocations (
				session_id  VARCHAR NOT NULL,
				command     VARCHAR NOT NULL,
				exit_status INTEGER NOT NULL,
				stderr      VARCHAR NOT NULL DEFAULT '',
				duration_ms BIGINT NOT NULL,
				created_at  TIMESTAMP NOT NULL
			)`,
	},
}

// Run applies all pending migrations.
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied int
		err := db.QueryRowContext(ctx,
			"SELECT count(*) FROM schema_migrations WHERE version = ?", m.version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("checking migration %d: %w", m.version, err)
		}
		if applied > 0 {
			continue
		}

		if _, err := db.ExecContext(ctx, m.stmt); err != nil {
			return fmt.Errorf("applying migration %d: %w", m.version, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
	}
	return nil
}
