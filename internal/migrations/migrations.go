// Package migrations embeds and applies the goose SQL migrations for the
// local auth database. Both the SQLite default and the Postgres substitution
// carry their own dialect-specific scripts.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Up applies all pending migrations for the given driver ("sqlite" or "pgx").
func Up(ctx context.Context, db *sql.DB, driver string) error {
	var dialect, dir string
	switch driver {
	case "sqlite":
		dialect, dir = "sqlite3", "sqlite"
	case "pgx":
		dialect, dir = "postgres", "postgres"
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, dir)
}
