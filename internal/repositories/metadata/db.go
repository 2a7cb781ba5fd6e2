package metadata

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pinauth/internal/migrations"
)

// Open opens the local auth database for the given driver ("sqlite" or
// "pgx"), applies pending migrations, and returns the handle together with
// the matching Repository implementation.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, Repository, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrations.Up(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	switch driver {
	case "pgx":
		return db, NewPostgresRepository(db), nil
	default:
		return db, NewSQLiteRepository(db), nil
	}
}
