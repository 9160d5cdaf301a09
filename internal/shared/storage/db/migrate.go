package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB, dialect Dialect) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, database, "migrations"); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrationStatus reports the current schema version.
func MigrationStatus(ctx context.Context, database *sql.DB, dialect Dialect) (int64, error) {
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return 0, fmt.Errorf("set dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, database)
}

func gooseDialect(d Dialect) string {
	if d == SQLite {
		return "sqlite3"
	}
	return "postgres"
}
