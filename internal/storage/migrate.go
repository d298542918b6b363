package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

type dialect string

const (
	dialectSQLite   dialect = "sqlite"
	dialectPostgres dialect = "postgres"
)

// execFunc runs one migration file. Files may hold several statements.
type execFunc func(ctx context.Context, query string) error

// MigrateUp applies the SQLite schema. Every statement is guarded with
// IF NOT EXISTS so repeated runs keep existing rows.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	return applyMigrations(ctx, dialectSQLite, ".up.sql", sqlExec(db))
}

func MigrateDown(ctx context.Context, db *sql.DB) error {
	return applyMigrations(ctx, dialectSQLite, ".down.sql", sqlExec(db))
}

func sqlExec(db *sql.DB) execFunc {
	return func(ctx context.Context, query string) error {
		_, err := db.ExecContext(ctx, query)
		return err
	}
}

func applyMigrations(ctx context.Context, d dialect, suffix string, exec execFunc) error {
	entries, err := fs.Glob(migrationFiles, "migrations/"+string(d)+"/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no %s migrations for %s", suffix, d)
	}
	sort.Strings(entries)
	if suffix == ".down.sql" {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if execErr := exec(ctx, string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return nil
}
