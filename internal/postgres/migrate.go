package postgres

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version     TEXT PRIMARY KEY,
		applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Migration is one embedded schema file
type Migration struct {
	Version string
	SQL     string
}

// Migrations returns the embedded migrations in apply order
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, err
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		body, err := fs.ReadFile(migrationFiles, "migrations/"+e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{
			Version: strings.TrimSuffix(e.Name(), ".sql"),
			SQL:     string(body),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Migrate applies every pending migration, each in its own transaction.
// With dryRun set it only logs what would run.
func (db *DB) Migrate(ctx context.Context, dryRun bool) error {
	migrations, err := Migrations()
	if err != nil {
		return WrapError(err, "Failed to read migrations")
	}

	if _, err := db.ExecContext(ctx, migrationsTable); err != nil {
		return WrapError(err, "Failed to create migrations table")
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, `SELECT version FROM schema_migrations`); err != nil {
		return WrapError(err, "Failed to read applied migrations")
	}
	done := make(map[string]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.Version] {
			continue
		}

		if dryRun {
			db.logger.Infow("pending migration", "version", m.Version)
			continue
		}

		err := db.WithTx(ctx, func(txCtx context.Context) error {
			q := db.GetQuerier(txCtx)
			if _, err := q.ExecContext(txCtx, m.SQL); err != nil {
				return WrapError(err, "Failed to apply migration "+m.Version)
			}
			_, err := q.ExecContext(txCtx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version)
			return WrapError(err, "Failed to record migration "+m.Version)
		})
		if err != nil {
			return err
		}

		db.logger.Infow("applied migration", "version", m.Version)
	}

	return nil
}
