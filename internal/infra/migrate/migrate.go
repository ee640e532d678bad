package migrate

import (
	"context"
	"embed"
	"log/slog"
	"sort"
	"strings"

	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/pkg/errs"
)

//go:embed *.sql
var files embed.FS

const (
	createVersionTableSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	isAppliedSQL   = `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`
	markAppliedSQL = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

// Names lists the embedded migration files in apply order.
func Names() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, errs.Wrap(err, "failed to read embedded migrations")
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Up applies every migration not yet recorded in schema_migrations and
// returns the versions it applied.
func Up(ctx context.Context, conn db.DBTX, logger *slog.Logger) ([]string, error) {
	names, err := Names()
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(ctx, createVersionTableSQL); err != nil {
		return nil, errs.Wrap(err, "failed to create schema_migrations")
	}

	var applied []string
	for _, name := range names {
		var done bool
		if err := conn.QueryRow(ctx, isAppliedSQL, name).Scan(&done); err != nil {
			return applied, errs.Wrapf(err, "failed to check migration %s", name)
		}
		if done {
			continue
		}

		body, err := files.ReadFile(name)
		if err != nil {
			return applied, errs.Wrapf(err, "failed to read migration %s", name)
		}
		if _, err := conn.Exec(ctx, string(body)); err != nil {
			return applied, errs.Wrapf(err, "apply %s", name)
		}
		if _, err := conn.Exec(ctx, markAppliedSQL, name); err != nil {
			return applied, errs.Wrapf(err, "failed to record migration %s", name)
		}

		logger.Info("migration applied", "version", name)
		applied = append(applied, name)
	}

	return applied, nil
}
