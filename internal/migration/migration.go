package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"proplens/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations. Statements are
// idempotent so the runner is safe to execute on every startup.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createPropertiesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create properties table")
	}
	if err := r.createPropertiesIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create properties indexes")
	}
	return nil
}

// createPropertiesTable stores one source record per row, sections as JSONB
func (r *MigrationRunner) createPropertiesTable(ctx context.Context, db *sqlx.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		record JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createPropertiesIndexes(ctx context.Context, db *sqlx.DB) error {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_city ON properties ((record->'address'->'city'->>'value'))`,
	}
	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
