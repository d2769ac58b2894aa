// Package postgres implements the persistence ports on PostgreSQL via sqlx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens and pings a PostgreSQL connection.
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS field_properties (
		dataset_id TEXT NOT NULL,
		name TEXT NOT NULL,
		col_index INTEGER NOT NULL,
		type TEXT NOT NULL,
		general_type TEXT NOT NULL,
		type_scores JSONB NOT NULL DEFAULT '{}',
		is_unique BOOLEAN NOT NULL DEFAULT FALSE,
		is_id BOOLEAN NOT NULL DEFAULT FALSE,
		unique_values JSONB,
		stats JSONB NOT NULL DEFAULT '{}',
		normality BOOLEAN,
		child TEXT,
		is_child BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (dataset_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS dataset_properties (
		dataset_id TEXT PRIMARY KEY,
		row_count INTEGER NOT NULL,
		column_count INTEGER NOT NULL,
		field_names JSONB NOT NULL DEFAULT '[]',
		field_types JSONB NOT NULL DEFAULT '[]',
		structure TEXT NOT NULL,
		time_series JSONB,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS relationships (
		id SERIAL PRIMARY KEY,
		source_dataset_id TEXT NOT NULL,
		source_field TEXT NOT NULL,
		target_dataset_id TEXT NOT NULL,
		target_field TEXT NOT NULL,
		distance DOUBLE PRECISION NOT NULL,
		cardinality TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS viz_specs (
		set_key TEXT NOT NULL,
		dataset_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		spec JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (set_key, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_viz_specs_dataset ON viz_specs (dataset_id)`,
}

// EnsureSchema creates the engine's tables when absent.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
