package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vizier/domain/core"
	"vizier/domain/spec"
	"vizier/ports"
)

// specRepository implements the SpecRepository interface
type specRepository struct {
	db *sqlx.DB
}

// NewSpecRepository creates a new visualization spec repository
func NewSpecRepository(db *sqlx.DB) ports.SpecRepository {
	return &specRepository{db: db}
}

// ReplaceSpecs deletes the stored set for the key and inserts the new one
// in a single transaction, so readers never see a partial set
func (r *specRepository) ReplaceSpecs(ctx context.Context, set spec.ReplaceSet) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM viz_specs WHERE set_key = $1`, set.Key); err != nil {
		return fmt.Errorf("failed to delete prior spec set: %w", err)
	}

	query := `INSERT INTO viz_specs (set_key, dataset_id, position, spec) VALUES ($1, $2, $3, $4)`
	for i, scored := range set.Specs {
		specJSON, err := json.Marshal(scored)
		if err != nil {
			return fmt.Errorf("failed to marshal spec: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, set.Key, set.DatasetID, i, specJSON); err != nil {
			return fmt.Errorf("failed to insert spec %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetSpecs retrieves the stored set for a key in ranked order
func (r *specRepository) GetSpecs(ctx context.Context, key core.SpecSetKey) ([]spec.Scored, error) {
	query := `SELECT spec FROM viz_specs WHERE set_key = $1 ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query specs: %w", err)
	}
	defer rows.Close()

	var specs []spec.Scored
	for rows.Next() {
		var specJSON []byte
		if err := rows.Scan(&specJSON); err != nil {
			return nil, fmt.Errorf("failed to scan spec: %w", err)
		}
		var scored spec.Scored
		if err := json.Unmarshal(specJSON, &scored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal spec: %w", err)
		}
		specs = append(specs, scored)
	}

	return specs, rows.Err()
}
