package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vizier/domain/core"
	"vizier/domain/field"
	"vizier/ports"
)

// fieldRepository implements the FieldPropertyRepository interface
type fieldRepository struct {
	db *sqlx.DB
}

// NewFieldRepository creates a new field property repository
func NewFieldRepository(db *sqlx.DB) ports.FieldPropertyRepository {
	return &fieldRepository{db: db}
}

// UpsertFields inserts or replaces field records keyed by (dataset, name)
func (r *fieldRepository) UpsertFields(ctx context.Context, fields []field.Field) error {
	query := `INSERT INTO field_properties (
		dataset_id, name, col_index, type, general_type, type_scores,
		is_unique, is_id, unique_values, stats, normality, child, is_child, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
	ON CONFLICT (dataset_id, name) DO UPDATE SET
		col_index = EXCLUDED.col_index, type = EXCLUDED.type,
		general_type = EXCLUDED.general_type, type_scores = EXCLUDED.type_scores,
		is_unique = EXCLUDED.is_unique, is_id = EXCLUDED.is_id,
		unique_values = EXCLUDED.unique_values, stats = EXCLUDED.stats,
		normality = EXCLUDED.normality, child = EXCLUDED.child,
		is_child = EXCLUDED.is_child, updated_at = NOW()`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, f := range fields {
		scoresJSON, err := json.Marshal(f.TypeScores)
		if err != nil {
			return fmt.Errorf("failed to marshal type scores: %w", err)
		}
		statsJSON, err := json.Marshal(f.Stats)
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		var uniqueJSON []byte
		if f.UniqueValues != nil {
			uniqueJSON, err = json.Marshal(f.UniqueValues)
			if err != nil {
				return fmt.Errorf("failed to marshal unique values: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, query,
			f.DatasetID, f.Name, f.Index, f.Type, f.GeneralType.String(), scoresJSON,
			f.IsUnique, f.IsID, uniqueJSON, statsJSON, f.Normality, nullable(f.Child), f.IsChild,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert field %s: %w", f.Name, err)
		}
	}

	return tx.Commit()
}

// GetFields retrieves a dataset's field records in column order
func (r *fieldRepository) GetFields(ctx context.Context, datasetID core.DatasetID) ([]field.Field, error) {
	query := `SELECT
		dataset_id, name, col_index, type, general_type, type_scores,
		is_unique, is_id, unique_values, stats, normality, COALESCE(child, '') as child, is_child
	FROM field_properties WHERE dataset_id = $1 ORDER BY col_index`

	rows, err := r.db.QueryContext(ctx, query, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query field properties: %w", err)
	}
	defer rows.Close()

	var fields []field.Field
	for rows.Next() {
		var f field.Field
		var generalType string
		var scoresJSON, statsJSON, uniqueJSON []byte

		err := rows.Scan(
			&f.DatasetID, &f.Name, &f.Index, &f.Type, &generalType, &scoresJSON,
			&f.IsUnique, &f.IsID, &uniqueJSON, &statsJSON, &f.Normality, &f.Child, &f.IsChild,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field property: %w", err)
		}

		if err := parseGeneralType(generalType, &f.GeneralType); err != nil {
			return nil, err
		}
		if len(scoresJSON) > 0 {
			if err := json.Unmarshal(scoresJSON, &f.TypeScores); err != nil {
				return nil, fmt.Errorf("failed to unmarshal type scores: %w", err)
			}
		}
		if len(statsJSON) > 0 {
			if err := json.Unmarshal(statsJSON, &f.Stats); err != nil {
				return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
			}
		}
		if len(uniqueJSON) > 0 {
			if err := json.Unmarshal(uniqueJSON, &f.UniqueValues); err != nil {
				return nil, fmt.Errorf("failed to unmarshal unique values: %w", err)
			}
		}

		fields = append(fields, f)
	}

	return fields, rows.Err()
}

func parseGeneralType(s string, out *field.GeneralType) error {
	quoted, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := out.UnmarshalJSON(quoted); err != nil {
		return fmt.Errorf("failed to parse general type: %w", err)
	}
	return nil
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
