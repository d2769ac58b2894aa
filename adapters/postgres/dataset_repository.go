package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vizier/domain/core"
	"vizier/domain/field"
	"vizier/ports"
)

// datasetRepository implements the DatasetPropertyRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset property repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetPropertyRepository {
	return &datasetRepository{db: db}
}

// UpsertProperties inserts or replaces a dataset's structural record
func (r *datasetRepository) UpsertProperties(ctx context.Context, props field.DatasetProperties) error {
	namesJSON, err := json.Marshal(props.FieldNames)
	if err != nil {
		return fmt.Errorf("failed to marshal field names: %w", err)
	}
	typesJSON, err := json.Marshal(props.FieldTypes)
	if err != nil {
		return fmt.Errorf("failed to marshal field types: %w", err)
	}
	var tsJSON []byte
	if props.TimeSeries != nil {
		tsJSON, err = json.Marshal(props.TimeSeries)
		if err != nil {
			return fmt.Errorf("failed to marshal time series: %w", err)
		}
	}

	query := `INSERT INTO dataset_properties (
		dataset_id, row_count, column_count, field_names, field_types, structure, time_series, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	ON CONFLICT (dataset_id) DO UPDATE SET
		row_count = EXCLUDED.row_count, column_count = EXCLUDED.column_count,
		field_names = EXCLUDED.field_names, field_types = EXCLUDED.field_types,
		structure = EXCLUDED.structure, time_series = EXCLUDED.time_series,
		updated_at = NOW()`

	_, err = r.db.ExecContext(ctx, query,
		props.DatasetID, props.RowCount, props.ColumnCount, namesJSON, typesJSON,
		props.Structure, tsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert dataset properties: %w", err)
	}
	return nil
}

// GetProperties retrieves a dataset's structural record
func (r *datasetRepository) GetProperties(ctx context.Context, datasetID core.DatasetID) (*field.DatasetProperties, error) {
	query := `SELECT
		dataset_id, row_count, column_count, field_names, field_types, structure, time_series
	FROM dataset_properties WHERE dataset_id = $1`

	var props field.DatasetProperties
	var namesJSON, typesJSON, tsJSON []byte

	err := r.db.QueryRowContext(ctx, query, datasetID).Scan(
		&props.DatasetID, &props.RowCount, &props.ColumnCount,
		&namesJSON, &typesJSON, &props.Structure, &tsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("dataset properties not found: %s", datasetID)
		}
		return nil, fmt.Errorf("failed to get dataset properties: %w", err)
	}

	if len(namesJSON) > 0 {
		if err := json.Unmarshal(namesJSON, &props.FieldNames); err != nil {
			return nil, fmt.Errorf("failed to unmarshal field names: %w", err)
		}
	}
	if len(typesJSON) > 0 {
		if err := json.Unmarshal(typesJSON, &props.FieldTypes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal field types: %w", err)
		}
	}
	if len(tsJSON) > 0 {
		if err := json.Unmarshal(tsJSON, &props.TimeSeries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal time series: %w", err)
		}
	}

	return &props, nil
}
