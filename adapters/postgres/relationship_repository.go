package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vizier/domain/relation"
	"vizier/ports"
)

// relationshipRepository implements the RelationshipRepository interface
type relationshipRepository struct {
	db *sqlx.DB
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(db *sqlx.DB) ports.RelationshipRepository {
	return &relationshipRepository{db: db}
}

// InsertRelationships appends detected relationships; the table is insert-only
func (r *relationshipRepository) InsertRelationships(ctx context.Context, rels []relation.Relationship) error {
	query := `INSERT INTO relationships (
		source_dataset_id, source_field, target_dataset_id, target_field, distance, cardinality
	) VALUES ($1, $2, $3, $4, $5, $6)`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rel := range rels {
		_, err := tx.ExecContext(ctx, query,
			rel.SourceDatasetID, rel.SourceField, rel.TargetDatasetID, rel.TargetField,
			rel.Distance, rel.Cardinality,
		)
		if err != nil {
			return fmt.Errorf("failed to insert relationship: %w", err)
		}
	}

	return tx.Commit()
}

// GetRelationships retrieves all stored relationships
func (r *relationshipRepository) GetRelationships(ctx context.Context) ([]relation.Relationship, error) {
	query := `SELECT
		source_dataset_id, source_field, target_dataset_id, target_field, distance, cardinality
	FROM relationships ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer rows.Close()

	var rels []relation.Relationship
	for rows.Next() {
		var rel relation.Relationship
		err := rows.Scan(
			&rel.SourceDatasetID, &rel.SourceField, &rel.TargetDatasetID, &rel.TargetField,
			&rel.Distance, &rel.Cardinality,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		rels = append(rels, rel)
	}

	return rels, rows.Err()
}
