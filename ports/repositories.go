package ports

import (
	"context"

	"vizier/domain/core"
	"vizier/domain/field"
	"vizier/domain/relation"
	"vizier/domain/spec"
)

// FieldPropertyRepository persists per-column field property records.
// Upsert semantics are keyed by (dataset, field name).
type FieldPropertyRepository interface {
	UpsertFields(ctx context.Context, fields []field.Field) error
	GetFields(ctx context.Context, datasetID core.DatasetID) ([]field.Field, error)
}

// DatasetPropertyRepository persists per-dataset structural records,
// upserted by dataset.
type DatasetPropertyRepository interface {
	UpsertProperties(ctx context.Context, props field.DatasetProperties) error
	GetProperties(ctx context.Context, datasetID core.DatasetID) (*field.DatasetProperties, error)
}

// RelationshipRepository persists cross-dataset relationships, insert-only.
type RelationshipRepository interface {
	InsertRelationships(ctx context.Context, rels []relation.Relationship) error
	GetRelationships(ctx context.Context) ([]relation.Relationship, error)
}

// SpecRepository persists scored visualization specs as a full replacement
// set per (dataset, selection, conditionals) key.
type SpecRepository interface {
	ReplaceSpecs(ctx context.Context, set spec.ReplaceSet) error
	GetSpecs(ctx context.Context, key core.SpecSetKey) ([]spec.Scored, error)
}
