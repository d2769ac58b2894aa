// Package memory implements the persistence ports in process memory. It
// backs the CLI's single-shot runs and the test suites; the PostgreSQL
// adapters are the durable counterparts.
package memory

import (
	"context"
	"sync"

	"vizier/domain/core"
	"vizier/domain/field"
	"vizier/domain/relation"
	"vizier/domain/spec"
	"vizier/domain/table"
	apperrors "vizier/internal/errors"
)

// StaticSource serves fixed tables by dataset id.
type StaticSource struct {
	mu     sync.Mutex
	tables map[core.DatasetID]*table.Table
	Loads  int
}

func NewStaticSource(tables ...*table.Table) *StaticSource {
	s := &StaticSource{tables: make(map[core.DatasetID]*table.Table)}
	for _, t := range tables {
		s.tables[t.DatasetID] = t
	}
	return s
}

func (s *StaticSource) Add(t *table.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.DatasetID] = t
}

func (s *StaticSource) Table(_ context.Context, id core.DatasetID) (*table.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Loads++
	t, ok := s.tables[id]
	if !ok {
		return nil, apperrors.NotFoundf("dataset %s", id)
	}
	return t, nil
}

// FieldRepo is an in-memory FieldPropertyRepository.
type FieldRepo struct {
	mu     sync.Mutex
	fields map[core.DatasetID][]field.Field
}

func NewFieldRepo() *FieldRepo {
	return &FieldRepo{fields: make(map[core.DatasetID][]field.Field)}
}

func (r *FieldRepo) UpsertFields(_ context.Context, fields []field.Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range fields {
		existing := r.fields[f.DatasetID]
		replaced := false
		for i := range existing {
			if existing[i].Name == f.Name {
				existing[i] = f
				replaced = true
			}
		}
		if !replaced {
			existing = append(existing, f)
		}
		r.fields[f.DatasetID] = existing
	}
	return nil
}

func (r *FieldRepo) GetFields(_ context.Context, id core.DatasetID) ([]field.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]field.Field(nil), r.fields[id]...), nil
}

// DatasetRepo is an in-memory DatasetPropertyRepository.
type DatasetRepo struct {
	mu    sync.Mutex
	props map[core.DatasetID]field.DatasetProperties
}

func NewDatasetRepo() *DatasetRepo {
	return &DatasetRepo{props: make(map[core.DatasetID]field.DatasetProperties)}
}

func (r *DatasetRepo) UpsertProperties(_ context.Context, props field.DatasetProperties) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props[props.DatasetID] = props
	return nil
}

func (r *DatasetRepo) GetProperties(_ context.Context, id core.DatasetID) (*field.DatasetProperties, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.props[id]
	if !ok {
		return nil, apperrors.NotFoundf("dataset properties %s", id)
	}
	return &p, nil
}

// RelationshipRepo is an in-memory insert-only RelationshipRepository.
type RelationshipRepo struct {
	mu   sync.Mutex
	rels []relation.Relationship
}

func NewRelationshipRepo() *RelationshipRepo { return &RelationshipRepo{} }

func (r *RelationshipRepo) InsertRelationships(_ context.Context, rels []relation.Relationship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rels = append(r.rels, rels...)
	return nil
}

func (r *RelationshipRepo) GetRelationships(_ context.Context) ([]relation.Relationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]relation.Relationship(nil), r.rels...), nil
}

// SpecRepo is an in-memory full-replacement SpecRepository.
type SpecRepo struct {
	mu   sync.Mutex
	sets map[core.SpecSetKey][]spec.Scored
	// Replacements counts ReplaceSpecs calls, exposed for idempotency tests.
	Replacements int
}

func NewSpecRepo() *SpecRepo {
	return &SpecRepo{sets: make(map[core.SpecSetKey][]spec.Scored)}
}

func (r *SpecRepo) ReplaceSpecs(_ context.Context, set spec.ReplaceSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Replacements++
	r.sets[set.Key] = append([]spec.Scored(nil), set.Specs...)
	return nil
}

func (r *SpecRepo) GetSpecs(_ context.Context, key core.SpecSetKey) ([]spec.Scored, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]spec.Scored(nil), r.sets[key]...), nil
}
