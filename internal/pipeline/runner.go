// Package pipeline orchestrates the five engine stages against the boundary
// ports: table loading, field property computation, relationship detection,
// spec enumeration, and spec attachment/scoring with full-replacement
// persistence.
package pipeline

import (
	"context"

	"vizier/domain/core"
	"vizier/domain/field"
	"vizier/domain/relation"
	"vizier/domain/spec"
	"vizier/internal"
	"vizier/internal/attach"
	"vizier/internal/config"
	"vizier/internal/enumerate"
	apperrors "vizier/internal/errors"
	"vizier/internal/fieldprops"
	"vizier/internal/relationship"
	"vizier/ports"
)

// Repos bundles the persistence ports the runner writes through.
type Repos struct {
	Fields        ports.FieldPropertyRepository
	Datasets      ports.DatasetPropertyRepository
	Relationships ports.RelationshipRepository
	Specs         ports.SpecRepository
}

// Runner wires the computation stages to the boundary ports. Each public
// method is an idempotent unit of work: re-running it with identical inputs
// produces the same stored state.
type Runner struct {
	cfg      config.EngineConfig
	source   ports.TableSource
	repos    Repos
	progress ports.ProgressReporter
	log      *internal.Logger

	computer *fieldprops.Computer
	detector *relationship.Detector
	attacher *attach.Attacher
}

// NewRunner creates a runner. A nil progress reporter discards progress.
func NewRunner(cfg config.EngineConfig, source ports.TableSource, repos Repos, progress ports.ProgressReporter, logger *internal.Logger) *Runner {
	if progress == nil {
		progress = ports.NopProgress{}
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Runner{
		cfg:      cfg,
		source:   source,
		repos:    repos,
		progress: progress,
		log:      logger,
		computer: fieldprops.NewComputer(fieldprops.Config{
			SampleSize:          cfg.SampleSize,
			UniquenessThreshold: cfg.UniquenessThreshold,
			HierarchyMaxValues:  cfg.HierarchyMaxValues,
			MaxUniqueValues:     cfg.MaxUniqueValues,
			Percentiles:         cfg.Percentiles,
		}),
		detector: relationship.NewDetector(relationship.Config{Threshold: cfg.RelationshipDistance}),
		attacher: attach.New(attach.Config{MaxBins: cfg.MaxBins}, logger),
	}
}

// ComputeFieldProperties profiles one dataset and upserts the field and
// dataset property records. Stored records are reused unless the recompute
// flag forces a fresh pass.
func (r *Runner) ComputeFieldProperties(ctx context.Context, id core.DatasetID) ([]field.Field, error) {
	if !r.cfg.RecomputeFieldProps {
		stored, err := r.repos.Fields.GetFields(ctx, id)
		if err == nil && len(stored) > 0 {
			return stored, nil
		}
	}

	r.progress.Progress("field_properties", id, 0, "loading table")
	t, err := r.source.Table(ctx, id)
	if err != nil {
		return nil, apperrors.Wrapf(err, "loading dataset %s", id)
	}

	r.progress.Progress("field_properties", id, 25, "profiling columns")
	fields, props, err := r.computer.Compute(ctx, t)
	if err != nil {
		return nil, err
	}

	r.progress.Progress("field_properties", id, 75, "persisting records")
	if err := r.repos.Fields.UpsertFields(ctx, fields); err != nil {
		return nil, apperrors.Wrap(err, "persisting field properties")
	}
	if err := r.repos.Datasets.UpsertProperties(ctx, props); err != nil {
		return nil, apperrors.Wrap(err, "persisting dataset properties")
	}
	r.progress.Progress("field_properties", id, 100, "done")
	return fields, nil
}

// DetectRelationships compares field value-sets across the given datasets
// and appends any relationships above the distance threshold. Datasets
// without stored field properties are profiled first.
func (r *Runner) DetectRelationships(ctx context.Context, ids []core.DatasetID) ([]relation.Relationship, error) {
	propsByDataset := make(map[core.DatasetID][]field.Field, len(ids))
	for _, id := range ids {
		fields, err := r.ComputeFieldProperties(ctx, id)
		if err != nil {
			return nil, err
		}
		propsByDataset[id] = fields
	}

	rels, commit, err := r.detector.Detect(ctx, propsByDataset)
	if err != nil {
		return nil, err
	}
	if len(rels) > 0 {
		if err := r.repos.Relationships.InsertRelationships(ctx, rels); err != nil {
			return nil, apperrors.Wrap(err, "persisting relationships")
		}
	}
	// Pairs count as compared only once their relationships are stored, so a
	// failed insert leaves them eligible for the retry.
	commit()
	return rels, nil
}

// Specs enumerates, materializes, and scores visualization specs for one
// dataset under a selection and conditional, replacing the stored set for
// that key. With the recompute flag off, a previously stored set for the
// same key is returned as-is.
func (r *Runner) Specs(ctx context.Context, id core.DatasetID, selection []string, cond *spec.Conditional) ([]spec.Scored, error) {
	key := core.ComputeSpecSetKey(id, selection, cond)
	if !r.cfg.RecomputeSpecs {
		stored, err := r.repos.Specs.GetSpecs(ctx, key)
		if err == nil && len(stored) > 0 {
			return stored, nil
		}
	}

	fields, err := r.ComputeFieldProperties(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateSelection(fields, selection); err != nil {
		return nil, err
	}

	r.progress.Progress("specs", id, 25, "enumerating candidates")
	skeletons := enumerate.Enumerate(fields, selection)
	if len(skeletons) == 0 {
		return nil, nil
	}

	t, err := r.source.Table(ctx, id)
	if err != nil {
		return nil, apperrors.Wrapf(err, "loading dataset %s", id)
	}

	r.progress.Progress("specs", id, 50, "attaching data")
	scored, err := r.attacher.AttachAndScore(ctx, t, skeletons, selection, cond)
	if err != nil {
		return nil, err
	}

	r.progress.Progress("specs", id, 90, "replacing stored set")
	set := spec.ReplaceSet{Key: key, DatasetID: id, Specs: scored}
	if err := r.repos.Specs.ReplaceSpecs(ctx, set); err != nil {
		return nil, apperrors.Wrap(err, "persisting spec set")
	}
	r.progress.Progress("specs", id, 100, "done")
	return scored, nil
}

func validateSelection(fields []field.Field, selection []string) error {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
	}
	for _, name := range selection {
		if !known[name] {
			return apperrors.ValidationErrorf("selected field %q does not exist", name)
		}
	}
	return nil
}
