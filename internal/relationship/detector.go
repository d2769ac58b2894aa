// Package relationship infers cross-dataset field relationships from
// unique-value set overlap (Jaccard), classifying cardinality by relative
// set sizes.
package relationship

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"vizier/domain/core"
	"vizier/domain/field"
	"vizier/domain/relation"
)

// Config holds relationship detection settings.
type Config struct {
	// Threshold is the minimum Jaccard overlap for emitting a relationship.
	Threshold float64
}

// DefaultConfig returns the default threshold.
func DefaultConfig() Config {
	return Config{Threshold: 0.5}
}

// Detector compares field value-sets across datasets. It remembers which
// dataset pairs have been compared, so detection re-runs only cover newly
// added datasets against existing ones.
type Detector struct {
	cfg Config

	mu       sync.Mutex
	compared map[pairKey]struct{}
}

type pairKey struct {
	a, b core.DatasetID
}

func newPairKey(a, b core.DatasetID) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// NewDetector creates a detector with the given config.
func NewDetector(cfg Config) *Detector {
	if cfg.Threshold <= 0 {
		cfg = DefaultConfig()
	}
	return &Detector{cfg: cfg, compared: make(map[pairKey]struct{})}
}

// Detect compares every unseen unordered dataset pair and returns the
// relationships whose Jaccard overlap meets the threshold. Pairs fan out
// in parallel; results are returned in deterministic order.
//
// Pairs are not recorded as compared until the returned commit function is
// called. A run that fails, or whose results the caller fails to persist,
// leaves the pairs unconsumed so a retry with identical inputs re-compares
// them.
func (d *Detector) Detect(ctx context.Context, propsByDataset map[core.DatasetID][]field.Field) ([]relation.Relationship, func(), error) {
	ids := make([]core.DatasetID, 0, len(propsByDataset))
	for id := range propsByDataset {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	type pair struct{ a, b core.DatasetID }
	var pending []pair
	var keys []pairKey

	d.mu.Lock()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			key := newPairKey(ids[i], ids[j])
			if _, done := d.compared[key]; done {
				continue
			}
			keys = append(keys, key)
			pending = append(pending, pair{a: ids[i], b: ids[j]})
		}
	}
	d.mu.Unlock()

	results := make([][]relation.Relationship, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = d.comparePair(p.a, propsByDataset[p.a], p.b, propsByDataset[p.b])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	commit := func() {
		d.mu.Lock()
		for _, key := range keys {
			d.compared[key] = struct{}{}
		}
		d.mu.Unlock()
	}

	var out []relation.Relationship
	for _, rels := range results {
		out = append(out, rels...)
	}
	sortRelationships(out)
	return out, commit, nil
}

// comparePair compares every field pair with materialized unique-value sets.
// Quantitative fields and fields without unique-value tracking never
// participate.
func (d *Detector) comparePair(idA core.DatasetID, fieldsA []field.Field, idB core.DatasetID, fieldsB []field.Field) []relation.Relationship {
	var out []relation.Relationship
	for i := range fieldsA {
		fa := &fieldsA[i]
		if fa.UniqueValues == nil {
			continue
		}
		setA := toSet(fa.UniqueValues)
		for j := range fieldsB {
			fb := &fieldsB[j]
			if fb.UniqueValues == nil {
				continue
			}
			setB := toSet(fb.UniqueValues)

			distance := JaccardDistance(setA, setB)
			if distance < d.cfg.Threshold {
				continue
			}

			out = append(out, relation.Relationship{
				SourceDatasetID: idA,
				SourceField:     fa.Name,
				TargetDatasetID: idB,
				TargetField:     fb.Name,
				Distance:        distance,
				Cardinality:     classifyCardinality(len(setA), len(setB)),
			})
		}
	}
	return out
}

// JaccardDistance is |A∩B| / |A∪B|, bounded in [0, 1]. Two empty sets have
// distance 0.
func JaccardDistance(a, b map[string]struct{}) float64 {
	intersection := 0
	for v := range a {
		if _, ok := b[v]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// classifyCardinality compares set sizes: equal sets are 1:1, a larger
// source is N:1, and a smaller source is 1:N.
func classifyCardinality(lenA, lenB int) relation.Cardinality {
	switch {
	case lenA == lenB:
		return relation.OneToOne
	case lenA > lenB:
		return relation.ManyToOne
	default:
		return relation.OneToMany
	}
}

func sortRelationships(rels []relation.Relationship) {
	sort.SliceStable(rels, func(i, j int) bool {
		a, b := rels[i], rels[j]
		if a.SourceDatasetID != b.SourceDatasetID {
			return a.SourceDatasetID < b.SourceDatasetID
		}
		if a.TargetDatasetID != b.TargetDatasetID {
			return a.TargetDatasetID < b.TargetDatasetID
		}
		if a.SourceField != b.SourceField {
			return a.SourceField < b.SourceField
		}
		return a.TargetField < b.TargetField
	})
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
