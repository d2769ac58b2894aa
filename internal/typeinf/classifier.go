// Package typeinf scores columns against a fixed catalog of semantic types
// using weighted heuristics over an order-dependent sample, and resolves the
// single best type per column.
package typeinf

import (
	"strings"

	"vizier/domain/field"
	"vizier/domain/table"
)

// Config controls sampling for type detection.
type Config struct {
	// SampleSize is the number of leading non-empty values examined per
	// column. The sample is taken in row order, not randomly, so repeated
	// classification of the same table is deterministic.
	SampleSize int
}

// DefaultConfig returns the default sampling configuration.
func DefaultConfig() Config {
	return Config{SampleSize: 100}
}

// Result carries the resolved type and normalized confidence scores for every
// column of a table, in column order.
type Result struct {
	Types  []field.Type
	Scores []map[field.Type]float64
}

// Classifier resolves semantic types for table columns.
type Classifier struct {
	cfg     Config
	testers []Tester
	boosts  []headerBoost
}

// NewClassifier creates a classifier with the given config.
func NewClassifier(cfg Config) *Classifier {
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultConfig().SampleSize
	}
	return &Classifier{cfg: cfg, testers: catalog(), boosts: headerBoosts()}
}

// ClassifyColumns resolves a semantic type and score map for every column.
func (c *Classifier) ClassifyColumns(t *table.Table) Result {
	res := Result{
		Types:  make([]field.Type, len(t.Columns)),
		Scores: make([]map[field.Type]float64, len(t.Columns)),
	}
	for i := range t.Columns {
		typ, scores := c.ClassifyColumn(t.Columns[i].Name, t.Columns[i].Values)
		res.Types[i] = typ
		res.Scores[i] = scores
	}
	return res
}

// ClassifyColumn resolves a single column. An entirely empty column defaults
// to string with zero confidence; this is not an error.
func (c *Classifier) ClassifyColumn(header string, values []string) (field.Type, map[field.Type]float64) {
	sample := c.sample(values)
	if len(sample) == 0 {
		return field.TypeString, map[field.Type]float64{field.TypeString: 0}
	}

	scores := make(map[field.Type]float64)
	for _, v := range sample {
		for _, tester := range c.testers {
			if tester.Test(v) {
				scores[tester.Type] += tester.Weight
			}
		}
	}

	lowerHeader := strings.ToLower(header)
	for _, boost := range c.boosts {
		if strings.Contains(lowerHeader, boost.Substring) {
			scores[boost.Type] += boost.Weight * float64(len(sample))
		}
	}

	// Fallback when no tester matched any sampled value.
	if len(scores) == 0 {
		scores[field.TypeString] = 1
	}

	normalize(scores)
	return c.resolve(scores), scores
}

// sample returns the first N non-empty values in row order.
func (c *Classifier) sample(values []string) []string {
	out := make([]string, 0, c.cfg.SampleSize)
	for _, v := range values {
		if v == table.Empty {
			continue
		}
		out = append(out, v)
		if len(out) >= c.cfg.SampleSize {
			break
		}
	}
	return out
}

// resolve picks the argmax type, breaking ties by catalog declaration order.
func (c *Classifier) resolve(scores map[field.Type]float64) field.Type {
	best := field.TypeString
	bestScore := scores[field.TypeString]
	for _, tester := range c.testers {
		if s, ok := scores[tester.Type]; ok && s > bestScore {
			best = tester.Type
			bestScore = s
		}
	}
	return best
}

func normalize(scores map[field.Type]float64) {
	total := 0.0
	for _, s := range scores {
		total += s
	}
	if total == 0 {
		return
	}
	for t := range scores {
		scores[t] /= total
	}
}
