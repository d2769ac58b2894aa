// Package fieldprops computes per-dataset field property records: semantic
// types, descriptive statistics, uniqueness, normality, and the intra-dataset
// parent/child hierarchy.
package fieldprops

import (
	"context"
	"fmt"
	"strconv"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"vizier/domain/field"
	"vizier/domain/table"
	"vizier/internal/typeinf"
)

// Config holds the externally supplied caps and thresholds.
type Config struct {
	SampleSize          int
	UniquenessThreshold float64
	HierarchyMaxValues  int
	MaxUniqueValues     int
	Percentiles         []int
}

// DefaultConfig returns the stated defaults.
func DefaultConfig() Config {
	return Config{
		SampleSize:          100,
		UniquenessThreshold: 0.95,
		HierarchyMaxValues:  100,
		MaxUniqueValues:     1000,
		Percentiles:         []int{25, 75},
	}
}

// Computer derives field and dataset property records from a table.
type Computer struct {
	cfg        Config
	classifier *typeinf.Classifier
}

// NewComputer creates a computer with the given config.
func NewComputer(cfg Config) *Computer {
	if cfg.UniquenessThreshold <= 0 {
		cfg = DefaultConfig()
	}
	return &Computer{
		cfg:        cfg,
		classifier: typeinf.NewClassifier(typeinf.Config{SampleSize: cfg.SampleSize}),
	}
}

// Compute returns one Field per column in column-index order, plus the
// per-dataset structural record. Columns are profiled independently; the
// hierarchy pass runs after every column result is in (barrier). The function
// is a pure computation over the table: re-running it on the same input
// produces the same records modulo floating point.
func (c *Computer) Compute(ctx context.Context, t *table.Table) ([]field.Field, field.DatasetProperties, error) {
	fields := make([]field.Field, len(t.Columns))

	g, gctx := errgroup.WithContext(ctx)
	for i := range t.Columns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fields[i] = c.computeColumn(t, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// No partial output on cancellation.
		return nil, field.DatasetProperties{}, err
	}

	detectHierarchy(t, fields, c.cfg.HierarchyMaxValues)

	props := c.datasetProperties(t, fields)
	return fields, props, nil
}

func (c *Computer) computeColumn(t *table.Table, idx int) field.Field {
	col := &t.Columns[idx]
	typ, scores := c.classifier.ClassifyColumn(col.Name, col.Values)
	general := field.GeneralTypeOf(typ)

	nonEmpty := col.NonEmpty()
	distinct := distinctValues(nonEmpty)

	isUnique := false
	if len(nonEmpty) > 0 {
		ratio := float64(len(distinct)) / float64(len(nonEmpty))
		// Fixed threshold regardless of column size.
		isUnique = ratio >= c.cfg.UniquenessThreshold
	}

	f := field.Field{
		DatasetID:   t.DatasetID,
		Name:        col.Name,
		Index:       idx,
		Type:        typ,
		GeneralType: general,
		TypeScores:  scores,
		IsUnique:    isUnique,
		IsID:        typ == field.TypeInteger && isUnique,
	}

	// Unique-value sets are skipped for quantitative or unique fields to
	// avoid materializing unbounded sets, and capped otherwise.
	if general != field.Quantitative && !isUnique {
		if len(distinct) > c.cfg.MaxUniqueValues {
			distinct = distinct[:c.cfg.MaxUniqueValues]
		}
		f.UniqueValues = distinct
	}

	numeric := coerceFloats(nonEmpty)
	f.Stats = c.describe(numeric)

	if general == field.Quantitative && len(numeric) == len(nonEmpty) {
		f.Normality = testNormality(numeric)
	}

	return f
}

// describe computes min/max/mean/median/std plus configured percentiles.
// Non-numeric columns get degenerate (nil) stats rather than an error.
func (c *Computer) describe(numeric []float64) field.Stats {
	if len(numeric) == 0 {
		return field.Stats{}
	}

	s := field.Stats{Percentiles: make(map[string]*float64, len(c.cfg.Percentiles))}
	s.Min = statValue(stats.Min(numeric))
	s.Max = statValue(stats.Max(numeric))
	s.Mean = statValue(stats.Mean(numeric))
	s.Median = statValue(stats.Median(numeric))
	s.Std = statValue(stats.StandardDeviation(numeric))
	for _, p := range c.cfg.Percentiles {
		s.Percentiles[fmt.Sprintf("p%d", p)] = statValue(stats.Percentile(numeric, float64(p)))
	}
	return s
}

func (c *Computer) datasetProperties(t *table.Table, fields []field.Field) field.DatasetProperties {
	props := field.DatasetProperties{
		DatasetID:   t.DatasetID,
		RowCount:    t.RowCount(),
		ColumnCount: t.ColumnCount(),
		FieldNames:  make([]string, len(fields)),
		FieldTypes:  make([]field.Type, len(fields)),
	}
	for i := range fields {
		props.FieldNames[i] = fields[i].Name
		props.FieldTypes[i] = fields[i].Type
	}

	props.Structure = field.StructureLong
	if ts := detectTimeSeries(t.ColumnNames()); ts != nil {
		props.Structure = field.StructureWide
		props.TimeSeries = ts
	}
	return props
}

// distinctValues returns distinct non-empty values in first-seen order.
func distinctValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// coerceFloats parses every value it can; unparseable values are dropped.
func coerceFloats(values []string) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			out = append(out, f)
		}
	}
	return out
}

func statValue(v float64, err error) *float64 {
	if err != nil {
		return nil
	}
	return &v
}
