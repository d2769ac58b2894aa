package enumerate

import (
	"vizier/domain/field"
	"vizier/domain/spec"
)

// Generator functions are pure: given field metadata they return skeletons
// and never touch table values. The attacher evaluates them later.

// singleQuantitative produces the baseline summaries for one quantitative
// field: one plain aggregate per aggregation function, a binned histogram,
// and either a frequency count (repeating values) or an index series
// (every value distinct, so counting is pointless).
func singleQuantitative(f field.Field) []spec.Skeleton {
	skeletons := make([]spec.Skeleton, 0, len(spec.AggFns)+2)
	for _, fn := range spec.AggFns {
		skeletons = append(skeletons, spec.Skeleton{
			Procedure:  spec.ProcAggregate,
			Structure:  spec.StructQ,
			Args:       spec.Args{FieldA: f.Name, AggFn: fn},
			Meta:       aggregateMeta(fn, f.Name),
			FieldNames: []string{f.Name},
		})
	}
	if f.IsUnique {
		skeletons = append(skeletons, spec.Skeleton{
			Procedure:  spec.ProcIndexValue,
			Structure:  spec.StructOQ,
			Args:       spec.Args{FieldA: f.Name},
			Meta:       indexValueMeta(f.Name),
			FieldNames: []string{f.Name},
		})
	} else {
		skeletons = append(skeletons, spec.Skeleton{
			Procedure:  spec.ProcValueCount,
			Structure:  spec.StructCQ,
			Args:       spec.Args{FieldA: f.Name},
			Meta:       valueCountMeta(f.Name),
			FieldNames: []string{f.Name},
		})
	}
	skeletons = append(skeletons, spec.Skeleton{
		Procedure:  spec.ProcBinAggregate,
		Structure:  spec.StructBQ,
		Args:       spec.Args{FieldA: f.Name, AggFn: spec.AggCount},
		Meta:       binAggregateMeta(f.Name),
		FieldNames: []string{f.Name},
	})
	return skeletons
}

// singleCategorical produces the frequency summary for one categorical
// field. Identifier-like fields are skipped: every count would be one.
func singleCategorical(f field.Field) []spec.Skeleton {
	if f.IsUnique || f.IsID {
		return nil
	}
	return []spec.Skeleton{{
		Procedure:  spec.ProcValueCount,
		Structure:  spec.StructCQ,
		Args:       spec.Args{FieldA: f.Name},
		Meta:       valueCountMeta(f.Name),
		FieldNames: []string{f.Name},
	}}
}

// crossCQ pairs one categorical with one quantitative field. A unique
// categorical acts as a row label, so the raw pairing is emitted instead
// of a group-by which would aggregate singleton groups.
func crossCQ(c, q field.Field) []spec.Skeleton {
	if c.IsUnique {
		return []spec.Skeleton{{
			Procedure:  spec.ProcValueValue,
			Structure:  spec.StructCQ,
			Args:       spec.Args{FieldA: c.Name, FieldB: q.Name},
			Meta:       valueValueMeta(c.Name, q.Name),
			FieldNames: []string{c.Name, q.Name},
		}}
	}
	skeletons := make([]spec.Skeleton, 0, len(spec.AggFns))
	for _, fn := range spec.AggFns {
		skeletons = append(skeletons, spec.Skeleton{
			Procedure:  spec.ProcValueAggregate,
			Structure:  spec.StructCQ,
			Args:       spec.Args{FieldA: c.Name, FieldB: q.Name, AggFn: fn},
			Meta:       valueAggregateMeta(fn, q.Name, c.Name),
			FieldNames: []string{c.Name, q.Name},
		})
	}
	return skeletons
}

// pairwiseQuantitative is a deliberate no-op. Raw scatter pairs over
// untransformed quantitative columns produced noise in practice; the slot
// stays so derived-column pairings can land here.
func pairwiseQuantitative(_ []field.Field) []spec.Skeleton {
	return nil
}

// categoricalPair is reserved for co-occurrence summaries of two
// categorical fields. Without a weighting quantity the output degenerates
// to a contingency count, which value:count already covers per field.
func categoricalPair(_ []field.Field) []spec.Skeleton {
	return nil
}

// categoricalPairWithQuantitative links two categorical fields weighted by
// one quantitative field.
func categoricalPairWithQuantitative(c1, c2, q field.Field) []spec.Skeleton {
	return []spec.Skeleton{{
		Procedure:  spec.ProcValueValueQuantitative,
		Structure:  spec.StructCCQ,
		Args:       spec.Args{FieldA: c1.Name, FieldB: c2.Name, FieldC: q.Name},
		Meta:       connectionMeta(c1.Name, c2.Name, q.Name),
		FieldNames: []string{c1.Name, c2.Name, q.Name},
	}}
}

// twoQuantGroupedByCat aggregates two quantitative fields independently
// under one categorical group-by. Mean is the only aggregation emitted;
// the other functions add volume without adding shape.
func twoQuantGroupedByCat(c, q1, q2 field.Field) []spec.Skeleton {
	if c.IsUnique {
		return nil
	}
	return []spec.Skeleton{{
		Procedure:  spec.ProcAggregateAggregate,
		Structure:  spec.StructQQ,
		Args:       spec.Args{FieldA: c.Name, FieldB: q1.Name, FieldC: q2.Name, AggFn: spec.AggMean},
		Meta:       aggregateAggregateMeta(spec.AggMean, q1.Name, q2.Name, c.Name),
		FieldNames: []string{c.Name, q1.Name, q2.Name},
	}}
}
