package enumerate

import (
	"strings"

	"vizier/domain/field"
	"vizier/domain/spec"
)

// Enumerate produces the visualization spec skeletons for a set of field
// records. With an empty selection it runs the full case dispatch over the
// whole field universe; with a selection it layers baseline, cascading and
// expanded tiers, deduplicated in that order.
func Enumerate(fields []field.Field, selection []string) []spec.Skeleton {
	if len(selection) == 0 {
		return caseDispatch(fields)
	}
	selected, remaining := splitSelection(fields, selection)

	out := make([]spec.Skeleton, 0, 16)
	out = append(out, baselineTier(selected)...)
	out = append(out, caseDispatch(selected)...)
	out = append(out, expandedTier(selected, remaining)...)
	return dedupe(out)
}

// caseDispatch is the combinatorial core: the field universe is bucketed
// into categorical and quantitative sides and one of eight shape cases is
// chosen by the pair of bucket sizes.
func caseDispatch(fields []field.Field) []spec.Skeleton {
	cats, quants := bucket(fields)
	c, q := len(cats), len(quants)

	var out []spec.Skeleton
	switch {
	case c == 0 && q == 0:
		return nil

	case c == 0 && q == 1:
		out = singleQuantitative(quants[0])

	case c == 0 && q > 1:
		for _, f := range quants {
			out = append(out, singleQuantitative(f)...)
		}
		out = append(out, pairwiseQuantitative(quants)...)

	case c == 1 && q == 0:
		out = singleCategorical(cats[0])

	case c == 1 && q == 1:
		out = append(out, singleQuantitative(quants[0])...)
		out = append(out, singleCategorical(cats[0])...)
		out = append(out, crossCQ(cats[0], quants[0])...)

	case c == 1 && q > 1:
		out = append(out, singleCategorical(cats[0])...)
		for _, f := range quants {
			out = append(out, crossCQ(cats[0], f)...)
		}
		out = append(out, pairwiseQuantitative(quants)...)
		for i := 0; i < len(quants); i++ {
			for j := i + 1; j < len(quants); j++ {
				out = append(out, twoQuantGroupedByCat(cats[0], quants[i], quants[j])...)
			}
		}

	case c > 1 && q == 0:
		for _, f := range cats {
			out = append(out, singleCategorical(f)...)
		}
		out = append(out, categoricalPair(cats)...)

	case c > 1 && q == 1:
		for _, f := range cats {
			out = append(out, crossCQ(f, quants[0])...)
		}
		out = append(out, categoricalPair(cats)...)
		for i := 0; i < len(cats); i++ {
			for j := i + 1; j < len(cats); j++ {
				out = append(out, categoricalPairWithQuantitative(cats[i], cats[j], quants[0])...)
			}
		}

	default: // c > 1 && q > 1
		for _, f := range cats {
			out = append(out, singleCategorical(f)...)
		}
		for _, qf := range quants {
			out = append(out, singleQuantitative(qf)...)
		}
		for _, cf := range cats {
			for _, qf := range quants {
				out = append(out, crossCQ(cf, qf)...)
			}
		}
		for _, cf := range cats {
			for i := 0; i < len(quants); i++ {
				for j := i + 1; j < len(quants); j++ {
					out = append(out, twoQuantGroupedByCat(cf, quants[i], quants[j])...)
				}
			}
		}
		for _, qf := range quants {
			for i := 0; i < len(cats); i++ {
				for j := i + 1; j < len(cats); j++ {
					out = append(out, categoricalPairWithQuantitative(cats[i], cats[j], qf)...)
				}
			}
		}
		out = append(out, pairwiseQuantitative(quants)...)
		out = append(out, categoricalPair(cats)...)
	}
	return dedupe(out)
}

// baselineTier covers each selected field on its own, regardless of how
// the case dispatch over the selection combines them.
func baselineTier(selected []field.Field) []spec.Skeleton {
	var out []spec.Skeleton
	for _, f := range selected {
		switch f.GeneralType {
		case field.Quantitative:
			out = append(out, singleQuantitative(f)...)
		default:
			out = append(out, singleCategorical(f)...)
		}
	}
	return out
}

// expandedTier pairs each selected field with each unselected field of a
// compatible shape, surfacing relationships the selection alone hides.
func expandedTier(selected, remaining []field.Field) []spec.Skeleton {
	var out []spec.Skeleton
	for _, s := range selected {
		for _, r := range remaining {
			sq := s.GeneralType == field.Quantitative
			rq := r.GeneralType == field.Quantitative
			switch {
			case sq && rq:
				out = append(out, spec.Skeleton{
					Procedure:  spec.ProcValueValue,
					Structure:  spec.StructQQ,
					Args:       spec.Args{FieldA: s.Name, FieldB: r.Name},
					Meta:       valueValueMeta(s.Name, r.Name),
					FieldNames: []string{s.Name, r.Name},
				})
			case !sq && rq:
				out = append(out, crossCQ(s, r)...)
			case sq && !rq:
				out = append(out, crossCQ(r, s)...)
			}
		}
	}
	return out
}

func bucket(fields []field.Field) (cats, quants []field.Field) {
	for _, f := range fields {
		switch f.GeneralType {
		case field.Quantitative:
			quants = append(quants, f)
		default:
			cats = append(cats, f)
		}
	}
	return cats, quants
}

func splitSelection(fields []field.Field, selection []string) (selected, remaining []field.Field) {
	want := make(map[string]bool, len(selection))
	for _, name := range selection {
		want[name] = true
	}
	for _, f := range fields {
		if want[f.Name] {
			selected = append(selected, f)
		} else {
			remaining = append(remaining, f)
		}
	}
	return selected, remaining
}

func dedupe(in []spec.Skeleton) []spec.Skeleton {
	seen := make(map[string]bool, len(in))
	out := make([]spec.Skeleton, 0, len(in))
	for _, s := range in {
		key := skeletonKey(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func skeletonKey(s spec.Skeleton) string {
	return strings.Join([]string{
		string(s.Procedure), string(s.Structure),
		s.Args.FieldA, s.Args.FieldB, s.Args.FieldC, string(s.Args.AggFn),
	}, "|")
}
