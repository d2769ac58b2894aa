package attach

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"vizier/domain/spec"
	"vizier/domain/table"
	apperrors "vizier/internal/errors"
)

// materialize evaluates one skeleton against a filtered table and returns
// the three output projections. The score projection carries the raw
// numeric series the scorer consumes; visualize and table are row-oriented
// renderings of the same result.
func materialize(t *table.Table, sk spec.Skeleton, maxBins int) (spec.Data, error) {
	switch sk.Procedure {
	case spec.ProcAggregate:
		return materializeAggregate(t, sk)
	case spec.ProcIndexValue:
		return materializeIndexValue(t, sk)
	case spec.ProcValueCount:
		return materializeValueCount(t, sk)
	case spec.ProcBinAggregate:
		return materializeBinAggregate(t, sk, maxBins)
	case spec.ProcValueAggregate:
		return materializeValueAggregate(t, sk)
	case spec.ProcValueValue:
		return materializeValueValue(t, sk)
	case spec.ProcAggregateAggregate:
		return materializeAggregateAggregate(t, sk)
	case spec.ProcValueValueQuantitative:
		return materializeValueValueQuantitative(t, sk)
	}
	return spec.Data{}, apperrors.ValidationErrorf("unknown procedure %q", sk.Procedure)
}

func materializeAggregate(t *table.Table, sk spec.Skeleton) (spec.Data, error) {
	values, err := numericColumn(t, sk.Args.FieldA)
	if err != nil {
		return spec.Data{}, err
	}
	v, err := applyAggFn(sk.Args.AggFn, values)
	if err != nil {
		return spec.Data{}, err
	}
	header := string(sk.Args.AggFn) + "(" + sk.Args.FieldA + ")"
	// The score projection keeps the raw column so univariate tests see the
	// full sample, not the single aggregated number.
	return spec.Data{
		Score:     spec.ScoreData{Series: [][]float64{values}},
		Visualize: []map[string]interface{}{{header: v}},
		Table:     spec.TableData{Columns: []string{header}, Rows: [][]interface{}{{v}}},
	}, nil
}

func materializeIndexValue(t *table.Table, sk spec.Skeleton) (spec.Data, error) {
	col := t.Column(sk.Args.FieldA)
	if col == nil {
		return spec.Data{}, apperrors.ValidationErrorf("unknown field %q", sk.Args.FieldA)
	}
	data := spec.Data{Table: spec.TableData{Columns: []string{"index", sk.Args.FieldA}}}
	series := make([]float64, 0, len(col.Values))
	for i, raw := range col.Values {
		if raw == table.Empty {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		series = append(series, v)
		data.Visualize = append(data.Visualize, map[string]interface{}{"index": i, sk.Args.FieldA: v})
		data.Table.Rows = append(data.Table.Rows, []interface{}{i, v})
	}
	data.Score.Series = [][]float64{series}
	return data, nil
}

func materializeValueCount(t *table.Table, sk spec.Skeleton) (spec.Data, error) {
	col := t.Column(sk.Args.FieldA)
	if col == nil {
		return spec.Data{}, apperrors.ValidationErrorf("unknown field %q", sk.Args.FieldA)
	}
	values, counts := groupCounts(col.Values)

	data := spec.Data{Table: spec.TableData{Columns: []string{sk.Args.FieldA, "count"}}}
	series := make([]float64, len(values))
	for i, v := range values {
		series[i] = float64(counts[i])
		data.Visualize = append(data.Visualize, map[string]interface{}{sk.Args.FieldA: v, "count": counts[i]})
		data.Table.Rows = append(data.Table.Rows, []interface{}{v, counts[i]})
	}
	data.Score.Series = [][]float64{series}
	return data, nil
}

func materializeBinAggregate(t *table.Table, sk spec.Skeleton, maxBins int) (spec.Data, error) {
	values, err := numericColumn(t, sk.Args.FieldA)
	if err != nil {
		return spec.Data{}, err
	}
	bins := freedmanDiaconisBins(values, maxBins)
	counts := make([]int, len(bins))
	for _, v := range values {
		if i := binIndex(bins, v); i >= 0 {
			counts[i]++
		}
	}

	data := spec.Data{Table: spec.TableData{Columns: []string{"bin", "count"}}}
	series := make([]float64, len(bins))
	for i, b := range bins {
		series[i] = float64(counts[i])
		data.Visualize = append(data.Visualize, map[string]interface{}{"bin": b.Label(), "count": counts[i]})
		data.Table.Rows = append(data.Table.Rows, []interface{}{b.Label(), counts[i]})
	}
	data.Score.Series = [][]float64{series}
	return data, nil
}

func materializeValueAggregate(t *table.Table, sk spec.Skeleton) (spec.Data, error) {
	groups, order, err := groupNumeric(t, sk.Args.FieldA, sk.Args.FieldB)
	if err != nil {
		return spec.Data{}, err
	}
	data := spec.Data{Table: spec.TableData{Columns: []string{sk.Args.FieldA, sk.Args.FieldB}}}
	series := make([]float64, 0, len(order))
	for _, g := range order {
		v, err := applyAggFn(sk.Args.AggFn, groups[g])
		if err != nil {
			continue
		}
		series = append(series, v)
		data.Visualize = append(data.Visualize, map[string]interface{}{sk.Args.FieldA: g, sk.Args.FieldB: v})
		data.Table.Rows = append(data.Table.Rows, []interface{}{g, v})
	}
	data.Score.Series = [][]float64{series}
	return data, nil
}

func materializeValueValue(t *table.Table, sk spec.Skeleton) (spec.Data, error) {
	colA, colB := t.Column(sk.Args.FieldA), t.Column(sk.Args.FieldB)
	if colA == nil || colB == nil {
		return spec.Data{}, apperrors.ValidationErrorf("unknown field in pairing %q/%q", sk.Args.FieldA, sk.Args.FieldB)
	}
	data := spec.Data{Table: spec.TableData{Columns: []string{sk.Args.FieldA, sk.Args.FieldB}}}
	var seriesA, seriesB []float64
	rows := t.RowCount()
	for row := 0; row < rows; row++ {
		a := cellOf(colA, row)
		b := cellOf(colB, row)
		if a == table.Empty || b == table.Empty {
			continue
		}
		bv, err := strconv.ParseFloat(b, 64)
		if err != nil {
			continue
		}
		seriesB = append(seriesB, bv)
		var aVal interface{} = a
		if av, err := strconv.ParseFloat(a, 64); err == nil {
			seriesA = append(seriesA, av)
			aVal = av
		}
		data.Visualize = append(data.Visualize, map[string]interface{}{sk.Args.FieldA: aVal, sk.Args.FieldB: bv})
		data.Table.Rows = append(data.Table.Rows, []interface{}{aVal, bv})
	}
	// Both series only when both sides are numeric throughout; a partially
	// numeric left side would misalign the pairs.
	if len(seriesA) == len(seriesB) && len(seriesA) > 0 {
		data.Score.Series = [][]float64{seriesA, seriesB}
	} else {
		data.Score.Series = [][]float64{seriesB}
	}
	return data, nil
}

func materializeAggregateAggregate(t *table.Table, sk spec.Skeleton) (spec.Data, error) {
	groups1, order, err := groupNumeric(t, sk.Args.FieldA, sk.Args.FieldB)
	if err != nil {
		return spec.Data{}, err
	}
	groups2, _, err := groupNumeric(t, sk.Args.FieldA, sk.Args.FieldC)
	if err != nil {
		return spec.Data{}, err
	}
	data := spec.Data{Table: spec.TableData{
		Columns: []string{sk.Args.FieldA, sk.Args.FieldB, sk.Args.FieldC},
	}}
	var series1, series2 []float64
	for _, g := range order {
		v1, err1 := applyAggFn(sk.Args.AggFn, groups1[g])
		v2, err2 := applyAggFn(sk.Args.AggFn, groups2[g])
		if err1 != nil || err2 != nil {
			continue
		}
		series1 = append(series1, v1)
		series2 = append(series2, v2)
		data.Visualize = append(data.Visualize, map[string]interface{}{
			sk.Args.FieldA: g, sk.Args.FieldB: v1, sk.Args.FieldC: v2,
		})
		data.Table.Rows = append(data.Table.Rows, []interface{}{g, v1, v2})
	}
	data.Score.Series = [][]float64{series1, series2}
	return data, nil
}

func materializeValueValueQuantitative(t *table.Table, sk spec.Skeleton) (spec.Data, error) {
	colA, colB, colQ := t.Column(sk.Args.FieldA), t.Column(sk.Args.FieldB), t.Column(sk.Args.FieldC)
	if colA == nil || colB == nil || colQ == nil {
		return spec.Data{}, apperrors.ValidationErrorf("unknown field in connection spec")
	}
	type pair struct{ a, b string }
	weights := make(map[pair]float64)
	var order []pair
	rows := t.RowCount()
	for row := 0; row < rows; row++ {
		a, b, q := cellOf(colA, row), cellOf(colB, row), cellOf(colQ, row)
		if a == table.Empty || b == table.Empty || q == table.Empty {
			continue
		}
		w, err := strconv.ParseFloat(q, 64)
		if err != nil {
			continue
		}
		p := pair{a, b}
		if _, ok := weights[p]; !ok {
			order = append(order, p)
		}
		weights[p] += w
	}

	data := spec.Data{Table: spec.TableData{
		Columns: []string{sk.Args.FieldA, sk.Args.FieldB, sk.Args.FieldC},
	}}
	series := make([]float64, 0, len(order))
	for _, p := range order {
		w := weights[p]
		series = append(series, w)
		data.Visualize = append(data.Visualize, map[string]interface{}{
			sk.Args.FieldA: p.a, sk.Args.FieldB: p.b, sk.Args.FieldC: w,
		})
		data.Table.Rows = append(data.Table.Rows, []interface{}{p.a, p.b, w})
	}
	data.Score.Series = [][]float64{series}
	return data, nil
}

// numericColumn parses a column's non-empty cells as floats, skipping
// unparseable cells.
func numericColumn(t *table.Table, name string) ([]float64, error) {
	col := t.Column(name)
	if col == nil {
		return nil, apperrors.ValidationErrorf("unknown field %q", name)
	}
	out := make([]float64, 0, len(col.Values))
	for _, raw := range col.Values {
		if raw == table.Empty {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			out = append(out, v)
		}
	}
	return out, nil
}

// groupNumeric buckets the numeric values of valueField by the cells of
// groupField, preserving first-seen group order.
func groupNumeric(t *table.Table, groupField, valueField string) (map[string][]float64, []string, error) {
	groupCol, valueCol := t.Column(groupField), t.Column(valueField)
	if groupCol == nil || valueCol == nil {
		return nil, nil, apperrors.ValidationErrorf("unknown field in group-by %q/%q", groupField, valueField)
	}
	groups := make(map[string][]float64)
	var order []string
	rows := t.RowCount()
	for row := 0; row < rows; row++ {
		g := cellOf(groupCol, row)
		raw := cellOf(valueCol, row)
		if g == table.Empty || raw == table.Empty {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if _, ok := groups[g]; !ok {
			order = append(order, g)
		}
		groups[g] = append(groups[g], v)
	}
	return groups, order, nil
}

// groupCounts tallies non-empty values in first-seen order.
func groupCounts(values []string) ([]string, []int) {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == table.Empty {
			continue
		}
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}
	out := make([]int, len(order))
	for i, v := range order {
		out[i] = counts[v]
	}
	return order, out
}

func applyAggFn(fn spec.AggFn, values []float64) (float64, error) {
	if fn == spec.AggCount {
		return float64(len(values)), nil
	}
	if len(values) == 0 {
		return 0, apperrors.ValidationErrorf("no numeric values to aggregate")
	}
	data := stats.Float64Data(values)
	switch fn {
	case spec.AggSum:
		return data.Sum()
	case spec.AggMin:
		return data.Min()
	case spec.AggMax:
		return data.Max()
	case spec.AggMean:
		return data.Mean()
	}
	return 0, apperrors.ValidationErrorf("unknown aggregation %q", fn)
}

func cellOf(col *table.Column, row int) string {
	if row >= len(col.Values) {
		return table.Empty
	}
	return col.Values[row]
}
