// Package attach materializes spec skeletons against table data: it applies
// conditional filters, computes each procedure's output projections, and
// scores the result.
package attach

import (
	"strconv"
	"strings"

	"vizier/domain/spec"
	"vizier/domain/table"
	apperrors "vizier/internal/errors"
)

// ApplyConditional filters the table down to the rows the conditional
// admits. And-clauses must all hold for a row; or-clauses admit a row when
// any holds. Clauses referencing unknown fields are rejected rather than
// silently ignored.
func ApplyConditional(t *table.Table, cond *spec.Conditional) (*table.Table, error) {
	if cond.IsEmpty() {
		return t, nil
	}
	for _, cl := range append(append([]spec.Clause{}, cond.And...), cond.Or...) {
		if t.Column(cl.Field) == nil {
			return nil, apperrors.ValidationErrorf("conditional references unknown field %q", cl.Field)
		}
		if !validOperator(cl.Op) {
			return nil, apperrors.ValidationErrorf("conditional uses unknown operator %q", cl.Op)
		}
	}

	rows := t.RowCount()
	keep := make([]bool, rows)
	for row := 0; row < rows; row++ {
		keep[row] = rowMatches(t, row, cond)
	}
	return t.Filter(keep), nil
}

func rowMatches(t *table.Table, row int, cond *spec.Conditional) bool {
	for _, cl := range cond.And {
		if !clauseHolds(cellAt(t, row, cl.Field), cl) {
			return false
		}
	}
	if len(cond.Or) == 0 {
		return true
	}
	for _, cl := range cond.Or {
		if clauseHolds(cellAt(t, row, cl.Field), cl) {
			return true
		}
	}
	return false
}

func cellAt(t *table.Table, row int, name string) string {
	col := t.Column(name)
	if col == nil || row >= len(col.Values) {
		return table.Empty
	}
	return col.Values[row]
}

// clauseHolds compares numerically when both sides parse as numbers,
// otherwise as case-insensitive strings. Ordered operators on non-numeric
// values fall back to lexicographic comparison.
func clauseHolds(cell string, cl spec.Clause) bool {
	if cell == table.Empty {
		return false
	}
	a, errA := strconv.ParseFloat(cell, 64)
	b, errB := strconv.ParseFloat(cl.Value, 64)
	if errA == nil && errB == nil {
		return compareFloats(a, b, cl.Op)
	}
	return compareStrings(strings.ToLower(cell), strings.ToLower(cl.Value), cl.Op)
}

func compareFloats(a, b float64, op spec.Operator) bool {
	switch op {
	case spec.OpEq:
		return a == b
	case spec.OpNeq:
		return a != b
	case spec.OpGt:
		return a > b
	case spec.OpGte:
		return a >= b
	case spec.OpLt:
		return a < b
	case spec.OpLte:
		return a <= b
	}
	return false
}

func compareStrings(a, b string, op spec.Operator) bool {
	switch op {
	case spec.OpEq:
		return a == b
	case spec.OpNeq:
		return a != b
	case spec.OpGt:
		return a > b
	case spec.OpGte:
		return a >= b
	case spec.OpLt:
		return a < b
	case spec.OpLte:
		return a <= b
	}
	return false
}

func validOperator(op spec.Operator) bool {
	switch op {
	case spec.OpEq, spec.OpNeq, spec.OpGt, spec.OpGte, spec.OpLt, spec.OpLte:
		return true
	}
	return false
}
