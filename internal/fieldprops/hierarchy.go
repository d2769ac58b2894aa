package fieldprops

import (
	"vizier/domain/field"
	"vizier/domain/table"
)

// detectHierarchy marks parent→child pointers between categorical fields.
// For each ordered left-to-right pair of non-unique categorical fields, the
// candidate parent's distinct values are grouped against the candidate
// child's values; the pair is a hierarchy when no child value appears under
// two different parent values (the concatenated per-parent value sets are
// injective). Looking only rightward keeps the forest acyclic and the
// relation asymmetric by construction.
//
// maxValues caps the number of distinct parent values examined; pairs above
// the cap are skipped silently. This is the dominant cost center of the
// field-property pass.
func detectHierarchy(t *table.Table, fields []field.Field, maxValues int) {
	for i := range fields {
		parent := &fields[i]
		if !hierarchyCandidate(parent) || parent.Child != "" {
			continue
		}
		for j := i + 1; j < len(fields); j++ {
			child := &fields[j]
			if !hierarchyCandidate(child) || child.IsChild {
				continue
			}
			if isInjectiveMapping(t, i, j, maxValues) {
				parent.Child = child.Name
				child.IsChild = true
				break
			}
		}
	}
}

func hierarchyCandidate(f *field.Field) bool {
	return f.GeneralType == field.Categorical && !f.IsUnique
}

// isInjectiveMapping checks that every value of column childIdx occurs under
// exactly one value of column parentIdx, by tracking the owning parent value
// of each child value across rows.
func isInjectiveMapping(t *table.Table, parentIdx, childIdx, maxValues int) bool {
	parentCol := &t.Columns[parentIdx]
	rows := len(parentCol.Values)

	owner := make(map[string]string) // child value -> parent value
	parents := make(map[string]struct{})

	for row := 0; row < rows; row++ {
		pv := t.Cell(row, parentIdx)
		cv := t.Cell(row, childIdx)
		if pv == table.Empty || cv == table.Empty {
			continue
		}

		if _, seen := parents[pv]; !seen {
			if len(parents) >= maxValues {
				// Cap reached: stop examining further parent values and
				// judge the mapping on what was sampled.
				break
			}
			parents[pv] = struct{}{}
		}

		if prev, ok := owner[cv]; ok {
			if prev != pv {
				return false
			}
			continue
		}
		owner[cv] = pv
	}

	// A mapping over fewer than two parent values carries no structure.
	return len(parents) >= 2 && len(owner) >= len(parents)
}
