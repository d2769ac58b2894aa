package core_test

import (
	"testing"

	"vizier/domain/core"
	"vizier/domain/spec"
)

// TestComputeSpecSetKey_SelectionOrderIndependent tests that selection order
// does not change the key
func TestComputeSpecSetKey_SelectionOrderIndependent(t *testing.T) {
	id := core.DatasetID("ds-1")
	a := core.ComputeSpecSetKey(id, []string{"region", "revenue"}, nil)
	b := core.ComputeSpecSetKey(id, []string{"revenue", "region"}, nil)
	if a != b {
		t.Errorf("selection order must not affect the key: %s vs %s", a, b)
	}

	c := core.ComputeSpecSetKey(id, []string{"region"}, nil)
	if a == c {
		t.Error("different selections must produce different keys")
	}
}

// TestComputeSpecSetKey_EmptyConditionalForms tests that every empty
// conditional shape hashes identically
func TestComputeSpecSetKey_EmptyConditionalForms(t *testing.T) {
	id := core.DatasetID("ds-1")
	selection := []string{"region"}

	bare := core.ComputeSpecSetKey(id, selection, nil)
	typedNil := core.ComputeSpecSetKey(id, selection, (*spec.Conditional)(nil))
	emptyTree := core.ComputeSpecSetKey(id, selection, &spec.Conditional{})

	if typedNil != bare {
		t.Errorf("typed nil conditional must hash like absent: %s vs %s", typedNil, bare)
	}
	if emptyTree != bare {
		t.Errorf("clauseless conditional must hash like absent: %s vs %s", emptyTree, bare)
	}

	filtered := core.ComputeSpecSetKey(id, selection, &spec.Conditional{
		And: []spec.Clause{{Field: "region", Op: spec.OpEq, Value: "east"}},
	})
	if filtered == bare {
		t.Error("a real conditional must change the key")
	}
}
