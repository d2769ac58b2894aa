package relationship

import (
	"context"
	"math"
	"testing"

	"vizier/domain/core"
	"vizier/domain/field"
	"vizier/domain/relation"
)

func categorical(ds core.DatasetID, name string, uniques []string) field.Field {
	return field.Field{
		DatasetID:    ds,
		Name:         name,
		Type:         field.TypeString,
		GeneralType:  field.Categorical,
		UniqueValues: uniques,
	}
}

func TestJaccardDistance_Properties(t *testing.T) {
	a := toSet([]string{"US", "CA", "MX"})
	b := toSet([]string{"US", "CA"})

	// Symmetric.
	if JaccardDistance(a, b) != JaccardDistance(b, a) {
		t.Error("Jaccard distance must be symmetric")
	}

	// Bounded in [0, 1].
	d := JaccardDistance(a, b)
	if d < 0 || d > 1 {
		t.Errorf("distance out of bounds: %f", d)
	}

	// Self-distance is 1.0 for any non-empty set.
	if JaccardDistance(a, a) != 1.0 {
		t.Errorf("self distance should be 1.0, got %f", JaccardDistance(a, a))
	}

	// Disjoint sets have distance 0.
	c := toSet([]string{"FR", "DE"})
	if JaccardDistance(a, c) != 0 {
		t.Errorf("disjoint sets should have distance 0, got %f", JaccardDistance(a, c))
	}
}

func TestDetect_CountryOverlapScenario(t *testing.T) {
	// Set A = {US, CA, MX}, set B = {US, CA}: distance 2/3, A larger -> N1.
	props := map[core.DatasetID][]field.Field{
		"dsA": {categorical("dsA", "country", []string{"US", "CA", "MX"})},
		"dsB": {categorical("dsB", "country", []string{"US", "CA"})},
	}

	d := NewDetector(Config{Threshold: 0.5})
	rels, _, err := d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}

	rel := rels[0]
	if math.Abs(rel.Distance-2.0/3.0) > 1e-9 {
		t.Errorf("expected distance 2/3, got %f", rel.Distance)
	}
	if rel.Cardinality != relation.ManyToOne {
		t.Errorf("expected N1, got %s", rel.Cardinality)
	}
}

func TestDetect_CardinalityClassification(t *testing.T) {
	cases := []struct {
		lenA, lenB int
		want       relation.Cardinality
	}{
		{3, 3, relation.OneToOne},
		{5, 3, relation.ManyToOne},
		{3, 5, relation.OneToMany},
	}
	for _, tc := range cases {
		if got := classifyCardinality(tc.lenA, tc.lenB); got != tc.want {
			t.Errorf("classifyCardinality(%d, %d) = %s, want %s",
				tc.lenA, tc.lenB, got, tc.want)
		}
	}
}

func TestDetect_BelowThresholdEmitsNothing(t *testing.T) {
	props := map[core.DatasetID][]field.Field{
		"dsA": {categorical("dsA", "x", []string{"a", "b", "c", "d"})},
		"dsB": {categorical("dsB", "y", []string{"a", "e", "f", "g"})},
	}

	d := NewDetector(Config{Threshold: 0.5})
	rels, _, err := d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(rels) != 0 {
		t.Errorf("expected no relationships below threshold, got %d", len(rels))
	}
}

func TestDetect_SkipsFieldsWithoutUniqueValues(t *testing.T) {
	quantitative := field.Field{
		DatasetID:   "dsA",
		Name:        "amount",
		Type:        field.TypeDecimal,
		GeneralType: field.Quantitative,
	}
	props := map[core.DatasetID][]field.Field{
		"dsA": {quantitative},
		"dsB": {categorical("dsB", "x", []string{"a", "b"})},
	}

	d := NewDetector(DefaultConfig())
	rels, _, err := d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(rels) != 0 {
		t.Errorf("quantitative fields must not participate, got %d relationships", len(rels))
	}
}

func TestDetect_SkipsAlreadyComparedPairs(t *testing.T) {
	props := map[core.DatasetID][]field.Field{
		"dsA": {categorical("dsA", "x", []string{"a", "b"})},
		"dsB": {categorical("dsB", "y", []string{"a", "b"})},
	}

	d := NewDetector(Config{Threshold: 0.5})
	first, commit, err := d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 relationship on first pass, got %d", len(first))
	}
	commit()

	// Second pass over the same datasets finds nothing new.
	second, commit, err := d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 0 {
		t.Errorf("expected already-compared pair to be skipped, got %d", len(second))
	}
	commit()

	// Adding a third dataset only compares it against the existing two.
	props["dsC"] = []field.Field{categorical("dsC", "z", []string{"a", "b"})}
	third, _, err := d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(third) != 2 {
		t.Errorf("expected 2 new relationships for the added dataset, got %d", len(third))
	}
}

func TestDetect_RetryAfterCancellation(t *testing.T) {
	props := map[core.DatasetID][]field.Field{
		"dsA": {categorical("dsA", "country", []string{"US", "CA", "MX"})},
		"dsB": {categorical("dsB", "country", []string{"US", "CA"})},
	}

	d := NewDetector(Config{Threshold: 0.5})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	rels, commit, err := d.Detect(cancelled, props)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if rels != nil || commit != nil {
		t.Fatal("failed run must return nothing")
	}

	// A retry with identical inputs must still see the pair.
	rels, commit, err = d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(rels) != 1 {
		t.Fatalf("retry after cancellation must re-compare the pair, got %d relationships", len(rels))
	}
	commit()
}

func TestDetect_UncommittedRunLeavesPairsPending(t *testing.T) {
	props := map[core.DatasetID][]field.Field{
		"dsA": {categorical("dsA", "x", []string{"a", "b"})},
		"dsB": {categorical("dsB", "y", []string{"a", "b"})},
	}

	d := NewDetector(Config{Threshold: 0.5})

	// First run succeeds but the caller never commits, as after a
	// persistence failure.
	first, _, err := d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(first))
	}

	second, commit, err := d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 1 {
		t.Fatalf("uncommitted pair must be re-compared, got %d relationships", len(second))
	}
	commit()

	third, _, err := d.Detect(context.Background(), props)
	if err != nil {
		t.Fatal(err)
	}
	if len(third) != 0 {
		t.Errorf("committed pair must be skipped, got %d relationships", len(third))
	}
}
