package fieldprops

import (
	"context"
	"math/rand"
	"strconv"
	"testing"

	"vizier/domain/field"
	"vizier/domain/table"
)

func newComputer() *Computer {
	return NewComputer(DefaultConfig())
}

func TestCompute_BasicFieldRecords(t *testing.T) {
	tbl := table.New("ds1",
		table.Column{Name: "id", Values: []string{"1", "2", "3", "4", "5"}},
		table.Column{Name: "region", Values: []string{"north", "south", "north", "east", "south"}},
		table.Column{Name: "revenue", Values: []string{"10.5", "20.25", "15.75", "30.0", "12.5"}},
	)

	fields, props, err := newComputer().Compute(context.Background(), tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}

	id := fields[0]
	if !id.IsUnique || !id.IsID {
		t.Errorf("expected id to be unique and an id field: %+v", id)
	}
	if id.UniqueValues != nil {
		t.Error("unique field should not materialize unique values")
	}

	region := fields[1]
	if region.GeneralType != field.Categorical {
		t.Errorf("expected categorical region, got %s", region.GeneralType)
	}
	if len(region.UniqueValues) != 3 {
		t.Errorf("expected 3 unique region values, got %d", len(region.UniqueValues))
	}

	revenue := fields[2]
	if revenue.GeneralType != field.Quantitative {
		t.Errorf("expected quantitative revenue, got %s", revenue.GeneralType)
	}
	if revenue.UniqueValues != nil {
		t.Error("quantitative field should not materialize unique values")
	}
	if revenue.Stats.Mean == nil || revenue.Stats.Min == nil || revenue.Stats.Max == nil {
		t.Error("expected descriptive stats for quantitative field")
	}
	if *revenue.Stats.Min != 10.5 || *revenue.Stats.Max != 30.0 {
		t.Errorf("unexpected min/max: %v %v", *revenue.Stats.Min, *revenue.Stats.Max)
	}

	if props.RowCount != 5 || props.ColumnCount != 3 {
		t.Errorf("unexpected dataset dimensions: %d x %d", props.RowCount, props.ColumnCount)
	}
	if props.Structure != field.StructureLong {
		t.Errorf("expected long structure, got %s", props.Structure)
	}
}

func TestCompute_UniquenessIsMonotonicUnderDuplicates(t *testing.T) {
	c := newComputer()

	values := []string{"a", "b", "c", "d", "e"}
	base := distinctRatio(values)

	// Appending a duplicate can only decrease or hold the distinct ratio.
	for i := 0; i < 10; i++ {
		values = append(values, "a")
		next := distinctRatio(values)
		if next > base {
			t.Fatalf("distinct ratio increased after duplicate: %f > %f", next, base)
		}
		base = next
	}

	tbl := table.New("ds",
		table.Column{Name: "v", Values: values},
	)
	fields, _, err := c.Compute(context.Background(), tbl)
	if err != nil {
		t.Fatal(err)
	}
	if fields[0].IsUnique {
		t.Error("heavily duplicated column should not be unique")
	}
}

func distinctRatio(values []string) float64 {
	return float64(len(distinctValues(values))) / float64(len(values))
}

func TestCompute_NormalityOnGaussianColumn(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := make([]string, 200)
	for i := range values {
		values[i] = strconv.FormatFloat(50+10*rng.NormFloat64(), 'f', 4, 64)
	}

	tbl := table.New("ds", table.Column{Name: "measurement", Values: values})
	fields, _, err := newComputer().Compute(context.Background(), tbl)
	if err != nil {
		t.Fatal(err)
	}

	got := fields[0].Normality
	if got == nil {
		t.Fatal("expected a normality result for a numeric column with 200 samples")
	}
	if !*got {
		t.Error("expected gaussian sample to pass the normality test")
	}
}

func TestCompute_NormalitySkippedBelowEightSamples(t *testing.T) {
	tbl := table.New("ds",
		table.Column{Name: "v", Values: []string{"1.5", "2.5", "3.5"}},
	)
	fields, _, err := newComputer().Compute(context.Background(), tbl)
	if err != nil {
		t.Fatal(err)
	}
	if fields[0].Normality != nil {
		t.Error("expected nil normality below the sample floor")
	}
}

func TestCompute_NormalityNullOnCategorical(t *testing.T) {
	tbl := table.New("ds",
		table.Column{Name: "label", Values: []string{"x", "y", "z", "x", "y", "z", "x", "y", "z"}},
	)
	fields, _, err := newComputer().Compute(context.Background(), tbl)
	if err != nil {
		t.Fatal(err)
	}
	if fields[0].Normality != nil {
		t.Error("categorical columns must not carry a normality result")
	}
}

func TestHierarchy_ParentChildDetection(t *testing.T) {
	// Every city belongs to exactly one region: region -> city hierarchy.
	tbl := table.New("ds",
		table.Column{Name: "region", Values: []string{
			"west", "west", "east", "east", "west", "east",
		}},
		table.Column{Name: "branch", Values: []string{
			"wa", "wb", "ea", "eb", "wa", "ec",
		}},
	)

	fields, _, err := newComputer().Compute(context.Background(), tbl)
	if err != nil {
		t.Fatal(err)
	}

	region, branch := fields[0], fields[1]
	if region.Child != "branch" {
		t.Errorf("expected region to parent branch, got child=%q", region.Child)
	}
	if !branch.IsChild {
		t.Error("expected branch to be marked as child")
	}
	// Irreflexive and asymmetric: the child never points back.
	if branch.Child == region.Name {
		t.Error("two-cycle detected in hierarchy")
	}
	if region.IsChild {
		t.Error("parent must not be marked as child of its own child")
	}
}

func TestHierarchy_RejectsCollidingMapping(t *testing.T) {
	// "shared" appears under both parents: no hierarchy.
	tbl := table.New("ds",
		table.Column{Name: "p", Values: []string{"a", "a", "b", "b"}},
		table.Column{Name: "c", Values: []string{"x", "shared", "y", "shared"}},
	)

	fields, _, err := newComputer().Compute(context.Background(), tbl)
	if err != nil {
		t.Fatal(err)
	}
	if fields[0].Child != "" {
		t.Errorf("expected no hierarchy, got child=%q", fields[0].Child)
	}
	if fields[1].IsChild {
		t.Error("expected no child marking")
	}
}

func TestHierarchy_CapTolerated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HierarchyMaxValues = 3

	parents := make([]string, 400)
	children := make([]string, 400)
	for i := range parents {
		parents[i] = "p" + strconv.Itoa(i%20)
		children[i] = "c" + strconv.Itoa(i%40)
	}

	tbl := table.New("ds",
		table.Column{Name: "p", Values: parents},
		table.Column{Name: "c", Values: children},
	)

	// Must not raise; truncation is silent.
	if _, _, err := NewComputer(cfg).Compute(context.Background(), tbl); err != nil {
		t.Fatalf("capped hierarchy detection should not error: %v", err)
	}
}

func TestDetectTimeSeries_WideLayout(t *testing.T) {
	headers := []string{"2020-01", "2020-02", "2020-03", "value"}
	ts := detectTimeSeries(headers)
	if ts == nil {
		t.Fatal("expected a time series descriptor")
	}
	if ts.StartIndex != 0 || ts.EndIndex != 2 {
		t.Errorf("unexpected bounds: start=%d end=%d", ts.StartIndex, ts.EndIndex)
	}
	if ts.NumElements != 3 {
		t.Errorf("expected 3 elements, got %d", ts.NumElements)
	}
	if ts.StartName != "2020-01" || ts.EndName != "2020-03" {
		t.Errorf("unexpected names: %s %s", ts.StartName, ts.EndName)
	}
	if ts.IntervalSeconds <= 0 {
		t.Errorf("expected positive interval, got %f", ts.IntervalSeconds)
	}

	tbl := table.New("ds",
		table.Column{Name: "2020-01", Values: []string{"1"}},
		table.Column{Name: "2020-02", Values: []string{"2"}},
		table.Column{Name: "2020-03", Values: []string{"3"}},
		table.Column{Name: "value", Values: []string{"4"}},
	)
	_, props, err := newComputer().Compute(context.Background(), tbl)
	if err != nil {
		t.Fatal(err)
	}
	if props.Structure != field.StructureWide {
		t.Errorf("expected wide structure, got %s", props.Structure)
	}
}

func TestDetectTimeSeries_NoRun(t *testing.T) {
	if ts := detectTimeSeries([]string{"name", "2020-01", "value"}); ts != nil {
		t.Errorf("single date header must not form a series: %+v", ts)
	}
	if ts := detectTimeSeries([]string{"a", "b", "c"}); ts != nil {
		t.Errorf("no date headers must not form a series: %+v", ts)
	}
}

func TestCompute_CancelledContextReturnsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tbl := table.New("ds",
		table.Column{Name: "v", Values: []string{"1", "2", "3"}},
	)

	fields, _, err := newComputer().Compute(ctx, tbl)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if fields != nil {
		t.Error("cancelled computation must not return partial output")
	}
}
