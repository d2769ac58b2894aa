package testkit

import (
	"strconv"
	"strings"
	"testing"

	"vizier/domain/core"
)

func TestSalesDataGenerator_Basic(t *testing.T) {
	config := SalesGeneratorConfig{
		Orders: 50, // Small for testing
		Seed:   42,
	}

	generator := NewSalesDataGenerator(config)
	tbl := generator.Generate(core.NewDatasetID())

	if tbl.RowCount() != 50 {
		t.Errorf("Expected 50 rows, got %d", tbl.RowCount())
	}
	if len(tbl.Columns) != 6 {
		t.Errorf("Expected 6 columns, got %d", len(tbl.Columns))
	}

	for i, col := range tbl.Columns {
		if col.Name == "" {
			t.Errorf("Column %d has empty name", i)
		}
		if len(col.Values) != tbl.RowCount() {
			t.Errorf("Column %q has %d values, expected %d", col.Name, len(col.Values), tbl.RowCount())
		}
	}
}

func TestSalesDataGenerator_Deterministic(t *testing.T) {
	config := DefaultSalesConfig()
	config.Orders = 100

	first := NewSalesDataGenerator(config).Generate(core.DatasetID("d"))
	second := NewSalesDataGenerator(config).Generate(core.DatasetID("d"))

	for i, col := range first.Columns {
		other := second.Columns[i]
		if col.Name != other.Name {
			t.Fatalf("Column %d name mismatch: %q vs %q", i, col.Name, other.Name)
		}
		for j, v := range col.Values {
			if v != other.Values[j] {
				t.Fatalf("Column %q row %d differs: %q vs %q", col.Name, j, v, other.Values[j])
			}
		}
	}
}

func TestSalesDataGenerator_HasExpectedFields(t *testing.T) {
	tbl := NewSalesDataGenerator(DefaultSalesConfig()).Generate(core.NewDatasetID())

	expected := []string{"order_id", "region", "city", "units", "revenue", "discount"}
	for i, name := range expected {
		if tbl.Columns[i].Name != name {
			t.Errorf("Column %d: expected %q, got %q", i, name, tbl.Columns[i].Name)
		}
	}

	seen := make(map[string]bool)
	for _, id := range tbl.Columns[0].Values {
		if seen[id] {
			t.Errorf("Duplicate order_id %q", id)
		}
		seen[id] = true
	}
}

func TestSalesData_Patterns(t *testing.T) {
	tbl := NewSalesDataGenerator(DefaultSalesConfig()).Generate(core.NewDatasetID())

	regionCol := tbl.Columns[1].Values
	cityCol := tbl.Columns[2].Values
	unitsCol := tbl.Columns[3].Values

	// Every city belongs to exactly one region and carries its prefix.
	cityRegion := make(map[string]string)
	for i, city := range cityCol {
		region := regionCol[i]
		if prev, ok := cityRegion[city]; ok && prev != region {
			t.Errorf("City %q maps to both %q and %q", city, prev, region)
		}
		cityRegion[city] = region
		if !strings.HasPrefix(city, region+"-") {
			t.Errorf("City %q does not carry region prefix %q", city, region)
		}
	}

	// Weighted sampling should leave east the largest region.
	counts := make(map[string]int)
	for _, region := range regionCol {
		counts[region]++
	}
	for _, region := range []string{"west", "north", "south"} {
		if counts["east"] <= counts[region] {
			t.Errorf("Expected east to outnumber %s: east=%d %s=%d", region, counts["east"], region, counts[region])
		}
	}

	// Basket sizes stay inside the clamp.
	for i, raw := range unitsCol {
		units, err := strconv.Atoi(raw)
		if err != nil {
			t.Fatalf("Row %d units %q not an integer: %v", i, raw, err)
		}
		if units < 1 || units > 12 {
			t.Errorf("Row %d units %d outside [1, 12]", i, units)
		}
	}
}
