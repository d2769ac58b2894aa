// Package testkit provides synthetic tabular fixtures and re-exports the
// in-memory port implementations for tests.
package testkit

import (
	"strconv"

	"vizier/adapters/memory"
	"vizier/domain/core"
	"vizier/domain/table"
)

// In-memory ports, aliased so tests read naturally.
var (
	NewStaticSource        = memory.NewStaticSource
	NewMemFieldRepo        = memory.NewFieldRepo
	NewMemDatasetRepo      = memory.NewDatasetRepo
	NewMemRelationshipRepo = memory.NewRelationshipRepo
	NewMemSpecRepo         = memory.NewSpecRepo
)

// StaticSource aliases the in-memory table source.
type StaticSource = memory.StaticSource

// SalesTable is a small mixed-type fixture: one categorical dimension with a
// child branch column and one quantitative measure.
func SalesTable(id core.DatasetID) *table.Table {
	return table.New(id,
		table.Column{Name: "region", Values: []string{"east", "west", "east", "north", "west", "east"}},
		table.Column{Name: "branch", Values: []string{"e1", "w1", "e2", "n1", "w2", "e1"}},
		table.Column{Name: "revenue", Values: []string{"120", "85", "240", "60", "310", "95"}},
	)
}

// IDAgeTable pairs a unique identifier column with a quantitative column.
func IDAgeTable(id core.DatasetID, rows int) *table.Table {
	ids := make([]string, rows)
	ages := make([]string, rows)
	for i := 0; i < rows; i++ {
		ids[i] = "u" + strconv.Itoa(i+1)
		ages[i] = strconv.Itoa(18 + (i*7)%50)
	}
	return table.New(id,
		table.Column{Name: "id", Values: ids},
		table.Column{Name: "age", Values: ages},
	)
}

// WideTimeSeriesTable has a contiguous run of month headers, classifying
// the dataset as wide.
func WideTimeSeriesTable(id core.DatasetID) *table.Table {
	return table.New(id,
		table.Column{Name: "country", Values: []string{"US", "CA"}},
		table.Column{Name: "2020-01", Values: []string{"10", "20"}},
		table.Column{Name: "2020-02", Values: []string{"11", "21"}},
		table.Column{Name: "2020-03", Values: []string{"12", "22"}},
	)
}
