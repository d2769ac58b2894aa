// Package table defines the canonical in-memory tabular dataset consumed by
// the inference engine. The upstream data-access collaborator is responsible
// for file parsing and delimiter detection; by the time a Table exists, column
// order is stable and missing cells are represented by the single canonical
// Empty marker.
package table

import (
	"vizier/domain/core"
)

// Empty is the canonical marker for a missing or null cell.
const Empty = ""

// Column is one ordered column of scalar cell values.
type Column struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// NonEmpty returns the column's non-empty values in row order.
func (c *Column) NonEmpty() []string {
	out := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		if v != Empty {
			out = append(out, v)
		}
	}
	return out
}

// Table is a materialized tabular dataset with stable column ordering.
type Table struct {
	DatasetID core.DatasetID `json:"dataset_id"`
	Columns   []Column       `json:"columns"`
}

// New creates a table from ordered columns.
func New(id core.DatasetID, columns ...Column) *Table {
	return &Table{DatasetID: id, Columns: columns}
}

// RowCount returns the number of rows (length of the longest column).
func (t *Table) RowCount() int {
	max := 0
	for i := range t.Columns {
		if n := len(t.Columns[i].Values); n > max {
			max = n
		}
	}
	return max
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// Column returns the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// Cell returns the value at (row, col index), or Empty when out of range.
// Short columns are padded with the empty marker.
func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Columns) {
		return Empty
	}
	if row < 0 || row >= len(t.Columns[col].Values) {
		return Empty
	}
	return t.Columns[col].Values[row]
}

// Filter returns a new table containing only the rows where keep[row] is
// true. Rows beyond len(keep) are dropped.
func (t *Table) Filter(keep []bool) *Table {
	out := &Table{DatasetID: t.DatasetID, Columns: make([]Column, len(t.Columns))}
	for i := range t.Columns {
		col := Column{Name: t.Columns[i].Name}
		for row, v := range t.Columns[i].Values {
			if row < len(keep) && keep[row] {
				col.Values = append(col.Values, v)
			}
		}
		out.Columns[i] = col
	}
	return out
}
