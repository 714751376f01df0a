package table

import (
	"tabular/domain/core"
)

// Column is one named, ordered sequence of typed cells.
type Column struct {
	Name   string
	Values []Value
}

// Dataset is an ordered sequence of equal-length named columns. The row
// count is fixed once ingested; the model mutates metadata around the
// dataset, never the dataset storage order itself.
type Dataset struct {
	Columns []Column
}

// NewDataset builds a dataset from columns, validating rectangularity.
func NewDataset(cols ...Column) (Dataset, error) {
	if len(cols) == 0 {
		return Dataset{}, core.NewConfigError("NewDataset", "at least one column required")
	}
	n := len(cols[0].Values)
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c.Name == "" {
			return Dataset{}, core.NewConfigError("NewDataset", "column with empty name")
		}
		if seen[c.Name] {
			return Dataset{}, core.NewConfigError("NewDataset", "duplicate column name "+c.Name)
		}
		seen[c.Name] = true
		if len(c.Values) != n {
			return Dataset{}, core.NewConfigError("NewDataset", "ragged column "+c.Name)
		}
	}
	return Dataset{Columns: cols}, nil
}

// NRows returns the fixed row count.
func (d Dataset) NRows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// NCols returns the column count.
func (d Dataset) NCols() int {
	return len(d.Columns)
}

// ColumnIndex returns the storage index of a named column, or -1.
func (d Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column name). Missing column yields NA.
func (d Dataset) Cell(row int, name string) Value {
	i := d.ColumnIndex(name)
	if i < 0 || row < 0 || row >= d.NRows() {
		return NA()
	}
	return d.Columns[i].Values[row]
}

// Row returns a name-keyed view of one dataset row.
func (d Dataset) Row(row int) map[string]Value {
	out := make(map[string]Value, len(d.Columns))
	for _, c := range d.Columns {
		out[c.Name] = c.Values[row]
	}
	return out
}

// ColumnNames returns the names in storage order.
func (d Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}
