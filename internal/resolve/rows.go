package resolve

import (
	"fmt"
	"sort"

	"tabular/domain/core"
	"tabular/domain/table"
)

// RowSelector is a closed sum over the supported ways of naming rows.
type RowSelector interface {
	rowSelector()
}

type rowLabels struct{ labels []string }
type rowIndices struct{ indices []int }
type rowPredicate struct {
	pred func(row map[string]table.Value) bool
}
type allRows struct{}

func (rowLabels) rowSelector()    {}
func (rowIndices) rowSelector()   {}
func (rowPredicate) rowSelector() {}
func (allRows) rowSelector()      {}

// RowLabels selects rows by stub label, in the supplied order.
func RowLabels(labels ...string) RowSelector {
	return rowLabels{labels: labels}
}

// RowIndices selects rows by explicit dataset index.
func RowIndices(indices ...int) RowSelector {
	return rowIndices{indices: indices}
}

// RowsWhere selects the rows for which the predicate holds over the
// original (unformatted) row values, as a sorted index set.
func RowsWhere(pred func(row map[string]table.Value) bool) RowSelector {
	return rowPredicate{pred: pred}
}

// AllRows selects every dataset row.
func AllRows() RowSelector {
	return allRows{}
}

// ResolveRows evaluates a selector against the model and returns a
// disjoint list of dataset row indices. Label selections keep the order
// of the supplied list; predicate selections come back sorted. Unmatched
// labels fail with a resolution error; an empty predicate result is an
// empty set, not an error.
func ResolveRows(m *table.Model, sel RowSelector) ([]int, error) {
	ds := m.Dataset()
	switch s := sel.(type) {
	case rowLabels:
		out := make([]int, 0, len(s.labels))
		seen := make(map[int]bool, len(s.labels))
		for _, label := range s.labels {
			idx := -1
			for r := 0; r < ds.NRows(); r++ {
				if m.Stub().RowLabel(r) == label {
					idx = r
					break
				}
			}
			if idx < 0 {
				return nil, core.NewUnknownRowLabelError(label)
			}
			if !seen[idx] {
				seen[idx] = true
				out = append(out, idx)
			}
		}
		return out, nil
	case rowIndices:
		out := make([]int, 0, len(s.indices))
		seen := make(map[int]bool, len(s.indices))
		for _, i := range s.indices {
			if i < 0 || i >= ds.NRows() {
				return nil, fmt.Errorf("%w: row index %d out of range [0,%d)", core.ErrResolution, i, ds.NRows())
			}
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
		return out, nil
	case rowPredicate:
		var out []int
		for r := 0; r < ds.NRows(); r++ {
			if s.pred(ds.Row(r)) {
				out = append(out, r)
			}
		}
		sort.Ints(out)
		return out, nil
	case allRows:
		out := make([]int, ds.NRows())
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	return nil, core.NewConfigError("ResolveRows", "unsupported row selector")
}
