// Package summary computes per-group and grand aggregate rows from
// recorded summary-row definitions and materializes them into the table
// model immediately before rendering.
package summary

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"tabular/domain/core"
	"tabular/domain/table"
	"tabular/internal/format"
)

// Aggregation function names accepted in summary definitions.
const (
	AggMean   = "mean"
	AggSum    = "sum"
	AggSD     = "sd"
	AggMin    = "min"
	AggMax    = "max"
	AggMedian = "median"
	AggQ1     = "q1"
	AggQ3     = "q3"
)

// apply runs one named aggregation over a column's numeric values.
// An empty input, or a non-finite result (sample sd over a single
// value), yields a missing result (NaN, ok=false).
func apply(fn string, values []float64) (float64, bool, error) {
	if len(values) == 0 {
		return math.NaN(), false, nil
	}
	switch fn {
	case AggMean:
		v, err := stats.Mean(values)
		return finite(v, err)
	case AggSum:
		v, err := stats.Sum(values)
		return finite(v, err)
	case AggSD:
		v, err := stats.StandardDeviationSample(values)
		return finite(v, err)
	case AggMin:
		v, err := stats.Min(values)
		return finite(v, err)
	case AggMax:
		v, err := stats.Max(values)
		return finite(v, err)
	case AggMedian:
		v, err := stats.Median(values)
		return finite(v, err)
	case AggQ1, AggQ3:
		p := 0.25
		if fn == AggQ3 {
			p = 0.75
		}
		sorted := make([]float64, len(values))
		copy(sorted, values)
		sort.Float64s(sorted)
		return finite(stat.Quantile(p, stat.Empirical, sorted, nil), nil)
	}
	return 0, false, core.NewConfigError("summary", "unknown aggregation function "+fn)
}

func finite(v float64, err error) (float64, bool, error) {
	ok := err == nil && !math.IsNaN(v) && !math.IsInf(v, 0)
	return v, ok, err
}

// KnownAggregation reports whether fn is an accepted function name.
func KnownAggregation(fn string) bool {
	switch fn {
	case AggMean, AggSum, AggSD, AggMin, AggMax, AggMedian, AggQ1, AggQ3:
		return true
	}
	return false
}

// columnValues collects the original numeric values of the given rows.
// Missing cells are skipped; any other non-numeric cell makes the
// aggregation inapplicable and fails loudly rather than producing a
// silent missing result.
func columnValues(ds table.Dataset, col string, rows []int, fn string) ([]float64, error) {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		v := ds.Cell(r, col)
		if v.IsMissing() {
			continue
		}
		f, ok := v.Float()
		if !ok {
			return nil, core.NewAggregationError(col, fn)
		}
		out = append(out, f)
	}
	return out, nil
}

// Materialize computes every recorded summary definition against the
// model and appends the resulting rows to their group blocks (grand
// rows to the terminal block). Aggregation order within a definition
// becomes row order. Call once, late, before rendering.
func Materialize(m *table.Model) error {
	ds := m.Dataset()
	for _, def := range m.SummaryDefs() {
		var groups []string
		switch def.Scope {
		case table.ScopeGrand:
			groups = []string{""}
		case table.ScopeAll:
			groups = m.Stub().GroupOrder()
		default:
			groups = def.Groups
		}

		for _, g := range groups {
			var rows []int
			if def.Scope == table.ScopeGrand {
				rows = make([]int, ds.NRows())
				for i := range rows {
					rows[i] = i
				}
			} else {
				rows = groupRows(m, g)
			}

			for _, agg := range def.Aggregations {
				row := table.SummaryRow{
					Group: g,
					Label: agg.Label,
					Cells: make(map[string]string, len(def.Columns)),
					Raw:   make(map[string]float64, len(def.Columns)),
				}
				for _, col := range def.Columns {
					values, err := columnValues(ds, col, rows, agg.Fn)
					if err != nil {
						return err
					}
					result, ok, err := apply(agg.Fn, values)
					if err != nil {
						return core.NewAggregationError(col, agg.Fn)
					}
					row.Raw[col] = result
					if ok {
						row.Cells[col] = format.Number(result, def.Format)
					}
				}
				m.AppendSummaryRow(row)
			}
		}
	}
	return nil
}

// groupRows returns a group's dataset rows in dataset order.
func groupRows(m *table.Model, group string) []int {
	var out []int
	for r := 0; r < m.Dataset().NRows(); r++ {
		if m.Stub().RowGroup(r) == group {
			out = append(out, r)
		}
	}
	return out
}
