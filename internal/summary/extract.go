package summary

import (
	"math"

	"tabular/domain/core"
	"tabular/domain/table"
)

// Stub column names of the extracted summary dataset.
const (
	ExtractGroupColumn = "group_name"
	ExtractLabelColumn = "row_label"
)

// Extract returns the materialized summary rows as a standalone
// dataset: group name, row label, and one column per aggregated column
// (missing where a column was not part of that row's definition). The
// result is usable as fresh input to the same pipeline.
func Extract(m *table.Model) (table.Dataset, error) {
	var rows []table.SummaryRow
	for _, g := range m.Stub().GroupOrder() {
		rows = append(rows, m.SummaryRowsFor(g)...)
	}
	rows = append(rows, m.GrandSummaryRows()...)
	if len(rows) == 0 {
		return table.Dataset{}, core.NewConfigError("Extract", "no materialized summary rows")
	}

	// Aggregated columns in first-appearance order across definitions.
	var valueCols []string
	seen := make(map[string]bool)
	for _, def := range m.SummaryDefs() {
		for _, c := range def.Columns {
			if !seen[c] {
				seen[c] = true
				valueCols = append(valueCols, c)
			}
		}
	}

	groupCol := table.Column{Name: ExtractGroupColumn, Values: make([]table.Value, len(rows))}
	labelCol := table.Column{Name: ExtractLabelColumn, Values: make([]table.Value, len(rows))}
	cols := []table.Column{groupCol, labelCol}
	for _, name := range valueCols {
		cols = append(cols, table.Column{Name: name, Values: make([]table.Value, len(rows))})
	}

	for i, r := range rows {
		if r.Group == "" {
			cols[0].Values[i] = table.NA()
		} else {
			cols[0].Values[i] = table.NewText(r.Group)
		}
		cols[1].Values[i] = table.NewText(r.Label)
		for j, name := range valueCols {
			raw, ok := r.Raw[name]
			if !ok || math.IsNaN(raw) {
				cols[j+2].Values[i] = table.NA()
				continue
			}
			cols[j+2].Values[i] = table.NewNumber(raw)
		}
	}
	return table.NewDataset(cols...)
}
