// Package ingest reads rectangular sources (CSV files, Excel sheets,
// SQL queries) into the in-memory dataset the table model owns. Cell
// text is coerced into typed values: number, date, logical, or text,
// with empty cells becoming missing.
package ingest

import (
	"strconv"
	"strings"
	"time"

	"tabular/domain/core"
	"tabular/domain/table"
)

// dateLayouts are tried in order when coercing a cell to a date.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// inferValue coerces one raw cell string into a typed value.
func inferValue(raw string) table.Value {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "null") {
		return table.NA()
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return table.NewNumber(f)
	}
	if strings.EqualFold(s, "true") || strings.EqualFold(s, "false") {
		return table.NewLogical(strings.EqualFold(s, "true"))
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return table.NewDate(t)
		}
	}
	return table.NewText(s)
}

// buildDataset assembles header + row records into a dataset.
func buildDataset(headers []string, records [][]string) (table.Dataset, error) {
	if len(headers) == 0 {
		return table.Dataset{}, core.NewConfigError("ingest", "source has no header row")
	}
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		cols[i] = table.Column{Name: name, Values: make([]table.Value, len(records))}
	}
	for r, rec := range records {
		for c := range cols {
			if c < len(rec) {
				cols[c].Values[r] = inferValue(rec[c])
			} else {
				// Short record: trailing cells are missing.
				cols[c].Values[r] = table.NA()
			}
		}
	}
	return table.NewDataset(cols...)
}
