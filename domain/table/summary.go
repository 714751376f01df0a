package table

import (
	"fmt"
	"strings"
)

// GroupScope selects which group blocks a summary definition covers.
type GroupScope int

const (
	// ScopeGroups covers the named groups only.
	ScopeGroups GroupScope = iota
	// ScopeAll covers every explicit group present at materialization.
	ScopeAll
	// ScopeGrand covers the union of all rows in one terminal block.
	ScopeGrand
)

// Aggregation pairs an aggregation function name with the stub label of
// the summary row it produces.
type Aggregation struct {
	Fn    string
	Label string
}

// SummaryDef is one recorded summary-row definition, materialized late
// into literal rows at the tail of each matching group block.
type SummaryDef struct {
	Scope        GroupScope
	Groups       []string
	Columns      []string
	Aggregations []Aggregation
	Format       FormatOptions
}

// key composes the dedup identity of a definition.
func (d SummaryDef) key() string {
	aggs := make([]string, len(d.Aggregations))
	for i, a := range d.Aggregations {
		aggs[i] = a.Fn + ":" + a.Label
	}
	return fmt.Sprintf("%d|%s|%s|%s|%s",
		d.Scope,
		strings.Join(d.Groups, ","),
		strings.Join(d.Columns, ","),
		strings.Join(aggs, ","),
		d.Format.key())
}

// SummaryRow is one materialized aggregate row. Group is "" for grand
// summaries. Cells holds the formatted text per aggregated column; Raw
// holds the unformatted numeric results for re-extraction.
type SummaryRow struct {
	Group string
	Label string
	Cells map[string]string
	Raw   map[string]float64
}
