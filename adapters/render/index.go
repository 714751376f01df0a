// Package render walks a finished table model and emits output markups.
// Renderers are read-only consumers: final column order and visibility
// come from the model's column metadata, final row order from its group
// blocks, and footnote glyphs from ledger order.
package render

import (
	"fmt"

	"tabular/domain/table"
)

// cellKey addresses one body cell.
type cellKey struct {
	column string
	row    int
}

// footnoteIndex assigns glyphs in footer order (location precedence
// first, insertion order within equal precedence; identical texts share
// a glyph) and indexes which targets carry which glyphs.
type footnoteIndex struct {
	texts []string

	title        []int
	subtitle     []int
	spanners     map[string][]int
	columnLabels map[string][]int
	body         map[cellKey][]int
	stub         map[int][]int
	rowGroups    map[string][]int
}

func buildFootnoteIndex(m *table.Model) *footnoteIndex {
	idx := &footnoteIndex{
		spanners:     make(map[string][]int),
		columnLabels: make(map[string][]int),
		body:         make(map[cellKey][]int),
		stub:         make(map[int][]int),
		rowGroups:    make(map[string][]int),
	}
	glyphs := make(map[string]int)
	for _, e := range m.Footnotes().Ordered() {
		g, ok := glyphs[e.Payload]
		if !ok {
			idx.texts = append(idx.texts, e.Payload)
			g = len(idx.texts)
			glyphs[e.Payload] = g
		}
		switch e.Loc {
		case table.LocTitle:
			idx.title = appendGlyph(idx.title, g)
		case table.LocSubtitle:
			idx.subtitle = appendGlyph(idx.subtitle, g)
		case table.LocSpanner:
			idx.spanners[e.Group] = appendGlyph(idx.spanners[e.Group], g)
		case table.LocColumnLabel:
			idx.columnLabels[e.Column] = appendGlyph(idx.columnLabels[e.Column], g)
		case table.LocBody:
			k := cellKey{column: e.Column, row: e.Row}
			idx.body[k] = appendGlyph(idx.body[k], g)
		case table.LocStub:
			idx.stub[e.Row] = appendGlyph(idx.stub[e.Row], g)
		case table.LocRowGroup:
			idx.rowGroups[e.Group] = appendGlyph(idx.rowGroups[e.Group], g)
		}
	}
	return idx
}

func appendGlyph(gs []int, g int) []int {
	for _, have := range gs {
		if have == g {
			return gs
		}
	}
	return append(gs, g)
}

// formatIndex resolves the effective numeric format per body cell: the
// last matching directive wins, falling back to the defaults.
type formatIndex struct {
	cells map[cellKey]table.FormatOptions
}

func buildFormatIndex(m *table.Model) *formatIndex {
	idx := &formatIndex{cells: make(map[cellKey]table.FormatOptions)}
	for _, e := range m.Formats().Entries() {
		if e.Loc != table.LocBody || e.Format == nil {
			continue
		}
		idx.cells[cellKey{column: e.Column, row: e.Row}] = *e.Format
	}
	return idx
}

func (f *formatIndex) options(column string, row int) table.FormatOptions {
	if o, ok := f.cells[cellKey{column: column, row: row}]; ok {
		return o
	}
	return table.DefaultFormatOptions()
}

// styleIndex collects style directives per target.
type styleIndex struct {
	columnLabels map[string][]string
	body         map[cellKey][]string
}

func buildStyleIndex(m *table.Model) *styleIndex {
	idx := &styleIndex{
		columnLabels: make(map[string][]string),
		body:         make(map[cellKey][]string),
	}
	for _, e := range m.Styles().Entries() {
		switch e.Loc {
		case table.LocColumnLabel:
			idx.columnLabels[e.Column] = append(idx.columnLabels[e.Column], e.Payload)
		case table.LocBody:
			k := cellKey{column: e.Column, row: e.Row}
			idx.body[k] = append(idx.body[k], e.Payload)
		}
	}
	return idx
}

// textMarks renders glyph references for plain-text output, e.g. "(1,2)".
func textMarks(gs []int) string {
	if len(gs) == 0 {
		return ""
	}
	out := " ("
	for i, g := range gs {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", g)
	}
	return out + ")"
}
