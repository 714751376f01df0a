package render

import (
	"fmt"
	"strings"

	"tabular/domain/core"
	"tabular/domain/table"
	"tabular/internal/format"
)

// Text renders a sealed model as aligned plain text.
type Text struct{}

// NewText creates a plain-text renderer.
func NewText() *Text {
	return &Text{}
}

// Render walks the model and returns the plain-text document.
func (t *Text) Render(m *table.Model) (string, error) {
	if !m.Built() {
		return "", core.NewConfigError("render", "model not built")
	}
	fn := buildFootnoteIndex(m)
	fmts := buildFormatIndex(m)
	cols := m.VisibleColumns()
	hasStub := stubVisible(m)
	ds := m.Dataset()

	// Cell grid: header row first, then every rendered row.
	header := make([]string, 0, len(cols)+1)
	if hasStub {
		header = append(header, "")
	}
	for _, c := range cols {
		header = append(header, c.DisplayLabel()+textMarks(fn.columnLabels[c.Name]))
	}

	type line struct {
		heading string
		cells   []string
	}
	var lines []line
	for _, block := range m.RowBlocks() {
		if block.Labeled {
			lines = append(lines, line{heading: block.Group + textMarks(fn.rowGroups[block.Group])})
		}
		for _, r := range block.Rows {
			cells := make([]string, 0, len(cols)+1)
			if hasStub {
				cells = append(cells, m.Stub().RowLabel(r)+textMarks(fn.stub[r]))
			}
			for _, c := range cols {
				cells = append(cells, format.Value(ds.Cell(r, c.Name), fmts.options(c.Name, r))+textMarks(fn.body[cellKey{column: c.Name, row: r}]))
			}
			lines = append(lines, line{cells: cells})
		}
		for _, s := range block.Summaries {
			cells := make([]string, 0, len(cols)+1)
			if hasStub {
				cells = append(cells, s.Label)
			}
			for _, c := range cols {
				cells = append(cells, s.Cells[c.Name])
			}
			lines = append(lines, line{cells: cells})
		}
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, ln := range lines {
		for i, c := range ln.cells {
			if w := len([]rune(c)); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	if m.Title() != "" {
		b.WriteString(m.Title() + textMarks(fn.title) + "\n")
		if m.Subtitle() != "" {
			b.WriteString(m.Subtitle() + textMarks(fn.subtitle) + "\n")
		}
		b.WriteString("\n")
	}
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(pad(c, widths[i]))
		}
		b.WriteString("\n")
	}
	writeRow(header)
	b.WriteString(strings.Repeat("-", ruler(widths)) + "\n")
	for _, ln := range lines {
		if ln.heading != "" {
			b.WriteString(ln.heading + "\n")
			continue
		}
		writeRow(ln.cells)
	}

	if len(fn.texts) > 0 || len(m.SourceNotes()) > 0 {
		b.WriteString("\n")
		for i, text := range fn.texts {
			b.WriteString(fmt.Sprintf("(%d) %s\n", i+1, text))
		}
		for _, note := range m.SourceNotes() {
			b.WriteString(note + "\n")
		}
	}
	return b.String(), nil
}

func pad(s string, w int) string {
	n := w - len([]rune(s))
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

func ruler(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += 2 * (len(widths) - 1)
	}
	return total
}
