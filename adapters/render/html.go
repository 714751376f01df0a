package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"tabular/domain/core"
	"tabular/domain/table"
	"tabular/internal/format"
)

// HTML renders a sealed model as an HTML table fragment. Inline
// markdown in titles, footnotes, and source notes is converted to HTML.
type HTML struct{}

// NewHTML creates an HTML renderer.
func NewHTML() *HTML {
	return &HTML{}
}

// Render walks the model and returns the HTML fragment.
func (h *HTML) Render(m *table.Model) (string, error) {
	if !m.Built() {
		return "", core.NewConfigError("render", "model not built")
	}
	fn := buildFootnoteIndex(m)
	fmts := buildFormatIndex(m)
	styles := buildStyleIndex(m)
	cols := m.VisibleColumns()
	hasStub := stubVisible(m)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<table class=\"tabular\" id=\"%s\">\n", m.ID()))

	if m.Title() != "" {
		b.WriteString("<caption>")
		b.WriteString(mdInline(m.Title()))
		writeSups(&b, fn.title)
		if m.Subtitle() != "" {
			b.WriteString("<br/><small>")
			b.WriteString(mdInline(m.Subtitle()))
			writeSups(&b, fn.subtitle)
			b.WriteString("</small>")
		}
		b.WriteString("</caption>\n")
	}

	h.writeHeader(&b, m, cols, hasStub, fn, styles)
	h.writeBody(&b, m, cols, hasStub, fn, fmts, styles)
	h.writeFooter(&b, m, cols, hasStub, fn)

	b.WriteString("</table>\n")
	return b.String(), nil
}

func (h *HTML) writeHeader(b *strings.Builder, m *table.Model, cols []*table.ColumnMeta, hasStub bool, fn *footnoteIndex, styles *styleIndex) {
	b.WriteString("<thead>\n")

	if len(m.SpannerGroups()) > 0 {
		b.WriteString("<tr>")
		if hasStub {
			b.WriteString("<th></th>")
		}
		for i := 0; i < len(cols); {
			c := cols[i]
			if c.Spanner == "" {
				b.WriteString("<th></th>")
				i++
				continue
			}
			span := 1
			for i+span < len(cols) && cols[i+span].Spanner == c.Spanner {
				span++
			}
			b.WriteString(fmt.Sprintf("<th colspan=\"%d\" class=\"spanner\">%s", span, html.EscapeString(c.Spanner)))
			writeSups(b, fn.spanners[c.Spanner])
			b.WriteString("</th>")
			i += span
		}
		b.WriteString("</tr>\n")
	}

	b.WriteString("<tr>")
	if hasStub {
		b.WriteString("<th></th>")
	}
	for _, c := range cols {
		b.WriteString("<th")
		writeStyleAttr(b, c.Align, styles.columnLabels[c.Name])
		b.WriteString(">")
		b.WriteString(html.EscapeString(c.DisplayLabel()))
		writeSups(b, fn.columnLabels[c.Name])
		b.WriteString("</th>")
	}
	b.WriteString("</tr>\n</thead>\n")
}

func (h *HTML) writeBody(b *strings.Builder, m *table.Model, cols []*table.ColumnMeta, hasStub bool, fn *footnoteIndex, fmts *formatIndex, styles *styleIndex) {
	ds := m.Dataset()
	width := len(cols)
	if hasStub {
		width++
	}
	b.WriteString("<tbody>\n")
	for _, block := range m.RowBlocks() {
		if block.Labeled {
			b.WriteString(fmt.Sprintf("<tr class=\"group\"><th colspan=\"%d\">%s", width, html.EscapeString(block.Group)))
			writeSups(b, fn.rowGroups[block.Group])
			b.WriteString("</th></tr>\n")
		}
		for _, r := range block.Rows {
			b.WriteString("<tr>")
			if hasStub {
				b.WriteString("<th class=\"stub\">")
				b.WriteString(html.EscapeString(m.Stub().RowLabel(r)))
				writeSups(b, fn.stub[r])
				b.WriteString("</th>")
			}
			for _, c := range cols {
				b.WriteString("<td")
				writeStyleAttr(b, c.Align, styles.body[cellKey{column: c.Name, row: r}])
				b.WriteString(">")
				b.WriteString(html.EscapeString(format.Value(ds.Cell(r, c.Name), fmts.options(c.Name, r))))
				writeSups(b, fn.body[cellKey{column: c.Name, row: r}])
				b.WriteString("</td>")
			}
			b.WriteString("</tr>\n")
		}
		for _, s := range block.Summaries {
			b.WriteString("<tr class=\"summary\">")
			if hasStub {
				b.WriteString("<th class=\"stub\">" + html.EscapeString(s.Label) + "</th>")
			}
			for _, c := range cols {
				b.WriteString("<td>" + html.EscapeString(s.Cells[c.Name]) + "</td>")
			}
			b.WriteString("</tr>\n")
		}
	}
	b.WriteString("</tbody>\n")
}

func (h *HTML) writeFooter(b *strings.Builder, m *table.Model, cols []*table.ColumnMeta, hasStub bool, fn *footnoteIndex) {
	if len(fn.texts) == 0 && len(m.SourceNotes()) == 0 {
		return
	}
	width := len(cols)
	if hasStub {
		width++
	}
	b.WriteString("<tfoot>\n")
	for i, text := range fn.texts {
		b.WriteString(fmt.Sprintf("<tr><td colspan=\"%d\"><sup>%d</sup> %s</td></tr>\n", width, i+1, mdInline(text)))
	}
	for _, note := range m.SourceNotes() {
		b.WriteString(fmt.Sprintf("<tr><td colspan=\"%d\">%s</td></tr>\n", width, mdInline(note)))
	}
	b.WriteString("</tfoot>\n")
}

// stubVisible reports whether the stub column renders: any row label,
// or any summary row needing a label cell. Group headings render as
// their own full-width rows regardless.
func stubVisible(m *table.Model) bool {
	ds := m.Dataset()
	for r := 0; r < ds.NRows(); r++ {
		if m.Stub().RowLabel(r) != "" {
			return true
		}
	}
	for _, block := range m.RowBlocks() {
		if len(block.Summaries) > 0 {
			return true
		}
	}
	return false
}

func writeSups(b *strings.Builder, gs []int) {
	for _, g := range gs {
		b.WriteString(fmt.Sprintf("<sup>%d</sup>", g))
	}
}

func writeStyleAttr(b *strings.Builder, align table.Align, directives []string) {
	var parts []string
	switch align {
	case table.AlignLeft:
		parts = append(parts, "text-align: left")
	case table.AlignCenter:
		parts = append(parts, "text-align: center")
	case table.AlignRight:
		parts = append(parts, "text-align: right")
	}
	parts = append(parts, directives...)
	if len(parts) > 0 {
		b.WriteString(fmt.Sprintf(" style=\"%s\"", html.EscapeString(strings.Join(parts, "; "))))
	}
}

// mdInline renders inline markdown without the block paragraph wrapper.
func mdInline(s string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	out := strings.TrimSpace(string(markdown.ToHTML([]byte(s), p, nil)))
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return out
}
