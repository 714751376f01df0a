package table

import (
	"tabular/domain/core"
)

// Model is the central mutable table representation. It owns the dataset
// copy, column and stub metadata, and the four annotation ledgers.
// Annotation calls mutate it strictly in call order; once built it is
// handed to renderers read-only.
type Model struct {
	id      core.TableID
	dataset Dataset

	title       string
	subtitle    string
	sourceNotes []string

	// cols is the display order, a permutation of dataset columns.
	cols []*ColumnMeta
	stub Stub

	styles    Ledger
	footnotes Ledger
	formats   Ledger

	summaryDefs []SummaryDef
	summaryKeys map[string]bool

	groupSummaries map[string][]SummaryRow
	grandSummaries []SummaryRow

	built bool
}

// NewModel wraps a dataset into a fresh model with identity metadata:
// one meta entry per dataset column, display order equal to storage
// order, no groups, empty ledgers.
func NewModel(ds Dataset) *Model {
	cols := make([]*ColumnMeta, ds.NCols())
	for i, c := range ds.Columns {
		cols[i] = &ColumnMeta{Name: c.Name}
	}
	return &Model{
		id:             core.NewTableID(),
		dataset:        ds,
		cols:           cols,
		stub:           newStub(ds.NRows()),
		summaryKeys:    make(map[string]bool),
		groupSummaries: make(map[string][]SummaryRow),
	}
}

// ID returns the stable table identity.
func (m *Model) ID() core.TableID {
	return m.id
}

// Dataset returns the owned dataset.
func (m *Model) Dataset() Dataset {
	return m.dataset
}

// Built reports whether Build has sealed the model.
func (m *Model) Built() bool {
	return m.built
}

// Title / subtitle / source notes

func (m *Model) SetHeader(title, subtitle string) {
	m.title = title
	m.subtitle = subtitle
}

func (m *Model) Title() string    { return m.title }
func (m *Model) Subtitle() string { return m.subtitle }

// AddSourceNote appends a source note to the footer block.
func (m *Model) AddSourceNote(note string) {
	m.sourceNotes = append(m.sourceNotes, note)
}

func (m *Model) SourceNotes() []string {
	out := make([]string, len(m.sourceNotes))
	copy(out, m.sourceNotes)
	return out
}

// Column metadata

// Meta returns the metadata entry for a named column, including columns
// pending removal. The second return is false for unknown names.
func (m *Model) Meta(name string) (*ColumnMeta, bool) {
	for _, c := range m.cols {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnOrder returns all column names in display order, including
// hidden and pending-drop columns.
func (m *Model) ColumnOrder() []string {
	out := make([]string, len(m.cols))
	for i, c := range m.cols {
		out[i] = c.Name
	}
	return out
}

// VisibleColumns returns display-order metadata for the columns a
// renderer shows: not hidden, and after Build no longer pending drop.
func (m *Model) VisibleColumns() []*ColumnMeta {
	var out []*ColumnMeta
	for _, c := range m.cols {
		if c.Hidden || c.pendingDrop {
			continue
		}
		out = append(out, c)
	}
	return out
}

// MoveColumns relocates named columns directly after the column
// afterName, preserving their relative order.
func (m *Model) MoveColumns(names []string, afterName string) error {
	if _, ok := m.Meta(afterName); !ok {
		return core.NewUnknownColumnError(afterName)
	}
	moving := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := m.Meta(n); !ok {
			return core.NewUnknownColumnError(n)
		}
		moving[n] = true
	}
	if moving[afterName] {
		return core.NewConfigError("MoveColumns", "anchor column is among the moved columns")
	}

	var kept, moved []*ColumnMeta
	for _, c := range m.cols {
		if moving[c.Name] {
			moved = append(moved, c)
		} else {
			kept = append(kept, c)
		}
	}
	out := make([]*ColumnMeta, 0, len(m.cols))
	for _, c := range kept {
		out = append(out, c)
		if c.Name == afterName {
			out = append(out, moved...)
		}
	}
	m.cols = out
	return nil
}

// SetSpanner assigns a spanner-group label to the named columns. With
// gather, the columns are additionally pulled together after the first
// of them in display order.
func (m *Model) SetSpanner(names []string, label string, gather bool) error {
	for _, n := range names {
		if _, ok := m.Meta(n); !ok {
			return core.NewUnknownColumnError(n)
		}
	}
	if gather && len(names) > 1 {
		if err := m.MoveColumns(names[1:], names[0]); err != nil {
			return err
		}
	}
	for _, n := range names {
		c, _ := m.Meta(n)
		c.Spanner = label
	}
	return nil
}

// SpannerGroups returns the distinct spanner labels over visible
// columns, in display order of their first column.
func (m *Model) SpannerGroups() []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range m.VisibleColumns() {
		if c.Spanner != "" && !seen[c.Spanner] {
			seen[c.Spanner] = true
			out = append(out, c.Spanner)
		}
	}
	return out
}

// RewriteColumn replaces the cell values of a named column. Used by the
// column-merge engine; the replacement must keep the row count.
func (m *Model) RewriteColumn(name string, values []Value) error {
	i := m.dataset.ColumnIndex(name)
	if i < 0 {
		return core.NewUnknownColumnError(name)
	}
	if len(values) != m.dataset.NRows() {
		return core.NewConfigError("RewriteColumn", "replacement row count mismatch")
	}
	m.dataset.Columns[i].Values = values
	return nil
}

// MarkDrop schedules a column for removal at Build time. The column
// stays addressable by name until then.
func (m *Model) MarkDrop(name string) error {
	c, ok := m.Meta(name)
	if !ok {
		return core.NewUnknownColumnError(name)
	}
	if c.pendingDrop {
		return core.NewColumnDroppedError(name)
	}
	c.pendingDrop = true
	return nil
}

// executeDrops physically removes pending-drop columns from the display
// metadata. Dataset storage is left alone; only metadata decides what
// renderers see.
func (m *Model) executeDrops() {
	var out []*ColumnMeta
	for _, c := range m.cols {
		if !c.pendingDrop {
			out = append(out, c)
		}
	}
	m.cols = out
}

// Stub and grouping

// Stub returns the stub metadata.
func (m *Model) Stub() *Stub {
	return &m.stub
}

// SetGroup assigns dataset rows to a named row group.
func (m *Model) SetGroup(rows []int, name string) error {
	if name == "" {
		return core.NewConfigError("SetGroup", "empty group name")
	}
	for _, r := range rows {
		if r < 0 || r >= m.dataset.NRows() {
			return core.NewConfigError("SetGroup", "row index out of range")
		}
	}
	m.stub.setGroup(rows, name)
	return nil
}

// SetOthersLabel names the implicit ungrouped bucket. Independent of
// call order relative to SetGroup.
func (m *Model) SetOthersLabel(label string) {
	m.stub.othersLabel = label
}

// Ledgers

// AppendLedgerEntry inserts a tagged entry into the given ledger,
// deduplicating by full-entry equality.
func (m *Model) AppendLedgerEntry(kind LedgerKind, e LedgerEntry) bool {
	switch kind {
	case LedgerStyles:
		return m.styles.Append(e)
	case LedgerFootnotes:
		return m.footnotes.Append(e)
	case LedgerFormats:
		return m.formats.Append(e)
	}
	return false
}

func (m *Model) Styles() *Ledger    { return &m.styles }
func (m *Model) Footnotes() *Ledger { return &m.footnotes }
func (m *Model) Formats() *Ledger   { return &m.formats }

// AddSummaryDef records a summary-row definition, deduplicated like the
// other ledgers. Returns true when the definition was added.
func (m *Model) AddSummaryDef(d SummaryDef) bool {
	k := d.key()
	if m.summaryKeys[k] {
		return false
	}
	m.summaryKeys[k] = true
	m.summaryDefs = append(m.summaryDefs, d)
	return true
}

// SummaryDefs returns the recorded definitions in call order.
func (m *Model) SummaryDefs() []SummaryDef {
	out := make([]SummaryDef, len(m.summaryDefs))
	copy(out, m.summaryDefs)
	return out
}

// AppendSummaryRow attaches one materialized summary row to its group
// block (or to the grand block when row.Group is empty).
func (m *Model) AppendSummaryRow(row SummaryRow) {
	if row.Group == "" {
		m.grandSummaries = append(m.grandSummaries, row)
		return
	}
	m.groupSummaries[row.Group] = append(m.groupSummaries[row.Group], row)
}

// ResetSummaryRows discards all materialized summary rows. Used to
// restore the model when materialization fails partway.
func (m *Model) ResetSummaryRows() {
	m.groupSummaries = make(map[string][]SummaryRow)
	m.grandSummaries = nil
}

// SummaryRowsFor returns the materialized summary rows of one group.
func (m *Model) SummaryRowsFor(group string) []SummaryRow {
	return m.groupSummaries[group]
}

// GrandSummaryRows returns the materialized grand-summary rows.
func (m *Model) GrandSummaryRows() []SummaryRow {
	return m.grandSummaries
}

// Final row order

// RowBlock is one contiguous rendered block: a group's data rows in
// dataset order followed by its materialized summary rows. The grand
// block, when present, has no data rows.
type RowBlock struct {
	Group     string
	Labeled   bool
	Rows      []int
	Summaries []SummaryRow
}

// RowBlocks returns the final rendered row order: explicit groups in
// first-appearance order, the ungrouped bucket last, then the grand
// block when grand summaries exist.
func (m *Model) RowBlocks() []RowBlock {
	var out []RowBlock
	if len(m.stub.groupOrder) == 0 {
		rows := make([]int, m.dataset.NRows())
		for i := range rows {
			rows[i] = i
		}
		out = append(out, RowBlock{Rows: rows})
	} else {
		for _, g := range m.stub.groupOrder {
			out = append(out, RowBlock{
				Group:     g,
				Labeled:   true,
				Rows:      m.stub.groupRows(g),
				Summaries: m.groupSummaries[g],
			})
		}
		if others := m.stub.groupRows(""); len(others) > 0 {
			out = append(out, RowBlock{
				Group:   m.stub.othersLabel,
				Labeled: m.stub.othersLabel != "",
				Rows:    others,
			})
		}
	}
	if len(m.grandSummaries) > 0 {
		out = append(out, RowBlock{Summaries: m.grandSummaries})
	}
	return out
}

// Seal marks the model finished. Pending column drops are executed here;
// after sealing the model is read-only by convention.
func (m *Model) Seal() {
	m.executeDrops()
	m.built = true
}
