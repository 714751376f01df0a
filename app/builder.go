// Package app exposes the annotation-call API over the table model.
// Calls apply strictly in issue order; each call resolves its targets
// eagerly, validates fully, and only then mutates, so a failed call
// leaves the model exactly as it was.
package app

import (
	"context"

	"tabular/domain/core"
	"tabular/domain/table"
	"tabular/internal/format"
	"tabular/internal/merge"
	"tabular/internal/resolve"
	"tabular/internal/summary"
	"tabular/ports"
)

// Builder accumulates annotation state on a table model and seals it
// into a renderable form with Build.
type Builder struct {
	model *table.Model
}

// New starts a builder over an ingested dataset.
func New(ds table.Dataset) *Builder {
	return &Builder{model: table.NewModel(ds)}
}

// FromSource ingests a dataset from a source port and starts a builder.
func FromSource(ctx context.Context, src ports.DatasetSource) (*Builder, error) {
	ds, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	return New(ds), nil
}

// Model returns the underlying model. Before Build it is mid-mutation
// state; after Build it is the finished form renderers consume.
func (b *Builder) Model() *table.Model {
	return b.model
}

func (b *Builder) ensureMutable(call string) error {
	if b.model.Built() {
		return core.NewConfigError(call, "table already built")
	}
	return nil
}

// Header sets the title and optional subtitle.
func (b *Builder) Header(title, subtitle string) error {
	if err := b.ensureMutable("Header"); err != nil {
		return err
	}
	if title == "" {
		return core.NewConfigError("Header", "title is required")
	}
	b.model.SetHeader(title, subtitle)
	return nil
}

// ColumnLabels relabels columns. Merge-consumed columns remain
// addressable here until Build removes them.
func (b *Builder) ColumnLabels(labels map[string]string) error {
	if err := b.ensureMutable("ColumnLabels"); err != nil {
		return err
	}
	for name := range labels {
		if _, ok := b.model.Meta(name); !ok {
			return core.NewUnknownColumnError(name)
		}
	}
	for name, label := range labels {
		meta, _ := b.model.Meta(name)
		meta.Label = label
	}
	return nil
}

// Spanner assigns a spanner-group label to the selected columns. With
// gather, the columns are pulled together in display order. An empty
// selection is a no-op.
func (b *Builder) Spanner(label string, cols resolve.ColumnSelector, gather bool) error {
	if err := b.ensureMutable("Spanner"); err != nil {
		return err
	}
	if label == "" {
		return core.NewConfigError("Spanner", "label is required")
	}
	names, err := resolve.ResolveColumns(b.model, cols)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	return b.model.SetSpanner(names, label, gather)
}

// MoveColumns relocates the selected columns after a named anchor
// column, preserving their relative order.
func (b *Builder) MoveColumns(cols resolve.ColumnSelector, afterName string) error {
	if err := b.ensureMutable("MoveColumns"); err != nil {
		return err
	}
	names, err := resolve.ResolveColumns(b.model, cols)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	return b.model.MoveColumns(names, afterName)
}

// HideColumns marks the selected columns as not rendered. They stay
// addressable by every later call.
func (b *Builder) HideColumns(cols resolve.ColumnSelector) error {
	if err := b.ensureMutable("HideColumns"); err != nil {
		return err
	}
	names, err := resolve.ResolveColumns(b.model, cols)
	if err != nil {
		return err
	}
	for _, n := range names {
		meta, _ := b.model.Meta(n)
		meta.Hidden = true
	}
	return nil
}

// AlignColumns sets horizontal alignment on the selected columns.
func (b *Builder) AlignColumns(align table.Align, cols resolve.ColumnSelector) error {
	if err := b.ensureMutable("AlignColumns"); err != nil {
		return err
	}
	names, err := resolve.ResolveColumns(b.model, cols)
	if err != nil {
		return err
	}
	for _, n := range names {
		meta, _ := b.model.Meta(n)
		meta.Align = align
	}
	return nil
}

// StubFromColumn turns a column into the stub: its formatted values
// become the row labels and the column itself is hidden.
func (b *Builder) StubFromColumn(name string) error {
	if err := b.ensureMutable("StubFromColumn"); err != nil {
		return err
	}
	meta, ok := b.model.Meta(name)
	if !ok {
		return core.NewUnknownColumnError(name)
	}
	ds := b.model.Dataset()
	for r := 0; r < ds.NRows(); r++ {
		b.model.Stub().SetRowLabel(r, format.Value(ds.Cell(r, name), table.DefaultFormatOptions()))
	}
	meta.Hidden = true
	return nil
}

// RowGroupOptions configures a row-group call. Name assigns the
// selected rows to a group; OthersLabel names the implicit ungrouped
// bucket. At least one of the two must be given.
type RowGroupOptions struct {
	Name        string
	OthersLabel string
	Rows        resolve.RowSelector
}

// RowGroup assigns rows to a named group and/or names the ungrouped
// bucket. Repeating a group name is an idempotent union.
func (b *Builder) RowGroup(o RowGroupOptions) error {
	if err := b.ensureMutable("RowGroup"); err != nil {
		return err
	}
	if o.Name == "" && o.OthersLabel == "" {
		return core.NewConfigError("RowGroup", "neither a group name nor an others label given")
	}
	if o.Name != "" {
		if o.Rows == nil {
			return core.NewConfigError("RowGroup", "group name given without row selection")
		}
		rows, err := resolve.ResolveRows(b.model, o.Rows)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := b.model.SetGroup(rows, o.Name); err != nil {
				return err
			}
		}
	}
	if o.OthersLabel != "" {
		b.model.SetOthersLabel(o.OthersLabel)
	}
	return nil
}

// Footnote attaches a footnote to a location. Identical footnotes at
// identical locations collapse to one ledger entry.
func (b *Builder) Footnote(text string, loc Loc) error {
	if err := b.ensureMutable("Footnote"); err != nil {
		return err
	}
	if text == "" {
		return core.NewConfigError("Footnote", "text is required")
	}
	return b.attach(table.LedgerFootnotes, text, loc, nil)
}

// Style attaches a style directive to a location.
func (b *Builder) Style(directive string, loc Loc) error {
	if err := b.ensureMutable("Style"); err != nil {
		return err
	}
	if directive == "" {
		return core.NewConfigError("Style", "directive is required")
	}
	return b.attach(table.LedgerStyles, directive, loc, nil)
}

// FormatNumber records a numeric formatting directive for the selected
// body cells. A nil row selector covers every row.
func (b *Builder) FormatNumber(cols resolve.ColumnSelector, rows resolve.RowSelector, opts table.FormatOptions) error {
	if err := b.ensureMutable("FormatNumber"); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	return b.attach(table.LedgerFormats, "number", InBody(cols, rows), &opts)
}

// attach resolves the location and appends one deduplicated ledger
// entry per resolved target.
func (b *Builder) attach(kind table.LedgerKind, payload string, loc Loc, opts *table.FormatOptions) error {
	entries, err := resolveEntries(b.model, loc, payload)
	if err != nil {
		return err
	}
	for _, e := range entries {
		e.Format = opts
		b.model.AppendLedgerEntry(kind, e)
	}
	return nil
}

// SourceNote appends a source note to the footer block.
func (b *Builder) SourceNote(text string) error {
	if err := b.ensureMutable("SourceNote"); err != nil {
		return err
	}
	if text == "" {
		return core.NewConfigError("SourceNote", "text is required")
	}
	b.model.AddSourceNote(text)
	return nil
}

// MergeColumns rewrites colKeep under a {1}/{2} pattern and schedules
// colDrop for removal at Build.
func (b *Builder) MergeColumns(colKeep, colDrop, pattern string, opts table.FormatOptions) error {
	if err := b.ensureMutable("MergeColumns"); err != nil {
		return err
	}
	return merge.Pattern(b.model, colKeep, colDrop, pattern, opts)
}

// MergeUncertainty combines a base column with an uncertainty column
// ("base ± uncert") and schedules the uncertainty column for removal.
func (b *Builder) MergeUncertainty(colBase, colUncert string, opts table.FormatOptions) error {
	if err := b.ensureMutable("MergeUncertainty"); err != nil {
		return err
	}
	return merge.Uncertainty(b.model, colBase, colUncert, opts)
}

// MergeRange combines two bound columns into a range string and
// schedules the upper-bound column for removal.
func (b *Builder) MergeRange(colLower, colUpper string, opts merge.RangeOptions) error {
	if err := b.ensureMutable("MergeRange"); err != nil {
		return err
	}
	return merge.Range(b.model, colLower, colUpper, opts)
}

// SummaryRows records a summary-row definition for the given groups.
// Groups may be plain names or a marked list from resolve.GroupList;
// nil covers every group. An empty column selection is a no-op.
func (b *Builder) SummaryRows(groups []string, cols resolve.ColumnSelector, aggs []table.Aggregation, opts table.FormatOptions) error {
	if err := b.ensureMutable("SummaryRows"); err != nil {
		return err
	}
	scope := table.ScopeGroups
	var resolved []string
	if groups == nil {
		scope = table.ScopeAll
	} else {
		var err error
		resolved, err = resolve.ResolveGroups(b.model, groups)
		if err != nil {
			return err
		}
	}
	return b.defineSummary(scope, resolved, cols, aggs, opts)
}

// GrandSummaryRows records a cross-group summary definition rendered in
// its own terminal block.
func (b *Builder) GrandSummaryRows(cols resolve.ColumnSelector, aggs []table.Aggregation, opts table.FormatOptions) error {
	if err := b.ensureMutable("GrandSummaryRows"); err != nil {
		return err
	}
	return b.defineSummary(table.ScopeGrand, nil, cols, aggs, opts)
}

func (b *Builder) defineSummary(scope table.GroupScope, groups []string, cols resolve.ColumnSelector, aggs []table.Aggregation, opts table.FormatOptions) error {
	if len(aggs) == 0 {
		return core.NewConfigError("SummaryRows", "at least one aggregation required")
	}
	for _, a := range aggs {
		if !summary.KnownAggregation(a.Fn) {
			return core.NewConfigError("SummaryRows", "unknown aggregation function "+a.Fn)
		}
		if a.Label == "" {
			return core.NewConfigError("SummaryRows", "aggregation without a row label")
		}
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	names, err := resolve.ResolveColumns(b.model, cols)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	b.model.AddSummaryDef(table.SummaryDef{
		Scope:        scope,
		Groups:       groups,
		Columns:      names,
		Aggregations: aggs,
		Format:       opts,
	})
	return nil
}

// Build materializes summary definitions, executes deferred column
// drops, and seals the model for renderers. Building twice is an error;
// a failed build restores the model.
func (b *Builder) Build() (*table.Model, error) {
	if err := b.ensureMutable("Build"); err != nil {
		return nil, err
	}
	if err := summary.Materialize(b.model); err != nil {
		b.model.ResetSummaryRows()
		return nil, err
	}
	b.model.Seal()
	return b.model, nil
}

// ExtractSummary returns the materialized summary rows as a standalone
// dataset usable as fresh pipeline input.
func (b *Builder) ExtractSummary() (table.Dataset, error) {
	if !b.model.Built() {
		return table.Dataset{}, core.NewConfigError("ExtractSummary", "table not built yet")
	}
	return summary.Extract(b.model)
}
