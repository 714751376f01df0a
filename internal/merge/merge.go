// Package merge rewrites one column's rendered values by combining it
// with a second column, then schedules the second column for deferred
// removal. Removal happens at Build time, so annotation calls issued
// after a merge may still target the consumed column by name.
package merge

import (
	"strings"

	"tabular/domain/core"
	"tabular/domain/table"
	"tabular/internal/format"
)

// checkPair validates that both merge operands exist and that neither
// has already been consumed by a prior merge.
func checkPair(m *table.Model, colKeep, colDrop string) error {
	if colKeep == colDrop {
		return core.NewConfigError("merge", "cannot merge a column with itself")
	}
	for _, name := range []string{colKeep, colDrop} {
		meta, ok := m.Meta(name)
		if !ok {
			return core.NewUnknownColumnError(name)
		}
		if meta.PendingDrop() {
			return core.NewColumnDroppedError(name)
		}
	}
	return nil
}

// Pattern merges colDrop into colKeep under a two-placeholder pattern:
// every occurrence of {1} is replaced by colKeep's formatted value and
// {2} by colDrop's; literal pattern text passes through unchanged.
func Pattern(m *table.Model, colKeep, colDrop, pattern string, opts table.FormatOptions) error {
	if err := checkPair(m, colKeep, colDrop); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	ds := m.Dataset()
	merged := make([]table.Value, ds.NRows())
	for r := 0; r < ds.NRows(); r++ {
		s1 := format.Value(ds.Cell(r, colKeep), opts)
		s2 := format.Value(ds.Cell(r, colDrop), opts)
		out := strings.ReplaceAll(pattern, "{1}", s1)
		out = strings.ReplaceAll(out, "{2}", s2)
		merged[r] = table.NewText(out)
	}
	return commit(m, colKeep, colDrop, merged)
}

// Uncertainty merges an uncertainty column into a base column:
// both present yields "base ± uncert"; a missing base propagates as
// missing regardless of the uncertainty; a missing uncertainty leaves
// the base value alone.
func Uncertainty(m *table.Model, colBase, colUncert string, opts table.FormatOptions) error {
	if err := checkPair(m, colBase, colUncert); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	ds := m.Dataset()
	merged := make([]table.Value, ds.NRows())
	for r := 0; r < ds.NRows(); r++ {
		base := ds.Cell(r, colBase)
		uncert := ds.Cell(r, colUncert)
		switch {
		case base.IsMissing():
			merged[r] = table.NA()
		case uncert.IsMissing():
			merged[r] = table.NewText(format.Value(base, opts))
		default:
			merged[r] = table.NewText(format.Value(base, opts) + " ± " + format.Value(uncert, opts))
		}
	}
	return commit(m, colBase, colUncert, merged)
}

// RangeOptions configures the range merge.
type RangeOptions struct {
	// Separator sits between the two bounds; defaults to an en dash.
	Separator string
	// AllowPartial renders the present bound alone when the other is
	// missing, instead of propagating missing.
	AllowPartial bool
	Format       table.FormatOptions
}

// Range merges two bound columns into a literal range string. By
// default either bound missing makes the whole result missing.
func Range(m *table.Model, colLower, colUpper string, opts RangeOptions) error {
	if err := checkPair(m, colLower, colUpper); err != nil {
		return err
	}
	if err := opts.Format.Validate(); err != nil {
		return err
	}
	sep := opts.Separator
	if sep == "" {
		sep = "–"
	}
	ds := m.Dataset()
	merged := make([]table.Value, ds.NRows())
	for r := 0; r < ds.NRows(); r++ {
		lo := ds.Cell(r, colLower)
		hi := ds.Cell(r, colUpper)
		switch {
		case lo.IsMissing() && hi.IsMissing():
			merged[r] = table.NA()
		case lo.IsMissing() || hi.IsMissing():
			if !opts.AllowPartial {
				merged[r] = table.NA()
				break
			}
			present := lo
			if lo.IsMissing() {
				present = hi
			}
			merged[r] = table.NewText(format.Value(present, opts.Format))
		default:
			merged[r] = table.NewText(format.Value(lo, opts.Format) + sep + format.Value(hi, opts.Format))
		}
	}
	return commit(m, colLower, colUpper, merged)
}

// commit writes the merged values and schedules the consumed column.
// All validation has happened by this point, so the model mutates only
// on the success path.
func commit(m *table.Model, colKeep, colDrop string, merged []table.Value) error {
	if err := m.RewriteColumn(colKeep, merged); err != nil {
		return err
	}
	return m.MarkDrop(colDrop)
}
