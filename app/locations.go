package app

import (
	"tabular/domain/core"
	"tabular/domain/table"
	"tabular/internal/resolve"
)

// Loc is an unresolved annotation target. Builder calls resolve it
// eagerly against the model at the moment the call executes, so later
// structural changes never retroactively move an earlier annotation.
type Loc struct {
	kind   table.LocationKind
	cols   resolve.ColumnSelector
	rows   resolve.RowSelector
	groups []string
}

// InTitle targets the table title.
func InTitle() Loc {
	return Loc{kind: table.LocTitle}
}

// InSubtitle targets the table subtitle.
func InSubtitle() Loc {
	return Loc{kind: table.LocSubtitle}
}

// InSpanners targets spanner-group labels. Accepts plain group names or
// a marked list from resolve.GroupList.
func InSpanners(groups ...string) Loc {
	return Loc{kind: table.LocSpanner, groups: groups}
}

// InColumnLabels targets the labels of the selected columns.
func InColumnLabels(cols resolve.ColumnSelector) Loc {
	return Loc{kind: table.LocColumnLabel, cols: cols}
}

// InBody targets data cells at the cross of the selected columns and
// rows. A nil row selector means every row.
func InBody(cols resolve.ColumnSelector, rows resolve.RowSelector) Loc {
	return Loc{kind: table.LocBody, cols: cols, rows: rows}
}

// InStub targets row labels in the stub.
func InStub(rows resolve.RowSelector) Loc {
	return Loc{kind: table.LocStub, rows: rows}
}

// InRowGroups targets row-group heading labels. Accepts plain group
// names or a marked list from resolve.GroupList.
func InRowGroups(groups ...string) Loc {
	return Loc{kind: table.LocRowGroup, groups: groups}
}

// resolveEntries turns a location into the concrete ledger entries for
// the given payload. Nothing is mutated here; the caller appends the
// returned entries only once every part has resolved.
func resolveEntries(m *table.Model, loc Loc, payload string) ([]table.LedgerEntry, error) {
	entry := func(group, column string, row int) table.LedgerEntry {
		return table.LedgerEntry{
			Loc:     loc.kind,
			Group:   group,
			Column:  column,
			Row:     row,
			Payload: payload,
		}
	}

	switch loc.kind {
	case table.LocTitle, table.LocSubtitle:
		return []table.LedgerEntry{entry("", "", -1)}, nil

	case table.LocSpanner:
		names := resolve.StripGroupMarker(loc.groups)
		known := make(map[string]bool)
		for _, g := range m.SpannerGroups() {
			known[g] = true
		}
		var out []table.LedgerEntry
		for _, g := range names {
			if !known[g] {
				return nil, core.NewUnknownGroupError(g)
			}
			out = append(out, entry(g, "", -1))
		}
		return out, nil

	case table.LocColumnLabel:
		cols, err := resolve.ResolveColumns(m, loc.cols)
		if err != nil {
			return nil, err
		}
		var out []table.LedgerEntry
		for _, c := range cols {
			out = append(out, entry("", c, -1))
		}
		return out, nil

	case table.LocBody:
		cols, err := resolve.ResolveColumns(m, loc.cols)
		if err != nil {
			return nil, err
		}
		rowSel := loc.rows
		if rowSel == nil {
			rowSel = resolve.AllRows()
		}
		rows, err := resolve.ResolveRows(m, rowSel)
		if err != nil {
			return nil, err
		}
		var out []table.LedgerEntry
		for _, c := range cols {
			for _, r := range rows {
				out = append(out, entry("", c, r))
			}
		}
		return out, nil

	case table.LocStub:
		rows, err := resolve.ResolveRows(m, loc.rows)
		if err != nil {
			return nil, err
		}
		var out []table.LedgerEntry
		for _, r := range rows {
			out = append(out, entry("", "", r))
		}
		return out, nil

	case table.LocRowGroup:
		groups, err := resolve.ResolveGroups(m, loc.groups)
		if err != nil {
			return nil, err
		}
		var out []table.LedgerEntry
		for _, g := range groups {
			out = append(out, entry(g, "", -1))
		}
		return out, nil
	}
	return nil, core.NewConfigError("location", "unsupported location kind")
}
