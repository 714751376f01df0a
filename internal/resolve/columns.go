// Package resolve evaluates symbolic location specifiers against the
// current table model, producing concrete column and row selections.
// Resolution is always eager: it reflects the model exactly as it stands
// at the moment the annotation call executes.
package resolve

import (
	"regexp"
	"strings"

	"tabular/domain/core"
	"tabular/domain/table"
)

// ColumnSelector is a closed sum over the supported ways of naming
// columns. Resolution logic switches exhaustively over the variants.
type ColumnSelector interface {
	columnSelector()
}

type namedColumns struct{ names []string }
type allColumns struct{}
type startsWith struct{ prefix string }
type endsWith struct{ suffix string }
type containsText struct{ substr string }
type matchesPattern struct{ pattern string }
type unionColumns struct{ sels []ColumnSelector }
type complementColumns struct{ sel ColumnSelector }

func (namedColumns) columnSelector()      {}
func (allColumns) columnSelector()        {}
func (startsWith) columnSelector()        {}
func (endsWith) columnSelector()          {}
func (containsText) columnSelector()      {}
func (matchesPattern) columnSelector()    {}
func (unionColumns) columnSelector()      {}
func (complementColumns) columnSelector() {}

// Columns selects columns by explicit name, in the supplied order.
func Columns(names ...string) ColumnSelector {
	return namedColumns{names: names}
}

// AllColumns selects every column in display order.
func AllColumns() ColumnSelector {
	return allColumns{}
}

// StartsWith selects columns whose name has the given prefix.
func StartsWith(prefix string) ColumnSelector {
	return startsWith{prefix: prefix}
}

// EndsWith selects columns whose name has the given suffix.
func EndsWith(suffix string) ColumnSelector {
	return endsWith{suffix: suffix}
}

// Contains selects columns whose name contains the given substring.
func Contains(substr string) ColumnSelector {
	return containsText{substr: substr}
}

// Matches selects columns whose name matches the regular expression.
func Matches(pattern string) ColumnSelector {
	return matchesPattern{pattern: pattern}
}

// Union combines selections, preserving first-occurrence order.
func Union(sels ...ColumnSelector) ColumnSelector {
	return unionColumns{sels: sels}
}

// Complement selects every column the wrapped selector does not, in
// display order.
func Complement(sel ColumnSelector) ColumnSelector {
	return complementColumns{sel: sel}
}

// ResolveColumns evaluates a selector against the model and returns a
// disjoint, order-preserving list of column names. Explicit name lists
// keep the supplied order; predicate selections keep display order.
// Columns pending a merge drop remain addressable. Unknown names fail
// with a resolution error.
func ResolveColumns(m *table.Model, sel ColumnSelector) ([]string, error) {
	switch s := sel.(type) {
	case namedColumns:
		out := make([]string, 0, len(s.names))
		seen := make(map[string]bool, len(s.names))
		for _, n := range s.names {
			if _, ok := m.Meta(n); !ok {
				return nil, core.NewUnknownColumnError(n)
			}
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
		return out, nil
	case allColumns:
		return m.ColumnOrder(), nil
	case startsWith:
		return filterColumns(m, func(n string) bool { return strings.HasPrefix(n, s.prefix) }), nil
	case endsWith:
		return filterColumns(m, func(n string) bool { return strings.HasSuffix(n, s.suffix) }), nil
	case containsText:
		return filterColumns(m, func(n string) bool { return strings.Contains(n, s.substr) }), nil
	case matchesPattern:
		re, err := regexp.Compile(s.pattern)
		if err != nil {
			return nil, core.NewConfigError("Matches", err.Error())
		}
		return filterColumns(m, re.MatchString), nil
	case unionColumns:
		var out []string
		seen := make(map[string]bool)
		for _, sub := range s.sels {
			cols, err := ResolveColumns(m, sub)
			if err != nil {
				return nil, err
			}
			for _, n := range cols {
				if !seen[n] {
					seen[n] = true
					out = append(out, n)
				}
			}
		}
		return out, nil
	case complementColumns:
		cols, err := ResolveColumns(m, s.sel)
		if err != nil {
			return nil, err
		}
		drop := make(map[string]bool, len(cols))
		for _, n := range cols {
			drop[n] = true
		}
		return filterColumns(m, func(n string) bool { return !drop[n] }), nil
	}
	return nil, core.NewConfigError("ResolveColumns", "unsupported column selector")
}

func filterColumns(m *table.Model, keep func(string) bool) []string {
	var out []string
	for _, n := range m.ColumnOrder() {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
