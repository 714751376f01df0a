package resolve

import (
	"tabular/domain/core"
	"tabular/domain/table"
)

// groupListMarker is the sentinel the list-construction helper prepends.
// Group resolution strips one leading marker before treating the
// remainder as literal group names.
const groupListMarker = "\x00::group_list::"

// GroupList builds a marked group-name list for group-targeted calls.
func GroupList(names ...string) []string {
	return append([]string{groupListMarker}, names...)
}

// StripGroupMarker removes a leading list marker, if present.
func StripGroupMarker(names []string) []string {
	if len(names) > 0 && names[0] == groupListMarker {
		return names[1:]
	}
	return names
}

// ResolveGroups validates literal group names against the model's group
// order, after stripping a leading list marker. The order of the
// supplied list is preserved; unknown groups fail with a resolution
// error.
func ResolveGroups(m *table.Model, names []string) ([]string, error) {
	names = StripGroupMarker(names)
	known := make(map[string]bool)
	for _, g := range m.Stub().GroupOrder() {
		known[g] = true
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !known[n] {
			return nil, core.NewUnknownGroupError(n)
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out, nil
}
