package table

// Stub holds the row-label and row-group region metadata. Group order is
// explicit and append-only; rows sharing a group render contiguously.
type Stub struct {
	labels []string // per dataset row, "" when unlabeled
	groups []string // per dataset row, "" when ungrouped

	// groupOrder lists explicit group names in first-appearance order.
	// The implicit ungrouped bucket is tracked separately and always
	// renders last.
	groupOrder  []string
	hasOthers   bool
	othersLabel string
}

func newStub(nrows int) Stub {
	return Stub{
		labels: make([]string, nrows),
		groups: make([]string, nrows),
	}
}

// RowLabel returns the stub label for a dataset row.
func (s *Stub) RowLabel(row int) string {
	if row < 0 || row >= len(s.labels) {
		return ""
	}
	return s.labels[row]
}

// SetRowLabel assigns the stub label for a dataset row.
func (s *Stub) SetRowLabel(row int, label string) {
	if row >= 0 && row < len(s.labels) {
		s.labels[row] = label
	}
}

// RowGroup returns the group a dataset row belongs to, "" if ungrouped.
func (s *Stub) RowGroup(row int) string {
	if row < 0 || row >= len(s.groups) {
		return ""
	}
	return s.groups[row]
}

// GroupOrder returns the explicit group names in first-appearance order.
func (s *Stub) GroupOrder() []string {
	out := make([]string, len(s.groupOrder))
	copy(out, s.groupOrder)
	return out
}

// HasOthers reports whether an implicit ungrouped bucket exists.
func (s *Stub) HasOthers() bool {
	return s.hasOthers
}

// OthersLabel returns the name given to the ungrouped bucket, "" if none.
func (s *Stub) OthersLabel() string {
	return s.othersLabel
}

// setGroup assigns rows to a named group. Repeating a name is an
// idempotent union; a first assignment that leaves rows ungrouped
// appends the implicit trailing bucket.
func (s *Stub) setGroup(rows []int, name string) {
	for _, r := range rows {
		if r >= 0 && r < len(s.groups) {
			s.groups[r] = name
		}
	}
	known := false
	for _, g := range s.groupOrder {
		if g == name {
			known = true
			break
		}
	}
	if !known {
		s.groupOrder = append(s.groupOrder, name)
	}
	if !s.hasOthers {
		for _, g := range s.groups {
			if g == "" {
				s.hasOthers = true
				break
			}
		}
	}
}

// groupRows returns the dataset row indices of a group, in dataset
// order. The empty name selects the ungrouped bucket.
func (s *Stub) groupRows(name string) []int {
	var out []int
	for i, g := range s.groups {
		if g == name {
			out = append(out, i)
		}
	}
	return out
}
