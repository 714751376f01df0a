package table

// Align enumerates horizontal cell alignment.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// ColumnMeta is the display metadata for one dataset column. Display
// order is the order of the model's meta slice, a permutation of the
// dataset columns.
type ColumnMeta struct {
	Name    string
	Label   string
	Align   Align
	Hidden  bool
	Spanner string

	// pendingDrop marks a merge-consumed column. The column stays
	// addressable by name until Build physically removes it.
	pendingDrop bool
}

// DisplayLabel returns the label, falling back to the column name.
func (c *ColumnMeta) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// PendingDrop reports whether the column is scheduled for removal.
func (c *ColumnMeta) PendingDrop() bool {
	return c.pendingDrop
}
