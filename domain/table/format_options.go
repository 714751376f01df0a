package table

import (
	"fmt"

	"tabular/domain/core"
)

// FormatOptions carries the numeric formatting knobs shared by explicit
// format directives, column merges, and summary rows.
type FormatOptions struct {
	// Decimals is the fixed decimal count; -1 renders the shortest
	// exact representation.
	Decimals int
	// SepMark groups integer digits in threes; empty disables grouping.
	SepMark string
	// DecMark replaces the decimal point; empty means ".".
	DecMark string
}

// DefaultFormatOptions returns the shortest-representation defaults.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Decimals: -1}
}

// Validate rejects option combinations the formatter cannot honor.
func (o FormatOptions) Validate() error {
	if o.Decimals < -1 {
		return core.NewInvalidOptionError("decimals", fmt.Sprintf("must be >= 0 (or -1 for shortest), got %d", o.Decimals))
	}
	if o.SepMark != "" && o.SepMark == o.decMark() {
		return core.NewInvalidOptionError("sep_mark", "separator and decimal mark collide")
	}
	return nil
}

func (o FormatOptions) decMark() string {
	if o.DecMark == "" {
		return "."
	}
	return o.DecMark
}

func (o FormatOptions) key() string {
	return fmt.Sprintf("%d|%s|%s", o.Decimals, o.SepMark, o.DecMark)
}
