package table

import (
	"fmt"
	"time"
)

// Kind enumerates the cell value types a dataset column may carry.
type Kind int

const (
	KindMissing Kind = iota
	KindNumber
	KindText
	KindDate
	KindLogical
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindLogical:
		return "logical"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a single typed cell. Exactly the field matching Kind is
// meaningful; the others are zero.
type Value struct {
	Kind    Kind
	Number  float64
	Text    string
	Date    time.Time
	Logical bool
}

// NA returns a missing value.
func NA() Value {
	return Value{Kind: KindMissing}
}

// NewNumber wraps a float64 cell value.
func NewNumber(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// NewText wraps a text cell value.
func NewText(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// NewDate wraps a date cell value.
func NewDate(t time.Time) Value {
	return Value{Kind: KindDate, Date: t}
}

// NewLogical wraps a boolean cell value.
func NewLogical(b bool) Value {
	return Value{Kind: KindLogical, Logical: b}
}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Float returns the numeric content and whether the value is numeric.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Number, true
}

// Equal reports full-field equality between two values.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Number == o.Number
	case KindText:
		return v.Text == o.Text
	case KindDate:
		return v.Date.Equal(o.Date)
	case KindLogical:
		return v.Logical == o.Logical
	}
	return true
}
