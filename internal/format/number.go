// Package format renders typed cell values to display strings. Numeric
// formatting (decimal count, digit grouping, decimal mark) is shared by
// explicit format directives, column merges, and summary rows.
package format

import (
	"strconv"
	"strings"

	"tabular/domain/table"
)

// Number formats a float under the given options: fixed decimals (or
// shortest exact when Decimals is -1), optional thousands separator,
// optional decimal mark replacement.
func Number(f float64, opts table.FormatOptions) string {
	s := strconv.FormatFloat(f, 'f', opts.Decimals, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	if opts.SepMark != "" {
		intPart = groupDigits(intPart, opts.SepMark)
	}

	out := intPart
	if hasFrac {
		dec := opts.DecMark
		if dec == "" {
			dec = "."
		}
		out += dec + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// groupDigits inserts the separator every three digits from the right.
func groupDigits(digits string, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Value formats any cell value for display. Missing cells render empty;
// dates use ISO order; logicals render TRUE/FALSE.
func Value(v table.Value, opts table.FormatOptions) string {
	switch v.Kind {
	case table.KindMissing:
		return ""
	case table.KindNumber:
		return Number(v.Number, opts)
	case table.KindText:
		return v.Text
	case table.KindDate:
		return v.Date.Format("2006-01-02")
	case table.KindLogical:
		if v.Logical {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}
