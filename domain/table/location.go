package table

// LocationKind is the closed set of places an annotation may attach to.
type LocationKind int

const (
	LocTitle LocationKind = iota
	LocSubtitle
	LocSpanner
	LocColumnLabel
	LocBody
	LocStub
	LocRowGroup
)

// Precedence returns the fixed footer-ordering number for the location
// kind: title(1) < subtitle(2) < spanner(3) < column label(4) <
// body/stub/row group(5).
func (k LocationKind) Precedence() int {
	switch k {
	case LocTitle:
		return 1
	case LocSubtitle:
		return 2
	case LocSpanner:
		return 3
	case LocColumnLabel:
		return 4
	default:
		return 5
	}
}

// String returns the location kind name.
func (k LocationKind) String() string {
	switch k {
	case LocTitle:
		return "title"
	case LocSubtitle:
		return "subtitle"
	case LocSpanner:
		return "spanner"
	case LocColumnLabel:
		return "column_label"
	case LocBody:
		return "body"
	case LocStub:
		return "stub"
	case LocRowGroup:
		return "row_group"
	}
	return "unknown"
}

// Location is a resolved annotation target. It is a closed sum: exactly
// one concrete type exists per LocationKind, so attachment logic can
// switch exhaustively instead of silently skipping unhandled variants.
type Location interface {
	Kind() LocationKind
}

// TitleLocation targets the table title.
type TitleLocation struct{}

func (TitleLocation) Kind() LocationKind { return LocTitle }

// SubtitleLocation targets the table subtitle.
type SubtitleLocation struct{}

func (SubtitleLocation) Kind() LocationKind { return LocSubtitle }

// SpannerLocation targets one or more spanner-group labels.
type SpannerLocation struct {
	Groups []string
}

func (SpannerLocation) Kind() LocationKind { return LocSpanner }

// ColumnLabelLocation targets the labels of specific columns.
type ColumnLabelLocation struct {
	Columns []string
}

func (ColumnLabelLocation) Kind() LocationKind { return LocColumnLabel }

// BodyLocation targets data cells at the cross of columns and rows.
type BodyLocation struct {
	Columns []string
	Rows    []int
}

func (BodyLocation) Kind() LocationKind { return LocBody }

// StubLocation targets row labels in the stub.
type StubLocation struct {
	Rows []int
}

func (StubLocation) Kind() LocationKind { return LocStub }

// RowGroupLocation targets one or more row-group heading labels.
type RowGroupLocation struct {
	Groups []string
}

func (RowGroupLocation) Kind() LocationKind { return LocRowGroup }
