package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/app"
	"tabular/domain/core"
	"tabular/domain/table"
	"tabular/internal/resolve"
	"tabular/internal/testkit"
)

func TestFailedCallLeavesModelUntouched(t *testing.T) {
	b := app.New(testkit.SampleDataset())

	err := b.Footnote("note", app.InColumnLabels(resolve.Columns("value_1", "missing_col")))
	require.Error(t, err)
	assert.True(t, core.IsResolutionError(err))
	assert.Equal(t, 0, b.Model().Footnotes().Len())
}

func TestFootnoteDeduplication(t *testing.T) {
	b := app.New(testkit.SampleDataset())

	require.NoError(t, b.Footnote("note", app.InColumnLabels(resolve.Columns("value_1"))))
	require.NoError(t, b.Footnote("note", app.InColumnLabels(resolve.Columns("value_1"))))
	assert.Equal(t, 1, b.Model().Footnotes().Len())
}

func TestMoveThenAnnotateResolvesNewPosition(t *testing.T) {
	b := app.New(testkit.SampleDataset())

	require.NoError(t, b.MoveColumns(resolve.Columns("close"), "open"))
	assert.Equal(t, []string{"item", "value_1", "value_2", "open", "close"},
		b.Model().ColumnOrder())

	require.NoError(t, b.Footnote("moved", app.InColumnLabels(resolve.Columns("close"))))
	entries := b.Model().Footnotes().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "close", entries[0].Column)
}

func TestSpannerGatherPullsColumnsTogether(t *testing.T) {
	b := app.New(testkit.SampleDataset())

	// value_1 and open are not adjacent before gathering.
	require.NoError(t, b.Spanner("Pair", resolve.Columns("value_1", "open"), true))
	assert.Equal(t, []string{"item", "value_1", "open", "value_2", "close"},
		b.Model().ColumnOrder())
	assert.Equal(t, []string{"Pair"}, b.Model().SpannerGroups())
}

func TestSpannerEmptySelectionIsNoOp(t *testing.T) {
	b := app.New(testkit.SampleDataset())

	require.NoError(t, b.Spanner("Empty", resolve.StartsWith("zzz"), true))
	assert.Empty(t, b.Model().SpannerGroups())
}

func TestMergedColumnStaysAddressableUntilBuild(t *testing.T) {
	b := app.New(testkit.SampleDataset())

	require.NoError(t, b.MergeColumns("open", "close", "{1}—{2}", table.FormatOptions{Decimals: 0}))

	// Annotation calls after the merge may still target the consumed
	// column by name.
	require.NoError(t, b.ColumnLabels(map[string]string{"close": "Close"}))
	require.NoError(t, b.Footnote("pair", app.InColumnLabels(resolve.Columns("close"))))

	m, err := b.Build()
	require.NoError(t, err)

	// Physically absent from the rendered column set.
	for _, c := range m.VisibleColumns() {
		assert.NotEqual(t, "close", c.Name)
	}
	_, ok := m.Meta("close")
	assert.False(t, ok)
	assert.Equal(t, table.NewText("100—110"), m.Dataset().Cell(0, "open"))
}

func TestRowGroupRequiresNameOrOthersLabel(t *testing.T) {
	b := app.New(testkit.SampleDataset())

	err := b.RowGroup(app.RowGroupOptions{})
	assert.True(t, core.IsConfigError(err))

	err = b.RowGroup(app.RowGroupOptions{Name: "A"})
	assert.True(t, core.IsConfigError(err))

	require.NoError(t, b.RowGroup(app.RowGroupOptions{OthersLabel: "Rest"}))
	assert.Equal(t, "Rest", b.Model().Stub().OthersLabel())
}

func TestRowGroupByPredicate(t *testing.T) {
	b := app.New(testkit.SampleDataset())

	require.NoError(t, b.RowGroup(app.RowGroupOptions{
		Name: "small",
		Rows: resolve.RowsWhere(func(row map[string]table.Value) bool {
			f, ok := row["value_1"].Float()
			return ok && f < 15
		}),
	}))
	assert.Equal(t, []string{"small"}, b.Model().Stub().GroupOrder())
	assert.Equal(t, "small", b.Model().Stub().RowGroup(0))
	assert.Equal(t, "small", b.Model().Stub().RowGroup(4))
	assert.Equal(t, "small", b.Model().Stub().RowGroup(8))
}

func TestHeaderRequiresTitle(t *testing.T) {
	b := app.New(testkit.SampleDataset())

	err := b.Header("", "sub")
	assert.True(t, core.IsConfigError(err))
}

func TestSummaryRowsEmptyColumnSelectionIsNoOp(t *testing.T) {
	b := testkit.GroupedBuilder()

	require.NoError(t, b.SummaryRows(nil, resolve.StartsWith("zzz"),
		[]table.Aggregation{{Fn: "mean", Label: "mean"}}, table.DefaultFormatOptions()))
	assert.Empty(t, b.Model().SummaryDefs())
}

func TestSummaryRowsValidation(t *testing.T) {
	b := testkit.GroupedBuilder()

	err := b.SummaryRows(resolve.GroupList("A"), resolve.Columns("value_1"),
		[]table.Aggregation{{Fn: "variance", Label: "var"}}, table.DefaultFormatOptions())
	assert.True(t, core.IsConfigError(err))

	err = b.SummaryRows(resolve.GroupList("nope"), resolve.Columns("value_1"),
		[]table.Aggregation{{Fn: "mean", Label: "mean"}}, table.DefaultFormatOptions())
	assert.True(t, core.IsResolutionError(err))
}

func TestBuildSealsTheModel(t *testing.T) {
	b := testkit.GroupedBuilder()

	m, err := b.Build()
	require.NoError(t, err)
	assert.True(t, m.Built())

	_, err = b.Build()
	assert.True(t, core.IsConfigError(err))

	err = b.Header("late", "")
	assert.True(t, core.IsConfigError(err))
}

func TestBuildFailureRestoresSummaryRows(t *testing.T) {
	b := testkit.GroupedBuilder()

	require.NoError(t, b.SummaryRows(resolve.GroupList("A"), resolve.Columns("value_1"),
		[]table.Aggregation{{Fn: "mean", Label: "mean"}}, table.DefaultFormatOptions()))
	// item is textual under a numeric aggregator, so Build fails.
	require.NoError(t, b.SummaryRows(resolve.GroupList("B"), resolve.Columns("item"),
		[]table.Aggregation{{Fn: "sum", Label: "sum"}}, table.DefaultFormatOptions()))

	_, err := b.Build()
	require.Error(t, err)
	assert.True(t, core.IsFormatError(err))
	assert.Empty(t, b.Model().SummaryRowsFor("A"))
	assert.False(t, b.Model().Built())
}

func TestExtractSummaryRequiresBuild(t *testing.T) {
	b := testkit.GroupedBuilder()

	_, err := b.ExtractSummary()
	assert.True(t, core.IsConfigError(err))
}

func TestExtractSummaryAfterBuild(t *testing.T) {
	b := testkit.GroupedBuilder()
	require.NoError(t, b.SummaryRows(resolve.GroupList("A", "B"), resolve.Columns("value_1"),
		[]table.Aggregation{{Fn: "mean", Label: "mean"}}, table.FormatOptions{Decimals: 2}))

	_, err := b.Build()
	require.NoError(t, err)

	ds, err := b.ExtractSummary()
	require.NoError(t, err)
	assert.Equal(t, 2, ds.NRows())
	assert.Equal(t, table.NewNumber(25), ds.Cell(0, "value_1"))
	assert.Equal(t, table.NewNumber(30), ds.Cell(1, "value_1"))
}

func TestFromSource(t *testing.T) {
	src := staticSource{ds: testkit.SampleDataset()}
	b, err := app.FromSource(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 10, b.Model().Dataset().NRows())
}

type staticSource struct {
	ds table.Dataset
}

func (s staticSource) Read(ctx context.Context) (table.Dataset, error) {
	return s.ds, nil
}
