package summary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/domain/core"
	"tabular/domain/table"
	"tabular/internal/summary"
	"tabular/internal/testkit"
)

// groupedModel builds the 10-row A(4)/B(4)/C(2) fixture model without
// going through the Builder.
func groupedModel(t *testing.T) *table.Model {
	t.Helper()
	m := table.NewModel(testkit.SampleDataset())
	require.NoError(t, m.SetGroup([]int{0, 1, 2, 3}, "A"))
	require.NoError(t, m.SetGroup([]int{4, 5, 6, 7}, "B"))
	require.NoError(t, m.SetGroup([]int{8, 9}, "C"))
	return m
}

func TestMaterializeGroupScenario(t *testing.T) {
	m := groupedModel(t)
	m.AddSummaryDef(table.SummaryDef{
		Scope:   table.ScopeGroups,
		Groups:  []string{"A", "B"},
		Columns: []string{"value_1"},
		Aggregations: []table.Aggregation{
			{Fn: summary.AggMean, Label: "mean"},
			{Fn: summary.AggSum, Label: "sum"},
			{Fn: summary.AggSD, Label: "sd"},
		},
		Format: table.FormatOptions{Decimals: 2},
	})

	require.NoError(t, summary.Materialize(m))

	aRows := m.SummaryRowsFor("A")
	require.Len(t, aRows, 3)
	assert.Equal(t, "25.00", aRows[0].Cells["value_1"])
	assert.Equal(t, "100.00", aRows[1].Cells["value_1"])
	assert.Equal(t, "12.91", aRows[2].Cells["value_1"])

	bRows := m.SummaryRowsFor("B")
	require.Len(t, bRows, 3)
	assert.Equal(t, "30.00", bRows[0].Cells["value_1"])
	assert.Equal(t, "120.00", bRows[1].Cells["value_1"])
	assert.Equal(t, "15.49", bRows[2].Cells["value_1"])

	// Group C is untouched.
	assert.Empty(t, m.SummaryRowsFor("C"))

	// Aggregation order becomes row order within the block.
	assert.Equal(t, []string{"mean", "sum", "sd"},
		[]string{aRows[0].Label, aRows[1].Label, aRows[2].Label})
}

func TestMaterializeSingleRowGroupSDIsMissing(t *testing.T) {
	m := table.NewModel(testkit.SampleDataset())
	require.NoError(t, m.SetGroup([]int{0}, "solo"))
	m.AddSummaryDef(table.SummaryDef{
		Scope:   table.ScopeGroups,
		Groups:  []string{"solo"},
		Columns: []string{"value_1"},
		Aggregations: []table.Aggregation{
			{Fn: summary.AggMean, Label: "mean"},
			{Fn: summary.AggSD, Label: "sd"},
		},
		Format: table.FormatOptions{Decimals: 2},
	})

	require.NoError(t, summary.Materialize(m))

	rows := m.SummaryRowsFor("solo")
	require.Len(t, rows, 2)
	assert.Equal(t, "10.00", rows[0].Cells["value_1"])
	// Sample sd is undefined for one value: the cell stays unset so
	// renderers show it as missing, never the literal "NaN".
	_, set := rows[1].Cells["value_1"]
	assert.False(t, set)
}

func TestMaterializeGrandSummary(t *testing.T) {
	m := groupedModel(t)
	m.AddSummaryDef(table.SummaryDef{
		Scope:        table.ScopeGrand,
		Columns:      []string{"value_1"},
		Aggregations: []table.Aggregation{{Fn: summary.AggMean, Label: "grand mean"}},
		Format:       table.FormatOptions{Decimals: 1},
	})

	require.NoError(t, summary.Materialize(m))

	grand := m.GrandSummaryRows()
	require.Len(t, grand, 1)
	assert.Equal(t, "24.0", grand[0].Cells["value_1"])

	// The grand block renders terminally, after every group block.
	blocks := m.RowBlocks()
	last := blocks[len(blocks)-1]
	assert.Empty(t, last.Rows)
	require.Len(t, last.Summaries, 1)
	assert.Equal(t, "grand mean", last.Summaries[0].Label)
}

func TestMaterializeScopeAll(t *testing.T) {
	m := groupedModel(t)
	m.AddSummaryDef(table.SummaryDef{
		Scope:        table.ScopeAll,
		Columns:      []string{"value_2"},
		Aggregations: []table.Aggregation{{Fn: summary.AggMax, Label: "max"}},
		Format:       table.FormatOptions{Decimals: 1},
	})

	require.NoError(t, summary.Materialize(m))
	assert.Len(t, m.SummaryRowsFor("A"), 1)
	assert.Len(t, m.SummaryRowsFor("B"), 1)
	assert.Len(t, m.SummaryRowsFor("C"), 1)
	assert.Equal(t, "4.5", m.SummaryRowsFor("A")[0].Cells["value_2"])
}

func TestMaterializeNonNumericColumnFails(t *testing.T) {
	m := groupedModel(t)
	m.AddSummaryDef(table.SummaryDef{
		Scope:        table.ScopeGroups,
		Groups:       []string{"A"},
		Columns:      []string{"item"},
		Aggregations: []table.Aggregation{{Fn: summary.AggMean, Label: "mean"}},
	})

	err := summary.Materialize(m)
	require.Error(t, err)
	assert.True(t, core.IsFormatError(err))
	assert.Contains(t, err.Error(), "item")
	assert.Contains(t, err.Error(), "mean")
}

func TestMaterializeSkipsMissingValues(t *testing.T) {
	ds, err := table.NewDataset(
		table.Column{Name: "v", Values: []table.Value{table.NewNumber(10), table.NA(), table.NewNumber(30)}},
	)
	require.NoError(t, err)
	m := table.NewModel(ds)
	require.NoError(t, m.SetGroup([]int{0, 1, 2}, "G"))
	m.AddSummaryDef(table.SummaryDef{
		Scope:        table.ScopeGroups,
		Groups:       []string{"G"},
		Columns:      []string{"v"},
		Aggregations: []table.Aggregation{{Fn: summary.AggMean, Label: "mean"}},
		Format:       table.FormatOptions{Decimals: 0},
	})

	require.NoError(t, summary.Materialize(m))
	assert.Equal(t, "20", m.SummaryRowsFor("G")[0].Cells["v"])
}

func TestExtractRoundTrip(t *testing.T) {
	m := groupedModel(t)
	m.AddSummaryDef(table.SummaryDef{
		Scope:        table.ScopeGroups,
		Groups:       []string{"A", "B"},
		Columns:      []string{"value_1"},
		Aggregations: []table.Aggregation{{Fn: summary.AggMean, Label: "mean"}},
		Format:       table.FormatOptions{Decimals: 2},
	})
	require.NoError(t, summary.Materialize(m))

	extracted, err := summary.Extract(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"group_name", "row_label", "value_1"}, extracted.ColumnNames())
	require.Equal(t, 2, extracted.NRows())

	// Feed the extraction back as a fresh dataset and re-summarize
	// per group; the literal values reproduce.
	m2 := table.NewModel(extracted)
	for r := 0; r < extracted.NRows(); r++ {
		require.NoError(t, m2.SetGroup([]int{r}, extracted.Cell(r, "group_name").Text))
	}
	m2.AddSummaryDef(table.SummaryDef{
		Scope:        table.ScopeAll,
		Columns:      []string{"value_1"},
		Aggregations: []table.Aggregation{{Fn: summary.AggMean, Label: "mean"}},
		Format:       table.FormatOptions{Decimals: 2},
	})
	require.NoError(t, summary.Materialize(m2))

	assert.Equal(t, "25.00", m2.SummaryRowsFor("A")[0].Cells["value_1"])
	assert.Equal(t, "30.00", m2.SummaryRowsFor("B")[0].Cells["value_1"])
	assert.Equal(t, 25.0, m2.SummaryRowsFor("A")[0].Raw["value_1"])
	assert.Equal(t, 30.0, m2.SummaryRowsFor("B")[0].Raw["value_1"])
}

func TestExtractWithoutRows(t *testing.T) {
	m := groupedModel(t)
	_, err := summary.Extract(m)
	assert.True(t, core.IsConfigError(err))
}

func TestQuartileAggregations(t *testing.T) {
	m := groupedModel(t)
	m.AddSummaryDef(table.SummaryDef{
		Scope:        table.ScopeGroups,
		Groups:       []string{"A"},
		Columns:      []string{"value_1"},
		Aggregations: []table.Aggregation{{Fn: summary.AggQ1, Label: "q1"}, {Fn: summary.AggQ3, Label: "q3"}},
		Format:       table.FormatOptions{Decimals: 0},
	})
	require.NoError(t, summary.Materialize(m))

	rows := m.SummaryRowsFor("A")
	require.Len(t, rows, 2)
	assert.Equal(t, "q1", rows[0].Label)
	assert.Equal(t, "q3", rows[1].Label)
	assert.NotEmpty(t, rows[0].Cells["value_1"])
	assert.NotEmpty(t, rows[1].Cells["value_1"])
}
