package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/domain/core"
	"tabular/domain/table"
)

func testModel(t *testing.T) *table.Model {
	t.Helper()
	ds, err := table.NewDataset(
		table.Column{Name: "item", Values: []table.Value{table.NewText("a"), table.NewText("b"), table.NewText("c")}},
		table.Column{Name: "value_1", Values: []table.Value{table.NewNumber(1), table.NewNumber(20), table.NewNumber(3)}},
		table.Column{Name: "value_2", Values: []table.Value{table.NewNumber(4), table.NewNumber(5), table.NewNumber(6)}},
		table.Column{Name: "note", Values: []table.Value{table.NA(), table.NewText("x"), table.NA()}},
	)
	require.NoError(t, err)
	return table.NewModel(ds)
}

func TestResolveColumnsNamedKeepsSuppliedOrder(t *testing.T) {
	m := testModel(t)

	cols, err := ResolveColumns(m, Columns("note", "item", "note"))
	require.NoError(t, err)
	assert.Equal(t, []string{"note", "item"}, cols)
}

func TestResolveColumnsUnknownName(t *testing.T) {
	m := testModel(t)

	_, err := ResolveColumns(m, Columns("missing_col"))
	assert.True(t, core.IsResolutionError(err))
}

func TestResolveColumnsPredicates(t *testing.T) {
	m := testModel(t)

	cols, err := ResolveColumns(m, StartsWith("value_"))
	require.NoError(t, err)
	assert.Equal(t, []string{"value_1", "value_2"}, cols)

	cols, err = ResolveColumns(m, EndsWith("_2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"value_2"}, cols)

	cols, err = ResolveColumns(m, Contains("ot"))
	require.NoError(t, err)
	assert.Equal(t, []string{"note"}, cols)

	cols, err = ResolveColumns(m, Matches(`^value_\d$`))
	require.NoError(t, err)
	assert.Equal(t, []string{"value_1", "value_2"}, cols)
}

func TestResolveColumnsEmptyPredicateResult(t *testing.T) {
	m := testModel(t)

	cols, err := ResolveColumns(m, StartsWith("zzz"))
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestResolveColumnsInvalidPattern(t *testing.T) {
	m := testModel(t)

	_, err := ResolveColumns(m, Matches("["))
	assert.True(t, core.IsConfigError(err))
}

func TestResolveColumnsUnionDeduplicates(t *testing.T) {
	m := testModel(t)

	cols, err := ResolveColumns(m, Union(Columns("value_2"), StartsWith("value_")))
	require.NoError(t, err)
	assert.Equal(t, []string{"value_2", "value_1"}, cols)
}

func TestResolveColumnsComplement(t *testing.T) {
	m := testModel(t)

	cols, err := ResolveColumns(m, Complement(StartsWith("value_")))
	require.NoError(t, err)
	assert.Equal(t, []string{"item", "note"}, cols)

	cols, err = ResolveColumns(m, Complement(AllColumns()))
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestResolveColumnsAll(t *testing.T) {
	m := testModel(t)

	cols, err := ResolveColumns(m, AllColumns())
	require.NoError(t, err)
	assert.Equal(t, []string{"item", "value_1", "value_2", "note"}, cols)
}

func TestResolveRowsLabelsKeepSuppliedOrder(t *testing.T) {
	m := testModel(t)
	m.Stub().SetRowLabel(0, "first")
	m.Stub().SetRowLabel(1, "second")
	m.Stub().SetRowLabel(2, "third")

	rows, err := ResolveRows(m, RowLabels("third", "first"))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, rows)
}

func TestResolveRowsUnknownLabel(t *testing.T) {
	m := testModel(t)

	_, err := ResolveRows(m, RowLabels("nope"))
	assert.True(t, core.IsResolutionError(err))
}

func TestResolveRowsIndices(t *testing.T) {
	m := testModel(t)

	rows, err := ResolveRows(m, RowIndices(2, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, rows)

	_, err = ResolveRows(m, RowIndices(3))
	assert.True(t, core.IsResolutionError(err))
}

func TestResolveRowsPredicateSortedSet(t *testing.T) {
	m := testModel(t)

	rows, err := ResolveRows(m, RowsWhere(func(row map[string]table.Value) bool {
		f, ok := row["value_1"].Float()
		return ok && f < 10
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, rows)
}

func TestResolveRowsEmptyPredicateResult(t *testing.T) {
	m := testModel(t)

	rows, err := ResolveRows(m, RowsWhere(func(row map[string]table.Value) bool { return false }))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGroupListMarkerStripping(t *testing.T) {
	m := testModel(t)
	require.NoError(t, m.SetGroup([]int{0, 1}, "alpha"))
	require.NoError(t, m.SetGroup([]int{2}, "beta"))

	groups, err := ResolveGroups(m, GroupList("beta", "alpha"))
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "alpha"}, groups)

	// Plain lists resolve the same way.
	groups, err = ResolveGroups(m, []string{"alpha"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, groups)
}

func TestResolveGroupsUnknown(t *testing.T) {
	m := testModel(t)

	_, err := ResolveGroups(m, GroupList("ghost"))
	assert.True(t, core.IsResolutionError(err))
}
