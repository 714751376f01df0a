package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tabular/domain/table"
)

func TestInferValue(t *testing.T) {
	assert.True(t, inferValue("").IsMissing())
	assert.True(t, inferValue("NA").IsMissing())
	assert.True(t, inferValue("null").IsMissing())

	v := inferValue("1,234.5")
	require.Equal(t, table.KindNumber, v.Kind)
	assert.Equal(t, 1234.5, v.Number)

	v = inferValue("TRUE")
	require.Equal(t, table.KindLogical, v.Kind)
	assert.True(t, v.Logical)

	v = inferValue("2024-03-15")
	require.Equal(t, table.KindDate, v.Kind)
	assert.Equal(t, time.March, v.Date.Month())

	v = inferValue("widget")
	require.Equal(t, table.KindText, v.Kind)
	assert.Equal(t, "widget", v.Text)
}

func TestCSVSourceRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "item,qty,shipped,when\nbolts,120,true,2024-03-15\nnuts,,false,2024-03-16\nwashers,5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := NewCSVSource(path).Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"item", "qty", "shipped", "when"}, ds.ColumnNames())
	assert.Equal(t, 3, ds.NRows())
	assert.Equal(t, table.KindText, ds.Cell(0, "item").Kind)
	assert.Equal(t, 120.0, ds.Cell(0, "qty").Number)
	assert.True(t, ds.Cell(1, "qty").IsMissing())
	assert.Equal(t, table.KindLogical, ds.Cell(1, "shipped").Kind)
	assert.Equal(t, table.KindDate, ds.Cell(0, "when").Kind)
	// Short record pads with missing cells.
	assert.True(t, ds.Cell(2, "shipped").IsMissing())
	assert.True(t, ds.Cell(2, "when").IsMissing())
}

func TestCSVSourceCustomDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\n1\t2\n"), 0o644))

	src := &CSVSource{Path: path, Comma: '\t'}
	ds, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.0, ds.Cell(0, "b").Number)
}

func TestCSVSourceNeedsDataRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	_, err := NewCSVSource(path).Read(context.Background())
	assert.Error(t, err)
}

func TestCSVSourceHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCSVSource("unused.csv").Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExcelSourceRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "item"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "qty"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "bolts"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 120))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "nuts"))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", 7.5))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewExcelSource(path).Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"item", "qty"}, ds.ColumnNames())
	assert.Equal(t, 2, ds.NRows())
	assert.Equal(t, 120.0, ds.Cell(0, "qty").Number)
	assert.Equal(t, 7.5, ds.Cell(1, "qty").Number)
}

func TestExcelSourceMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "a"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "1"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src := &ExcelSource{Path: path, Sheet: "Nope"}
	_, err := src.Read(context.Background())
	assert.Error(t, err)
}
