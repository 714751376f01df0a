package ingest

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"tabular/domain/table"
	"tabular/internal"
)

// ExcelSource reads one sheet of an xlsx workbook. The first row is the
// header.
type ExcelSource struct {
	Path  string
	Sheet string // defaults to "Sheet1"
}

// NewExcelSource creates an Excel dataset source for the given file.
func NewExcelSource(path string) *ExcelSource {
	return &ExcelSource{Path: path}
}

// Read ingests the sheet into a typed dataset.
func (s *ExcelSource) Read(ctx context.Context) (table.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return table.Dataset{}, err
	}
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return table.Dataset{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return table.Dataset{}, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return table.Dataset{}, fmt.Errorf("sheet %s must have a header row and at least one data row", sheet)
	}
	internal.DefaultLogger.Debug("[ingest] Excel %s!%s: %d columns, %d rows", s.Path, sheet, len(rows[0]), len(rows)-1)
	return buildDataset(rows[0], rows[1:])
}
