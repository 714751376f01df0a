package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"tabular/domain/table"
	"tabular/internal"
)

// CSVSource reads a delimited text file. The first record is the header.
type CSVSource struct {
	Path string
	// Comma overrides the field delimiter; zero means ','.
	Comma rune
}

// NewCSVSource creates a CSV dataset source for the given file.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Read ingests the file into a typed dataset.
func (s *CSVSource) Read(ctx context.Context) (table.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return table.Dataset{}, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return table.Dataset{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if s.Comma != 0 {
		reader.Comma = s.Comma
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return table.Dataset{}, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	if len(records) < 2 {
		return table.Dataset{}, fmt.Errorf("CSV file must have a header row and at least one data row")
	}
	internal.DefaultLogger.Debug("[ingest] CSV %s: %d columns, %d rows", s.Path, len(records[0]), len(records)-1)
	return buildDataset(records[0], records[1:])
}
