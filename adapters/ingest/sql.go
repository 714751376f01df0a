package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"tabular/domain/table"
	"tabular/internal"
)

// SQLSource reads the result set of a query. Column names become
// dataset column names in select order.
type SQLSource struct {
	DB    *sqlx.DB
	Query string
	Args  []interface{}
}

// NewSQLSource creates a SQL dataset source for the given query.
func NewSQLSource(db *sqlx.DB, query string, args ...interface{}) *SQLSource {
	return &SQLSource{DB: db, Query: query, Args: args}
}

// Read runs the query and ingests the rows into a typed dataset.
func (s *SQLSource) Read(ctx context.Context) (table.Dataset, error) {
	rows, err := s.DB.QueryxContext(ctx, s.Query, s.Args...)
	if err != nil {
		return table.Dataset{}, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return table.Dataset{}, fmt.Errorf("failed to read result columns: %w", err)
	}

	cols := make([]table.Column, len(names))
	for i, n := range names {
		cols[i] = table.Column{Name: n}
	}
	count := 0
	for rows.Next() {
		record, err := rows.SliceScan()
		if err != nil {
			return table.Dataset{}, fmt.Errorf("failed to scan row: %w", err)
		}
		for i := range cols {
			var v table.Value
			if i < len(record) {
				v = sqlValue(record[i])
			} else {
				v = table.NA()
			}
			cols[i].Values = append(cols[i].Values, v)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return table.Dataset{}, fmt.Errorf("row iteration failed: %w", err)
	}
	if count == 0 {
		return table.Dataset{}, fmt.Errorf("query returned no rows")
	}
	internal.DefaultLogger.Debug("[ingest] SQL: %d columns, %d rows", len(cols), count)
	return table.NewDataset(cols...)
}

// sqlValue maps a driver value onto a typed cell.
func sqlValue(v interface{}) table.Value {
	switch x := v.(type) {
	case nil:
		return table.NA()
	case float64:
		return table.NewNumber(x)
	case float32:
		return table.NewNumber(float64(x))
	case int64:
		return table.NewNumber(float64(x))
	case int:
		return table.NewNumber(float64(x))
	case bool:
		return table.NewLogical(x)
	case time.Time:
		return table.NewDate(x)
	case []byte:
		return textOrNumber(string(x))
	case string:
		return textOrNumber(x)
	}
	return table.NewText(fmt.Sprintf("%v", v))
}

// textOrNumber resolves drivers that hand numerics back as text.
func textOrNumber(s string) table.Value {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return table.NewNumber(f)
	}
	return table.NewText(s)
}
