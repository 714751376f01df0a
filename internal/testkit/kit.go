// Package testkit provides fixture datasets and pre-annotated builders
// shared by tests and the preview server demo.
package testkit

import (
	"fmt"

	"tabular/app"
	"tabular/domain/table"
	"tabular/internal/resolve"
)

// SampleDataset returns a 10-row dataset with text, numeric, and paired
// open/close columns, suitable for grouping into A (4), B (4), C (2).
func SampleDataset() table.Dataset {
	n := 10
	item := table.Column{Name: "item", Values: make([]table.Value, n)}
	value1 := table.Column{Name: "value_1", Values: make([]table.Value, n)}
	value2 := table.Column{Name: "value_2", Values: make([]table.Value, n)}
	open := table.Column{Name: "open", Values: make([]table.Value, n)}
	close := table.Column{Name: "close", Values: make([]table.Value, n)}

	v1 := []float64{10, 20, 30, 40, 12, 24, 36, 48, 5, 15}
	v2 := []float64{1.5, 2.5, 3.5, 4.5, 1.2, 2.4, 3.6, 4.8, 0.5, 1.0}
	for i := 0; i < n; i++ {
		item.Values[i] = table.NewText(fmt.Sprintf("item_%02d", i+1))
		value1.Values[i] = table.NewNumber(v1[i])
		value2.Values[i] = table.NewNumber(v2[i])
		open.Values[i] = table.NewNumber(100 + float64(i))
		close.Values[i] = table.NewNumber(110 + float64(i))
	}

	ds, err := table.NewDataset(item, value1, value2, open, close)
	if err != nil {
		panic(err)
	}
	return ds
}

// GroupedBuilder returns a builder over SampleDataset with the item
// column as stub and rows grouped A (0-3), B (4-7), C (8-9).
func GroupedBuilder() *app.Builder {
	b := app.New(SampleDataset())
	mustNil(b.StubFromColumn("item"))
	mustNil(b.RowGroup(app.RowGroupOptions{Name: "A", Rows: resolve.RowIndices(0, 1, 2, 3)}))
	mustNil(b.RowGroup(app.RowGroupOptions{Name: "B", Rows: resolve.RowIndices(4, 5, 6, 7)}))
	mustNil(b.RowGroup(app.RowGroupOptions{Name: "C", Rows: resolve.RowIndices(8, 9)}))
	return b
}

// MeasurementDataset returns a 4-row base/uncert pair covering every
// missing-value combination of the uncertainty merge.
func MeasurementDataset() table.Dataset {
	base := table.Column{Name: "base", Values: []table.Value{
		table.NewNumber(12.0),
		table.NA(),
		table.NA(),
		table.NewNumber(12.0),
	}}
	uncert := table.Column{Name: "uncert", Values: []table.Value{
		table.NA(),
		table.NewNumber(0.1),
		table.NA(),
		table.NewNumber(0.1),
	}}
	ds, err := table.NewDataset(base, uncert)
	if err != nil {
		panic(err)
	}
	return ds
}

func mustNil(err error) {
	if err != nil {
		panic(err)
	}
}
