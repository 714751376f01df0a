package ports

import (
	"context"

	"tabular/domain/table"
)

// DatasetSource reads a rectangular source into the row-oriented
// in-memory dataset the table model owns.
type DatasetSource interface {
	// Read ingests the source. The returned dataset's row count is
	// fixed from here on.
	Read(ctx context.Context) (table.Dataset, error)
}
