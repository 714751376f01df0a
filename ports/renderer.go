package ports

import (
	"tabular/domain/table"
)

// Renderer consumes a finished, sealed table model read-only and emits
// one output markup.
type Renderer interface {
	// Render walks the model and returns the rendered document.
	Render(m *table.Model) (string, error)
}
