package render

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"tabular/domain/core"
	"tabular/domain/table"
	"tabular/internal"
	"tabular/ports"
)

// WriteAll renders the model to every requested output path
// concurrently. The model has been sealed by Build, so the concurrent
// renderers only ever read it.
func WriteAll(ctx context.Context, m *table.Model, outputs map[string]ports.Renderer) error {
	if !m.Built() {
		return core.NewConfigError("WriteAll", "model not built")
	}
	g, ctx := errgroup.WithContext(ctx)
	for path, r := range outputs {
		path, r := path, r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := r.Render(m)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				return err
			}
			internal.DefaultLogger.Info("[render] wrote %s (%d bytes)", path, len(doc))
			return nil
		})
	}
	return g.Wait()
}
