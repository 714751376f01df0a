// Package ui serves a rendered preview of a demo table over HTTP.
package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tabular/adapters/render"
	"tabular/app"
	"tabular/domain/table"
	"tabular/internal/merge"
	"tabular/internal/resolve"
	"tabular/internal/testkit"
	"tabular/ports"
)

// App represents the preview application
type App struct {
	router *chi.Mux
	source ports.DatasetSource // nil falls back to the fixture dataset
}

// Config holds preview application configuration
type Config struct {
	// Source overrides the built-in fixture dataset.
	Source ports.DatasetSource
}

// NewApp creates a new preview application
func NewApp(config Config) *App {
	a := &App{
		router: chi.NewRouter(),
		source: config.Source,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleHTML)
	a.router.Get("/table.txt", a.handleText)
}

// Router returns the HTTP handler.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the given port
func (a *App) Start(port string) error {
	return http.ListenAndServe(":"+port, a.router)
}

// buildDemo assembles the annotated demo table: header, gathered
// spanner, row groups with summary and grand-summary rows, a value
// range merge, and footnotes.
func (a *App) buildDemo(r *http.Request) (*table.Model, error) {
	var b *app.Builder
	if a.source != nil {
		var err error
		b, err = app.FromSource(r.Context(), a.source)
		if err != nil {
			return nil, err
		}
		if err := b.Header("Dataset preview", "ingested source"); err != nil {
			return nil, err
		}
		return b.Build()
	}

	b = testkit.GroupedBuilder()
	steps := []error{
		b.Header("Sample measurements", "grouped with *summary rows*"),
		b.Spanner("Values", resolve.StartsWith("value_"), true),
		b.ColumnLabels(map[string]string{"value_1": "Primary", "value_2": "Secondary"}),
		b.AlignColumns(table.AlignRight, resolve.StartsWith("value_")),
		b.MergeRange("open", "close", merge.RangeOptions{Format: table.FormatOptions{Decimals: 0}}),
		b.Footnote("Primary readings are uncalibrated.", app.InColumnLabels(resolve.Columns("value_1"))),
		b.Footnote("Group C has reduced coverage.", app.InRowGroups("C")),
		b.SourceNote("Source: fixture dataset."),
		b.SummaryRows(resolve.GroupList("A", "B"), resolve.Columns("value_1"), []table.Aggregation{
			{Fn: "mean", Label: "mean"},
			{Fn: "sum", Label: "total"},
			{Fn: "sd", Label: "s.d."},
		}, table.FormatOptions{Decimals: 2}),
		b.GrandSummaryRows(resolve.StartsWith("value_"), []table.Aggregation{
			{Fn: "mean", Label: "grand mean"},
		}, table.FormatOptions{Decimals: 2}),
	}
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func (a *App) handleHTML(w http.ResponseWriter, r *http.Request) {
	m, err := a.buildDemo(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	doc, err := render.NewHTML().Render(m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>tabular preview</title>%s</head><body>\n%s</body></html>\n", previewCSS, doc)
}

func (a *App) handleText(w http.ResponseWriter, r *http.Request) {
	m, err := a.buildDemo(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	doc, err := render.NewText().Render(m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, doc)
}

const previewCSS = `<style>
table.tabular { border-collapse: collapse; font-family: sans-serif; }
table.tabular th, table.tabular td { border: 1px solid #ccc; padding: 4px 10px; }
table.tabular tr.group th { background: #f0f0f0; text-align: left; }
table.tabular tr.summary td { font-style: italic; }
table.tabular caption { font-weight: bold; padding: 6px; }
</style>`
