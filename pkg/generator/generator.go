// Package generator exposes the static site generation API for docsite hosts.
// Use NewService with Config and Dependencies to prerender pages, copy theme
// assets, and emit feeds without going through the full module container.
package generator

import internal "github.com/goliatone/go-docsite/internal/generator"

type (
	Service          = internal.Service
	Config           = internal.Config
	ThemingConfig    = internal.ThemingConfig
	BuildOptions     = internal.BuildOptions
	BuildResult      = internal.BuildResult
	RenderedPage     = internal.RenderedPage
	RenderDiagnostic = internal.RenderDiagnostic
	Dependencies     = internal.Dependencies
	PropsSource      = internal.PropsSource
	PostSource       = internal.PostSource
	TemplateRenderer = internal.TemplateRenderer
	TemplateContext  = internal.TemplateContext
)

var ErrServiceDisabled = internal.ErrServiceDisabled

// NewService wires a static site generator with the supplied configuration
// and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	return internal.NewService(cfg, deps)
}

// NewDisabledService returns a generator that rejects every operation with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return internal.NewDisabledService()
}
