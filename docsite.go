package docsite

import (
	"context"

	"github.com/goliatone/go-docsite/internal/blog"
	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/internal/navigation"
	"github.com/goliatone/go-docsite/internal/site"
	"github.com/goliatone/go-docsite/pages"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

var (
	// ErrSlugRequired reports a props request with no slug segments.
	ErrSlugRequired = site.ErrSlugRequired
	// ErrGeneratorDisabled reports build or clean calls on a module whose
	// generator section is disabled.
	ErrGeneratorDisabled = generator.ErrServiceDisabled
)

// ContentService exports the markdown page source contract.
type ContentService = *markdown.Service

// NavigationService exports the menu builder contract.
type NavigationService = *navigation.Service

// BlogService exports the blog listing helper contract.
type BlogService = *blog.Service

// SiteService exports the props assembler contract.
type SiteService = *site.Service

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// PageProps exports the assembled render payload.
type PageProps = site.PageProps

// AppData exports the site wide props section.
type AppData = site.AppData

// BuildOptions exports the generator build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build report.
type BuildResult = generator.BuildResult

// Page exports the loaded page model.
type Page = pages.Page

// PageLink exports the prev/next link DTO.
type PageLink = pages.PageLink

// PageSummary exports the menu facing page projection.
type PageSummary = pages.Summary

// MenuEntry exports a normalized menu node.
type MenuEntry = pages.MenuEntry

// Module is the top level entry point. It owns the dependency container
// and exposes the configured services.
type Module struct {
	container *di.Container
}

// New builds a module from the provided configuration. Options override
// container defaults such as the content filesystem or the logger provider.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return &Module{container: container}, nil
}

// Container exposes the dependency container for advanced wiring.
func (m *Module) Container() *di.Container {
	return m.container
}

// Content returns the markdown page source.
func (m *Module) Content() ContentService {
	return m.container.MarkdownService()
}

// Navigation returns the menu builder.
func (m *Module) Navigation() NavigationService {
	return m.container.NavigationService()
}

// Blog returns the blog helper, nil when the blog section is disabled.
func (m *Module) Blog() BlogService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.BlogService()
}

// Site returns the props assembler.
func (m *Module) Site() SiteService {
	return m.container.SiteService()
}

// Generator returns the configured generator service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// LoggerProvider returns the logger provider backing the module.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Sitemap returns the resolved navigation tree.
func (m *Module) Sitemap() Sitemap {
	return m.container.Sitemap()
}

// Props assembles the render payload for a page addressed by slug
// segments. At least one segment is required; the first names the
// sitemap section.
func (m *Module) Props(ctx context.Context, slug []string) (PageProps, error) {
	return m.container.SiteService().Props(ctx, slug)
}

// PropsForPath assembles the render payload for a slash separated route.
func (m *Module) PropsForPath(ctx context.Context, path string) (PageProps, error) {
	return m.container.SiteService().PropsForPath(ctx, path)
}

// StaticPaths lists every route derived from the sitemap.
func (m *Module) StaticPaths() StaticPaths {
	return m.container.SiteService().StaticPaths()
}

// Routes lists the slash separated routes derived from the sitemap.
func (m *Module) Routes() []string {
	return m.container.SiteService().Routes()
}

// Build renders the site into the configured output directory.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.container.GeneratorService().Build(ctx, opts)
}

// Clean removes generated artifacts from the output directory.
func (m *Module) Clean(ctx context.Context) error {
	return m.container.GeneratorService().Clean(ctx)
}
