package di

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-docsite/internal/blog"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/logging/console"
	"github.com/goliatone/go-docsite/internal/logging/gologger"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/internal/navigation"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/internal/site"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	"github.com/goliatone/go-docsite/sitemap"
)

// Container wires module dependencies from runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	contentFS        fs.FS
	loggerProvider   interfaces.LoggerProvider
	templateRenderer generator.TemplateRenderer

	siteMap sitemap.Sitemap

	markdownSvc   *markdown.Service
	navigationSvc *navigation.Service
	blogSvc       *blog.Service
	siteSvc       *site.Service
	generatorSvc  generator.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithContentFS overrides the content filesystem. The default roots an
// os.DirFS at the configured content directory.
func WithContentFS(filesystem fs.FS) Option {
	return func(c *Container) {
		c.contentFS = filesystem
	}
}

// WithLoggerProvider overrides the logging provider selected from
// configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithTemplateRenderer overrides the template renderer used for static
// builds.
func WithTemplateRenderer(renderer generator.TemplateRenderer) Option {
	return func(c *Container) {
		c.templateRenderer = renderer
	}
}

// WithSiteService overrides the default props assembler binding.
func WithSiteService(svc *site.Service) Option {
	return func(c *Container) {
		c.siteSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureSitemap(); err != nil {
		return nil, err
	}
	if err := c.configureContent(); err != nil {
		return nil, err
	}

	c.configureNavigation()
	c.configureBlog()

	if err := c.configureSite(); err != nil {
		return nil, err
	}
	if err := c.configureGenerator(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "", "console":
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: consoleMinLevel(c.Config.Logging.Level),
		})
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		return fmt.Errorf("di: unsupported logging provider %q", c.Config.Logging.Provider)
	}
	return nil
}

func (c *Container) configureSitemap() error {
	siteMap, err := c.Config.Navigation.ResolveSitemap()
	if err != nil {
		return err
	}
	c.siteMap = siteMap
	return nil
}

func (c *Container) configureContent() error {
	mdCfg := markdown.Config{
		Pattern:   c.Config.Content.Pattern,
		Recursive: c.Config.Content.Recursive,
		Renderer: markdown.RenderOptions{
			Extensions: c.Config.Markdown.Extensions,
			HardWraps:  c.Config.Markdown.HardWraps,
			SafeMode:   c.Config.Markdown.SafeMode,
		},
	}

	if c.contentFS != nil {
		c.markdownSvc = markdown.NewServiceWithFS(c.contentFS, mdCfg)
		return nil
	}

	mdCfg.BasePath = c.Config.Content.Dir
	svc, err := markdown.NewService(mdCfg)
	if err != nil {
		return err
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureNavigation() {
	c.navigationSvc = navigation.NewService(c.markdownSvc, logging.NavigationLogger(c.loggerProvider))
}

func (c *Container) configureBlog() {
	if !c.Config.Blog.Enabled {
		return
	}
	c.blogSvc = blog.NewService(c.markdownSvc, blog.Config{
		Dir: c.Config.Blog.Dir,
	}, logging.BlogLogger(c.loggerProvider))
}

func (c *Container) configureSite() error {
	if c.siteSvc != nil {
		return nil
	}

	svc, err := site.NewService(site.Options{
		Sitemap:    c.siteMap,
		Loader:     c.markdownSvc,
		Renderer:   c.markdownSvc,
		Navigation: c.navigationSvc,
		Blog:       c.blogSvc,
		EditLinks: site.NewEditLinkResolver(site.EditLinkConfig{
			Repo:       c.Config.EditLinks.Repo,
			Branch:     c.Config.EditLinks.Branch,
			ContentDir: c.Config.EditLinks.ContentDir,
		}),
		Logger: logging.SiteLogger(c.loggerProvider),
	})
	if err != nil {
		return err
	}
	c.siteSvc = svc
	return nil
}

func (c *Container) configureGenerator() error {
	if !c.Config.Generator.Enabled {
		c.generatorSvc = generator.NewDisabledService()
		return nil
	}

	gcfg := c.Config.Generator
	deps := generator.Dependencies{
		Site:     c.siteSvc,
		Renderer: c.templateRenderer,
		Logger:   logging.GeneratorLogger(c.loggerProvider),
	}
	if c.blogSvc != nil {
		deps.Posts = c.blogSvc
	}

	svc, err := generator.NewService(generator.Config{
		OutputDir:        gcfg.OutputDir,
		BaseURL:          c.Config.Site.BaseURL,
		Title:            c.Config.Site.Title,
		Description:      c.Config.Site.Description,
		CleanBuild:       gcfg.CleanBuild,
		GenerateSitemap:  gcfg.GenerateSitemap,
		GenerateRobots:   gcfg.GenerateRobots,
		GenerateFeeds:    gcfg.GenerateFeeds,
		GenerateManifest: gcfg.GenerateManifest,
		Workers:          gcfg.Workers,
		TemplatePath:     gcfg.TemplatePath,
		Theming: generator.ThemingConfig{
			Dir:               gcfg.Theming.Dir,
			DefaultTheme:      gcfg.Theming.DefaultTheme,
			DefaultVariant:    gcfg.Theming.DefaultVariant,
			CSSVariablePrefix: gcfg.Theming.CSSVariablePrefix,
			PartialFallbacks:  gcfg.Theming.PartialFallbacks,
		},
	}, deps)
	if err != nil {
		return err
	}
	c.generatorSvc = svc
	return nil
}

// LoggerProvider exposes the configured logging provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Sitemap exposes the resolved site description.
func (c *Container) Sitemap() sitemap.Sitemap {
	return c.siteMap
}

// MarkdownService returns the configured page source.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// NavigationService returns the configured menu builder.
func (c *Container) NavigationService() *navigation.Service {
	return c.navigationSvc
}

// BlogService returns the configured post collection, nil when the blog
// is disabled.
func (c *Container) BlogService() *blog.Service {
	return c.blogSvc
}

// SiteService returns the configured props assembler.
func (c *Container) SiteService() *site.Service {
	return c.siteSvc
}

// GeneratorService returns the configured static site generator. When
// generation is disabled the service reports ErrServiceDisabled.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// GeneratorEnabled reports whether static builds are switched on.
func (c *Container) GeneratorEnabled() bool {
	return c.Config.Generator.Enabled
}

func consoleMinLevel(level string) *console.Level {
	var min console.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		min = console.LevelTrace
	case "debug":
		min = console.LevelDebug
	case "info":
		min = console.LevelInfo
	case "warn", "warning":
		min = console.LevelWarn
	case "error":
		min = console.LevelError
	case "fatal":
		min = console.LevelFatal
	default:
		return nil
	}
	return &min
}
