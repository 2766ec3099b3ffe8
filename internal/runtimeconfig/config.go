package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-docsite/internal/validation"
	"github.com/goliatone/go-docsite/sitemap"
)

var ErrContentDirRequired = errors.New("docsite config: content directory is required")
var ErrSitemapRequired = errors.New("docsite config: a sitemap or a sitemap path is required")
var ErrSitemapConflict = errors.New("docsite config: inline sitemap and sitemap path are mutually exclusive")
var ErrGeneratorOutputDirRequired = errors.New("docsite config: generator output directory is required when generator is enabled")
var ErrGeneratorWorkersInvalid = errors.New("docsite config: generator worker count must be zero or positive")
var ErrLoggingProviderUnknown = errors.New("docsite config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("docsite config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("docsite config: logging format is invalid")

// Config aggregates the runtime settings of the module. Fields
// intentionally use simple types so host applications can extend them
// later.
type Config struct {
	Site       SiteConfig
	Content    ContentConfig
	Markdown   MarkdownConfig
	Navigation NavigationConfig
	Blog       BlogConfig
	EditLinks  EditLinksConfig
	Generator  GeneratorConfig
	Logging    LoggingConfig
}

// SiteConfig carries site-wide metadata surfaced in feeds, the XML
// sitemap, and templates.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
}

// ContentConfig captures where and how content files are discovered.
type ContentConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
}

// MarkdownConfig mirrors the renderer options for runtime configuration.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// NavigationConfig declares the sitemap, inline or as a JSON file.
type NavigationConfig struct {
	Sitemap     sitemap.Sitemap
	SitemapPath string
}

// BlogConfig captures the post collection settings.
type BlogConfig struct {
	Enabled bool
	Dir     string
}

// EditLinksConfig configures "edit this page" links against the
// repository hosting the content. An empty Repo disables them.
type EditLinksConfig struct {
	Repo       string
	Branch     string
	ContentDir string
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled          bool
	OutputDir        string
	CleanBuild       bool
	GenerateSitemap  bool
	GenerateRobots   bool
	GenerateFeeds    bool
	GenerateManifest bool
	Workers          int
	TemplatePath     string
	Theming          ThemingConfig
}

// ThemingConfig selects the go-theme manifest used during generation.
type ThemingConfig struct {
	Dir               string
	DefaultTheme      string
	DefaultVariant    string
	CSSVariablePrefix string
	PartialFallbacks  map[string]string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a docs site rooted at
// ./content publishing to ./dist.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{},
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Markdown: MarkdownConfig{},
		Navigation: NavigationConfig{
			SitemapPath: "sitemap.json",
		},
		Blog: BlogConfig{
			Enabled: true,
			Dir:     "blog",
		},
		EditLinks: EditLinksConfig{
			Branch: "master",
		},
		Generator: GeneratorConfig{
			OutputDir:        "dist",
			CleanBuild:       true,
			GenerateSitemap:  true,
			GenerateRobots:   false,
			GenerateFeeds:    false,
			GenerateManifest: true,
			Workers:          0,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if len(cfg.Navigation.Sitemap) == 0 && strings.TrimSpace(cfg.Navigation.SitemapPath) == "" {
		return ErrSitemapRequired
	}
	if len(cfg.Navigation.Sitemap) > 0 && strings.TrimSpace(cfg.Navigation.SitemapPath) != "" {
		return ErrSitemapConflict
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
	}
	if cfg.Generator.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrGeneratorWorkersInvalid, cfg.Generator.Workers)
	}
	if provider := normalizeProvider(cfg.Logging.Provider); provider != "" {
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// ResolveSitemap returns the inline sitemap or loads the configured
// file. Either way the result passed structural and semantic
// validation.
func (n NavigationConfig) ResolveSitemap() (sitemap.Sitemap, error) {
	if len(n.Sitemap) > 0 {
		if err := n.Sitemap.Validate(); err != nil {
			return nil, err
		}
		return n.Sitemap, nil
	}
	path := strings.TrimSpace(n.SitemapPath)
	if path == "" {
		return nil, ErrSitemapRequired
	}
	return LoadSitemapFile(path)
}

// LoadSitemapFile reads a sitemap JSON document, checks it against the
// embedded schema, and decodes it preserving declaration order.
func LoadSitemapFile(path string) (sitemap.Sitemap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docsite config: read sitemap %s: %w", path, err)
	}
	if err := validation.ValidateSitemapDocument(data); err != nil {
		return nil, fmt.Errorf("docsite config: sitemap %s: %w", path, err)
	}
	parsed, err := sitemap.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("docsite config: sitemap %s: %w", path, err)
	}
	if err := parsed.Validate(); err != nil {
		return nil, fmt.Errorf("docsite config: sitemap %s: %w", path, err)
	}
	return parsed, nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
