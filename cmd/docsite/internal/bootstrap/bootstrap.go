// Package bootstrap wires a docsite module for CLI use: generator
// enabled, command handlers constructed, logging routed through the
// module's provider.
package bootstrap

import (
	"fmt"
	"strings"

	docsite "github.com/goliatone/go-docsite"
	"github.com/goliatone/go-docsite/internal/commands"
	sitecmd "github.com/goliatone/go-docsite/internal/commands/site"
	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Options captures configuration for the docsite CLI bootstrap.
type Options struct {
	ContentDir     string
	Pattern        string
	SitemapPath    string
	OutputDir      string
	BaseURL        string
	Title          string
	BlogDir        string
	ThemesDir      string
	Theme          string
	ThemeVariant   string
	Workers        int
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the docsite module plus the command handlers the CLI
// dispatches to.
type Module struct {
	Module *docsite.Module
	Build  *sitecmd.BuildSiteHandler
	Clean  *sitecmd.CleanSiteHandler
	Paths  *sitecmd.ListPathsHandler
	Logger interfaces.Logger
}

// BuildModule constructs a docsite module configured for static
// generation.
func BuildModule(opts Options) (*Module, error) {
	cfg := docsite.DefaultConfig()
	cfg.Generator.Enabled = true

	if trimmed := strings.TrimSpace(opts.ContentDir); trimmed != "" {
		cfg.Content.Dir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Content.Pattern = trimmed
	}
	if trimmed := strings.TrimSpace(opts.SitemapPath); trimmed != "" {
		cfg.Navigation.SitemapPath = trimmed
	}
	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	cfg.Site.BaseURL = strings.TrimSpace(opts.BaseURL)
	cfg.Site.Title = strings.TrimSpace(opts.Title)

	if trimmed := strings.TrimSpace(opts.BlogDir); trimmed != "" {
		cfg.Blog.Enabled = true
		cfg.Blog.Dir = trimmed
	} else {
		cfg.Blog.Enabled = false
	}

	if trimmed := strings.TrimSpace(opts.ThemesDir); trimmed != "" {
		cfg.Generator.Theming.Dir = trimmed
		cfg.Generator.Theming.DefaultTheme = strings.TrimSpace(opts.Theme)
		cfg.Generator.Theming.DefaultVariant = strings.TrimSpace(opts.ThemeVariant)
	}
	if opts.Workers > 0 {
		cfg.Generator.Workers = opts.Workers
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := docsite.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise docsite module: %w", err)
	}

	container := module.Container()
	logger := commands.CommandLogger(container.LoggerProvider(), "site")
	gates := sitecmd.FeatureGates{GeneratorEnabled: container.GeneratorEnabled}
	generatorSvc := module.Generator()

	return &Module{
		Module: module,
		Build:  sitecmd.NewBuildSiteHandler(generatorSvc, logger, gates),
		Clean:  sitecmd.NewCleanSiteHandler(generatorSvc, logger, gates),
		Paths:  sitecmd.NewListPathsHandler(module.Site(), logger),
		Logger: logging.GeneratorLogger(container.LoggerProvider()),
	}, nil
}

// SplitList parses a comma separated flag value into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
