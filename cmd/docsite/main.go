package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	docsite "github.com/goliatone/go-docsite"
	"github.com/goliatone/go-docsite/cmd/docsite/internal/bootstrap"
	sitecmd "github.com/goliatone/go-docsite/internal/commands/site"
	"github.com/goliatone/go-docsite/sitemap"
)

type buildExecutor interface {
	Execute(ctx context.Context, msg sitecmd.BuildSiteCommand) error
}

type cleanExecutor interface {
	Execute(ctx context.Context, msg sitecmd.CleanSiteCommand) error
}

type pathsExecutor interface {
	Execute(ctx context.Context, msg sitecmd.ListPathsCommand) error
}

type propsSource interface {
	PropsForPath(ctx context.Context, path string) (docsite.PageProps, error)
}

type handlerSet struct {
	build buildExecutor
	clean cleanExecutor
	paths pathsExecutor
}

type moduleOptions struct {
	ContentDir   string
	Pattern      string
	SitemapPath  string
	OutputDir    string
	BaseURL      string
	Title        string
	BlogDir      string
	ThemesDir    string
	Theme        string
	ThemeVariant string
	Workers      int
}

type moduleResources struct {
	handlers handlerSet
	props    propsSource
}

var moduleBuilder = defaultModuleBuilder

func defaultModuleBuilder(opts moduleOptions) (*moduleResources, error) {
	resources, err := bootstrap.BuildModule(bootstrap.Options{
		ContentDir:   opts.ContentDir,
		Pattern:      opts.Pattern,
		SitemapPath:  opts.SitemapPath,
		OutputDir:    opts.OutputDir,
		BaseURL:      opts.BaseURL,
		Title:        opts.Title,
		BlogDir:      opts.BlogDir,
		ThemesDir:    opts.ThemesDir,
		Theme:        opts.Theme,
		ThemeVariant: opts.ThemeVariant,
		Workers:      opts.Workers,
	})
	if err != nil {
		return nil, err
	}

	return &moduleResources{
		handlers: handlerSet{
			build: resources.Build,
			clean: resources.Clean,
			paths: resources.Paths,
		},
		props: resources.Module,
	}, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("docsite: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand: expected build, clean, paths, or props")
	}

	switch args[0] {
	case "build":
		return runBuild(args[1:])
	case "clean":
		return runClean(args[1:])
	case "paths":
		return runPaths(args[1:])
	case "props":
		return runProps(args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q: expected build, clean, paths, or props", args[0])
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("docsite-build", flag.ExitOnError)
	mf := bindModuleFlags(fs)
	routes := fs.String("routes", "", "Comma separated routes to rebuild (defaults to every sitemap route)")
	dryRun := fs.Bool("dry-run", false, "Resolve and render pages without writing artifacts")
	force := fs.Bool("force", false, "Rewrite artifacts even when checksums match")

	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(mf.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.build == nil {
		return fmt.Errorf("build handler not configured")
	}

	cmd := sitecmd.BuildSiteCommand{
		Routes: bootstrap.SplitList(*routes),
		DryRun: *dryRun,
		Force:  *force,
		ResultCallback: func(envelope sitecmd.ResultEnvelope) {
			logBuildResult(envelope)
		},
	}

	if err := resources.handlers.build.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	return nil
}

func runClean(args []string) error {
	fs := flag.NewFlagSet("docsite-clean", flag.ExitOnError)
	mf := bindModuleFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(mf.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.clean == nil {
		return fmt.Errorf("clean handler not configured")
	}

	if err := resources.handlers.clean.Execute(context.Background(), sitecmd.CleanSiteCommand{}); err != nil {
		return fmt.Errorf("execute clean command: %w", err)
	}
	log.Printf("module=docsite operation=clean output removed")
	return nil
}

func runPaths(args []string) error {
	fs := flag.NewFlagSet("docsite-paths", flag.ExitOnError)
	mf := bindModuleFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(mf.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.handlers.paths == nil {
		return fmt.Errorf("paths handler not configured")
	}

	var collected *sitemap.StaticPaths
	cmd := sitecmd.ListPathsCommand{
		ResultCallback: func(paths sitemap.StaticPaths) {
			collected = &paths
		},
	}
	if err := resources.handlers.paths.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute paths command: %w", err)
	}
	if collected == nil {
		return fmt.Errorf("paths handler returned no result")
	}

	if err := printJSON(os.Stdout, collected); err != nil {
		return err
	}
	log.Printf("module=docsite operation=paths routes=%d", len(collected.Paths))
	return nil
}

func runProps(args []string) error {
	fs := flag.NewFlagSet("docsite-props", flag.ExitOnError)
	mf := bindModuleFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("props expects exactly one route argument")
	}
	route := fs.Arg(0)

	resources, err := moduleBuilder(mf.options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if resources == nil || resources.props == nil {
		return fmt.Errorf("props source not configured")
	}

	props, err := resources.props.PropsForPath(context.Background(), route)
	if err != nil {
		return fmt.Errorf("assemble props for %s: %w", route, err)
	}

	if err := printJSON(os.Stdout, props); err != nil {
		return err
	}
	log.Printf("module=docsite operation=props route=%s menu_entries=%d", route, len(props.Menu))
	return nil
}

func logBuildResult(envelope sitecmd.ResultEnvelope) {
	operation := "build"
	if op, ok := envelope.Metadata["operation"].(string); ok && op != "" {
		operation = op
	}
	result := envelope.Result
	if result == nil {
		log.Printf("module=docsite operation=%s completed", operation)
		return
	}
	log.Printf(
		"module=docsite operation=%s summary pages_built=%d pages_skipped=%d assets_built=%d feeds_built=%d errors=%d duration=%s dry_run=%t",
		operation,
		result.PagesBuilt,
		result.PagesSkipped,
		result.AssetsBuilt,
		result.FeedsBuilt,
		len(result.Errors),
		result.Duration,
		result.DryRun,
	)
}

func printJSON(w *os.File, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

type moduleFlags struct {
	contentDir   *string
	pattern      *string
	sitemapPath  *string
	outputDir    *string
	baseURL      *string
	title        *string
	blogDir      *string
	themesDir    *string
	theme        *string
	themeVariant *string
	workers      *int
}

func bindModuleFlags(fs *flag.FlagSet) *moduleFlags {
	return &moduleFlags{
		contentDir:   fs.String("content-dir", "content", "Path to the markdown content root"),
		pattern:      fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files"),
		sitemapPath:  fs.String("sitemap", "sitemap.json", "Path to the sitemap JSON document"),
		outputDir:    fs.String("output", "dist", "Directory receiving generated artifacts"),
		baseURL:      fs.String("base-url", "", "Absolute site URL used in feeds and the XML sitemap"),
		title:        fs.String("title", "", "Site title used in feeds and the manifest"),
		blogDir:      fs.String("blog-dir", "blog", "Blog section directory, empty disables the blog"),
		themesDir:    fs.String("themes-dir", "", "Theme manifest directory, empty disables theming"),
		theme:        fs.String("theme", "", "Theme name selected during generation"),
		themeVariant: fs.String("theme-variant", "", "Theme variant selected during generation"),
		workers:      fs.Int("workers", 0, "Concurrent page renders, zero selects the default"),
	}
}

func (mf *moduleFlags) options() moduleOptions {
	return moduleOptions{
		ContentDir:   *mf.contentDir,
		Pattern:      *mf.pattern,
		SitemapPath:  *mf.sitemapPath,
		OutputDir:    *mf.outputDir,
		BaseURL:      *mf.baseURL,
		Title:        *mf.title,
		BlogDir:      *mf.blogDir,
		ThemesDir:    *mf.themesDir,
		Theme:        *mf.theme,
		ThemeVariant: *mf.themeVariant,
		Workers:      *mf.workers,
	}
}

