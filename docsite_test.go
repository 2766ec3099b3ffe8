package docsite_test

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	docsite "github.com/goliatone/go-docsite"
	"github.com/goliatone/go-docsite/internal/di"
	"github.com/goliatone/go-docsite/sitemap"
)

var _ func(*docsite.Module) docsite.ContentService = (*docsite.Module).Content
var _ func(*docsite.Module) docsite.NavigationService = (*docsite.Module).Navigation
var _ func(*docsite.Module) docsite.BlogService = (*docsite.Module).Blog
var _ func(*docsite.Module) docsite.SiteService = (*docsite.Module).Site
var _ func(*docsite.Module) docsite.GeneratorService = (*docsite.Module).Generator

func testContentFS() fstest.MapFS {
	return fstest.MapFS{
		"docs/index.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Documentation\n---\n\n# Documentation\n\nStart here.\n"),
		},
		"docs/setup.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Setup\nmenu: Getting set up\n---\n\n# Setup\n\nInstall the toolchain.\n"),
		},
		"docs/advanced.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Advanced\n---\n\n# Advanced\n\nGo deeper.\n"),
		},
		"blog/announcing.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Announcing the docs\ndate: 2024-04-02\n---\n\nWe shipped.\n"),
		},
	}
}

func testConfig() docsite.Config {
	cfg := docsite.DefaultConfig()
	cfg.Site.Title = "Example Docs"
	cfg.Site.BaseURL = "https://docs.example.com"
	cfg.Navigation.SitemapPath = ""
	cfg.Navigation.Sitemap = sitemap.Sitemap{
		{Key: "docs", Node: sitemap.PageList{Children: []string{"setup", "advanced"}}},
	}
	return cfg
}

func TestModule_PropsPipeline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	module, err := docsite.New(testConfig(), di.WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	props, err := module.PropsForPath(ctx, "docs/setup")
	if err != nil {
		t.Fatalf("props for path: %v", err)
	}

	if props.Page.Title != "Setup" {
		t.Fatalf("expected title %q, got %q", "Setup", props.Page.Title)
	}
	if props.Page.MenuTitle != "Getting set up" {
		t.Fatalf("expected menu title %q, got %q", "Getting set up", props.Page.MenuTitle)
	}
	if !strings.Contains(props.Page.HTML, "<h1") {
		t.Fatalf("expected rendered HTML, got %q", props.Page.HTML)
	}

	if props.Page.Prev == nil || props.Page.Prev.Href != "/docs" {
		t.Fatalf("expected prev link to /docs, got %+v", props.Page.Prev)
	}
	if props.Page.Prev.Title != "Documentation" {
		t.Fatalf("expected prev title %q, got %q", "Documentation", props.Page.Prev.Title)
	}
	if props.Page.Next == nil || props.Page.Next.Href != "/docs/advanced" {
		t.Fatalf("expected next link to /docs/advanced, got %+v", props.Page.Next)
	}

	if len(props.Menu) != 1 || len(props.Menu[0].Nested) != 2 {
		t.Fatalf("expected one menu root with two children, got %+v", props.Menu)
	}
	if props.App.LatestBlog == nil || props.App.LatestBlog.Title != "Announcing the docs" {
		t.Fatalf("expected latest blog post, got %+v", props.App.LatestBlog)
	}

	bySlug, err := module.Props(ctx, []string{"docs", "setup"})
	if err != nil {
		t.Fatalf("props by slug: %v", err)
	}
	if bySlug.Page.Href != props.Page.Href {
		t.Fatalf("expected slug and path lookups to agree, got %q and %q", bySlug.Page.Href, props.Page.Href)
	}
}

func TestModule_RoutesAndStaticPaths(t *testing.T) {
	t.Parallel()

	module, err := docsite.New(testConfig(), di.WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	wantRoutes := []string{"docs", "docs/setup", "docs/advanced"}
	if got := module.Routes(); !reflect.DeepEqual(got, wantRoutes) {
		t.Fatalf("expected routes %v, got %v", wantRoutes, got)
	}

	paths := module.StaticPaths()
	if paths.Fallback {
		t.Fatal("expected fallback to stay disabled")
	}
	wantPaths := [][]string{{}, {"setup"}, {"advanced"}}
	if !reflect.DeepEqual(paths.Paths, wantPaths) {
		t.Fatalf("expected paths %v, got %v", wantPaths, paths.Paths)
	}

	if len(module.Sitemap()) != 1 {
		t.Fatalf("expected one sitemap entry, got %d", len(module.Sitemap()))
	}
}

func TestModule_BuildDryRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := testConfig()
	cfg.Generator.Enabled = true
	cfg.Generator.OutputDir = t.TempDir()

	module, err := docsite.New(cfg, di.WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	result, err := module.Build(ctx, docsite.BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run build: %v", err)
	}
	if !result.DryRun {
		t.Fatal("expected dry run result")
	}
	if result.PagesBuilt != 3 {
		t.Fatalf("expected 3 pages planned, got %d", result.PagesBuilt)
	}
}

func TestModule_BlogDisabled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := testConfig()
	cfg.Blog.Enabled = false

	module, err := docsite.New(cfg, di.WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	if module.Blog() != nil {
		t.Fatal("expected nil blog service when disabled")
	}

	props, err := module.PropsForPath(ctx, "docs")
	if err != nil {
		t.Fatalf("props for path: %v", err)
	}
	if props.App.LatestBlog != nil {
		t.Fatalf("expected no latest blog post, got %+v", props.App.LatestBlog)
	}
}
