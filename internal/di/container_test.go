package di

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/internal/logging/gologger"
	"github.com/goliatone/go-docsite/internal/runtimeconfig"
	"github.com/goliatone/go-docsite/sitemap"
)

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.Title = "Example Docs"
	cfg.Site.BaseURL = "https://docs.example.com"
	cfg.Navigation.SitemapPath = ""
	cfg.Navigation.Sitemap = sitemap.Sitemap{
		{Key: "tutorial", Node: sitemap.PageList{Children: []string{"setup"}}},
	}
	return cfg
}

func testContentFS() fstest.MapFS {
	return fstest.MapFS{
		"tutorial/index.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Tutorial\n---\n\n# Tutorial\n"),
		},
		"tutorial/setup.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Setup\nmenu: Getting set up\n---\n\n# Setup\n"),
		},
		"blog/announcing.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Announcing\ndate: 2024-04-02\n---\n\nBig news.\n"),
		},
	}
}

func TestNewContainerWiresServices(t *testing.T) {
	container, err := NewContainer(testConfig(), WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.MarkdownService() == nil {
		t.Fatal("expected markdown service")
	}
	if container.NavigationService() == nil {
		t.Fatal("expected navigation service")
	}
	if container.BlogService() == nil {
		t.Fatal("expected blog service when the blog is enabled")
	}

	site := container.SiteService()
	if site == nil {
		t.Fatal("expected site service")
	}

	props, err := site.PropsForPath(context.Background(), "tutorial/setup")
	if err != nil {
		t.Fatalf("PropsForPath returned unexpected error: %v", err)
	}
	if props.Page.Title != "Setup" {
		t.Fatalf("expected title %q, got %q", "Setup", props.Page.Title)
	}
	if props.App.LatestBlog == nil || props.App.LatestBlog.Title != "Announcing" {
		t.Fatalf("expected latest blog post, got %+v", props.App.LatestBlog)
	}

	routes := container.Sitemap()
	if len(routes) != 1 {
		t.Fatalf("expected resolved sitemap, got %v", routes)
	}
}

func TestNewContainerGeneratorDisabledByDefault(t *testing.T) {
	container, err := NewContainer(testConfig(), WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.GeneratorEnabled() {
		t.Fatal("expected generator to be disabled by default")
	}
	if _, err := container.GeneratorService().Build(context.Background(), generator.BuildOptions{}); !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestNewContainerGeneratorDryRunBuild(t *testing.T) {
	cfg := testConfig()
	cfg.Generator.Enabled = true
	cfg.Generator.OutputDir = t.TempDir()

	container, err := NewContainer(cfg, WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	result, err := container.GeneratorService().Build(context.Background(), generator.BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Build returned unexpected error: %v", err)
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected 2 pages rendered, got %d", result.PagesBuilt)
	}
	if !result.DryRun {
		t.Fatal("expected a dry-run result")
	}
}

func TestNewContainerValidatesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Content.Dir = ""

	if _, err := NewContainer(cfg, WithContentFS(testContentFS())); !errors.Is(err, runtimeconfig.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestNewContainerBlogDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Blog.Enabled = false

	container, err := NewContainer(cfg, WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.BlogService() != nil {
		t.Fatal("expected no blog service when disabled")
	}

	props, err := container.SiteService().PropsForPath(context.Background(), "tutorial/setup")
	if err != nil {
		t.Fatalf("PropsForPath returned unexpected error: %v", err)
	}
	if props.App.LatestBlog != nil {
		t.Fatalf("expected no latest blog post, got %+v", props.App.LatestBlog)
	}
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := testConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg, WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}
	if logger := provider.GetLogger("docsite.test"); logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}
