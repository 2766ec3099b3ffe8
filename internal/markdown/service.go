package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-docsite/pages"
)

// Config controls how the Markdown service resolves and renders files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Renderer  RenderOptions
}

// Service is the filesystem-backed page source. It implements both
// pages.Loader and pages.Renderer so callers can resolve content and
// render bodies through one collaborator.
type Service struct {
	cfg      Config
	renderer *GoldmarkRenderer
	loader   *Loader
}

// NewService constructs a Markdown service rooted at cfg.BasePath.
func NewService(cfg Config) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(filesystem, cfg), nil
}

// NewServiceWithFS constructs a Markdown service over an explicit
// filesystem. Tests and embedded content use this entry point.
func NewServiceWithFS(filesystem fs.FS, cfg Config) *Service {
	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:      cfg,
		renderer: NewGoldmarkRenderer(cfg.Renderer),
		loader:   loader,
	}
}

// Load resolves a logical content path into a page record with its raw
// Markdown body.
func (s *Service) Load(ctx context.Context, logical string) (pages.Page, error) {
	return s.loader.LoadFile(ctx, logical)
}

// LoadDirectory reads every Markdown document within the supplied
// directory, sorted by file path.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]pages.Page, error) {
	return s.loader.LoadDirectory(ctx, dir, opts)
}

// Render converts Markdown bytes into HTML using the configured
// renderer defaults.
func (s *Service) Render(ctx context.Context, markdown []byte) ([]byte, error) {
	return s.renderer.Render(ctx, markdown)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
