// Package blog lists the date-ordered post collection. Posts live in a
// single content directory; ordering is newest first by front-matter
// date, undated posts sink to the end, and ties keep the loader's
// enumeration order.
package blog

import (
	"context"
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/markdown"
	"github.com/goliatone/go-docsite/pages"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// DefaultDir is the content directory holding posts.
const DefaultDir = "blog"

// Source lists the Markdown documents beneath a directory.
type Source interface {
	LoadDirectory(ctx context.Context, dir string, opts markdown.LoadParams) ([]pages.Page, error)
}

// Config controls where posts are read from.
type Config struct {
	// Dir is the posts directory relative to the content root.
	Dir string
}

// Service reads and orders the post collection.
type Service struct {
	source Source
	dir    string
	logger interfaces.Logger
}

// NewService constructs a blog service over the given document source.
func NewService(source Source, cfg Config, logger interfaces.Logger) *Service {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		source: source,
		dir:    dir,
		logger: logger,
	}
}

// Posts returns every post ordered newest first. The section index page
// is excluded; post bodies are kept so feed rendering can use them. A
// site without a posts directory has an empty collection.
func (s *Service) Posts(ctx context.Context) ([]pages.Page, error) {
	posts, err := s.source.LoadDirectory(ctx, s.dir, markdown.LoadParams{SkipIndex: true})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].Date, posts[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	s.logger.Debug("blog.posts.loaded", "dir", s.dir, "count", len(posts))
	return posts, nil
}

// Latest returns the most recent post with its body stripped, for use
// as app-wide data. The second return is false when no posts exist.
func (s *Service) Latest(ctx context.Context) (pages.Page, bool, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return pages.Page{}, false, err
	}
	if len(posts) == 0 {
		return pages.Page{}, false, nil
	}
	return posts[0].Stripped(), true, nil
}
