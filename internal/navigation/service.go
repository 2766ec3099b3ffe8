// Package navigation builds ordered menu trees from the sitemap and
// computes prev/next traversal links over them. Page metadata comes from
// the page loader; only front-matter summaries are kept per entry, the
// full body is loaded separately when a page is assembled.
package navigation

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/pages"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	"github.com/goliatone/go-docsite/sitemap"
)

// Service resolves sitemap sections into menu entry trees.
type Service struct {
	loader pages.Loader
	logger interfaces.Logger
}

// NewService constructs a navigation service over the given page loader.
func NewService(loader pages.Loader, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		loader: loader,
		logger: logger,
	}
}

// Menu produces the ordered menu entries for one top-level section. The
// section key doubles as the content path prefix. A nested mapping
// yields its entries directly; a page list or bare leaf is wrapped
// through the same per-key rules used during the walk, so every declared
// page is covered exactly once.
func (s *Service) Menu(ctx context.Context, key string, node sitemap.Node) ([]pages.MenuEntry, error) {
	var (
		entries []pages.MenuEntry
		err     error
	)

	switch root := node.(type) {
	case sitemap.Section:
		entries, err = s.buildEntries(ctx, key, root.Entries)
	default:
		var entry pages.MenuEntry
		entry, err = s.buildEntry(ctx, "", sitemap.Entry{Key: key, Node: node})
		if err == nil {
			entries = []pages.MenuEntry{entry}
		}
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("navigation.menu.built", "section", key, "entries", len(entries))
	return entries, nil
}

func (s *Service) buildEntries(ctx context.Context, prefix string, declared []sitemap.Entry) ([]pages.MenuEntry, error) {
	entries := make([]pages.MenuEntry, 0, len(declared))
	for _, item := range declared {
		entry, err := s.buildEntry(ctx, prefix, item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Service) buildEntry(ctx context.Context, prefix string, item sitemap.Entry) (pages.MenuEntry, error) {
	path := joinPath(prefix, item.Key)

	switch node := item.Node.(type) {
	case nil:
		summary, err := s.loadSummary(ctx, path)
		if err != nil {
			return pages.MenuEntry{}, err
		}
		return pages.MenuEntry{Page: summary}, nil

	case sitemap.ExternalLink:
		return pages.MenuEntry{Page: externalStub(item.Key, node)}, nil

	case sitemap.PageList:
		summary, err := s.loadSummary(ctx, path)
		if err != nil {
			return pages.MenuEntry{}, err
		}
		nested := make([]pages.MenuEntry, 0, len(node.Children))
		for _, child := range node.Children {
			childSummary, err := s.loadSummary(ctx, path+"/"+child)
			if err != nil {
				return pages.MenuEntry{}, err
			}
			nested = append(nested, pages.MenuEntry{Page: childSummary})
		}
		return pages.MenuEntry{Page: summary, Nested: nested}, nil

	case sitemap.Section:
		summary, err := s.loadSummary(ctx, path)
		if err != nil {
			return pages.MenuEntry{}, err
		}
		nested, err := s.buildEntries(ctx, path, node.Entries)
		if err != nil {
			return pages.MenuEntry{}, err
		}
		return pages.MenuEntry{Page: summary, Nested: nested}, nil

	default:
		return pages.MenuEntry{}, fmt.Errorf("%w: %q", sitemap.ErrShape, path)
	}
}

func (s *Service) loadSummary(ctx context.Context, path string) (pages.Summary, error) {
	page, err := s.loader.Load(ctx, path)
	if err != nil {
		return pages.Summary{}, fmt.Errorf("navigation: load %s: %w", path, err)
	}
	return page.Summary(), nil
}

// externalStub wraps an off-site link as a synthetic page summary. Data
// stays nil, which is how traversal recognizes a stub.
func externalStub(key string, link sitemap.ExternalLink) pages.Summary {
	title := link.Title
	if title == "" {
		title = key
	}
	return pages.Summary{
		Key:   key,
		Href:  link.HREF,
		Title: title,
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
