// Package site assembles page props: it composes the page loader,
// Markdown renderer, navigation builder, and blog collection into the
// single payload a rendering layer consumes per request.
package site

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-docsite/internal/blog"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/navigation"
	"github.com/goliatone/go-docsite/pages"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	"github.com/goliatone/go-docsite/sitemap"
)

var ErrSlugRequired = errors.New("site: slug is required")

// Service is the props assembler. The sitemap is injected once at
// construction and treated as immutable; every call builds its own menu
// tree and page records from scratch.
type Service struct {
	siteMap   sitemap.Sitemap
	loader    pages.Loader
	renderer  pages.Renderer
	nav       *navigation.Service
	posts     *blog.Service
	editLinks *EditLinkResolver
	logger    interfaces.Logger
}

// Options collects the collaborators of the props assembler. Loader,
// Renderer, and Navigation are required; Blog and EditLinks are
// optional.
type Options struct {
	Sitemap    sitemap.Sitemap
	Loader     pages.Loader
	Renderer   pages.Renderer
	Navigation *navigation.Service
	Blog       *blog.Service
	EditLinks  *EditLinkResolver
	Logger     interfaces.Logger
}

// NewService constructs the props assembler.
func NewService(opts Options) (*Service, error) {
	if opts.Loader == nil {
		return nil, errors.New("site: page loader is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("site: markdown renderer is required")
	}
	if opts.Navigation == nil {
		return nil, errors.New("site: navigation service is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Service{
		siteMap:   opts.Sitemap,
		loader:    opts.Loader,
		renderer:  opts.Renderer,
		nav:       opts.Navigation,
		posts:     opts.Blog,
		editLinks: opts.EditLinks,
		logger:    logger,
	}, nil
}

// Props assembles the payload for the page addressed by slug. The first
// segment names the top-level sitemap section; the joined segments form
// the content path. Any load failure aborts the request, a section
// missing from the sitemap just yields an empty menu.
func (s *Service) Props(ctx context.Context, slug []string) (PageProps, error) {
	if len(slug) == 0 {
		return PageProps{}, ErrSlugRequired
	}

	path := strings.Join(slug, "/")
	section := slug[0]

	page, err := s.loader.Load(ctx, path)
	if err != nil {
		return PageProps{}, err
	}

	html, err := s.renderer.Render(ctx, []byte(page.Body))
	if err != nil {
		return PageProps{}, fmt.Errorf("site: render %s: %w", page.MDPath, err)
	}
	page = page.WithHTML(string(html))

	var menu []pages.MenuEntry
	if node, ok := s.siteMap.Section(section); ok {
		menu, err = s.nav.Menu(ctx, section, node)
		if err != nil {
			return PageProps{}, err
		}
	}
	page = navigation.WithNeighbors(page, menu)

	props := PageProps{
		Page: page,
		Menu: menu,
	}

	if s.posts != nil {
		latest, ok, err := s.posts.Latest(ctx)
		if err != nil {
			return PageProps{}, err
		}
		if ok {
			props.App.LatestBlog = &latest
		}
	}

	if s.editLinks != nil {
		url, err := s.editLinks.EditURL(page)
		if err != nil {
			s.logger.Warn("site.edit_link.failed", "page", page.Href, "error", err)
		} else {
			props.EditURL = url
		}
	}

	s.logger.Debug("site.props.assembled", "page", page.Href, "menu_entries", len(menu))
	return props, nil
}

// PropsForPath is a convenience wrapper splitting a slash path into
// slug segments.
func (s *Service) PropsForPath(ctx context.Context, path string) (PageProps, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return PageProps{}, ErrSlugRequired
	}
	return s.Props(ctx, strings.Split(trimmed, "/"))
}

// StaticPaths enumerates the sitemap's routable slugs with fallback
// disabled.
func (s *Service) StaticPaths() sitemap.StaticPaths {
	return sitemap.CollectStaticPaths(s.siteMap)
}

// Routes returns every routable path of the configured sitemap.
func (s *Service) Routes() []string {
	return sitemap.Routes(s.siteMap)
}

// Sitemap exposes the immutable site description.
func (s *Service) Sitemap() sitemap.Sitemap {
	return s.siteMap
}
