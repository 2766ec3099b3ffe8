package site

import (
	"fmt"
	"path"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-docsite/pages"
)

const (
	editGroup = "repo"
	editRoute = "edit"
)

// EditLinkConfig configures "edit this page" URL generation against the
// repository hosting the content.
type EditLinkConfig struct {
	// Repo is the repository web base, e.g.
	// "https://github.com/tokio-rs/website".
	Repo string
	// Branch is the branch edits land on. Defaults to "master".
	Branch string
	// ContentDir is the repository directory holding the content root,
	// prefixed to each page's file path. May be empty.
	ContentDir string
}

// EditLinkResolver builds per-page edit URLs through a go-urlkit route
// manager. The route carries the branch as a parameter; the file path is
// appended verbatim since it spans multiple segments.
type EditLinkResolver struct {
	manager    *urlkit.RouteManager
	branch     string
	contentDir string

	mu    sync.Mutex
	group *urlkit.Group
}

// NewEditLinkResolver constructs a resolver for the given repository.
// A config without a repo yields a nil resolver, which disables edit
// links.
func NewEditLinkResolver(cfg EditLinkConfig) *EditLinkResolver {
	repo := strings.TrimSuffix(strings.TrimSpace(cfg.Repo), "/")
	if repo == "" {
		return nil
	}

	branch := strings.TrimSpace(cfg.Branch)
	if branch == "" {
		branch = "master"
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    editGroup,
				BaseURL: repo,
				Paths: map[string]string{
					editRoute: "/edit/:branch",
				},
			},
		},
	})

	return &EditLinkResolver{
		manager:    manager,
		branch:     branch,
		contentDir: strings.Trim(strings.TrimSpace(cfg.ContentDir), "/"),
	}
}

// EditURL returns the repository edit URL for the page's backing file.
// A nil resolver or an external page yields an empty URL.
func (r *EditLinkResolver) EditURL(page pages.Page) (string, error) {
	if r == nil || r.manager == nil {
		return "", nil
	}
	if page.MDPath == "" {
		return "", nil
	}

	group, err := r.editGroup()
	if err != nil {
		return "", err
	}

	builder, err := safeBuilder(group, editRoute)
	if err != nil {
		return "", err
	}

	prefix, err := builder.WithParam("branch", r.branch).Build()
	if err != nil {
		return "", fmt.Errorf("site: build edit url: %w", err)
	}

	return prefix + "/" + path.Join(r.contentDir, page.MDPath), nil
}

func (r *EditLinkResolver) editGroup() (*urlkit.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.group != nil {
		return r.group, nil
	}

	group, err := lookupGroup(r.manager, editGroup)
	if err != nil {
		return nil, err
	}
	r.group = group
	return group, nil
}

// lookupGroup shields callers from go-urlkit's panic on unknown groups.
func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("site: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("site: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("site: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("site: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
