package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-docsite/pages"
)

// LoaderConfig configures how content files are resolved within a base
// directory.
type LoaderConfig struct {
	// BasePath is the root directory where Markdown content lives. It is
	// only used to strip redundant prefixes from caller-supplied paths;
	// all reads go through the loader's fs.FS.
	BasePath string
	// Pattern limits files discovered by LoadDirectory (defaults to "*.md").
	Pattern string
	// Recursive controls whether LoadDirectory traverses sub-directories.
	Recursive bool
}

// Loader resolves logical content paths to Markdown files and parses
// them into page records. A logical path "tutorial/setup" is backed by
// either "tutorial/setup.md" or "tutorial/setup/index.md"; the flat file
// wins when both exist.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader using the provided filesystem and
// configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.ToSlash(filepath.Clean(cfg.BasePath)),
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile resolves and parses the page backing the given logical path.
// The raw Markdown body is kept unrendered; rendering is a separate
// concern.
func (l *Loader) LoadFile(ctx context.Context, logical string) (pages.Page, error) {
	select {
	case <-ctx.Done():
		return pages.Page{}, ctx.Err()
	default:
	}

	rel, err := l.normalize(logical)
	if err != nil {
		return pages.Page{}, err
	}

	candidates := []string{rel + ".md", rel + "/index.md"}
	for _, candidate := range candidates {
		data, err := fs.ReadFile(l.fs, candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return pages.Page{}, fmt.Errorf("markdown loader read %s: %w", candidate, err)
		}
		return buildPage(rel, candidate, data)
	}

	return pages.Page{}, &pages.NotFoundError{Path: logical, Tried: candidates}
}

// LoadDirectory discovers Markdown files under dir and returns their
// parsed pages, sorted by file path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]pages.Page, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.normalize(dir)
	if err != nil {
		if errors.Is(err, pages.ErrPathRequired) {
			root = "."
		} else {
			return nil, err
		}
	}

	var results []pages.Page

	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, current, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		file := filepath.ToSlash(current)
		if !l.matchesPattern(file, opts.Pattern) {
			return nil
		}
		if opts.SkipIndex && path.Base(file) == "index.md" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, file)
		if err != nil {
			return fmt.Errorf("markdown loader read %s: %w", file, err)
		}
		page, err := buildPage(logicalPath(file), file, data)
		if err != nil {
			return err
		}
		results = append(results, page)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].MDPath < results[j].MDPath
	})

	return results, nil
}

// LoadParams provide call-specific overrides for directory discovery.
type LoadParams struct {
	Pattern   string
	Recursive *bool
	SkipIndex bool
}

// normalize turns caller input into a clean root-relative slash path.
// Absolute paths and paths that repeat the content-root prefix are both
// accepted; leading "./" is dropped; escapes above the root are errors.
func (l *Loader) normalize(logical string) (string, error) {
	trimmed := strings.TrimSpace(logical)
	if trimmed == "" {
		return "", pages.ErrPathRequired
	}

	clean := filepath.Clean(trimmed)
	if filepath.IsAbs(clean) {
		if l.basePath == "" || l.basePath == "." {
			return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", logical)
		}
		rel, err := filepath.Rel(filepath.FromSlash(l.basePath), clean)
		if err != nil {
			return "", fmt.Errorf("markdown loader: make relative %s: %w", logical, err)
		}
		clean = rel
	}

	// filepath.Clean already drops any leading "./".
	slashed := filepath.ToSlash(clean)
	if l.basePath != "" && l.basePath != "." {
		if slashed == l.basePath {
			slashed = "."
		} else {
			slashed = strings.TrimPrefix(slashed, l.basePath+"/")
		}
	}

	if slashed == "" || slashed == "." {
		return "", pages.ErrPathRequired
	}
	if slashed == ".." || strings.HasPrefix(slashed, "../") {
		return "", pages.ErrPathEscapesRoot
	}
	return slashed, nil
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(file string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	pattern = filepath.ToSlash(pattern)

	target := file
	if !strings.Contains(pattern, "/") {
		target = path.Base(file)
	}
	match, err := path.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

// buildPage assembles a page record from a resolved file. The key is the
// last logical segment, the href the slash-prefixed logical path.
func buildPage(logical, file string, source []byte) (pages.Page, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return pages.Page{}, fmt.Errorf("markdown loader parse %s: %w", file, err)
	}

	page := pages.Page{
		Key:         path.Base(logical),
		Href:        "/" + logical,
		Title:       meta.Title,
		MenuTitle:   meta.Label(),
		MDPath:      file,
		Description: meta.Description,
		Data:        meta.Raw,
		Body:        string(body),
	}
	if !meta.Date.IsZero() {
		date := meta.Date
		page.Date = &date
	}
	return page, nil
}

// logicalPath maps a content file path back onto its routable logical
// path: "tutorial/setup.md" and "tutorial/setup/index.md" both resolve
// to "tutorial/setup".
func logicalPath(file string) string {
	file = filepath.ToSlash(file)
	if file == "index.md" {
		return "index"
	}
	if strings.HasSuffix(file, "/index.md") {
		return strings.TrimSuffix(file, "/index.md")
	}
	return strings.TrimSuffix(file, ".md")
}
