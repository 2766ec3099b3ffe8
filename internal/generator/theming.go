package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-docsite/internal/identity"
	gotheme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
)

// ThemingConfig points the generator at an on-disk theme directory. An empty
// Dir disables theming and pages render with an empty theme context.
type ThemingConfig struct {
	Dir               string            `json:"dir"`
	DefaultTheme      string            `json:"default_theme"`
	DefaultVariant    string            `json:"default_variant"`
	CSSVariablePrefix string            `json:"css_variable_prefix"`
	PartialFallbacks  map[string]string `json:"partial_fallbacks,omitempty"`
}

type themeManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsThemeManifestLoader struct{}

func (fsThemeManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" {
		return nil, fmt.Errorf("theme path required")
	}

	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

type themeSelector struct {
	registry       *gotheme.MemoryRegistry
	loader         themeManifestLoader
	dir            string
	defaultTheme   string
	defaultVariant string

	mu        sync.Mutex
	manifests map[uuid.UUID]*gotheme.Manifest
}

func newThemeSelector(cfg ThemingConfig, loader themeManifestLoader) *themeSelector {
	if loader == nil {
		loader = fsThemeManifestLoader{}
	}
	return &themeSelector{
		registry:       gotheme.NewRegistry(),
		loader:         loader,
		dir:            strings.TrimSpace(cfg.Dir),
		defaultTheme:   strings.TrimSpace(cfg.DefaultTheme),
		defaultVariant: strings.TrimSpace(cfg.DefaultVariant),
		manifests:      map[uuid.UUID]*gotheme.Manifest{},
	}
}

// Selection resolves the configured theme, loading and registering its
// manifest on first use.
func (s *themeSelector) Selection(variant string) (*gotheme.Selection, error) {
	if s == nil || s.dir == "" {
		return nil, nil
	}

	manifest, err := s.ensureManifest()
	if err != nil {
		return nil, err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   manifest.Name,
		DefaultVariant: s.defaultVariant,
	}

	resolvedVariant := strings.TrimSpace(variant)
	if resolvedVariant == "" {
		resolvedVariant = s.defaultVariant
	}

	selection, err := selector.Select(manifest.Name, resolvedVariant)
	if err != nil {
		return nil, fmt.Errorf("select theme %s: %w", manifest.Name, err)
	}
	return selection, nil
}

func (s *themeSelector) ensureManifest() (*gotheme.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	themeID := identity.ThemeID(s.dir)
	if manifest, ok := s.manifests[themeID]; ok {
		return manifest, nil
	}

	manifest, err := s.loader.Load(s.dir)
	if err != nil {
		return nil, fmt.Errorf("load theme manifest from %s: %w", s.dir, err)
	}

	normalized := *manifest
	if strings.TrimSpace(normalized.Name) == "" {
		normalized.Name = s.defaultTheme
	}
	if normalized.Name == "" {
		return nil, fmt.Errorf("theme name required for manifest registration")
	}

	if err := s.registry.Register(&normalized); err != nil {
		return nil, fmt.Errorf("register theme manifest: %w", err)
	}
	s.manifests[themeID] = &normalized
	return &normalized, nil
}
