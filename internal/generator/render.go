package generator

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-docsite/internal/site"
	gotheme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
)

const defaultTemplateName = "page"

//go:embed templates/page.tmpl.html
var defaultPageTemplate string

// TemplateRenderer turns assembled page props into final HTML. The default
// implementation wraps html/template; callers can inject their own.
type TemplateRenderer interface {
	RenderTemplate(name string, data TemplateContext) (string, error)
}

// TemplateContext is the data contract passed to TemplateRenderer
// implementations for every page.
type TemplateContext struct {
	Site     SiteMetadata
	Page     site.PageProps
	Content  template.HTML
	ThemeCSS template.CSS
	Build    BuildMetadata
	Theme    ThemeContext
	Helpers  TemplateHelpers
}

// SiteMetadata exposes site-wide information to templates and feeds.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
}

// BuildMetadata surfaces high level build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
	Options     BuildOptions
}

// ThemeContext surfaces go-theme selection data to templates.
type ThemeContext struct {
	Name      string
	Variant   string
	Tokens    map[string]string
	CSSVars   map[string]string
	Partials  map[string]string
	AssetURL  func(string) string
	Template  func(string, string) string
	Selection *gotheme.Selection
}

// TemplateHelpers exposes convenience helpers for template authors.
type TemplateHelpers struct {
	baseURL string
}

func newTemplateHelpers(baseURL string) TemplateHelpers {
	return TemplateHelpers{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// BaseURL returns the configured site base URL.
func (h TemplateHelpers) BaseURL() string {
	return h.baseURL
}

// WithBaseURL prefixes the provided path with the configured base URL.
func (h TemplateHelpers) WithBaseURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return h.baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if h.baseURL == "" {
		return path
	}
	return h.baseURL + path
}

// FormatDate renders an optional date for display. Nil dates render empty.
func (h TemplateHelpers) FormatDate(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format("January 2, 2006")
}

func buildThemeContext(selection *gotheme.Selection, cfg ThemingConfig) ThemeContext {
	empty := ThemeContext{
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: map[string]string{},
		AssetURL: func(string) string { return "" },
		Template: func(_ string, fallback string) string { return fallback },
	}
	if selection == nil {
		return empty
	}

	return ThemeContext{
		Name:      selection.Theme,
		Variant:   selection.Variant,
		Tokens:    selection.Tokens(),
		CSSVars:   selection.CSSVariables(cfg.CSSVariablePrefix),
		Partials:  selection.Partials(cfg.PartialFallbacks),
		AssetURL:  func(key string) string { url, _ := selection.Asset(key); return url },
		Template:  selection.Template,
		Selection: selection,
	}
}

// themeStylesheet flattens theme CSS variables into a :root block. Names are
// sorted so rendered pages are byte-stable between builds.
func themeStylesheet(theme ThemeContext) string {
	if len(theme.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(theme.CSSVars))
	for name := range theme.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	builder.WriteString(":root {\n")
	for _, name := range names {
		builder.WriteString(fmt.Sprintf("  %s: %s;\n", name, theme.CSSVars[name]))
	}
	builder.WriteString("}")
	return builder.String()
}

type htmlRenderer struct {
	tmpl *template.Template
	name string
}

func newHTMLRenderer(templatePath string) (*htmlRenderer, error) {
	trimmed := strings.TrimSpace(templatePath)
	if trimmed == "" {
		tmpl, err := template.New(defaultTemplateName).Parse(defaultPageTemplate)
		if err != nil {
			return nil, fmt.Errorf("generator: parse default template: %w", err)
		}
		return &htmlRenderer{tmpl: tmpl, name: defaultTemplateName}, nil
	}

	tmpl, err := template.ParseFiles(trimmed)
	if err != nil {
		return nil, fmt.Errorf("generator: parse template %s: %w", trimmed, err)
	}
	return &htmlRenderer{tmpl: tmpl, name: filepath.Base(trimmed)}, nil
}

func (r *htmlRenderer) RenderTemplate(name string, data TemplateContext) (string, error) {
	tmpl := r.tmpl
	if name != "" && name != r.name {
		if named := r.tmpl.Lookup(name); named != nil {
			tmpl = named
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("generator: render template %s: %w", r.name, err)
	}
	return buf.String(), nil
}

// RenderedPage captures the rendered HTML output for a single route.
type RenderedPage struct {
	PageID       uuid.UUID
	Route        string
	Output       string
	Template     string
	HTML         string
	Hash         string
	Checksum     string
	LastModified time.Time
	Duration     time.Duration
}

// RenderDiagnostic records rendering timing and errors per route.
type RenderDiagnostic struct {
	Route    string
	Template string
	Duration time.Duration
	Skipped  bool
	Err      error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}
