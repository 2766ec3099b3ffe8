package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-docsite/internal/identity"
	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/internal/site"
	"github.com/goliatone/go-docsite/pages"
	"github.com/goliatone/go-docsite/pkg/interfaces"
	gotheme "github.com/goliatone/go-theme"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled = errors.New("generator: service disabled")

	errSiteRequired   = errors.New("generator: site service is required")
	errRouteRequired  = errors.New("generator: route is required")
	errOutputRequired = errors.New("generator: output directory is required")
)

const defaultWorkerCount = 4

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	BuildPage(ctx context.Context, route string) error
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir        string
	BaseURL          string
	Title            string
	Description      string
	CleanBuild       bool
	GenerateSitemap  bool
	GenerateRobots   bool
	GenerateFeeds    bool
	GenerateManifest bool
	Workers          int
	TemplatePath     string
	Theming          ThemingConfig
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	// Routes restricts the build to the given routes. Empty means the full
	// routable sitemap.
	Routes []string
	DryRun bool
	// Force re-renders pages even when the manifest says they are current.
	Force bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt    int
	PagesSkipped  int
	AssetsBuilt   int
	AssetsSkipped int
	FeedsBuilt    int
	Duration      time.Duration
	Rendered      []RenderedPage
	Diagnostics   []RenderDiagnostic
	Errors        []error
	DryRun        bool
}

// PropsSource assembles page props for routes. *site.Service satisfies it.
type PropsSource interface {
	PropsForPath(ctx context.Context, path string) (site.PageProps, error)
	Routes() []string
}

// PostSource lists blog posts for feed generation. *blog.Service satisfies it.
type PostSource interface {
	Posts(ctx context.Context) ([]pages.Page, error)
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Site     PropsSource
	Posts    PostSource
	Renderer TemplateRenderer
	Logger   interfaces.Logger
}

// NewService wires a generator with the provided configuration and
// dependencies. The default renderer parses Config.TemplatePath, or the
// embedded page template when unset.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	renderer := deps.Renderer
	templateName := defaultTemplateName
	if strings.TrimSpace(cfg.TemplatePath) != "" {
		templateName = filepath.Base(strings.TrimSpace(cfg.TemplatePath))
	}
	if renderer == nil {
		htmlRenderer, err := newHTMLRenderer(cfg.TemplatePath)
		if err != nil {
			return nil, err
		}
		renderer = htmlRenderer
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	svc := &service{
		cfg:          cfg,
		deps:         deps,
		renderer:     renderer,
		templateName: templateName,
		logger:       logger,
		now:          time.Now,
	}
	if dir := strings.TrimSpace(cfg.Theming.Dir); dir != "" {
		svc.themes = newThemeSelector(cfg.Theming, nil)
		svc.themeFS = os.DirFS(dir)
	}
	return svc, nil
}

// NewDisabledService returns a Service that fails every operation with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg          Config
	deps         Dependencies
	renderer     TemplateRenderer
	templateName string
	themes       *themeSelector
	themeFS      fs.FS
	logger       interfaces.Logger
	now          func() time.Time
}

type disabledService struct{}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Site == nil {
		return nil, errSiteRequired
	}

	start := time.Now()
	generatedAt := s.now()

	requested := normalizeRoutes(opts.Routes)
	fullBuild := len(requested) == 0
	routes := requested
	if fullBuild {
		routes = normalizeRoutes(s.deps.Site.Routes())
	}

	result := &BuildResult{
		DryRun:      opts.DryRun,
		Diagnostics: make([]RenderDiagnostic, 0, len(routes)),
	}

	siteMeta := SiteMetadata{
		Title:       strings.TrimSpace(s.cfg.Title),
		Description: strings.TrimSpace(s.cfg.Description),
		BaseURL:     strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/"),
	}

	if s.cfg.CleanBuild && fullBuild && !opts.DryRun {
		if err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	var writer artifactWriter = noopWriter{}
	if !opts.DryRun {
		fsw, err := newFSWriter(s.cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		writer = fsw
	}

	var (
		mu          sync.Mutex
		rendered    = make([]RenderedPage, 0, len(routes))
		errorsSlice []error
	)

	// Dry runs read any existing manifest from the real output directory so
	// skip predictions match what a real build would do.
	manifestReader := writer
	if opts.DryRun && s.cfg.GenerateManifest {
		if fsw, err := newFSWriter(s.cfg.OutputDir); err == nil {
			manifestReader = fsw
		}
	}
	manifest, manifestErr := s.loadManifest(ctx, manifestReader)
	if manifestErr != nil {
		errorsSlice = append(errorsSlice, manifestErr)
	}
	if manifest == nil {
		manifest = newBuildManifest()
	}

	var selection *gotheme.Selection
	if s.themes != nil {
		sel, err := s.themes.Selection("")
		if err != nil {
			errorsSlice = append(errorsSlice, fmt.Errorf("generator: resolve theme: %w", err))
		} else {
			selection = sel
		}
	}
	themeCtx := buildThemeContext(selection, s.cfg.Theming)
	themeCSS := template.CSS(themeStylesheet(themeCtx))

	buildMeta := BuildMetadata{
		GeneratedAt: generatedAt,
		Options:     opts,
	}

	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		if outcome.err != nil {
			errorsSlice = append(errorsSlice, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	s.logger.Info("generator.build.start",
		"routes", len(routes),
		"dry_run", opts.DryRun,
		"force", opts.Force,
	)

	workerCount := s.effectiveWorkerCount(len(routes))
	if workerCount <= 1 || len(routes) <= 1 {
		for _, route := range routes {
			select {
			case <-ctx.Done():
				err := ctx.Err()
				collect(renderOutcome{diagnostic: RenderDiagnostic{Route: route, Err: err}, err: err})
				return result, err
			default:
				collect(s.renderRoute(ctx, siteMeta, themeCtx, themeCSS, buildMeta, route, manifest, opts.Force))
			}
		}
	} else {
		if err := s.renderConcurrently(ctx, siteMeta, themeCtx, themeCSS, buildMeta, routes, manifest, opts.Force, workerCount, collect); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if opts.DryRun {
		result.Rendered = rendered
		result.Duration = time.Since(start)
		if len(errorsSlice) > 0 {
			result.Errors = append(result.Errors, errorsSlice...)
			return result, errors.Join(errorsSlice...)
		}
		return result, nil
	}

	if err := s.persistPages(ctx, writer, rendered); err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	if selection != nil {
		assetsBuilt, assetsSkipped, assetErrs := copyThemeAssets(ctx, writer, s.themeFS, selection, manifest, opts.Force, generatedAt)
		result.AssetsBuilt += assetsBuilt
		result.AssetsSkipped += assetsSkipped
		errorsSlice = append(errorsSlice, assetErrs...)
	}

	if s.cfg.GenerateFeeds && s.deps.Posts != nil {
		posts, err := s.deps.Posts.Posts(ctx)
		if err != nil {
			errorsSlice = append(errorsSlice, fmt.Errorf("generator: load posts: %w", err))
		} else {
			items := buildFeedItems(posts, siteMeta.BaseURL)
			written, err := s.writeFeeds(ctx, writer, siteMeta, items, manifest, generatedAt)
			result.FeedsBuilt += written
			if err != nil {
				errorsSlice = append(errorsSlice, err)
			}
		}
	}

	if s.cfg.GenerateSitemap {
		sitemapPages := mergeRenderedForSitemap(routes, rendered, manifest)
		if err := s.writeSitemap(ctx, writer, siteMeta, sitemapPages, manifest, generatedAt); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateRobots {
		if err := s.writeRobots(ctx, writer, siteMeta, manifest, generatedAt); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateManifest && len(errorsSlice) == 0 {
		for _, page := range rendered {
			if strings.TrimSpace(page.Checksum) == "" {
				continue
			}
			manifest.setPage(page, generatedAt)
		}
		if fullBuild {
			manifest.prunePages(routes)
		}
		if err := s.persistManifest(ctx, writer, manifest, generatedAt); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	result.Rendered = rendered
	result.Duration = time.Since(start)
	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		s.logger.Error("generator.build.failed",
			"pages", result.PagesBuilt,
			"errors", len(errorsSlice),
		)
		return result, errors.Join(errorsSlice...)
	}

	s.logger.Info("generator.build.complete",
		"pages", result.PagesBuilt,
		"skipped", result.PagesSkipped,
		"assets", result.AssetsBuilt,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// BuildPage renders a single route, honoring the same manifest and output
// rules as a full build.
func (s *service) BuildPage(ctx context.Context, route string) error {
	if strings.TrimSpace(route) == "" {
		return errRouteRequired
	}
	_, err := s.Build(ctx, BuildOptions{Routes: []string{route}})
	return err
}

// Clean removes the output directory.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	writer, err := newFSWriter(s.cfg.OutputDir)
	if err != nil {
		return err
	}
	if err := writer.RemoveAll(ctx, "."); err != nil {
		return err
	}
	s.logger.Debug("generator.clean.complete", "output_dir", s.cfg.OutputDir)
	return nil
}

func (s *service) renderConcurrently(
	ctx context.Context,
	siteMeta SiteMetadata,
	themeCtx ThemeContext,
	themeCSS template.CSS,
	buildMeta BuildMetadata,
	routes []string,
	manifest *buildManifest,
	force bool,
	workers int,
	collect func(renderOutcome),
) error {
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for route := range jobs {
				select {
				case <-ctx.Done():
					err := ctx.Err()
					collect(renderOutcome{diagnostic: RenderDiagnostic{Route: route, Err: err}, err: err})
					return
				default:
					collect(s.renderRoute(ctx, siteMeta, themeCtx, themeCSS, buildMeta, route, manifest, force))
				}
			}
		}()
	}

	for _, route := range routes {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- route:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

func (s *service) renderRoute(
	ctx context.Context,
	siteMeta SiteMetadata,
	themeCtx ThemeContext,
	themeCSS template.CSS,
	buildMeta BuildMetadata,
	route string,
	manifest *buildManifest,
	force bool,
) renderOutcome {
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{Route: route, Template: s.templateName},
	}

	select {
	case <-ctx.Done():
		outcome.err = ctx.Err()
		outcome.diagnostic.Err = ctx.Err()
		return outcome
	default:
	}

	props, err := s.deps.Site.PropsForPath(ctx, route)
	if err != nil {
		wrapped := fmt.Errorf("generator: assemble %s: %w", routeLabel(route), err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	output := buildOutputPath(route)
	hash := s.dependencyHash(props, themeCtx)
	if !force && manifest.shouldSkipPage(route, hash, output) {
		outcome.skipped = true
		outcome.diagnostic.Skipped = true
		return outcome
	}

	templateCtx := TemplateContext{
		Site:     siteMeta,
		Page:     props,
		Content:  template.HTML(props.Page.HTML),
		ThemeCSS: themeCSS,
		Build:    buildMeta,
		Theme:    themeCtx,
		Helpers:  newTemplateHelpers(siteMeta.BaseURL),
	}

	start := time.Now()
	renderedHTML, err := s.renderer.RenderTemplate(s.templateName, templateCtx)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := fmt.Errorf("generator: render %s: %w", routeLabel(route), err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	var lastModified time.Time
	if props.Page.Date != nil {
		lastModified = props.Page.Date.UTC()
	}

	outcome.page = RenderedPage{
		PageID:       identity.PageID(route),
		Route:        route,
		Output:       output,
		Template:     s.templateName,
		HTML:         renderedHTML,
		Hash:         hash,
		Checksum:     computeHashFromString(renderedHTML),
		LastModified: lastModified,
		Duration:     duration,
	}
	return outcome
}

// dependencyHash fingerprints everything a rendered page depends on. Props
// marshal deterministically, so unchanged inputs produce the same hash.
func (s *service) dependencyHash(props site.PageProps, themeCtx ThemeContext) string {
	payload, err := json.Marshal(struct {
		Props    site.PageProps `json:"props"`
		Template string         `json:"template"`
		Theme    string         `json:"theme"`
		Variant  string         `json:"variant"`
	}{props, s.templateName, themeCtx.Name, themeCtx.Variant})
	if err != nil {
		return computeHashFromString(props.Page.MDPath + "\x00" + props.Page.Body)
	}
	return computeHash(payload)
}

func (s *service) persistPages(ctx context.Context, writer artifactWriter, rendered []RenderedPage) error {
	if len(rendered) == 0 {
		return nil
	}
	dirCache := map[string]struct{}{}
	for i := range rendered {
		if err := ensureDir(ctx, writer, dirCache, path.Dir(rendered[i].Output)); err != nil {
			return err
		}
		req := writeFileRequest{
			Path:        rendered[i].Output,
			Content:     strings.NewReader(rendered[i].HTML),
			Size:        int64(len(rendered[i].HTML)),
			Category:    categoryPage,
			ContentType: "text/html; charset=utf-8",
			Checksum:    rendered[i].Checksum,
			Metadata: map[string]string{
				"page_id":  rendered[i].PageID.String(),
				"route":    rendered[i].Route,
				"template": rendered[i].Template,
			},
		}
		if err := writer.WriteFile(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// mergeRenderedForSitemap combines freshly rendered pages with manifest
// entries for routes skipped this run so the sitemap stays complete.
func mergeRenderedForSitemap(routes []string, rendered []RenderedPage, manifest *buildManifest) []RenderedPage {
	byRoute := make(map[string]RenderedPage, len(rendered))
	for _, page := range rendered {
		byRoute[manifestPageKey(page.Route)] = page
	}

	merged := make([]RenderedPage, 0, len(routes))
	for _, route := range routes {
		key := manifestPageKey(route)
		if page, ok := byRoute[key]; ok {
			merged = append(merged, page)
			continue
		}
		if entry, ok := manifest.Pages[key]; ok {
			merged = append(merged, RenderedPage{
				Route:        entry.Route,
				Output:       entry.Output,
				Template:     entry.Template,
				Hash:         entry.Hash,
				Checksum:     entry.Checksum,
				LastModified: entry.LastModified,
			})
			continue
		}
		merged = append(merged, RenderedPage{Route: route, Output: buildOutputPath(route)})
	}
	return merged
}

func (s *service) loadManifest(ctx context.Context, writer artifactWriter) (*buildManifest, error) {
	if !s.cfg.GenerateManifest {
		return newBuildManifest(), nil
	}
	data, err := writer.ReadFile(ctx, manifestFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newBuildManifest(), nil
		}
		return nil, fmt.Errorf("generator: read manifest: %w", err)
	}
	return parseManifest(data)
}

func (s *service) persistManifest(ctx context.Context, writer artifactWriter, manifest *buildManifest, generatedAt time.Time) error {
	data, err := manifest.marshal(generatedAt)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	reader, size := bytesReader(data)
	return writer.WriteFile(ctx, writeFileRequest{
		Path:        manifestFileName,
		Content:     reader,
		Size:        size,
		Category:    categoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
		Metadata: map[string]string{
			"version":      strconv.Itoa(manifest.Version),
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
		},
	})
}

func (s *service) writeSitemap(ctx context.Context, writer artifactWriter, siteMeta SiteMetadata, sitemapPages []RenderedPage, manifest *buildManifest, generatedAt time.Time) error {
	content := buildSitemap(siteMeta.BaseURL, sitemapPages, generatedAt)
	checksum := computeHashFromString(content)
	err := writer.WriteFile(ctx, writeFileRequest{
		Path:        "sitemap.xml",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    checksum,
		Metadata: map[string]string{
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return err
	}
	manifest.setArtifact("sitemap.xml", categorySitemap, checksum, int64(len(content)), generatedAt)
	return nil
}

func (s *service) writeRobots(ctx context.Context, writer artifactWriter, siteMeta SiteMetadata, manifest *buildManifest, generatedAt time.Time) error {
	content := buildRobots(siteMeta.BaseURL, s.cfg.GenerateSitemap)
	checksum := computeHashFromString(content)
	err := writer.WriteFile(ctx, writeFileRequest{
		Path:        "robots.txt",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryRobots,
		ContentType: "text/plain; charset=utf-8",
		Checksum:    checksum,
		Metadata: map[string]string{
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return err
	}
	manifest.setArtifact("robots.txt", categoryRobots, checksum, int64(len(content)), generatedAt)
	return nil
}

func (s *service) effectiveWorkerCount(routeCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = defaultWorkerCount
	}
	if routeCount > 0 && workers > routeCount {
		return routeCount
	}
	return workers
}

func routeLabel(route string) string {
	if strings.TrimSpace(route) == "" {
		return "/"
	}
	return "/" + strings.Trim(strings.TrimSpace(route), "/")
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) BuildPage(context.Context, string) error {
	return ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
