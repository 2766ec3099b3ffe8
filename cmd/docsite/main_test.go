package main

import (
	"bytes"
	"context"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"
	"time"

	docsite "github.com/goliatone/go-docsite"
	sitecmd "github.com/goliatone/go-docsite/internal/commands/site"
	"github.com/goliatone/go-docsite/internal/generator"
	"github.com/goliatone/go-docsite/pages"
	"github.com/goliatone/go-docsite/sitemap"
)

type stubHandlers struct {
	build *stubBuildHandler
	clean *stubCleanHandler
	paths *stubPathsHandler
	props *stubPropsSource
}

type stubBuildHandler struct {
	last sitecmd.BuildSiteCommand
	err  error
}

func (s *stubBuildHandler) Execute(ctx context.Context, msg sitecmd.BuildSiteCommand) error {
	s.last = msg
	if msg.ResultCallback != nil {
		msg.ResultCallback(sitecmd.ResultEnvelope{
			Result: &generator.BuildResult{
				PagesBuilt: 2,
				Duration:   5 * time.Millisecond,
				DryRun:     msg.DryRun,
			},
			Metadata: map[string]any{"operation": "build"},
		})
	}
	return s.err
}

type stubCleanHandler struct {
	calls int
	err   error
}

func (s *stubCleanHandler) Execute(ctx context.Context, msg sitecmd.CleanSiteCommand) error {
	s.calls++
	return s.err
}

type stubPathsHandler struct {
	calls int
	err   error
}

func (s *stubPathsHandler) Execute(ctx context.Context, msg sitecmd.ListPathsCommand) error {
	s.calls++
	if msg.ResultCallback != nil {
		msg.ResultCallback(sitemap.StaticPaths{Paths: [][]string{{}, {"setup"}}})
	}
	return s.err
}

type stubPropsSource struct {
	lastPath string
	props    docsite.PageProps
	err      error
}

func (s *stubPropsSource) PropsForPath(ctx context.Context, path string) (docsite.PageProps, error) {
	s.lastPath = path
	return s.props, s.err
}

func withStubModule(t *testing.T) *stubHandlers {
	t.Helper()
	original := moduleBuilder
	stubs := &stubHandlers{
		build: &stubBuildHandler{},
		clean: &stubCleanHandler{},
		paths: &stubPathsHandler{},
		props: &stubPropsSource{},
	}

	moduleBuilder = func(opts moduleOptions) (*moduleResources, error) {
		return &moduleResources{
			handlers: handlerSet{
				build: stubs.build,
				clean: stubs.clean,
				paths: stubs.paths,
			},
			props: stubs.props,
		}, nil
	}

	t.Cleanup(func() {
		moduleBuilder = original
	})
	return stubs
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOutput := log.Writer()
	prevFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOutput)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestRunBuild_UsesCommandHandler(t *testing.T) {
	stubs := withStubModule(t)
	buf := captureLogs(t)

	if err := run([]string{"build", "--routes", "docs,docs/setup", "--force"}); err != nil {
		t.Fatalf("run build: %v", err)
	}

	got := stubs.build.last
	wantRoutes := []string{"docs", "docs/setup"}
	if !reflect.DeepEqual(got.Routes, wantRoutes) {
		t.Fatalf("expected routes %v, got %v", wantRoutes, got.Routes)
	}
	if !got.Force {
		t.Fatal("expected force flag to propagate")
	}
	if got.DryRun {
		t.Fatal("expected dry-run to stay false")
	}
	if !strings.Contains(buf.String(), "module=docsite operation=build summary") {
		t.Fatalf("expected build summary log, got %q", buf.String())
	}
}

func TestRunBuild_DryRunPropagates(t *testing.T) {
	stubs := withStubModule(t)
	buf := captureLogs(t)

	if err := run([]string{"build", "--dry-run"}); err != nil {
		t.Fatalf("run build: %v", err)
	}
	if !stubs.build.last.DryRun {
		t.Fatal("expected dry-run flag to propagate")
	}
	if len(stubs.build.last.Routes) != 0 {
		t.Fatalf("expected full build, got routes %v", stubs.build.last.Routes)
	}
	if !strings.Contains(buf.String(), "dry_run=true") {
		t.Fatalf("expected dry_run summary log, got %q", buf.String())
	}
}

func TestRunClean_UsesCommandHandler(t *testing.T) {
	stubs := withStubModule(t)
	buf := captureLogs(t)

	if err := run([]string{"clean"}); err != nil {
		t.Fatalf("run clean: %v", err)
	}
	if stubs.clean.calls != 1 {
		t.Fatalf("expected clean handler called once, got %d", stubs.clean.calls)
	}
	if !strings.Contains(buf.String(), "module=docsite operation=clean") {
		t.Fatalf("expected clean log, got %q", buf.String())
	}
}

func TestRunPaths_UsesCommandHandler(t *testing.T) {
	stubs := withStubModule(t)
	buf := captureLogs(t)

	if err := run([]string{"paths"}); err != nil {
		t.Fatalf("run paths: %v", err)
	}
	if stubs.paths.calls != 1 {
		t.Fatalf("expected paths handler called once, got %d", stubs.paths.calls)
	}
	if !strings.Contains(buf.String(), "module=docsite operation=paths routes=2") {
		t.Fatalf("expected paths log, got %q", buf.String())
	}
}

func TestRunProps_UsesPropsSource(t *testing.T) {
	stubs := withStubModule(t)
	stubs.props.props = docsite.PageProps{
		Page: pages.Page{Key: "setup", Href: "/docs/setup", Title: "Setup"},
		Menu: []pages.MenuEntry{{Page: pages.Summary{Key: "docs", Href: "/docs", Title: "Docs"}}},
	}
	buf := captureLogs(t)

	if err := run([]string{"props", "docs/setup"}); err != nil {
		t.Fatalf("run props: %v", err)
	}
	if stubs.props.lastPath != "docs/setup" {
		t.Fatalf("expected route %q, got %q", "docs/setup", stubs.props.lastPath)
	}
	if !strings.Contains(buf.String(), "module=docsite operation=props route=docs/setup menu_entries=1") {
		t.Fatalf("expected props log, got %q", buf.String())
	}
}

func TestRunProps_RequiresRoute(t *testing.T) {
	withStubModule(t)

	err := run([]string{"props"})
	if err == nil || !strings.Contains(err.Error(), "route argument") {
		t.Fatalf("expected route argument error, got %v", err)
	}
}

func TestRun_ErrorsWhenHandlersMissing(t *testing.T) {
	original := moduleBuilder
	moduleBuilder = func(opts moduleOptions) (*moduleResources, error) {
		return &moduleResources{}, nil
	}
	t.Cleanup(func() { moduleBuilder = original })

	err := run([]string{"build"})
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected handler error, got %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run([]string{"unknown"})
	if err == nil || !strings.Contains(err.Error(), "unknown subcommand") {
		t.Fatalf("expected unknown subcommand error, got %v", err)
	}
}

func TestRun_NoArgs(t *testing.T) {
	err := run([]string{})
	if err == nil || !strings.Contains(err.Error(), "missing subcommand") {
		t.Fatalf("expected missing subcommand error, got %v", err)
	}
}

func TestRunHandlersPropagateErrors(t *testing.T) {
	stubs := withStubModule(t)
	stubs.build.err = errors.New("boom")
	captureLogs(t)

	err := run([]string{"build"})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected propagated error, got %v", err)
	}
}
