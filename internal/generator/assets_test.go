package generator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	gotheme "github.com/goliatone/go-theme"
)

type memWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemWriter() *memWriter {
	return &memWriter{files: map[string][]byte{}}
}

func (w *memWriter) EnsureDir(context.Context, string) error { return nil }

func (w *memWriter) WriteFile(_ context.Context, req writeFileRequest) error {
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[req.Path] = data
	return nil
}

func (w *memWriter) ReadFile(_ context.Context, name string) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return data, nil
}

func (w *memWriter) RemoveAll(context.Context, string) error { return nil }

func themeSelection(files map[string]string) *gotheme.Selection {
	manifest := &gotheme.Manifest{Name: "aurora"}
	manifest.Assets.Files = files
	return &gotheme.Selection{Theme: "aurora", Manifest: manifest}
}

func TestCollectManifestAssetsDedupesAndSorts(t *testing.T) {
	selection := themeSelection(map[string]string{
		"styles":    "css/site.css",
		"logo":      "/img/logo.svg",
		"duplicate": "css/site.css",
		"blank":     "  ",
	})

	got := collectManifestAssets(selection)
	want := []string{"css/site.css", "img/logo.svg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if assets := collectManifestAssets(nil); assets != nil {
		t.Fatalf("expected nil for missing selection, got %v", assets)
	}
}

func TestCopyThemeAssetsWritesManifestFiles(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	themeFS := fstest.MapFS{
		"css/site.css": &fstest.MapFile{Data: []byte("body{margin:0}")},
		"img/logo.svg": &fstest.MapFile{Data: []byte("<svg/>")},
	}
	selection := themeSelection(map[string]string{"styles": "css/site.css", "logo": "img/logo.svg"})
	writer := newMemWriter()
	manifest := newBuildManifest()

	built, skipped, errs := copyThemeAssets(context.Background(), writer, themeFS, selection, manifest, false, now)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if built != 2 || skipped != 0 {
		t.Fatalf("expected 2 built 0 skipped, got %d/%d", built, skipped)
	}
	if got := string(writer.files["assets/css/site.css"]); got != "body{margin:0}" {
		t.Fatalf("unexpected asset content: %q", got)
	}
	artifact, ok := manifest.Artifacts["assets/css/site.css"]
	if !ok {
		t.Fatalf("expected artifact entry, got %v", manifest.Artifacts)
	}
	if artifact.Checksum != computeHash([]byte("body{margin:0}")) {
		t.Fatalf("unexpected artifact checksum: %q", artifact.Checksum)
	}

	built, skipped, errs = copyThemeAssets(context.Background(), writer, themeFS, selection, manifest, false, now)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors on second copy: %v", errs)
	}
	if built != 0 || skipped != 2 {
		t.Fatalf("expected unchanged assets skipped, got %d/%d", built, skipped)
	}

	built, skipped, errs = copyThemeAssets(context.Background(), writer, themeFS, selection, manifest, true, now)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors on forced copy: %v", errs)
	}
	if built != 2 || skipped != 0 {
		t.Fatalf("expected force to rewrite assets, got %d/%d", built, skipped)
	}
}

func TestCopyThemeAssetsReportsMissingFiles(t *testing.T) {
	selection := themeSelection(map[string]string{"styles": "css/missing.css"})
	writer := newMemWriter()

	built, _, errs := copyThemeAssets(context.Background(), writer, fstest.MapFS{}, selection, newBuildManifest(), false, time.Now())
	if built != 0 {
		t.Fatalf("expected nothing built, got %d", built)
	}
	if len(errs) != 1 {
		t.Fatalf("expected a read error, got %v", errs)
	}
}

func TestCopyThemeAssetsWithoutSelection(t *testing.T) {
	built, skipped, errs := copyThemeAssets(context.Background(), newMemWriter(), nil, nil, newBuildManifest(), false, time.Now())
	if built != 0 || skipped != 0 || errs != nil {
		t.Fatalf("expected no work without a selection, got %d/%d/%v", built, skipped, errs)
	}
}

func TestDetectAssetContentType(t *testing.T) {
	cases := []struct {
		name  string
		asset string
		want  string
	}{
		{name: "stylesheet", asset: "css/site.css", want: "text/css"},
		{name: "script", asset: "js/app.js", want: "application/javascript"},
		{name: "vector", asset: "img/logo.svg", want: "image/svg+xml"},
		{name: "unknown", asset: "fonts/site.woff2", want: "application/octet-stream"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectAssetContentType(tc.asset); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
