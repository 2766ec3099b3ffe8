package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categoryAsset    writeCategory = "asset"
	categoryFeed     writeCategory = "feed"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryManifest writeCategory = "manifest"
)

// writeFileRequest describes a file write routed through the artifact writer.
type writeFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    writeCategory
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// artifactWriter abstracts the output tree so builds can target the real
// filesystem or a no-op sink for dry runs.
type artifactWriter interface {
	EnsureDir(ctx context.Context, dir string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
	ReadFile(ctx context.Context, name string) ([]byte, error)
	RemoveAll(ctx context.Context, dir string) error
}

var errPathEscapesOutput = errors.New("generator: path escapes output directory")

// fsWriter persists artifacts under a root directory on the local filesystem.
type fsWriter struct {
	root string
}

func newFSWriter(root string) (*fsWriter, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return nil, errOutputRequired
	}
	return &fsWriter{root: filepath.Clean(trimmed)}, nil
}

// resolve maps an artifact path onto the root and rejects escapes. Leading
// slashes are treated as root-relative.
func (w *fsWriter) resolve(name string) (string, error) {
	cleaned := path.Clean(strings.TrimSpace(name))
	if cleaned == "." || cleaned == "/" {
		return w.root, nil
	}
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %s", errPathEscapesOutput, name)
	}
	return filepath.Join(w.root, filepath.FromSlash(cleaned)), nil
}

func (w *fsWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := w.resolve(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir %s: %w", dir, err)
	}
	return nil
}

func (w *fsWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := w.resolve(req.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir for %s: %w", req.Path, err)
	}
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("generator: create %s: %w", req.Path, err)
	}
	if _, err := io.Copy(file, req.Content); err != nil {
		file.Close()
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("generator: close %s: %w", req.Path, err)
	}
	return nil
}

func (w *fsWriter) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := w.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (w *fsWriter) RemoveAll(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := w.resolve(dir)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("generator: remove %s: %w", dir, err)
	}
	return nil
}

// noopWriter discards every write. Dry runs use it so the render pipeline
// executes end to end without touching the output directory.
type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if req.Content != nil {
		io.Copy(io.Discard, req.Content)
	}
	return nil
}

func (noopWriter) ReadFile(context.Context, string) ([]byte, error) {
	return nil, fs.ErrNotExist
}

func (noopWriter) RemoveAll(context.Context, string) error { return nil }

func bytesReader(data []byte) (io.Reader, int64) {
	return bytes.NewReader(data), int64(len(data))
}
