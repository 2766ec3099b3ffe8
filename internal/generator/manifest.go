package generator

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	manifestFileName    = "manifest.json"
	manifestFileVersion = 1
)

// buildManifest stores metadata about the last successful build so later
// runs can skip pages whose inputs did not change.
type buildManifest struct {
	Version     int                         `json:"version"`
	GeneratedAt time.Time                   `json:"generated_at"`
	Pages       map[string]manifestPage     `json:"pages"`
	Artifacts   map[string]manifestArtifact `json:"artifacts"`
}

type manifestPage struct {
	PageID       string    `json:"page_id"`
	Route        string    `json:"route"`
	Output       string    `json:"output"`
	Template     string    `json:"template"`
	Hash         string    `json:"hash"`
	Checksum     string    `json:"checksum"`
	LastModified time.Time `json:"last_modified,omitempty"`
	RenderedAt   time.Time `json:"rendered_at"`
}

type manifestArtifact struct {
	Category  string    `json:"category"`
	Output    string    `json:"output"`
	Checksum  string    `json:"checksum"`
	Size      int64     `json:"size"`
	WrittenAt time.Time `json:"written_at"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version:   manifestFileVersion,
		Pages:     map[string]manifestPage{},
		Artifacts: map[string]manifestArtifact{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	manifest := newBuildManifest()
	if len(data) == 0 {
		return manifest, nil
	}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if manifest.Pages == nil {
		manifest.Pages = map[string]manifestPage{}
	}
	if manifest.Artifacts == nil {
		manifest.Artifacts = map[string]manifestArtifact{}
	}
	if manifest.Version == 0 {
		manifest.Version = manifestFileVersion
	}
	return manifest, nil
}

func manifestPageKey(route string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(route), "/"))
}

// shouldSkipPage reports whether a page's inputs match the previous build.
func (m *buildManifest) shouldSkipPage(route, hash, output string) bool {
	if m == nil {
		return false
	}
	entry, ok := m.Pages[manifestPageKey(route)]
	if !ok {
		return false
	}
	return entry.Hash == hash && entry.Output == output
}

func (m *buildManifest) setPage(page RenderedPage, renderedAt time.Time) {
	if m == nil {
		return
	}
	m.Pages[manifestPageKey(page.Route)] = manifestPage{
		PageID:       page.PageID.String(),
		Route:        strings.Trim(strings.TrimSpace(page.Route), "/"),
		Output:       page.Output,
		Template:     page.Template,
		Hash:         page.Hash,
		Checksum:     page.Checksum,
		LastModified: page.LastModified,
		RenderedAt:   renderedAt,
	}
}

func (m *buildManifest) setArtifact(name string, category writeCategory, checksum string, size int64, writtenAt time.Time) {
	if m == nil {
		return
	}
	m.Artifacts[name] = manifestArtifact{
		Category:  string(category),
		Output:    name,
		Checksum:  checksum,
		Size:      size,
		WrittenAt: writtenAt,
	}
}

// prunePages drops manifest entries for routes that no longer exist. Only
// full builds prune; narrowed builds cannot tell absent from unrequested.
func (m *buildManifest) prunePages(routes []string) {
	if m == nil {
		return
	}
	keep := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		keep[manifestPageKey(route)] = struct{}{}
	}
	for key := range m.Pages {
		if _, ok := keep[key]; !ok {
			delete(m.Pages, key)
		}
	}
}

// marshal produces the on-disk form. encoding/json writes map keys in
// sorted order, so the output is deterministic and diffs cleanly.
func (m *buildManifest) marshal(generatedAt time.Time) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	cloned := *m
	cloned.GeneratedAt = generatedAt
	if cloned.Version == 0 {
		cloned.Version = manifestFileVersion
	}
	if cloned.Pages == nil {
		cloned.Pages = map[string]manifestPage{}
	}
	if cloned.Artifacts == nil {
		cloned.Artifacts = map[string]manifestArtifact{}
	}
	return json.MarshalIndent(&cloned, "", "  ")
}
