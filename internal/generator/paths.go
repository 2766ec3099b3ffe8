package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a route onto its on-disk artifact. Every page renders
// as a directory index so generated sites serve clean URLs.
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

// normalizeRoutes trims slashes and dedupes while keeping declaration order
// so manifests and sitemaps stay stable between builds. The empty route is
// the site root.
func normalizeRoutes(routes []string) []string {
	normalized := make([]string, 0, len(routes))
	seen := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		clean := strings.Trim(strings.TrimSpace(route), "/")
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		normalized = append(normalized, clean)
	}
	return normalized
}
