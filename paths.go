package docsite

import "github.com/goliatone/go-docsite/sitemap"

// StaticPaths is the enumeration contract handed to a routing layer.
type StaticPaths = sitemap.StaticPaths

// Routes returns every routable path in the sitemap, in declaration
// order, skipping external links.
func Routes(s Sitemap) []string {
	return sitemap.Routes(s)
}

// StaticSlugs returns one slug-segment list per routable node with the
// leading namespace segment removed.
func StaticSlugs(s Sitemap) [][]string {
	return sitemap.StaticSlugs(s)
}

// CollectStaticPaths enumerates routable slugs for static path
// generation with fallback disabled.
func CollectStaticPaths(s Sitemap) StaticPaths {
	return sitemap.CollectStaticPaths(s)
}
