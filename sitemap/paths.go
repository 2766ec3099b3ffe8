package sitemap

import "strings"

// Routes walks the full sitemap and returns every routable path as a
// forward-slash joined slug, in declaration order. A node is routable
// when it is file backed: bare leaves, page lists (index plus one route
// per child), and nested sections all emit paths, external links never
// do.
func Routes(s Sitemap) []string {
	var routes []string
	for _, entry := range s {
		routes = append(routes, collectRoutes(entry, "")...)
	}
	return routes
}

func collectRoutes(entry Entry, prefix string) []string {
	path := joinKey(prefix, entry.Key)

	switch node := entry.Node.(type) {
	case nil:
		return []string{path}
	case ExternalLink:
		return nil
	case PageList:
		routes := make([]string, 0, len(node.Children)+1)
		routes = append(routes, path)
		for _, child := range node.Children {
			routes = append(routes, path+"/"+child)
		}
		return routes
	case Section:
		routes := []string{path}
		for _, nested := range node.Entries {
			routes = append(routes, collectRoutes(nested, path)...)
		}
		return routes
	default:
		return nil
	}
}

// StaticSlugs returns one slug-segment list per routable node, with the
// leading section segment removed. The first segment is the route
// namespace and is supplied by the routing layer itself, so a top-level
// index route yields an empty slug list.
func StaticSlugs(s Sitemap) [][]string {
	routes := Routes(s)
	slugs := make([][]string, 0, len(routes))
	for _, route := range routes {
		segments := strings.Split(route, "/")
		slugs = append(slugs, segments[1:])
	}
	return slugs
}

// StaticPaths is the enumeration contract handed to a routing layer:
// the complete set of routable slugs plus a disabled fallback, so any
// path outside the set is a hard 404 rather than a deferred render.
type StaticPaths struct {
	Paths    [][]string `json:"paths"`
	Fallback bool       `json:"fallback"`
}

// CollectStaticPaths enumerates the sitemap's routable slugs for static
// path generation. Fallback is always disabled.
func CollectStaticPaths(s Sitemap) StaticPaths {
	return StaticPaths{
		Paths:    StaticSlugs(s),
		Fallback: false,
	}
}
