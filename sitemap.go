package docsite

import "github.com/goliatone/go-docsite/sitemap"

var (
	ErrSitemapEmpty        = sitemap.ErrEmpty
	ErrSitemapKeyRequired  = sitemap.ErrKeyRequired
	ErrSitemapKeyInvalid   = sitemap.ErrKeyInvalid
	ErrSitemapKeyDuplicate = sitemap.ErrKeyDuplicate
	ErrSitemapShape        = sitemap.ErrShape
)

type (
	Sitemap      = sitemap.Sitemap
	SitemapEntry = sitemap.Entry
	SitemapNode  = sitemap.Node
	ExternalLink = sitemap.ExternalLink
	PageList     = sitemap.PageList
	Section      = sitemap.Section
)

// ParseSitemap decodes the JSON site description, preserving the
// declaration order that drives menus and prev/next traversal.
func ParseSitemap(data []byte) (Sitemap, error) {
	return sitemap.Parse(data)
}
