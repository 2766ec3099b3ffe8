package site

import "github.com/goliatone/go-docsite/pages"

// PageProps is the fully assembled payload handed to a page rendering
// layer: the target page with rendered HTML and neighbor links, the
// ordered menu for its section, and app-wide data.
type PageProps struct {
	Page    pages.Page        `json:"page"`
	Menu    []pages.MenuEntry `json:"menu"`
	App     AppData           `json:"app"`
	EditURL string            `json:"edit_url,omitempty"`
}

// AppData carries data shared by every page of the site.
type AppData struct {
	// LatestBlog is the most recent post with its body stripped; nil
	// when the site has no posts.
	LatestBlog *pages.Page `json:"latest_blog,omitempty"`
}
