package pages

import "time"

// Page is the fully loaded record for a single Markdown-backed page.
// Key is the last path segment, Href the root-relative route with
// forward slashes, and MDPath the resolved source file relative to the
// content root. Data carries the complete front matter mapping; Body the
// raw Markdown. HTML is populated by the props assembler once the body
// has been handed to the renderer, and Prev/Next by the neighbour
// linker. Records are never mutated after construction; linking returns
// a new value.
type Page struct {
	Key         string         `json:"key"`
	Href        string         `json:"href"`
	Title       string         `json:"title"`
	MenuTitle   string         `json:"menu_title"`
	MDPath      string         `json:"md_path"`
	Date        *time.Time     `json:"date,omitempty"`
	Description string         `json:"description,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	Body        string         `json:"body,omitempty"`
	HTML        string         `json:"html,omitempty"`
	Prev        *PageLink      `json:"prev,omitempty"`
	Next        *PageLink      `json:"next,omitempty"`
}

// PageLink is a lightweight pointer to a neighbouring page.
type PageLink struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Summary carries the front-matter-derived fields a menu entry needs,
// without the page body. External link stubs are summaries with nil
// Data; they never correspond to a file on disk.
type Summary struct {
	Key       string         `json:"key"`
	Href      string         `json:"href"`
	Title     string         `json:"title"`
	MenuTitle string         `json:"menu_title,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// MenuEntry is one node of the normalized menu tree. Nested preserves
// the declaration order of the sitemap it was built from.
type MenuEntry struct {
	Page   Summary     `json:"page"`
	Nested []MenuEntry `json:"nested,omitempty"`
}

// Label returns the short label used for navigation links: the front
// matter menu title when present, otherwise the page title.
func (s Summary) Label() string {
	if s.MenuTitle != "" {
		return s.MenuTitle
	}
	return s.Title
}

// External reports whether the summary is an external link stub.
func (s Summary) External() bool {
	return s.Data == nil
}

// Summary projects the page down to its menu representation.
func (p Page) Summary() Summary {
	return Summary{
		Key:       p.Key,
		Href:      p.Href,
		Title:     p.Title,
		MenuTitle: p.MenuTitle,
		Data:      p.Data,
	}
}

// Label mirrors Summary.Label for full records.
func (p Page) Label() string {
	if p.MenuTitle != "" {
		return p.MenuTitle
	}
	return p.Title
}

// WithLinks returns a copy of the page with the neighbour links set.
// The receiver is left untouched.
func (p Page) WithLinks(prev, next *PageLink) Page {
	p.Prev = prev
	p.Next = next
	return p
}

// WithHTML returns a copy of the page carrying rendered markup.
func (p Page) WithHTML(html string) Page {
	p.HTML = html
	return p
}

// Stripped returns a copy of the page without body or rendered markup,
// suitable for app-wide payloads that only need metadata.
func (p Page) Stripped() Page {
	p.Body = ""
	p.HTML = ""
	return p
}
