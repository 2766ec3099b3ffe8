package navigation

import "github.com/goliatone/go-docsite/pages"

// Flatten returns the file-backed pages of the tree in depth-first
// declaration order, a parent page before its nested children. External
// link stubs carry no page data and are skipped: they can neither anchor
// a traversal nor receive neighbor links.
func Flatten(entries []pages.MenuEntry) []pages.Summary {
	var flat []pages.Summary
	for _, entry := range entries {
		if !entry.Page.External() {
			flat = append(flat, entry.Page)
		}
		if len(entry.Nested) > 0 {
			flat = append(flat, Flatten(entry.Nested)...)
		}
	}
	return flat
}

// WithNeighbors returns a copy of page with prev and next links computed
// from the flattened traversal order of the menu tree. The first page
// gets no prev, the last no next, and a page absent from the tree is
// returned unchanged.
func WithNeighbors(page pages.Page, entries []pages.MenuEntry) pages.Page {
	flat := Flatten(entries)

	idx := -1
	for i, candidate := range flat {
		if candidate.Href == page.Href {
			idx = i
			break
		}
	}
	if idx == -1 {
		return page
	}

	var prev, next *pages.PageLink
	if idx > 0 {
		before := flat[idx-1]
		prev = &pages.PageLink{Title: before.Label(), Href: before.Href}
	}
	if idx < len(flat)-1 {
		after := flat[idx+1]
		next = &pages.PageLink{Title: after.Label(), Href: after.Href}
	}
	return page.WithLinks(prev, next)
}
