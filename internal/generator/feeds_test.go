package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-docsite/internal/identity"
	"github.com/goliatone/go-docsite/pages"
)

func TestBuildFeedItemsKeepsOrderAndDedupes(t *testing.T) {
	newer := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC)
	posts := []pages.Page{
		{Href: "/blog/2024/announcing", MDPath: "blog/2024/announcing.md", Title: "Announcing", Date: &newer, Description: "Fresh   release   notes"},
		{Href: "/blog/2024/announcing", MDPath: "blog/2024/announcing.md", Title: "Duplicate", Date: &newer},
		{Href: "/blog/2023/retrospective", MDPath: "blog/2023/retrospective.md", Title: "Retrospective", Date: &older},
		{Href: "/blog/2023/undated", MDPath: "blog/2023/undated.md", Title: "Undated"},
		{Href: "", Title: "No route"},
	}

	items := buildFeedItems(posts, "https://docs.example.com/")

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Title != "Announcing" || items[1].Title != "Retrospective" || items[2].Title != "Undated" {
		t.Fatalf("unexpected item order: %+v", items)
	}
	if items[0].Link != "https://docs.example.com/blog/2024/announcing" {
		t.Fatalf("unexpected link: %q", items[0].Link)
	}
	if items[0].GUID != identity.PostID("blog/2024/announcing.md").String() {
		t.Fatalf("unexpected guid: %q", items[0].GUID)
	}
	if items[0].Summary != "Fresh release notes" {
		t.Fatalf("expected normalized summary, got %q", items[0].Summary)
	}
	if !items[2].PublishedAt.IsZero() {
		t.Fatalf("expected undated post to carry zero time, got %v", items[2].PublishedAt)
	}
}

func TestBuildRSSFeed(t *testing.T) {
	generatedAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	published := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)
	site := SiteMetadata{Title: "Example Docs", Description: "Guides & references", BaseURL: "https://docs.example.com"}
	items := []feedItem{
		{Title: "Announcing", Link: "https://docs.example.com/blog/announcing", GUID: "guid-1", Summary: "Now stable", PublishedAt: published},
		{Title: "Undated", Link: "https://docs.example.com/blog/undated", GUID: "guid-2"},
	}

	feed := buildRSSFeed(site, items, generatedAt)

	for _, want := range []string{
		"<title>Example Docs</title>",
		"<description>Guides &amp; references</description>",
		"<lastBuildDate>Fri, 10 May 2024 12:00:00 +0000</lastBuildDate>",
		"<pubDate>Tue, 02 Apr 2024 09:30:00 +0000</pubDate>",
		`<guid isPermaLink="false">guid-1</guid>`,
		"<description>Now stable</description>",
	} {
		if !strings.Contains(feed, want) {
			t.Fatalf("rss feed missing %q:\n%s", want, feed)
		}
	}
	// Undated items fall back to the build timestamp.
	if !strings.Contains(feed, "<pubDate>Fri, 10 May 2024 12:00:00 +0000</pubDate>") {
		t.Fatalf("expected fallback pubDate for undated item:\n%s", feed)
	}
}

func TestBuildAtomFeed(t *testing.T) {
	generatedAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	published := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)
	site := SiteMetadata{Title: "Example Docs", BaseURL: "https://docs.example.com"}
	items := []feedItem{
		{Title: "Announcing", Link: "https://docs.example.com/blog/announcing", GUID: "guid-1", PublishedAt: published, UpdatedAt: published},
	}

	feed := buildAtomFeed(site, items, generatedAt)

	for _, want := range []string{
		"<id>https://docs.example.com/feed.atom.xml</id>",
		`<link rel="self" href="https://docs.example.com/feed.atom.xml" />`,
		"<updated>2024-05-10T12:00:00Z</updated>",
		"<published>2024-04-02T09:30:00Z</published>",
		"<id>guid-1</id>",
	} {
		if !strings.Contains(feed, want) {
			t.Fatalf("atom feed missing %q:\n%s", want, feed)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	cases := []struct {
		name  string
		base  string
		route string
		want  string
	}{
		{name: "joins_base_and_route", base: "https://docs.example.com/", route: "tutorial", want: "https://docs.example.com/tutorial"},
		{name: "keeps_leading_slash", base: "https://docs.example.com", route: "/tutorial/setup", want: "https://docs.example.com/tutorial/setup"},
		{name: "empty_route_is_base", base: "https://docs.example.com", route: "", want: "https://docs.example.com"},
		{name: "empty_base_falls_back", base: "", route: "/tutorial", want: "http://localhost/tutorial"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := absoluteURL(tc.base, tc.route); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	if got := normalizeWhitespace("  spread \n across\tlines  "); got != "spread across lines" {
		t.Fatalf("expected %q, got %q", "spread across lines", got)
	}
	if got := normalizeWhitespace("   "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
