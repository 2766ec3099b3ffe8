package markdown

import (
	"context"
	"strings"
	"testing"
)

func TestGoldmarkRenderer_Render(t *testing.T) {
	renderer := NewGoldmarkRenderer(RenderOptions{})

	html, err := renderer.Render(context.Background(), []byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkRenderer_DefaultExtensions(t *testing.T) {
	renderer := NewGoldmarkRenderer(RenderOptions{})

	html, err := renderer.Render(context.Background(), []byte("see https://example.com for details"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(string(html), "<a href=") {
		t.Fatalf("expected autolinked URL, got %q", string(html))
	}
}

func TestGoldmarkRenderer_RenderWithOptions(t *testing.T) {
	renderer := NewGoldmarkRenderer(RenderOptions{})

	html, err := renderer.RenderWithOptions(context.Background(), []byte("line one\nline two"), RenderOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("RenderWithOptions: %v", err)
	}

	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestGoldmarkRenderer_SafeModeBlocksRawHTML(t *testing.T) {
	renderer := NewGoldmarkRenderer(RenderOptions{SafeMode: true})

	html, err := renderer.Render(context.Background(), []byte("before\n\n<div>raw</div>\n\nafter"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(string(html), "<div>") {
		t.Fatalf("expected raw HTML to be suppressed, got %q", string(html))
	}
}
