package markdown

import (
	"os"
	"strings"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Shared state" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Menu != "Shared state" {
		t.Fatalf("FrontMatter Menu mismatch, got %q", fm.Menu)
	}
	if fm.Description != "Ways to share state between tasks." {
		t.Fatalf("FrontMatter Description mismatch, got %q", fm.Description)
	}
	if fm.Date.IsZero() || fm.Date.Format("2006-01-02") != "2024-06-15" {
		t.Fatalf("FrontMatter Date mismatch, got %v", fm.Date)
	}
	if fm.Raw["experimental"] != true {
		t.Fatalf("FrontMatter Raw custom flag missing: %#v", fm.Raw)
	}
	if fm.Raw["title"] != "Shared state" {
		t.Fatalf("FrontMatter Raw title missing: %#v", fm.Raw)
	}
	if len(body) == 0 || !strings.Contains(string(body), "# Shared state") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterDateForms(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"bare_yaml_date", "---\ntitle: Post\ndate: 2024-06-15\n---\nBody", "2024-06-15"},
		{"quoted_date_string", "---\ntitle: Post\ndate: \"2023-01-01\"\n---\nBody", "2023-01-01"},
		{"rfc3339_string", "---\ntitle: Post\ndate: \"2022-12-31T09:30:00Z\"\n---\nBody", "2022-12-31"},
		{"missing_date", "---\ntitle: Post\n---\nBody", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fm, _, err := ParseFrontMatter([]byte(tc.src))
			if err != nil {
				t.Fatalf("ParseFrontMatter: %v", err)
			}
			if tc.want == "" {
				if !fm.Date.IsZero() {
					t.Fatalf("expected zero date, got %v", fm.Date)
				}
				return
			}
			if got := fm.Date.Format("2006-01-02"); got != tc.want {
				t.Fatalf("expected date %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFrontMatterLabel(t *testing.T) {
	withMenu := FrontMatter{Title: "Setting things up", Menu: "Setup"}
	if withMenu.Label() != "Setup" {
		t.Fatalf("expected menu field to win, got %q", withMenu.Label())
	}

	withoutMenu := FrontMatter{Title: "Setting things up"}
	if withoutMenu.Label() != "Setting things up" {
		t.Fatalf("expected title fallback, got %q", withoutMenu.Label())
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
