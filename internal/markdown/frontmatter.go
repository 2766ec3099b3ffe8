package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the parsed metadata header of a content file. Raw keeps
// every field, named plus custom, so callers can expose the full mapping
// without re-parsing.
type FrontMatter struct {
	Title       string
	Menu        string
	Description string
	Date        time.Time
	Draft       bool
	Raw         map[string]any
}

// Label returns the short navigation label: the menu field when present,
// the title otherwise.
func (m FrontMatter) Label() string {
	if m.Menu != "" {
		return m.Menu
	}
	return m.Title
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured front matter, the body
// without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// frontMatterEnvelope mirrors the YAML header. Date is declared as any
// because authors write dates both as bare YAML timestamps and as quoted
// strings; coercion happens in parseDate.
type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Menu        string         `yaml:"menu"`
	Description string         `yaml:"description"`
	Date        any            `yaml:"date"`
	Draft       bool           `yaml:"draft"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	date, hasDate := parseDate(env.Date)

	raw := make(map[string]any, len(env.Custom)+5)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Menu != "" {
		raw["menu"] = env.Menu
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if hasDate {
		raw["date"] = date
	}
	if env.Draft {
		raw["draft"] = true
	}

	return FrontMatter{
		Title:       env.Title,
		Menu:        env.Menu,
		Description: env.Description,
		Date:        date,
		Draft:       env.Draft,
		Raw:         raw,
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
