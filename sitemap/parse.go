package sitemap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Parse decodes the JSON form of a sitemap, preserving declaration order
// at every level. Object values map onto the node variants: `{"href":
// ...}` becomes an ExternalLink, `{"nested": [...]}` a PageList,
// `{"nested": {...}}` a Section, and `null` a bare leaf. Any other shape
// is an error.
//
// encoding/json map decoding would lose key order, and order is semantic
// here (it drives menu display and prev/next traversal), so the decode
// walks tokens instead.
func Parse(data []byte) (Sitemap, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("sitemap: decode: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: document root must be an object", ErrShape)
	}

	entries, err := parseObject(dec, "")
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("sitemap: decode: %w", err)
	}
	return Sitemap(entries), nil
}

// parseObject consumes entries until the matching closing brace. The
// opening brace has already been read.
func parseObject(dec *json.Decoder, prefix string) ([]Entry, error) {
	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("sitemap: decode: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string key under %q", ErrShape, displayPrefix(prefix))
		}

		node, err := parseNode(dec, joinKey(prefix, key))
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Node: node})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("sitemap: decode: %w", err)
	}
	return entries, nil
}

func parseNode(dec *json.Decoder, at string) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("sitemap: decode: %w", err)
	}

	switch value := tok.(type) {
	case nil:
		return nil, nil
	case json.Delim:
		if value != '{' {
			return nil, fmt.Errorf("%w: %q", ErrShape, at)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrShape, at)
	}

	var (
		href      string
		title     string
		nested    Node
		sawHref   bool
		sawNested bool
	)

	for dec.More() {
		fieldTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("sitemap: decode: %w", err)
		}
		field, ok := fieldTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrShape, at)
		}

		switch field {
		case "href":
			valueTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("sitemap: decode: %w", err)
			}
			str, ok := valueTok.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q href must be a string", ErrShape, at)
			}
			href = str
			sawHref = true
		case "title":
			valueTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("sitemap: decode: %w", err)
			}
			str, ok := valueTok.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q title must be a string", ErrShape, at)
			}
			title = str
		case "nested":
			node, err := parseNested(dec, at)
			if err != nil {
				return nil, err
			}
			nested = node
			sawNested = true
		default:
			return nil, fmt.Errorf("%w: %q has unknown field %q", ErrShape, at, field)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("sitemap: decode: %w", err)
	}

	switch {
	case sawHref && !sawNested:
		return ExternalLink{Title: title, HREF: href}, nil
	case sawNested && !sawHref:
		return nested, nil
	default:
		return nil, fmt.Errorf("%w: %q must declare either href or nested", ErrShape, at)
	}
}

func parseNested(dec *json.Decoder, at string) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("sitemap: decode: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("%w: %q nested must be a list or mapping", ErrShape, at)
	}

	switch delim {
	case '[':
		var children []string
		for dec.More() {
			childTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("sitemap: decode: %w", err)
			}
			child, ok := childTok.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q nested entries must be strings", ErrShape, at)
			}
			children = append(children, child)
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("sitemap: decode: %w", err)
		}
		return PageList{Children: children}, nil
	case '{':
		entries, err := parseObject(dec, at)
		if err != nil {
			return nil, err
		}
		return Section{Entries: entries}, nil
	default:
		return nil, fmt.Errorf("%w: %q nested must be a list or mapping", ErrShape, at)
	}
}
