// Package sitemap defines the static site description: an ordered tree
// of section keys mapping to file-backed pages, page lists, deeper
// sections, or external links. The tree is built once at configuration
// time and treated as immutable afterwards; navigation, path
// enumeration, and site generation all walk it.
package sitemap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
)

var (
	ErrEmpty        = errors.New("sitemap: sitemap is empty")
	ErrKeyRequired  = errors.New("sitemap: key is required")
	ErrKeyInvalid   = errors.New("sitemap: key is not a valid slug")
	ErrKeyDuplicate = errors.New("sitemap: duplicate key")
	ErrShape        = errors.New("sitemap: node has an unrecognized shape")
)

// Node is one node of the site description. The implementations form a
// closed set so traversals can switch exhaustively: ExternalLink for
// off-site leaves, PageList for a section whose children share its
// content folder, and Section for a deeper nested mapping. A nil node on
// an Entry declares a bare file-backed leaf.
type Node interface {
	node()
}

// ExternalLink is a leaf pointing off-site. It never resolves to a file
// and never emits a routable path.
type ExternalLink struct {
	Title string `json:"title,omitempty"`
	HREF  string `json:"href"`
}

// PageList declares a section with an index page plus one child page per
// listed key, all resolved inside the section's content folder. Order is
// significant.
type PageList struct {
	Children []string `json:"nested"`
}

// Section nests a further ordered mapping of keys to nodes. The section
// itself is file backed: it loads an index page and emits its own route.
type Section struct {
	Entries []Entry `json:"nested"`
}

func (ExternalLink) node() {}
func (PageList) node()     {}
func (Section) node()      {}

// Entry pairs a section key with its node.
type Entry struct {
	Key  string
	Node Node
}

// Sitemap is the full ordered site description: one entry per top-level
// section.
type Sitemap []Entry

// Section returns the node declared for the given top-level key.
func (s Sitemap) Section(key string) (Node, bool) {
	for _, entry := range s {
		if entry.Key == key {
			return entry.Node, true
		}
	}
	return nil, false
}

// Validate checks every key in the tree: keys must be present, valid
// slugs, and unique within their mapping level.
func (s Sitemap) Validate() error {
	if len(s) == 0 {
		return ErrEmpty
	}
	return validateEntries(s, "")
}

func validateEntries(entries []Entry, prefix string) error {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			return fmt.Errorf("%w (under %q)", ErrKeyRequired, displayPrefix(prefix))
		}
		if !slug.IsValid(key) {
			return fmt.Errorf("%w: %q", ErrKeyInvalid, joinKey(prefix, key))
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q", ErrKeyDuplicate, joinKey(prefix, key))
		}
		seen[key] = struct{}{}

		switch node := entry.Node.(type) {
		case nil:
		case ExternalLink:
			if strings.TrimSpace(node.HREF) == "" {
				return fmt.Errorf("%w: %q has an empty href", ErrShape, joinKey(prefix, key))
			}
		case PageList:
			childSeen := make(map[string]struct{}, len(node.Children))
			for _, child := range node.Children {
				child = strings.TrimSpace(child)
				if child == "" {
					return fmt.Errorf("%w (under %q)", ErrKeyRequired, joinKey(prefix, key))
				}
				if !slug.IsValid(child) {
					return fmt.Errorf("%w: %q", ErrKeyInvalid, joinKey(prefix, key)+"/"+child)
				}
				if _, ok := childSeen[child]; ok {
					return fmt.Errorf("%w: %q", ErrKeyDuplicate, joinKey(prefix, key)+"/"+child)
				}
				childSeen[child] = struct{}{}
			}
		case Section:
			if err := validateEntries(node.Entries, joinKey(prefix, key)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %q", ErrShape, joinKey(prefix, key))
		}
	}
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

func displayPrefix(prefix string) string {
	if prefix == "" {
		return "root"
	}
	return prefix
}

// NormalizeKey applies the shared slug rules used for sitemap keys.
func NormalizeKey(key string) (string, error) {
	return slug.Normalize(key)
}
