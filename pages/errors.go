package pages

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("pages: page not found")
	ErrPathRequired    = errors.New("pages: content path is required")
	ErrPathEscapesRoot = errors.New("pages: content path escapes the content root")
)

// NotFoundError reports a logical path that resolved to neither a direct
// file nor an index file. Tried lists the candidate paths in resolution
// order so callers can see exactly what was searched.
type NotFoundError struct {
	Path  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	if len(e.Tried) > 0 {
		return fmt.Sprintf("%s: %s (tried %s)", ErrNotFound.Error(), e.Path, strings.Join(e.Tried, ", "))
	}
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
