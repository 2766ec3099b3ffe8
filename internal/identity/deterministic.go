package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageID identifies a routed page by its route, independent of the file
// that backs it.
func PageID(route string) uuid.UUID {
	return UUID("docsite:page:" + strings.Trim(strings.TrimSpace(route), "/"))
}

// PostID identifies a blog post by its source file path.
func PostID(mdPath string) uuid.UUID {
	return UUID("docsite:post:" + strings.TrimSpace(mdPath))
}

// ThemeID identifies a theme by the directory its manifest loads from.
func ThemeID(themePath string) uuid.UUID {
	return UUID("docsite:theme:" + strings.TrimSpace(themePath))
}
