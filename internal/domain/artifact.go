package domain

import (
	"fmt"
	"strings"
	"time"
)

const maxSlugLen = 50

// Slug turns an ad name into a deterministic, file-system-safe name.
// Alphanumerics, dashes and underscores pass through, spaces and
// slashes become underscores, everything else is dropped. Idempotent.
func Slug(name string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '/':
			b.WriteRune('_')
		}
	}

	s := b.String()
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return s
}

// StoragePath computes the store-relative path for an ad's media.
// Stable across runs for unchanged (brand, ad_id, ad_name, ext).
func StoragePath(brand, adID, adName, ext string) string {
	return fmt.Sprintf("%s/%s_%s.%s", brand, adID, Slug(adName), ext)
}

// PublishedArtifact is a media file that has been pushed to the store
// and whose public URL answered a HEAD request with 2xx.
type PublishedArtifact struct {
	StoragePath string
	PublicURL   string
	ViewURL     string
	BytesLen    int
	VerifiedAt  time.Time
}
