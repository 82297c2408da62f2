package catalog

import (
	"strings"
	"time"

	"creative_catalog/internal/domain"
)

// Projection fields are pure functions of the ad record and the stored
// byte length; nothing here looks at campaign performance.

// QualityTier buckets an artifact by stored size. Monotonic
// non-decreasing in bytesLen.
func QualityTier(bytesLen int) string {
	switch {
	case bytesLen > 200_000:
		return "premium_hd"
	case bytesLen > 150_000:
		return "high"
	case bytesLen > 100_000:
		return "standard_high"
	default:
		return "standard"
	}
}

// CreativeType reads the naming convention prefix off the ad name.
func CreativeType(adName string) string {
	name := strings.ToLower(adName)
	switch {
	case strings.HasPrefix(name, "video:"):
		return "video"
	case strings.HasPrefix(name, "gif:"):
		return "gif"
	default:
		return "image"
	}
}

// CampaignSeason matches seasonal keywords in the ad name, first rule
// wins.
func CampaignSeason(adName string) string {
	name := strings.ToLower(adName)
	switch {
	case strings.Contains(name, "father"), strings.Contains(name, "fd"):
		return "fathers_day"
	case strings.Contains(name, "bf"), strings.Contains(name, "black friday"):
		return "black_friday"
	case strings.Contains(name, "birthday"):
		return "birthday"
	case strings.Contains(name, "valentine"), strings.Contains(name, "v day"):
		return "valentines_day"
	default:
		return "general"
	}
}

// HookCategory classifies the creative hook from ad-name keywords,
// first rule wins.
func HookCategory(adName string) string {
	name := strings.ToLower(adName)
	switch {
	case strings.Contains(name, "influencer"), strings.Contains(name, "david"):
		return "influencer"
	case strings.Contains(name, "comparison"), strings.Contains(name, "vs"):
		return "comparison"
	case strings.Contains(name, "reaction"), strings.Contains(name, "review"):
		return "ugc"
	case strings.Contains(name, "mashup"):
		return "social_proof"
	case strings.Contains(name, "hook"):
		return "direct_hook"
	default:
		return "product_focus"
	}
}

// PreviewURL builds the ad-library shortlink carried through as data.
func PreviewURL(libraryBase, adID string) string {
	return libraryBase + "?id=" + adID
}

// BuildEntry assembles the catalog entry for an ad whose artifact has
// been published and verified.
func BuildEntry(ad domain.Ad, media *domain.ResolvedMedia, artifact *domain.PublishedArtifact, libraryBase string, now time.Time) domain.CatalogEntry {
	return domain.CatalogEntry{
		AdID:       ad.ID,
		AdName:     ad.Name,
		Brand:      ad.Account.Brand,
		Status:     ad.Status,
		CreativeID: ad.CreativeID,

		MediaKind:      media.Kind,
		CreativeType:   CreativeType(ad.Name),
		CampaignSeason: CampaignSeason(ad.Name),
		HookCategory:   HookCategory(ad.Name),
		QualityTier:    QualityTier(artifact.BytesLen),

		StoragePath: artifact.StoragePath,
		PublicURL:   artifact.PublicURL,
		ViewURL:     artifact.ViewURL,
		PreviewURL:  PreviewURL(libraryBase, ad.ID),
		BytesLen:    artifact.BytesLen,
		Slug:        domain.Slug(ad.Name),

		IndexedAt: now,
	}
}
