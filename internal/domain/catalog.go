package domain

import "time"

// CatalogEntry joins an ad with its published artifact plus the fields
// projected into Airtable. Entries exist only for verified artifacts.
type CatalogEntry struct {
	AdID       string
	AdName     string
	Brand      string
	Status     string
	CreativeID string

	MediaKind      MediaKind
	CreativeType   string
	CampaignSeason string
	HookCategory   string
	QualityTier    string

	StoragePath string
	PublicURL   string
	ViewURL     string
	PreviewURL  string
	BytesLen    int
	Slug        string

	IndexedAt time.Time
}
