package domain

// Account is a Meta marketing account paired with the brand label used
// as the top-level directory in the artifact store.
type Account struct {
	ID    string `yaml:"id"`
	Brand string `yaml:"brand"`
}

// Ad is a single upstream ad. Ads reference exactly one creative.
type Ad struct {
	ID         string
	Name       string
	Status     string
	Account    Account
	CreativeID string
}

type MediaKind string

const (
	MediaKindImage          MediaKind = "image"
	MediaKindVideoThumbnail MediaKind = "video_thumbnail"
)

// ResolvedMedia is the one best downloadable reference chosen for a
// creative. Extension carries no leading dot.
type ResolvedMedia struct {
	Kind      MediaKind
	SourceURL string
	Extension string
}
