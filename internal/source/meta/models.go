package meta

// Graph API response shapes. Only the fields the pipeline reads are
// declared; everything else in the payload is ignored.

type adsPage struct {
	Data   []adRecord `json:"data"`
	Paging paging     `json:"paging"`
}

type paging struct {
	Next string `json:"next"`
}

type adRecord struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Status   string       `json:"status"`
	Creative *creativeRef `json:"creative"`
}

type creativeRef struct {
	ID string `json:"id"`
}

type adDetail struct {
	ID       string          `json:"id"`
	Creative *creativeRecord `json:"creative"`
}

// creativeRecord is a union: any subset of these fields may be present
// depending on how the ad was built.
type creativeRecord struct {
	ID              string           `json:"id"`
	ImageURL        string           `json:"image_url"`
	ThumbnailURL    string           `json:"thumbnail_url"`
	VideoID         string           `json:"video_id"`
	ObjectStorySpec *objectStorySpec `json:"object_story_spec"`
	AssetFeedSpec   *assetFeedSpec   `json:"asset_feed_spec"`
}

type objectStorySpec struct {
	LinkData  *linkData  `json:"link_data"`
	VideoData *videoData `json:"video_data"`
}

type linkData struct {
	Picture  string `json:"picture"`
	ImageURL string `json:"image_url"`
}

type videoData struct {
	ImageURL string `json:"image_url"`
}

type assetFeedSpec struct {
	Images []assetImage `json:"images"`
}

type assetImage struct {
	URL string `json:"url"`
}

type videoRecord struct {
	ID      string `json:"id"`
	Picture string `json:"picture"`
}

type apiError struct {
	Error graphError `json:"error"`
}

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}
