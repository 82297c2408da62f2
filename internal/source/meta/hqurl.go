package meta

import (
	"net/url"
	"path"
	"strings"
)

// Size-constraining query parameters on fbcdn/scontent URLs. The oh/oe
// pair is the URL's access signature and must survive the rewrite.
var sizeParams = []string{"stp", "w", "h"}

// Hostname substrings that identify the Facebook media CDN.
var defaultCDNHosts = []string{"fbcdn.net", "scontent"}

// HighQualityURL strips the size-limiting parameters from a Facebook
// CDN URL. Non-CDN URLs and unparseable input come back unchanged.
func HighQualityURL(raw string) string {
	return highQualityURL(raw, defaultCDNHosts)
}

func highQualityURL(raw string, cdnHosts []string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if !hostMatches(u.Hostname(), cdnHosts) {
		return raw
	}

	q := u.Query()
	stripped := false
	for _, p := range sizeParams {
		if q.Has(p) {
			q.Del(p)
			stripped = true
		}
	}
	if !stripped {
		return raw
	}

	u.RawQuery = q.Encode()
	return u.String()
}

func hostMatches(host string, cdnHosts []string) bool {
	for _, h := range cdnHosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// extensionFor picks a file extension (no dot) from a media URL.
// Unknown or missing extensions default to jpg, matching what the CDN
// actually serves.
func extensionFor(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "jpg"
	}

	switch strings.ToLower(path.Ext(u.Path)) {
	case ".jpg", ".jpeg":
		return "jpg"
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	case ".mp4":
		return "mp4"
	case ".mov":
		return "mov"
	}

	// Extension hints only count in the path; query values carry opaque
	// tokens that can spell anything.
	if strings.Contains(strings.ToLower(u.Path), "png") {
		return "png"
	}
	return "jpg"
}
