package meta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"creative_catalog/internal/domain"
)

const (
	listFields = "id,name,status,creative"

	// One call per ad pulls every creative field layout the resolver
	// knows how to read.
	creativeFields = "creative{id,name,image_url,thumbnail_url,video_id," +
		"object_story_spec{link_data{picture,image_url},video_data{image_url}}," +
		"asset_feed_spec{images{url}}}"

	videoFields = "picture,thumbnails"
)

// Config holds Graph API source configuration.
type Config struct {
	BaseURL        string
	AccessToken    string
	PageSize       int
	Timeout        time.Duration
	MediaTimeout   time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source lists ads and resolves creatives against the Meta Graph API.
type Source struct {
	httpClient  *http.Client
	mediaClient *http.Client

	baseURL     string
	accessToken string
	pageSize    int

	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration

	// cdnHosts gates the high-quality rewrite in Download.
	cdnHosts []string

	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		mediaClient:    &http.Client{Timeout: cfg.MediaTimeout},
		baseURL:        cfg.BaseURL,
		accessToken:    cfg.AccessToken,
		pageSize:       cfg.PageSize,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		cdnHosts:       defaultCDNHosts,
		logger:         logger.With("source", "meta"),
	}
}

// ListAds pages through the account's ad listing in upstream order.
// Pagination always restarts from the first page; no cursor survives
// the call.
func (s *Source) ListAds(ctx context.Context, account domain.Account) ([]domain.Ad, error) {
	params := url.Values{}
	params.Set("access_token", s.accessToken)
	params.Set("fields", listFields)
	params.Set("limit", fmt.Sprintf("%d", s.pageSize))

	next := fmt.Sprintf("%s/%s/ads?%s", s.baseURL, account.ID, params.Encode())

	var ads []domain.Ad
	for page := 0; next != ""; page++ {
		var resp adsPage
		if err := s.getJSON(ctx, next, &resp); err != nil {
			return nil, fmt.Errorf("list ads page %d for %s: %w", page, account.ID, err)
		}

		for _, rec := range resp.Data {
			ad := domain.Ad{
				ID:      rec.ID,
				Name:    rec.Name,
				Status:  rec.Status,
				Account: account,
			}
			if rec.Creative != nil {
				ad.CreativeID = rec.Creative.ID
			}
			ads = append(ads, ad)
		}

		s.logger.Debug("fetched ad page",
			"account", account.ID,
			"page", page,
			"ads", len(resp.Data),
			"total", len(ads),
		)

		next = resp.Paging.Next
	}

	return ads, nil
}

// ResolveMedia fetches the ad's creative record and walks the field
// layouts in fixed priority order, stopping at the first non-empty
// URL. Returns domain.ErrNoMedia when every layout comes up empty.
func (s *Source) ResolveMedia(ctx context.Context, ad domain.Ad) (*domain.ResolvedMedia, error) {
	detailURL := fmt.Sprintf("%s/%s?fields=%s&access_token=%s",
		s.baseURL, ad.ID, url.QueryEscape(creativeFields), url.QueryEscape(s.accessToken))

	var detail adDetail
	if err := s.getJSON(ctx, detailURL, &detail); err != nil {
		return nil, fmt.Errorf("fetch creative for ad %s: %w", ad.ID, err)
	}

	creative := detail.Creative
	if creative == nil {
		return nil, domain.ErrNoMedia
	}

	if u := imageCandidate(creative); u != "" {
		return &domain.ResolvedMedia{
			Kind:      domain.MediaKindImage,
			SourceURL: u,
			Extension: extensionFor(u),
		}, nil
	}

	if creative.VideoID != "" {
		videoURL := fmt.Sprintf("%s/%s?fields=%s&access_token=%s",
			s.baseURL, creative.VideoID, videoFields, url.QueryEscape(s.accessToken))

		var video videoRecord
		if err := s.getJSON(ctx, videoURL, &video); err != nil {
			return nil, fmt.Errorf("fetch video %s for ad %s: %w", creative.VideoID, ad.ID, err)
		}
		if video.Picture != "" {
			return &domain.ResolvedMedia{
				Kind:      domain.MediaKindVideoThumbnail,
				SourceURL: video.Picture,
				Extension: extensionFor(video.Picture),
			}, nil
		}
	}

	return nil, domain.ErrNoMedia
}

// imageCandidate applies resolution priorities 1-5; priority 6 (video
// thumbnail) needs another API call and lives in ResolveMedia.
func imageCandidate(c *creativeRecord) string {
	if c.ImageURL != "" {
		return c.ImageURL
	}
	if c.ThumbnailURL != "" {
		return c.ThumbnailURL
	}
	if spec := c.ObjectStorySpec; spec != nil {
		if spec.LinkData != nil {
			if spec.LinkData.Picture != "" {
				return spec.LinkData.Picture
			}
			if spec.LinkData.ImageURL != "" {
				return spec.LinkData.ImageURL
			}
		}
		if spec.VideoData != nil && spec.VideoData.ImageURL != "" {
			return spec.VideoData.ImageURL
		}
	}
	if c.AssetFeedSpec != nil && len(c.AssetFeedSpec.Images) > 0 {
		if u := c.AssetFeedSpec.Images[0].URL; u != "" {
			return u
		}
	}
	return ""
}

// Download fetches the media bytes. It first probes a high-quality
// variant of CDN URLs with a HEAD request and falls back to the
// original exactly once.
func (s *Source) Download(ctx context.Context, media *domain.ResolvedMedia) ([]byte, error) {
	target := media.SourceURL
	if hq := highQualityURL(media.SourceURL, s.cdnHosts); hq != media.SourceURL {
		if s.headOK(ctx, hq) {
			target = hq
		} else {
			s.logger.Debug("high-quality variant rejected, using original", "url", media.SourceURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}
	req.Header.Set("User-Agent", "CreativeCatalog/1.0")

	resp, err := s.mediaClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download media: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read media body: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("download media: empty body")
	}
	return body, nil
}

func (s *Source) headOK(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := s.mediaClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// getJSON performs a GET with retries for transient upstream failures.
// 401/403 (and Graph error code 190, the expired-token signal) abort
// with a domain.AuthError; other 4xx responses are permanent.
func (s *Source) getJSON(ctx context.Context, rawURL string, v any) error {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		retryable, err := s.doJSON(ctx, rawURL, v)
		if err == nil {
			return nil
		}
		if !retryable {
			return err
		}
		lastErr = err

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("after %d attempts: %w", s.maxAttempts, lastErr)
}

func (s *Source) doJSON(ctx context.Context, rawURL string, v any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CreativeCatalog/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(body, v); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
		return false, nil
	}

	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		apiErr.Error.Code == 190:
		return false, &domain.AuthError{Status: resp.StatusCode, Message: apiErr.Error.Message}
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return true, fmt.Errorf("transient upstream status %d: %s", resp.StatusCode, apiErr.Error.Message)
	default:
		return false, fmt.Errorf("upstream status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

// IsAuthError reports whether err carries a fatal upstream auth failure.
func IsAuthError(err error) bool {
	var authErr *domain.AuthError
	return errors.As(err, &authErr)
}
