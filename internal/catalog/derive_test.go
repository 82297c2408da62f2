package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"creative_catalog/internal/domain"
)

func TestQualityTier(t *testing.T) {
	tests := []struct {
		bytesLen int
		want     string
	}{
		{0, "standard"},
		{100_000, "standard"},
		{100_001, "standard_high"},
		{150_000, "standard_high"},
		{150_001, "high"},
		{200_000, "high"},
		{200_001, "premium_hd"},
		{5_000_000, "premium_hd"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QualityTier(tt.bytesLen), "bytesLen=%d", tt.bytesLen)
	}
}

func TestCreativeType(t *testing.T) {
	assert.Equal(t, "video", CreativeType("video: BF Teaser"))
	assert.Equal(t, "video", CreativeType("VIDEO: shouted"))
	assert.Equal(t, "gif", CreativeType("gif: looping thing"))
	assert.Equal(t, "image", CreativeType("image: Holiday"))
	assert.Equal(t, "image", CreativeType("no prefix at all"))
	assert.Equal(t, "image", CreativeType("has video: later"))
}

func TestCampaignSeason(t *testing.T) {
	assert.Equal(t, "fathers_day", CampaignSeason("Fathers Day push"))
	assert.Equal(t, "fathers_day", CampaignSeason("FD hero"))
	assert.Equal(t, "black_friday", CampaignSeason("BF doorbuster"))
	assert.Equal(t, "black_friday", CampaignSeason("black friday teaser"))
	assert.Equal(t, "birthday", CampaignSeason("Birthday blast"))
	assert.Equal(t, "valentines_day", CampaignSeason("Valentine hearts"))
	assert.Equal(t, "valentines_day", CampaignSeason("v day special"))
	assert.Equal(t, "general", CampaignSeason("plain evergreen ad"))
}

func TestCampaignSeason_FirstRuleWins(t *testing.T) {
	// Contains both a fathers-day and a black-friday keyword.
	assert.Equal(t, "fathers_day", CampaignSeason("father bf combo"))
}

func TestHookCategory(t *testing.T) {
	assert.Equal(t, "influencer", HookCategory("influencer collab"))
	assert.Equal(t, "influencer", HookCategory("David takes over"))
	assert.Equal(t, "comparison", HookCategory("us vs them"))
	assert.Equal(t, "ugc", HookCategory("customer reaction"))
	assert.Equal(t, "ugc", HookCategory("honest review"))
	assert.Equal(t, "social_proof", HookCategory("mashup reel"))
	assert.Equal(t, "direct_hook", HookCategory("strong hook opener"))
	assert.Equal(t, "product_focus", HookCategory("just the product"))
}

func TestPreviewURL(t *testing.T) {
	got := PreviewURL("https://www.facebook.com/ads/library/", "AD1")
	assert.Equal(t, "https://www.facebook.com/ads/library/?id=AD1", got)
}

func TestBuildEntry(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ad := domain.Ad{
		ID:         "AD1",
		Name:       "video: BF influencer push",
		Status:     "ACTIVE",
		Account:    domain.Account{ID: "act_1", Brand: "acme"},
		CreativeID: "cr_1",
	}
	media := &domain.ResolvedMedia{
		Kind:      domain.MediaKindVideoThumbnail,
		SourceURL: "https://scontent.example/thumb.jpg",
		Extension: "jpg",
	}
	artifact := &domain.PublishedArtifact{
		StoragePath: "acme/AD1_video_BF_influencer_push.jpg",
		PublicURL:   "https://raw.githubusercontent.com/o/r/main/acme/AD1_video_BF_influencer_push.jpg",
		ViewURL:     "https://github.com/o/r/blob/main/acme/AD1_video_BF_influencer_push.jpg",
		BytesLen:    250_000,
	}

	entry := BuildEntry(ad, media, artifact, "https://www.facebook.com/ads/library/", now)

	assert.Equal(t, "AD1", entry.AdID)
	assert.Equal(t, "acme", entry.Brand)
	assert.Equal(t, "ACTIVE", entry.Status)
	assert.Equal(t, "cr_1", entry.CreativeID)
	assert.Equal(t, domain.MediaKindVideoThumbnail, entry.MediaKind)
	assert.Equal(t, "video", entry.CreativeType)
	assert.Equal(t, "black_friday", entry.CampaignSeason)
	assert.Equal(t, "influencer", entry.HookCategory)
	assert.Equal(t, "premium_hd", entry.QualityTier)
	assert.Equal(t, artifact.StoragePath, entry.StoragePath)
	assert.Equal(t, artifact.PublicURL, entry.PublicURL)
	assert.Equal(t, artifact.ViewURL, entry.ViewURL)
	assert.Equal(t, "https://www.facebook.com/ads/library/?id=AD1", entry.PreviewURL)
	assert.Equal(t, 250_000, entry.BytesLen)
	assert.Equal(t, "video_BF_influencer_push", entry.Slug)
	assert.Equal(t, now, entry.IndexedAt)
}
