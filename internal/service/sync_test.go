package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"creative_catalog/internal/domain"
	"creative_catalog/internal/service/mocks"
)

const testLibraryBase = "https://www.facebook.com/ads/library/"

type SyncServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	source  *mocks.MockAdSource
	store   *mocks.MockArtifactStore
	sink    *mocks.MockProjectionSink
	events  *mocks.MockEventPublisher
	history *mocks.MockRunHistory

	service  *SyncService
	accounts []domain.Account
	logger   *slog.Logger
}

func (s *SyncServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.source = mocks.NewMockAdSource(s.ctrl)
	s.store = mocks.NewMockArtifactStore(s.ctrl)
	s.sink = mocks.NewMockProjectionSink(s.ctrl)
	s.events = mocks.NewMockEventPublisher(s.ctrl)
	s.history = mocks.NewMockRunHistory(s.ctrl)

	s.accounts = []domain.Account{
		{ID: "act_1", Brand: "acme"},
	}

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewSyncService(
		s.source,
		s.store,
		s.sink,
		s.events,
		s.history,
		s.accounts,
		testLibraryBase,
		s.logger,
	)
}

func (s *SyncServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}

func (s *SyncServiceTestSuite) ad(id, name string) domain.Ad {
	return domain.Ad{
		ID:         id,
		Name:       name,
		Status:     "ACTIVE",
		Account:    s.accounts[0],
		CreativeID: "cr_" + id,
	}
}

func (s *SyncServiceTestSuite) TestRun_ImageAdIndexed() {
	ctx := context.Background()
	ad := s.ad("AD1", "image: Holiday 1 / Gift")
	media := &domain.ResolvedMedia{
		Kind:      domain.MediaKindImage,
		SourceURL: "https://scontent.example/img.jpg",
		Extension: "jpg",
	}
	artifact := &domain.PublishedArtifact{
		StoragePath: "acme/AD1_image_Holiday_1___Gift.jpg",
		PublicURL:   "https://raw.githubusercontent.com/o/r/main/acme/AD1_image_Holiday_1___Gift.jpg",
		ViewURL:     "https://github.com/o/r/blob/main/acme/AD1_image_Holiday_1___Gift.jpg",
		BytesLen:    180_000,
	}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{ad}, nil)
	s.source.EXPECT().ResolveMedia(ctx, ad).Return(media, nil)
	s.source.EXPECT().Download(ctx, media).Return(make([]byte, 180_000), nil)
	s.store.EXPECT().Publish(ctx, ad, gomock.Any(), "jpg").Return(artifact, nil)

	s.events.EXPECT().Publish(ctx, gomock.Any(), true).DoAndReturn(
		func(_ context.Context, entry *domain.CatalogEntry, _ bool) error {
			s.Equal("AD1", entry.AdID)
			s.Equal("high", entry.QualityTier)
			s.Equal("image", entry.CreativeType)
			s.Equal(testLibraryBase+"?id=AD1", entry.PreviewURL)
			return nil
		},
	)

	s.sink.EXPECT().Reconcile(ctx, gomock.Len(1), gomock.Any(), false).Return(
		&domain.ProjectionStats{Inserted: 1}, nil,
	)
	s.history.EXPECT().RecordRun(ctx, gomock.Any(), map[string]int{"acme": 1}).Return(nil)

	report, err := s.service.Run(ctx, false)

	s.NoError(err)
	s.Equal(1, report.Indexed)
	s.Equal(1, report.Inserted)
	s.False(report.HasFailures())
}

func (s *SyncServiceTestSuite) TestRun_VideoThumbnailIndexed() {
	ctx := context.Background()
	ad := s.ad("AD2", "video: BF Teaser")
	media := &domain.ResolvedMedia{
		Kind:      domain.MediaKindVideoThumbnail,
		SourceURL: "https://scontent.example/thumb.jpg",
		Extension: "jpg",
	}
	artifact := &domain.PublishedArtifact{
		StoragePath: "acme/AD2_video_BF_Teaser.jpg",
		PublicURL:   "https://raw.githubusercontent.com/o/r/main/acme/AD2_video_BF_Teaser.jpg",
		BytesLen:    90_000,
	}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{ad}, nil)
	s.source.EXPECT().ResolveMedia(ctx, ad).Return(media, nil)
	s.source.EXPECT().Download(ctx, media).Return(make([]byte, 90_000), nil)
	s.store.EXPECT().Publish(ctx, ad, gomock.Any(), "jpg").Return(artifact, nil)

	s.events.EXPECT().Publish(ctx, gomock.Any(), true).DoAndReturn(
		func(_ context.Context, entry *domain.CatalogEntry, _ bool) error {
			s.Equal(domain.MediaKindVideoThumbnail, entry.MediaKind)
			s.Equal("video", entry.CreativeType)
			s.Equal("black_friday", entry.CampaignSeason)
			s.Equal("standard", entry.QualityTier)
			return nil
		},
	)

	s.sink.EXPECT().Reconcile(ctx, gomock.Len(1), gomock.Any(), false).Return(
		&domain.ProjectionStats{Inserted: 1}, nil,
	)
	s.history.EXPECT().RecordRun(ctx, gomock.Any(), gomock.Any()).Return(nil)

	report, err := s.service.Run(ctx, false)

	s.NoError(err)
	s.Equal(1, report.Indexed)
	s.False(report.HasFailures())
}

func (s *SyncServiceTestSuite) TestRun_ResolveFailureContinues() {
	ctx := context.Background()
	bad := s.ad("AD3", "no media here")
	good := s.ad("AD4", "image: Plain")
	media := &domain.ResolvedMedia{Kind: domain.MediaKindImage, SourceURL: "u", Extension: "jpg"}
	artifact := &domain.PublishedArtifact{StoragePath: "acme/AD4_image_Plain.jpg", BytesLen: 10}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{bad, good}, nil)
	s.source.EXPECT().ResolveMedia(ctx, bad).Return(nil, domain.ErrNoMedia)
	s.source.EXPECT().ResolveMedia(ctx, good).Return(media, nil)
	s.source.EXPECT().Download(ctx, media).Return([]byte("0123456789"), nil)
	s.store.EXPECT().Publish(ctx, good, gomock.Any(), "jpg").Return(artifact, nil)
	s.events.EXPECT().Publish(ctx, gomock.Any(), true).Return(nil)

	s.sink.EXPECT().Reconcile(ctx, gomock.Len(1), gomock.Any(), false).Return(
		&domain.ProjectionStats{Inserted: 1}, nil,
	)
	s.history.EXPECT().RecordRun(ctx, gomock.Any(), gomock.Any()).Return(nil)

	report, err := s.service.Run(ctx, false)

	s.NoError(err)
	s.Equal(1, report.Indexed)
	s.Equal(1, report.FailedResolve)
	s.True(report.HasFailures())
	s.Require().Len(report.Failures, 1)
	s.Equal("AD3", report.Failures[0].AdID)
	s.Equal(domain.FailResolve, report.Failures[0].Kind)
}

func (s *SyncServiceTestSuite) TestRun_DownloadFailureRecorded() {
	ctx := context.Background()
	ad := s.ad("AD5", "image: Broken")
	media := &domain.ResolvedMedia{Kind: domain.MediaKindImage, SourceURL: "u", Extension: "jpg"}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{ad}, nil)
	s.source.EXPECT().ResolveMedia(ctx, ad).Return(media, nil)
	s.source.EXPECT().Download(ctx, media).Return(nil, errors.New("status 500"))

	s.sink.EXPECT().Reconcile(ctx, gomock.Len(0), gomock.Any(), false).Return(
		&domain.ProjectionStats{}, nil,
	)
	s.history.EXPECT().RecordRun(ctx, gomock.Any(), gomock.Any()).Return(nil)

	report, err := s.service.Run(ctx, false)

	s.NoError(err)
	s.Equal(0, report.Indexed)
	s.Equal(1, report.FailedDownload)
	s.True(report.HasFailures())
}

func (s *SyncServiceTestSuite) TestRun_PublishFailureRecorded() {
	ctx := context.Background()
	ad := s.ad("AD6", "image: Pushless")
	media := &domain.ResolvedMedia{Kind: domain.MediaKindImage, SourceURL: "u", Extension: "jpg"}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{ad}, nil)
	s.source.EXPECT().ResolveMedia(ctx, ad).Return(media, nil)
	s.source.EXPECT().Download(ctx, media).Return([]byte("body"), nil)
	s.store.EXPECT().Publish(ctx, ad, gomock.Any(), "jpg").Return(nil, errors.New("push rejected"))

	s.sink.EXPECT().Reconcile(ctx, gomock.Len(0), gomock.Any(), false).Return(
		&domain.ProjectionStats{}, nil,
	)
	s.history.EXPECT().RecordRun(ctx, gomock.Any(), gomock.Any()).Return(nil)

	report, err := s.service.Run(ctx, false)

	s.NoError(err)
	s.Equal(1, report.FailedPublish)
	s.True(report.HasFailures())
}

func (s *SyncServiceTestSuite) TestRun_AuthErrorIsFatal() {
	ctx := context.Background()
	authErr := &domain.AuthError{Status: 401, Message: "Invalid OAuth access token"}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return(nil, authErr)

	report, err := s.service.Run(ctx, false)

	s.Error(err)
	var got *domain.AuthError
	s.ErrorAs(err, &got)
	s.Equal(0, report.Indexed)
}

func (s *SyncServiceTestSuite) TestRun_AuthErrorDuringResolveIsFatal() {
	ctx := context.Background()
	ad := s.ad("AD7", "image: Expired token")
	authErr := &domain.AuthError{Status: 400, Message: "Error validating access token"}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{ad}, nil)
	s.source.EXPECT().ResolveMedia(ctx, ad).Return(nil, authErr)

	_, err := s.service.Run(ctx, false)

	var got *domain.AuthError
	s.ErrorAs(err, &got)
}

func (s *SyncServiceTestSuite) TestRun_ListFailureSkipsAccount() {
	ctx := context.Background()

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return(nil, errors.New("status 500"))

	s.sink.EXPECT().Reconcile(ctx, gomock.Len(0), gomock.Any(), false).Return(
		&domain.ProjectionStats{}, nil,
	)
	s.history.EXPECT().RecordRun(ctx, gomock.Any(), gomock.Any()).Return(nil)

	report, err := s.service.Run(ctx, false)

	s.NoError(err)
	s.Equal(1, report.FailedList)
	s.True(report.HasFailures())
}

func (s *SyncServiceTestSuite) TestRun_ReconcileErrorCountsEntries() {
	ctx := context.Background()
	ad := s.ad("AD8", "image: Orphanless")
	media := &domain.ResolvedMedia{Kind: domain.MediaKindImage, SourceURL: "u", Extension: "jpg"}
	artifact := &domain.PublishedArtifact{StoragePath: "acme/AD8_image_Orphanless.jpg", BytesLen: 10}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{ad}, nil)
	s.source.EXPECT().ResolveMedia(ctx, ad).Return(media, nil)
	s.source.EXPECT().Download(ctx, media).Return([]byte("0123456789"), nil)
	s.store.EXPECT().Publish(ctx, ad, gomock.Any(), "jpg").Return(artifact, nil)
	s.events.EXPECT().Publish(ctx, gomock.Any(), true).Return(nil)

	s.sink.EXPECT().Reconcile(ctx, gomock.Len(1), gomock.Any(), true).Return(
		nil, errors.New("list records: status 500"),
	)
	s.history.EXPECT().RecordRun(ctx, gomock.Any(), gomock.Any()).Return(nil)

	report, err := s.service.Run(ctx, true)

	s.NoError(err)
	s.Equal(1, report.Indexed)
	s.Equal(1, report.FailedProject)
	s.True(report.HasFailures())
}

func (s *SyncServiceTestSuite) TestRun_EventFailureDoesNotFailAd() {
	ctx := context.Background()
	ad := s.ad("AD9", "image: Quiet")
	media := &domain.ResolvedMedia{Kind: domain.MediaKindImage, SourceURL: "u", Extension: "jpg"}
	artifact := &domain.PublishedArtifact{StoragePath: "acme/AD9_image_Quiet.jpg", BytesLen: 10}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{ad}, nil)
	s.source.EXPECT().ResolveMedia(ctx, ad).Return(media, nil)
	s.source.EXPECT().Download(ctx, media).Return([]byte("0123456789"), nil)
	s.store.EXPECT().Publish(ctx, ad, gomock.Any(), "jpg").Return(artifact, nil)
	s.events.EXPECT().Publish(ctx, gomock.Any(), true).Return(errors.New("channel closed"))

	s.sink.EXPECT().Reconcile(ctx, gomock.Len(1), gomock.Any(), false).Return(
		&domain.ProjectionStats{Inserted: 1}, nil,
	)
	s.history.EXPECT().RecordRun(ctx, gomock.Any(), gomock.Any()).Return(nil)

	report, err := s.service.Run(ctx, false)

	s.NoError(err)
	s.Equal(1, report.Indexed)
	s.False(report.HasFailures())
}

func (s *SyncServiceTestSuite) TestRun_DuplicateAdIDCollapses() {
	ctx := context.Background()
	first := s.ad("AD10", "image: First")
	second := s.ad("AD10", "image: Second")
	media := &domain.ResolvedMedia{Kind: domain.MediaKindImage, SourceURL: "u", Extension: "jpg"}
	artifact := &domain.PublishedArtifact{StoragePath: "p", BytesLen: 10}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{first, second}, nil)
	s.source.EXPECT().ResolveMedia(ctx, gomock.Any()).Return(media, nil).Times(2)
	s.source.EXPECT().Download(ctx, media).Return([]byte("0123456789"), nil).Times(2)
	s.store.EXPECT().Publish(ctx, gomock.Any(), gomock.Any(), "jpg").Return(artifact, nil).Times(2)
	s.events.EXPECT().Publish(ctx, gomock.Any(), true).Return(nil)
	s.events.EXPECT().Publish(ctx, gomock.Any(), false).Return(nil)

	s.sink.EXPECT().Reconcile(ctx, gomock.Len(1), gomock.Any(), false).DoAndReturn(
		func(_ context.Context, entries []domain.CatalogEntry, _ any, _ bool) (*domain.ProjectionStats, error) {
			s.Equal("image: Second", entries[0].AdName)
			return &domain.ProjectionStats{Inserted: 1}, nil
		},
	)
	s.history.EXPECT().RecordRun(ctx, gomock.Any(), map[string]int{"acme": 1}).Return(nil)

	report, err := s.service.Run(ctx, false)

	s.NoError(err)
	s.Equal(1, report.Indexed)
}

func (s *SyncServiceTestSuite) TestRun_NilEventsAndHistory() {
	ctx := context.Background()
	svc := NewSyncService(s.source, s.store, s.sink, nil, nil, s.accounts, testLibraryBase, s.logger)

	ad := s.ad("AD11", "image: Minimal wiring")
	media := &domain.ResolvedMedia{Kind: domain.MediaKindImage, SourceURL: "u", Extension: "jpg"}
	artifact := &domain.PublishedArtifact{StoragePath: "p", BytesLen: 10}

	s.source.EXPECT().ListAds(ctx, s.accounts[0]).Return([]domain.Ad{ad}, nil)
	s.source.EXPECT().ResolveMedia(ctx, ad).Return(media, nil)
	s.source.EXPECT().Download(ctx, media).Return([]byte("0123456789"), nil)
	s.store.EXPECT().Publish(ctx, ad, gomock.Any(), "jpg").Return(artifact, nil)
	s.sink.EXPECT().Reconcile(ctx, gomock.Len(1), gomock.Any(), false).Return(
		&domain.ProjectionStats{Inserted: 1}, nil,
	)

	report, err := svc.Run(ctx, false)

	s.NoError(err)
	s.Equal(1, report.Indexed)
}

func (s *SyncServiceTestSuite) TestRun_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.service.Run(ctx, false)

	s.ErrorIs(err, context.Canceled)
	s.Equal(0, report.Indexed)
}
