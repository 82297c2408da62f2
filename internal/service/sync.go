package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"creative_catalog/internal/catalog"
	"creative_catalog/internal/domain"
)

// SyncService drives one full catalog run: list, resolve, download,
// publish, index, then reconcile the projection.
type SyncService struct {
	source  AdSource
	store   ArtifactStore
	sink    ProjectionSink
	events  EventPublisher
	history RunHistory

	accounts    []domain.Account
	libraryBase string
	logger      *slog.Logger
}

func NewSyncService(
	source AdSource,
	store ArtifactStore,
	sink ProjectionSink,
	events EventPublisher,
	history RunHistory,
	accounts []domain.Account,
	libraryBase string,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		source:      source,
		store:       store,
		sink:        sink,
		events:      events,
		history:     history,
		accounts:    accounts,
		libraryBase: libraryBase,
		logger:      logger,
	}
}

// Run executes one sync. Only configuration-grade failures (context
// cancellation, upstream auth rejection) return an error; everything
// else lands on the report.
func (s *SyncService) Run(ctx context.Context, prune bool) (*domain.RunReport, error) {
	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	index := catalog.NewIndex()
	brandIndexed := make(map[string]int)

	s.logger.Info("starting sync",
		"run_id", report.RunID,
		"accounts", len(s.accounts),
		"prune", prune,
	)

	for _, account := range s.accounts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		ads, err := s.source.ListAds(ctx, account)
		if err != nil {
			var authErr *domain.AuthError
			if errors.As(err, &authErr) {
				return report, err
			}
			report.Fail(domain.AdFailure{
				AdID:   account.ID,
				Brand:  account.Brand,
				Kind:   domain.FailList,
				Detail: err.Error(),
			})
			s.logger.Error("account listing failed", "account", account.ID, "error", err)
			continue
		}

		s.logger.Info("listed ads", "account", account.ID, "brand", account.Brand, "ads", len(ads))

		for i := range ads {
			// Interrupts take effect between ad boundaries.
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if err := s.processAd(ctx, ads[i], index, brandIndexed, report); err != nil {
				return report, err
			}
		}
	}

	report.Indexed = index.Len()

	stats, err := s.sink.Reconcile(ctx, index.Entries(), report.StartedAt, prune)
	if err != nil {
		report.FailedProject += index.Len()
		s.logger.Error("projection reconcile failed", "error", err)
	}
	if stats != nil {
		report.Inserted = stats.Inserted
		report.Updated = stats.Updated
		report.Pruned = stats.Pruned
		report.Degraded = stats.Degraded
		report.FailedProject += stats.FailedRows
	}

	report.Duration = time.Since(report.StartedAt)

	if s.history != nil {
		if err := s.history.RecordRun(ctx, report, brandIndexed); err != nil {
			s.logger.Warn("run history write failed", "error", err)
		}
	}

	s.summarize(report)
	return report, nil
}

// processAd walks one ad through resolve, download, publish, index.
// Each step's failure is terminal for the ad and recorded; only a
// fatal auth error propagates.
func (s *SyncService) processAd(ctx context.Context, ad domain.Ad, index *catalog.Index, brandIndexed map[string]int, report *domain.RunReport) error {
	media, err := s.source.ResolveMedia(ctx, ad)
	if err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			return err
		}
		report.Fail(failure(ad, domain.FailResolve, err))
		return nil
	}

	body, err := s.source.Download(ctx, media)
	if err != nil {
		report.Fail(failure(ad, domain.FailDownload, err))
		return nil
	}

	artifact, err := s.store.Publish(ctx, ad, body, media.Extension)
	if err != nil {
		report.Fail(failure(ad, domain.FailPublish, err))
		return nil
	}

	entry := catalog.BuildEntry(ad, media, artifact, s.libraryBase, time.Now().UTC())
	isNew := index.Put(entry)
	if isNew {
		brandIndexed[ad.Account.Brand]++
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, &entry, isNew); err != nil {
			// The entry is already indexed; events are best-effort.
			s.logger.Warn("catalog event publish failed", "ad_id", ad.ID, "error", err)
		}
	}

	s.logger.Info("indexed ad",
		"ad_id", ad.ID,
		"brand", ad.Account.Brand,
		"path", entry.StoragePath,
		"media_kind", entry.MediaKind,
		"quality_tier", entry.QualityTier,
	)
	return nil
}

func failure(ad domain.Ad, kind domain.FailureKind, err error) domain.AdFailure {
	return domain.AdFailure{
		AdID:   ad.ID,
		AdName: ad.Name,
		Brand:  ad.Account.Brand,
		Kind:   kind,
		Detail: err.Error(),
	}
}

func (s *SyncService) summarize(report *domain.RunReport) {
	for _, f := range report.Failures {
		s.logger.Error("ad failed",
			"ad_id", f.AdID,
			"brand", f.Brand,
			"kind", f.Kind,
			"detail", f.Detail,
		)
	}

	s.logger.Info("sync completed",
		"run_id", report.RunID,
		"indexed", report.Indexed,
		"failed_resolve", report.FailedResolve,
		"failed_download", report.FailedDownload,
		"failed_publish", report.FailedPublish,
		"failed_project", report.FailedProject,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"pruned", report.Pruned,
		"degraded", report.Degraded,
		"duration", report.Duration,
	)
}
