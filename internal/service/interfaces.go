package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"creative_catalog/internal/domain"
)

// AdSource lists ads and turns creatives into downloadable media.
type AdSource interface {
	ListAds(ctx context.Context, account domain.Account) ([]domain.Ad, error)
	ResolveMedia(ctx context.Context, ad domain.Ad) (*domain.ResolvedMedia, error)
	Download(ctx context.Context, media *domain.ResolvedMedia) ([]byte, error)
}

// ArtifactStore publishes media bytes and hands back verified URLs.
type ArtifactStore interface {
	Publish(ctx context.Context, ad domain.Ad, body []byte, ext string) (*domain.PublishedArtifact, error)
	Exists(storagePath string) bool
}

// ProjectionSink reconciles the external table to the catalog index.
type ProjectionSink interface {
	Reconcile(ctx context.Context, entries []domain.CatalogEntry, runStarted time.Time, prune bool) (*domain.ProjectionStats, error)
}

// EventPublisher emits one event per indexed entry. Optional; a nil
// publisher is tolerated.
type EventPublisher interface {
	Publish(ctx context.Context, entry *domain.CatalogEntry, isNew bool) error
	Close() error
}

// RunHistory persists run reports and per-brand sync state. Optional.
type RunHistory interface {
	RecordRun(ctx context.Context, report *domain.RunReport, brandIndexed map[string]int) error
}
