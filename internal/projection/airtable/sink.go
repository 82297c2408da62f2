package airtable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"creative_catalog/internal/domain"
)

// Sink makes the Airtable table equal to the catalog index. Rows are
// keyed by the ad_id column and only by it. The sink never deletes
// rows.
type Sink struct {
	client *client
	logger *slog.Logger

	// degraded flips once per run on the first unknown-field error and
	// stays on for every later write of the run.
	degraded bool

	// writes counts write batches within the current reconciliation so
	// the rate pause applies between consecutive writes regardless of
	// which phase they belong to.
	writes int
}

func NewSink(cfg Config, logger *slog.Logger) *Sink {
	l := logger.With("projection", cfg.BaseID+"/"+cfg.TableID)
	return &Sink{
		client: newClient(cfg, l),
		logger: l,
	}
}

type row struct {
	entry    domain.CatalogEntry
	recordID string
}

// Reconcile upserts every catalog entry and, when prune is set, clears
// the URL columns of orphan rows. A listing failure fails the whole
// reconciliation; batch failures are counted and skipped.
func (s *Sink) Reconcile(ctx context.Context, entries []domain.CatalogEntry, runStarted time.Time, prune bool) (*domain.ProjectionStats, error) {
	s.writes = 0

	existing, err := s.client.listRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projection: %w", err)
	}

	byAdID := make(map[string]string, len(existing))
	for _, r := range existing {
		if id, ok := r.Fields["ad_id"].(string); ok && id != "" {
			byAdID[id] = r.ID
		}
	}

	indexed := make(map[string]bool, len(entries))
	var creates, updates []row
	for _, e := range entries {
		indexed[e.AdID] = true
		if rid, ok := byAdID[e.AdID]; ok {
			updates = append(updates, row{entry: e, recordID: rid})
		} else {
			creates = append(creates, row{entry: e})
		}
	}

	stats := &domain.ProjectionStats{}

	if err := s.flush(ctx, creates, true, runStarted, stats); err != nil {
		return stats, err
	}
	if err := s.flush(ctx, updates, false, runStarted, stats); err != nil {
		return stats, err
	}

	if prune {
		if err := s.pruneOrphans(ctx, existing, indexed, runStarted, stats); err != nil {
			return stats, err
		}
	}

	stats.Degraded = s.degraded

	s.logger.Info("projection reconciled",
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"pruned", stats.Pruned,
		"failed_rows", stats.FailedRows,
		"degraded", stats.Degraded,
	)

	return stats, nil
}

func (s *Sink) flush(ctx context.Context, rows []row, create bool, runStarted time.Time, stats *domain.ProjectionStats) error {
	size := s.client.cfg.BatchSize

	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		if err := s.throttle(ctx); err != nil {
			return err
		}

		err := s.writeBatch(ctx, batch, create, runStarted)
		if errors.Is(err, errUnknownField) && !s.degraded {
			s.degrade(err)
			err = s.writeBatch(ctx, batch, create, runStarted)
		}

		if err != nil {
			stats.FailedRows += len(batch)
			s.logger.Error("projection batch failed",
				"create", create,
				"rows", len(batch),
				"error", err,
			)
			continue
		}

		if create {
			stats.Inserted += len(batch)
		} else {
			stats.Updated += len(batch)
		}
	}

	return nil
}

func (s *Sink) writeBatch(ctx context.Context, batch []row, create bool, runStarted time.Time) error {
	recs := make([]record, 0, len(batch))
	for _, r := range batch {
		fields := fullFields(r.entry, runStarted)
		if s.degraded {
			fields = minimalFields(r.entry, runStarted)
		}
		recs = append(recs, record{ID: r.recordID, Fields: fields})
	}

	if create {
		return s.client.createRecords(ctx, recs)
	}
	return s.client.updateRecords(ctx, recs)
}

// pruneOrphans clears URL columns on rows whose ad_id vanished from
// the index and stamps the note with the run timestamp. Rows without
// an ad_id are left untouched.
func (s *Sink) pruneOrphans(ctx context.Context, existing []record, indexed map[string]bool, runStarted time.Time, stats *domain.ProjectionStats) error {
	var orphans []string
	for _, r := range existing {
		id, ok := r.Fields["ad_id"].(string)
		if !ok || id == "" || indexed[id] {
			continue
		}
		orphans = append(orphans, r.ID)
	}

	size := s.client.cfg.BatchSize
	for start := 0; start < len(orphans); start += size {
		end := start + size
		if end > len(orphans) {
			end = len(orphans)
		}
		batch := orphans[start:end]

		if err := s.throttle(ctx); err != nil {
			return err
		}

		err := s.clearBatch(ctx, batch, runStarted)
		if errors.Is(err, errUnknownField) && !s.degraded {
			s.degrade(err)
			err = s.clearBatch(ctx, batch, runStarted)
		}

		if err != nil {
			stats.FailedRows += len(batch)
			s.logger.Error("orphan batch failed", "rows", len(batch), "error", err)
			continue
		}
		stats.Pruned += len(batch)
	}

	return nil
}

func (s *Sink) clearBatch(ctx context.Context, recordIDs []string, runStarted time.Time) error {
	fields := orphanFields(runStarted)
	if s.degraded {
		fields = orphanFieldsMinimal(runStarted)
	}

	recs := make([]record, 0, len(recordIDs))
	for _, id := range recordIDs {
		recs = append(recs, record{ID: id, Fields: fields})
	}
	return s.client.updateRecords(ctx, recs)
}

func (s *Sink) degrade(err error) {
	s.degraded = true
	s.logger.Warn("schema drift: degrading to minimal projection for the rest of the run", "error", err)
}

// throttle spaces consecutive write batches; the first write of a
// reconciliation goes out immediately.
func (s *Sink) throttle(ctx context.Context) error {
	s.writes++
	if s.writes == 1 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.client.cfg.BatchDelay):
		return nil
	}
}
