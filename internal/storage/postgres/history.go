package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"creative_catalog/internal/domain"
)

// History combines the run report store and the per-brand sync state
// store behind the single hook the sync service calls at end of run.
type History struct {
	runs  *RunStore
	state *SyncStateStore
}

func NewHistory(db *sqlx.DB) *History {
	return &History{
		runs:  NewRunStore(db),
		state: NewSyncStateStore(db),
	}
}

// RecordRun persists the report and advances sync state for every brand
// that indexed at least one new entry.
func (h *History) RecordRun(ctx context.Context, report *domain.RunReport, brandIndexed map[string]int) error {
	if err := h.runs.Record(ctx, report); err != nil {
		return err
	}

	for brand, indexed := range brandIndexed {
		state, err := h.state.Get(ctx, brand)
		if err != nil {
			return fmt.Errorf("load sync state for %s: %w", brand, err)
		}
		state.LastSyncedAt = report.StartedAt
		state.LastRunID = report.RunID
		state.TotalIndexed += int64(indexed)
		if err := h.state.Update(ctx, state); err != nil {
			return fmt.Errorf("update sync state for %s: %w", brand, err)
		}
	}
	return nil
}
