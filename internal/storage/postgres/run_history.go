package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"creative_catalog/internal/domain"
)

// RunStore persists run reports for operational history. The pipeline
// works without it; it only exists when a database is configured.
type RunStore struct {
	db *sqlx.DB
}

func NewRunStore(db *sqlx.DB) *RunStore {
	return &RunStore{db: db}
}

// Record writes the run row and its per-ad failures atomically.
func (s *RunStore) Record(ctx context.Context, report *domain.RunReport) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run record: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			run_id, started_at, duration_ms, indexed,
			failed_list, failed_resolve, failed_download, failed_publish, failed_project,
			inserted, updated, pruned, degraded
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		report.RunID,
		report.StartedAt,
		report.Duration.Milliseconds(),
		report.Indexed,
		report.FailedList,
		report.FailedResolve,
		report.FailedDownload,
		report.FailedPublish,
		report.FailedProject,
		report.Inserted,
		report.Updated,
		report.Pruned,
		report.Degraded,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, f := range report.Failures {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_failures (run_id, ad_id, ad_name, brand, kind, detail)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			report.RunID, f.AdID, f.AdName, f.Brand, string(f.Kind), f.Detail,
		)
		if err != nil {
			return fmt.Errorf("insert run failure: %w", err)
		}
	}

	return tx.Commit()
}

// LastRuns returns the most recent run rows, newest first.
func (s *RunStore) LastRuns(ctx context.Context, limit int) ([]RunRow, error) {
	var rows []RunRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT run_id, started_at, duration_ms, indexed,
		       failed_list, failed_resolve, failed_download, failed_publish, failed_project,
		       inserted, updated, pruned, degraded
		FROM runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	return rows, err
}

// RunRow mirrors one row of the runs table.
type RunRow struct {
	RunID          string    `db:"run_id"`
	StartedAt      time.Time `db:"started_at"`
	DurationMs     int64     `db:"duration_ms"`
	Indexed        int       `db:"indexed"`
	FailedList     int       `db:"failed_list"`
	FailedResolve  int       `db:"failed_resolve"`
	FailedDownload int       `db:"failed_download"`
	FailedPublish  int       `db:"failed_publish"`
	FailedProject  int       `db:"failed_project"`
	Inserted       int       `db:"inserted"`
	Updated        int       `db:"updated"`
	Pruned         int       `db:"pruned"`
	Degraded       bool      `db:"degraded"`
}
