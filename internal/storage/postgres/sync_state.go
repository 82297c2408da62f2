package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// BrandSyncState tracks when each brand was last synchronized and how
// many entries it has contributed over time.
type BrandSyncState struct {
	Brand        string    `db:"brand"`
	LastSyncedAt time.Time `db:"last_synced_at"`
	LastRunID    string    `db:"last_run_id"`
	TotalIndexed int64     `db:"total_indexed"`
}

type SyncStateStore struct {
	db *sqlx.DB
}

func NewSyncStateStore(db *sqlx.DB) *SyncStateStore {
	return &SyncStateStore{db: db}
}

func (s *SyncStateStore) Get(ctx context.Context, brand string) (*BrandSyncState, error) {
	var state BrandSyncState
	query := `
		SELECT brand, last_synced_at, last_run_id, total_indexed
		FROM sync_state
		WHERE brand = $1`

	err := s.db.GetContext(ctx, &state, query, brand)
	if err == sql.ErrNoRows {
		// Brands appear on first sync.
		return &BrandSyncState{Brand: brand}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *SyncStateStore) Update(ctx context.Context, state *BrandSyncState) error {
	query := `
		INSERT INTO sync_state (brand, last_synced_at, last_run_id, total_indexed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (brand) DO UPDATE SET
			last_synced_at = EXCLUDED.last_synced_at,
			last_run_id = EXCLUDED.last_run_id,
			total_indexed = EXCLUDED.total_indexed`

	_, err := s.db.ExecContext(ctx, query,
		state.Brand,
		state.LastSyncedAt,
		state.LastRunID,
		state.TotalIndexed,
	)
	return err
}
