package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pricewise/pricewise-backend/internal/adapter/repository"
	"github.com/pricewise/pricewise-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Load retrieves the snapshot saved under key
func (r *snapshotRepository) Load(ctx context.Context, key string) (*domain.Snapshot, error) {
	query := `
		SELECT payload
		FROM app_snapshots
		WHERE key = $1
	`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %q: %w", key, domain.ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return repository.DecodeSnapshot(payload)
}

// Save replaces the snapshot stored under key
func (r *snapshotRepository) Save(ctx context.Context, key string, snapshot *domain.Snapshot) error {
	payload, err := repository.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO app_snapshots (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
