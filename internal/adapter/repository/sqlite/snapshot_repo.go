package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pricewise/pricewise-backend/internal/adapter/repository"
	"github.com/pricewise/pricewise-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository on SQLite
type snapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new SQLite snapshot repository
func NewSnapshotRepository(db *sqlx.DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

type snapshotRow struct {
	Key       string `db:"key"`
	Payload   string `db:"payload"`
	UpdatedAt string `db:"updated_at"`
}

// Load retrieves the snapshot saved under key
func (r *snapshotRepository) Load(ctx context.Context, key string) (*domain.Snapshot, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row, `SELECT key, payload, updated_at FROM app_snapshots WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %q: %w", key, domain.ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return repository.DecodeSnapshot([]byte(row.Payload))
}

// Save replaces the snapshot stored under key
func (r *snapshotRepository) Save(ctx context.Context, key string, snapshot *domain.Snapshot) error {
	payload, err := repository.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO app_snapshots(key, payload, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
