package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pricewise/pricewise-backend/internal/adapter/repository"
	"github.com/pricewise/pricewise-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository in process memory.
// Blobs are kept encoded so a loaded snapshot never aliases a saved one.
type snapshotRepository struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewSnapshotRepository creates a new in-memory snapshot repository
func NewSnapshotRepository() domain.SnapshotRepository {
	return &snapshotRepository{blobs: make(map[string][]byte)}
}

// Load retrieves the snapshot saved under key
func (r *snapshotRepository) Load(ctx context.Context, key string) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	payload, ok := r.blobs[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("snapshot %q: %w", key, domain.ErrSnapshotNotFound)
	}

	return repository.DecodeSnapshot(payload)
}

// Save replaces the snapshot stored under key
func (r *snapshotRepository) Save(ctx context.Context, key string, snapshot *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := repository.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.blobs[key] = payload
	r.mu.Unlock()
	return nil
}
