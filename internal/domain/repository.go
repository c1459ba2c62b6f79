package domain

import "context"

// SnapshotRepository defines the interface for whole-state persistence.
// Implementations store the snapshot as one opaque blob per key.
type SnapshotRepository interface {
	// Load retrieves the snapshot saved under key
	// Returns ErrSnapshotNotFound if nothing was saved yet
	Load(ctx context.Context, key string) (*Snapshot, error)

	// Save replaces the snapshot stored under key
	Save(ctx context.Context, key string, snapshot *Snapshot) error
}
