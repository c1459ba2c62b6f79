package repository

import (
	"encoding/json"
	"fmt"

	"github.com/pricewise/pricewise-backend/internal/domain"
)

// EncodeSnapshot serializes a snapshot into the stored blob format
func EncodeSnapshot(snapshot *domain.Snapshot) ([]byte, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return payload, nil
}

// DecodeSnapshot parses a stored blob
func DecodeSnapshot(payload []byte) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}
