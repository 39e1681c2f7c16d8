package repository

import "imageviewer/internal/model"

// SnapshotRepository defines the interface for snapshot history operations.
type SnapshotRepository interface {
	// Create operations
	Insert(s *model.Snapshot) (int64, error)

	// Read operations
	GetAll(limit int) ([]model.Snapshot, error)
	GetLatest() (*model.Snapshot, error)
	GetTotalCount() (int, error)
	GetStats() (*model.SnapshotStats, error)

	// Delete operations
	DeleteAll() error
}
