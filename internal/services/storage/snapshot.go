package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"imageviewer/internal/logger"
	"imageviewer/internal/model"
	"imageviewer/internal/repository"
)

// SnapshotService writes the displayed image to a fixed output path and records each save.
type SnapshotService struct {
	outputPath   string
	logger       *logger.Logger
	snapshotRepo repository.SnapshotRepository
}

// NewSnapshotService creates a SnapshotService. snapshotRepo may be nil.
func NewSnapshotService(outputPath string, logger *logger.Logger, snapshotRepo repository.SnapshotRepository) *SnapshotService {
	return &SnapshotService{
		outputPath:   outputPath,
		logger:       logger,
		snapshotRepo: snapshotRepo,
	}
}

// Save writes data verbatim to the output path and records it in the history.
func (s *SnapshotService) Save(data []byte, source string) error {
	if dir := filepath.Dir(s.outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.outputPath, err)
	}
	s.logger.Info("Saved %d bytes to %s", len(data), s.outputPath)

	if s.snapshotRepo == nil {
		return nil
	}

	snapshot := &model.Snapshot{
		Filename:   filepath.Base(s.outputPath),
		FilePath:   s.outputPath,
		SourcePath: source,
		FileSize:   int64(len(data)),
		Timestamp:  time.Now(),
	}
	if _, err := s.snapshotRepo.Insert(snapshot); err != nil {
		// plik jest już zapisany, historia jest tylko dodatkiem
		s.logger.Warning("Error saving snapshot to database %s: %v", snapshot.Filename, err)
	}

	return nil
}
