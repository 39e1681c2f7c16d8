package model

import "time"

// Snapshot represents one saved copy of the displayed image.
type Snapshot struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	FilePath   string    `json:"filepath"`
	SourcePath string    `json:"source"`
	FileSize   int64     `json:"filesize"`
	Timestamp  time.Time `json:"timestamp"`
}

// SnapshotStats contains statistics about saved snapshots.
type SnapshotStats struct {
	TotalSnapshots int            `json:"total_snapshots"`
	TotalSizeBytes int64          `json:"total_size_bytes"`
	PerSource      map[string]int `json:"per_source"`
}
