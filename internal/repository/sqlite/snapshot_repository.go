package sqlite

import (
	"database/sql"
	"fmt"

	"imageviewer/internal/model"
)

// SnapshotRepository implements repository.SnapshotRepository for SQLite.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SQLite snapshot repository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Insert adds a new snapshot record to the database.
func (r *SnapshotRepository) Insert(s *model.Snapshot) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO snapshots (filename, filepath, source, filesize, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, s.Filename, s.FilePath, s.SourcePath, s.FileSize, s.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return result.LastInsertId()
}

// GetAll returns the newest snapshots first. A limit <= 0 returns every row.
func (r *SnapshotRepository) GetAll(limit int) ([]model.Snapshot, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `
		SELECT id, filename, filepath, source, filesize, timestamp
		FROM snapshots
		ORDER BY timestamp DESC, id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []model.Snapshot
	for rows.Next() {
		var s model.Snapshot
		if err := rows.Scan(&s.ID, &s.Filename, &s.FilePath, &s.SourcePath, &s.FileSize, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// GetLatest returns the most recent snapshot or nil when none exist.
func (r *SnapshotRepository) GetLatest() (*model.Snapshot, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var s model.Snapshot
	err := r.db.Conn().QueryRow(`
		SELECT id, filename, filepath, source, filesize, timestamp
		FROM snapshots ORDER BY timestamp DESC, id DESC LIMIT 1
	`).Scan(&s.ID, &s.Filename, &s.FilePath, &s.SourcePath, &s.FileSize, &s.Timestamp)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return &s, nil
}

// GetTotalCount returns the number of recorded snapshots.
func (r *SnapshotRepository) GetTotalCount() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

// GetStats returns totals and a per-source breakdown.
func (r *SnapshotRepository) GetStats() (*model.SnapshotStats, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	stats := &model.SnapshotStats{PerSource: make(map[string]int)}

	err := r.db.Conn().QueryRow(`SELECT COUNT(*), COALESCE(SUM(filesize), 0) FROM snapshots`).
		Scan(&stats.TotalSnapshots, &stats.TotalSizeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	rows, err := r.db.Conn().Query(`SELECT source, COUNT(*) FROM snapshots GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to query per-source stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan per-source stats: %w", err)
		}
		stats.PerSource[source] = count
	}

	return stats, rows.Err()
}

// DeleteAll removes the whole snapshot history.
func (r *SnapshotRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}
	return nil
}
