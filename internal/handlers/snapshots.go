package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"imageviewer/internal/logger"
	"imageviewer/internal/model"
	"imageviewer/internal/services"
)

const defaultSnapshotLimit = 50

// SnapshotsResponse is returned by GET /api/snapshots.
type SnapshotsResponse struct {
	Snapshots []model.Snapshot `json:"snapshots"`
	Total     int              `json:"total"`
}

func GetSnapshotsHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		repo := manager.GetSnapshotRepository()
		if repo == nil {
			http.Error(w, "Snapshot history disabled", http.StatusServiceUnavailable)
			return
		}

		limit := atoiDefault(r.URL.Query().Get("limit"), defaultSnapshotLimit)

		snapshots, err := repo.GetAll(limit)
		if err != nil {
			logger.Error("Failed to load snapshots: %v", err)
			http.Error(w, "Failed to load snapshots", http.StatusInternalServerError)
			return
		}
		total, err := repo.GetTotalCount()
		if err != nil {
			logger.Error("Failed to count snapshots: %v", err)
			http.Error(w, "Failed to count snapshots", http.StatusInternalServerError)
			return
		}
		if snapshots == nil {
			snapshots = []model.Snapshot{}
		}

		writeJSON(w, logger, SnapshotsResponse{Snapshots: snapshots, Total: total})
	}
}

func GetSnapshotStatsHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo := manager.GetSnapshotRepository()
		if repo == nil {
			http.Error(w, "Snapshot history disabled", http.StatusServiceUnavailable)
			return
		}

		stats, err := repo.GetStats()
		if err != nil {
			logger.Error("Failed to get stats: %v", err)
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			return
		}

		writeJSON(w, logger, stats)
	}
}

func writeJSON(w http.ResponseWriter, logger *logger.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}

// atoiDefault parses a positive integer, falling back to def.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
