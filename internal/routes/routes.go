package routes

import (
	"net/http"

	"imageviewer/internal/handlers"
	"imageviewer/internal/logger"
	"imageviewer/internal/services"
)

// SetupRoutes registers the mirror websocket, snapshot history API and log endpoints.
func SetupRoutes(manager *services.Manager, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/view", handlers.ViewWebsocketHandler(manager, logger))
	mux.HandleFunc("/api/snapshots", handlers.GetSnapshotsHandler(manager, logger))
	mux.HandleFunc("/api/snapshots/stats", handlers.GetSnapshotStatsHandler(manager, logger))

	// Log endpoints
	for name, file := range handlers.LogFiles {
		mux.HandleFunc("/logs/"+name, handlers.ShowLogsHandler(logger, file))
		mux.HandleFunc("/logs/"+name+"/clear", handlers.ClearLogsHandler(logger, file))
	}

	return mux
}
