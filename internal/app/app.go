package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"imageviewer/internal/config"
	"imageviewer/internal/logger"
	"imageviewer/internal/repository"
	"imageviewer/internal/repository/sqlite"
	"imageviewer/internal/routes"
	"imageviewer/internal/services"
	"imageviewer/internal/services/storage"
	"imageviewer/internal/services/websocket"
	"imageviewer/internal/viewer"
)

type App struct {
	config          *config.Config
	logger          *logger.Logger
	db              *sqlite.DB
	snapshotService *storage.SnapshotService
	hubService      *websocket.HubService
	manager         *services.Manager
	viewer          *viewer.Viewer
}

// NewApp wires the viewer with its storage and optional mirror. A database that
// cannot be opened only disables the snapshot history.
func NewApp(cfg *config.Config, newSurface viewer.SurfaceFactory, console io.Writer) *App {
	appLogger := logger.NewLogger(cfg)

	var repo repository.SnapshotRepository
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		appLogger.Warning("Snapshot history disabled: %v", err)
		db = nil
	} else {
		repo = sqlite.NewSnapshotRepository(db)
	}

	snapshots := storage.NewSnapshotService(cfg.OutputPath, appLogger, repo)
	hub := websocket.NewHubService(appLogger)
	mng := services.NewManager(snapshots, repo, hub, appLogger)

	var publisher viewer.Publisher
	if cfg.MirrorPort > 0 {
		publisher = mng
	}

	return &App{
		config:          cfg,
		logger:          appLogger,
		db:              db,
		snapshotService: snapshots,
		hubService:      hub,
		manager:         mng,
		viewer:          viewer.NewViewer(newSurface, snapshots, publisher, console, appLogger),
	}
}

// Run opens the window, runs the key loop until 'q' and releases everything.
func (a *App) Run() error {
	defer a.close()

	go a.hubService.Run()
	defer a.hubService.Stop()

	if a.config.MirrorPort > 0 {
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", a.config.MirrorPort),
			Handler: routes.SetupRoutes(a.manager, a.logger),
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("Mirror server failed: %v", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(ctx)
		}()
		a.logger.Info("🌐 Mirror: http://localhost:%d/api/view", a.config.MirrorPort)
	}

	if err := a.viewer.Initialize(a.config.WindowTitle, a.config.WindowWidth, a.config.WindowHeight, a.config.ImagePath); err != nil {
		return err
	}
	defer a.viewer.Shutdown()

	a.logger.Info("🖼️  Showing %s - press 'q' to quit, 's' to save to %s", a.config.ImagePath, a.config.OutputPath)
	return a.viewer.Run()
}

func (a *App) Viewer() *viewer.Viewer {
	return a.viewer
}

func (a *App) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database: %v", err)
		}
	}
	a.logger.Close()
}
