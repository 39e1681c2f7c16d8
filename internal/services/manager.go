package services

import (
	"encoding/base64"
	"encoding/json"
	"sync/atomic"

	"imageviewer/internal/logger"
	"imageviewer/internal/repository"
	"imageviewer/internal/services/storage"
	"imageviewer/internal/services/websocket"
)

// Manager ties the snapshot storage and the mirror hub together for the HTTP layer.
type Manager struct {
	snapshotService  *storage.SnapshotService
	snapshotRepo     repository.SnapshotRepository
	websocketService *websocket.HubService
	logger           *logger.Logger

	framesSent atomic.Int64
}

// Frame is the JSON message pushed to mirror viewers.
type Frame struct {
	Window string `json:"window"`
	Image  string `json:"image"`
}

func NewManager(snapshotService *storage.SnapshotService, snapshotRepo repository.SnapshotRepository, websocketService *websocket.HubService, logger *logger.Logger) *Manager {
	return &Manager{
		snapshotService:  snapshotService,
		snapshotRepo:     snapshotRepo,
		websocketService: websocketService,
		logger:           logger,
	}
}

// Publish sends the shown image to every mirror viewer.
func (m *Manager) Publish(window string, image []byte) {
	msg, err := json.Marshal(Frame{
		Window: window,
		Image:  base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		m.logger.Error("Failed to encode frame: %v", err)
		return
	}

	if m.websocketService.Broadcast(msg) {
		m.framesSent.Add(1)
	}
}

func (m *Manager) GetWebsocketService() *websocket.HubService {
	return m.websocketService
}

func (m *Manager) GetSnapshotService() *storage.SnapshotService {
	return m.snapshotService
}

// GetSnapshotRepository returns nil when history is disabled.
func (m *Manager) GetSnapshotRepository() repository.SnapshotRepository {
	return m.snapshotRepo
}

// FramesSent reports how many frames were queued for viewers.
func (m *Manager) FramesSent() int64 {
	return m.framesSent.Load()
}
