package routes

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"imageviewer/internal/config"
	"imageviewer/internal/handlers"
	"imageviewer/internal/logger"
	"imageviewer/internal/model"
	"imageviewer/internal/repository"
	"imageviewer/internal/repository/sqlite"
	"imageviewer/internal/services"
	"imageviewer/internal/services/storage"
	"imageviewer/internal/services/websocket"

	gorilla "github.com/gorilla/websocket"
)

type testServer struct {
	server  *httptest.Server
	manager *services.Manager
	repo    *sqlite.SnapshotRepository
	logger  *logger.Logger
}

func newTestServer(t *testing.T, withHistory bool) *testServer {
	t.Helper()
	dir := t.TempDir()

	l := logger.NewLogger(&config.Config{LogDirectory: filepath.Join(dir, "logs")})
	t.Cleanup(func() { l.Close() })

	ts := &testServer{logger: l}

	var repo repository.SnapshotRepository
	if withHistory {
		db, err := sqlite.New(filepath.Join(dir, "test.db"))
		if err != nil {
			t.Fatalf("Failed to create database: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		ts.repo = sqlite.NewSnapshotRepository(db)
		repo = ts.repo
	}

	hub := websocket.NewHubService(l)
	go hub.Run()

	svc := storage.NewSnapshotService(filepath.Join(dir, "New.jpg"), l, repo)
	ts.manager = services.NewManager(svc, repo, hub, l)

	ts.server = httptest.NewServer(SetupRoutes(ts.manager, l))
	t.Cleanup(func() {
		ts.server.Close()
		hub.Stop()
	})
	return ts
}

// ========================================
// Snapshot API
// ========================================

func TestSnapshotsAPI_ListsSavedSnapshots(t *testing.T) {
	ts := newTestServer(t, true)

	svc := ts.manager.GetSnapshotService()
	for i := 0; i < 3; i++ {
		if err := svc.Save([]byte("img"), "./images/01.jpeg"); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	resp, err := http.Get(ts.server.URL + "/api/snapshots?limit=2")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body handlers.SnapshotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body.Snapshots) != 2 {
		t.Errorf("Expected 2 snapshots, got %d", len(body.Snapshots))
	}
	if body.Total != 3 {
		t.Errorf("Expected total 3, got %d", body.Total)
	}
}

func TestSnapshotsAPI_EmptyListIsArray(t *testing.T) {
	ts := newTestServer(t, true)

	resp, err := http.Get(ts.server.URL + "/api/snapshots")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if string(raw["snapshots"]) != "[]" {
		t.Errorf("Expected empty array, got %s", raw["snapshots"])
	}
}

func TestSnapshotsAPI_Stats(t *testing.T) {
	ts := newTestServer(t, true)

	ts.repo.Insert(&model.Snapshot{Filename: "a", FilePath: "a", SourcePath: "x", FileSize: 4, Timestamp: time.Now()})

	resp, err := http.Get(ts.server.URL + "/api/snapshots/stats")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var stats model.SnapshotStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats.TotalSnapshots != 1 || stats.TotalSizeBytes != 4 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestSnapshotsAPI_HistoryDisabled(t *testing.T) {
	ts := newTestServer(t, false)

	for _, path := range []string{"/api/snapshots", "/api/snapshots/stats"} {
		resp, err := http.Get(ts.server.URL + path)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", path, resp.StatusCode)
		}
	}
}

func TestSnapshotsAPI_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, true)

	resp, err := http.Post(ts.server.URL+"/api/snapshots", "application/json", nil)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
}

// ========================================
// Mirror websocket
// ========================================

func dialView(t *testing.T, ts *testServer) *gorilla.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.server.URL, "http") + "/api/view"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, ts *testServer, expected int) {
	t.Helper()
	hub := ts.manager.GetWebsocketService()
	deadline := time.Now().Add(5 * time.Second)
	for hub.GetClientCount() != expected {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, got %d", expected, hub.GetClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *gorilla.Conn) services.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}

	var frame services.Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		t.Fatalf("Failed to decode frame: %v", err)
	}
	return frame
}

func TestView_ConnectedClientReceivesBroadcast(t *testing.T) {
	ts := newTestServer(t, false)

	conn := dialView(t, ts)
	waitForClients(t, ts, 1)

	image := []byte{0xFF, 0xD8, 1, 2, 3}
	ts.manager.Publish("img", image)

	frame := readFrame(t, conn)
	if frame.Window != "img" {
		t.Errorf("Expected window 'img', got %q", frame.Window)
	}
	if frame.Image != base64.StdEncoding.EncodeToString(image) {
		t.Errorf("Unexpected image payload %q", frame.Image)
	}
	if ts.manager.FramesSent() != 1 {
		t.Errorf("Expected 1 frame sent, got %d", ts.manager.FramesSent())
	}
}

func TestView_LateClientGetsLastFrame(t *testing.T) {
	ts := newTestServer(t, false)

	first := dialView(t, ts)
	waitForClients(t, ts, 1)

	image := []byte{0xFF, 0xD8, 9, 8, 7}
	ts.manager.Publish("img", image)
	// pierwszy klient potwierdza, że hub przetworzył klatkę
	readFrame(t, first)

	late := dialView(t, ts)
	frame := readFrame(t, late)
	if frame.Image != base64.StdEncoding.EncodeToString(image) {
		t.Errorf("Expected replayed frame, got %q", frame.Image)
	}
	waitForClients(t, ts, 2)
}

func TestView_IdleClientStaysConnected(t *testing.T) {
	previous := handlers.PongWait
	handlers.PongWait = 300 * time.Millisecond
	t.Cleanup(func() { handlers.PongWait = previous })

	ts := newTestServer(t, false)

	conn := dialView(t, ts)
	waitForClients(t, ts, 1)

	// odczyt w tle obsługuje pingi i odpowiada pongami
	frames := make(chan []byte, 1)
	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				close(frames)
				return
			}
			frames <- msg
		}
	}()

	time.Sleep(4 * handlers.PongWait)

	if count := ts.manager.GetWebsocketService().GetClientCount(); count != 1 {
		t.Fatalf("Expected idle client to stay connected, got %d clients", count)
	}

	ts.manager.Publish("img", []byte("after idle"))

	select {
	case msg, ok := <-frames:
		if !ok {
			t.Fatal("Connection closed while idle")
		}
		var frame services.Frame
		if err := json.Unmarshal(msg, &frame); err != nil {
			t.Fatalf("Failed to decode frame: %v", err)
		}
		if frame.Image != base64.StdEncoding.EncodeToString([]byte("after idle")) {
			t.Errorf("Unexpected frame after idle: %q", frame.Image)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("No frame received after idle period")
	}
}

// ========================================
// Logs
// ========================================

func TestLogs_ShowAndClear(t *testing.T) {
	ts := newTestServer(t, false)

	ts.logger.Warning("disk almost full")

	resp, err := http.Get(ts.server.URL + "/logs/warning")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "disk almost full") {
		t.Errorf("Expected warning in log output, got %q", body)
	}

	resp, err = http.Post(ts.server.URL+"/logs/warning/clear", "text/plain", nil)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.server.URL + "/logs/warning")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(body) != 0 {
		t.Errorf("Expected empty warning log, got %q", body)
	}
}
