package handlers

import (
	"net/http"
	"time"

	"imageviewer/internal/logger"
	"imageviewer/internal/services"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// PongWait is how long a viewer may stay silent before it is dropped. Pings go
// out at 9/10 of it, so an idle viewer stays connected while it answers them.
var PongWait = 60 * time.Second

// ViewWebsocketHandler registers a mirror viewer and keeps it until it disconnects.
func ViewWebsocketHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		pongWait := PongWait
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(pongWait))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		// obraz wysyłany jest tylko po naciśnięciu klawisza, więc połączenie trzymają pingi
		done := make(chan struct{})
		defer close(done)
		go keepAlive(connection, pongWait*9/10, done)

		manager.GetWebsocketService().Register(connection)
		defer manager.GetWebsocketService().Unregister(connection)

		logger.Info("Viewer connected from %s", r.RemoteAddr)

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				logger.Info("Viewer disconnected: %v", err)
				break
			}
		}
	}
}

// keepAlive pings the viewer every period until done is closed or a ping fails.
func keepAlive(connection *websocket.Conn, period time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := connection.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
