package server

import (
	"net/http"

	"cafe-analytics/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main hub loop.
func (s *DashboardServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			// Send the current snapshot on connect
			s.snapshotMutex.RLock()
			if s.snapshot != nil {
				client.send <- s.snapshot
			}
			s.snapshotMutex.RUnlock()

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}

		case snapshot := <-s.broadcast:
			s.snapshotMutex.Lock()
			s.snapshot = snapshot
			s.snapshotMutex.Unlock()

			for client := range s.clients {
				select {
				case client.send <- snapshot:
				default:
					// Client too slow, disconnect to keep the hub from blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateSnapshot replaces the served snapshot without broadcasting.
func (s *DashboardServer) UpdateSnapshot(snapshot *models.MSnapshot) {
	s.snapshotMutex.Lock()
	s.snapshot = snapshot
	s.snapshotMutex.Unlock()
}

// -----------------------------------------------------------------------------

// Broadcast queues a snapshot for every connected client and makes it the
// served state.
func (s *DashboardServer) Broadcast(snapshot *models.MSnapshot) {
	snapshot.Type = "UPDATE"
	s.broadcast <- snapshot
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the hub loop
		send: make(chan *models.MSnapshot, 256),
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}
