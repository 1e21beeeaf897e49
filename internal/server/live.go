package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// LiveHandler pushes accepted gestures to WebSocket clients as they happen.
// The pipeline calls Publish once per acceptance.
type LiveHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewLiveHandler creates a LiveHandler with no connected clients.
func NewLiveHandler() *LiveHandler {
	return &LiveHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish sends an acceptance to every connected client. Write errors are
// ignored; a broken client is removed when its read loop exits.
func (h *LiveHandler) Publish(label, reason, phrase string) {
	msg, err := json.Marshal(map[string]any{
		"label":     label,
		"reason":    reason,
		"phrase":    phrase,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// ClientCount reports how many clients are connected.
func (h *LiveHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
