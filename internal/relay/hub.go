package relay

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub relays payloads from edge feeds to every subscribed viewer client.
// Messages are fanned out verbatim; the hub never inspects payloads.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub returns an empty relay hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 32 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // viewer clients are untrusted browsers/VR
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Routes registers the hub endpoints on mux: /ws/edge-data for the edge feed
// and /ws/client for viewers.
func (h *Hub) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/edge-data", h.handleEdge)
	mux.HandleFunc("/ws/client", h.handleClient)
}

// handleEdge reads payloads off the edge feed and fans each one out verbatim.
func (h *Hub) handleEdge(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	log.Printf("relay: edge feed connected from %s", r.RemoteAddr)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Printf("relay: edge feed closed: %v", err)
			return
		}
		h.Broadcast(msg)
	}
}

// handleClient registers a viewer and holds the connection open. Inbound
// client messages are read and discarded; viewers never feed data back.
func (h *Hub) handleClient(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	log.Printf("relay: viewer connected from %s (%d total)", r.RemoteAddr, n)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
		log.Printf("relay: viewer %s disconnected", r.RemoteAddr)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends msg to every connected viewer, dropping clients whose
// writes fail.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("relay: dropping viewer after write error: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
