package websocket

import (
	"encoding/json"
	"sync"

	"party-advisor-be/internal/pkg/logger"
)

// Envelope is the JSON frame pushed to clients.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	// Registered clients map: SessionID -> watchers (multi-tab)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	quit chan struct{}

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		quit:       make(chan struct{}),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case <-h.quit:
			return
		}
	}
}

// Stop ends Run. Connected clients are left to their own read deadlines.
func (h *Hub) Stop() {
	close(h.quit)
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.SessionID]) == 0 {
		delete(h.clients, client.SessionID)
		h.logger.Info("Hub", "Session has no watchers", map[string]interface{}{"session_id": client.SessionID})
	}
}

// Notify sends a typed frame to every client watching the session.
// Clients whose buffer is full are dropped.
func (h *Hub) Notify(sessionID, kind string, data interface{}) {
	payload, err := json.Marshal(Envelope{Type: kind, Data: data})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode frame", map[string]interface{}{"type": kind, "error": err.Error()})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range append([]*Client(nil), h.clients[sessionID]...) {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"session_id": sessionID})
			h.remove(client)
		}
	}
}

// Close disconnects every client watching the session.
func (h *Hub) Close(sessionID string) {
	h.Notify(sessionID, "session_closed", map[string]string{"session_id": sessionID})

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range append([]*Client(nil), h.clients[sessionID]...) {
		h.remove(client)
	}
}

// Watchers reports how many clients follow a session.
func (h *Hub) Watchers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}
