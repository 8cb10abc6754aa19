package server

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/model"
)

const (
	clientBuffer    = 256
	broadcastBuffer = 1024
)

// Client represents a WebSocket client watching one session
type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan model.Event
}

type envelope struct {
	sessionID string
	event     model.Event
}

// Hub maintains active clients and broadcasts session events
type Hub struct {
	clients    map[string][]*Client // sessionID -> clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	done       chan struct{}
	mutex      sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, broadcastBuffer),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop and returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.closeAll()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastToSession(msg)
		}
	}
}

// Register adds a client; it is a no-op once the hub stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Conn.Close()
	}
}

// Unregister removes a client; safe to call more than once.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues event for every client of sessionID.
func (h *Hub) Broadcast(sessionID string, event model.Event) {
	select {
	case h.broadcast <- envelope{sessionID: sessionID, event: event}:
	case <-h.done:
	}
}

// Clients returns the number of clients watching sessionID.
func (h *Hub) Clients(sessionID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[sessionID])
}

// DropSession disconnects every client of sessionID.
func (h *Hub) DropSession(sessionID string) {
	h.mutex.RLock()
	clients := append([]*Client(nil), h.clients[sessionID]...)
	h.mutex.RUnlock()

	for _, client := range clients {
		h.Unregister(client)
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
	logger.Logger.Debug("WebSocket client registered",
		"session_id", client.SessionID,
		"clients", len(h.clients[client.SessionID]),
	)

	go h.writePump(client)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	clients, exists := h.clients[client.SessionID]
	if !exists {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			client.Conn.Close()
			break
		}
	}
	if len(h.clients[client.SessionID]) == 0 {
		delete(h.clients, client.SessionID)
	}
	logger.Logger.Debug("WebSocket client unregistered", "session_id", client.SessionID)
}

func (h *Hub) broadcastToSession(msg envelope) {
	h.mutex.RLock()
	clients := append([]*Client(nil), h.clients[msg.sessionID]...)
	h.mutex.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- msg.event:
		default:
			// Client's send channel is full, disconnect them
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) writePump(client *Client) {
	defer h.Unregister(client)

	for event := range client.Send {
		if err := client.Conn.WriteJSON(event); err != nil {
			logger.Logger.Warn("WebSocket write error", "session_id", client.SessionID, "error", err.Error())
			return
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, clients := range h.clients {
		for _, client := range clients {
			close(client.Send)
			client.Conn.Close()
		}
		delete(h.clients, id)
	}
}
