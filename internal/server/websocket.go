package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/model"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket streams a session's events to the client as JSON.
func (a *API) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := a.registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, model.KindInternal, "session not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithContext(r.Context()).Warn("WebSocket upgrade error", "error", err.Error())
		return
	}

	client := &Client{
		SessionID: session.ID,
		Conn:      conn,
		Send:      make(chan model.Event, clientBuffer),
	}
	a.hub.Register(client)

	// Drain reads so close frames are handled
	go func() {
		defer a.hub.Unregister(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logger.Logger.Warn("WebSocket error", "session_id", client.SessionID, "error", err.Error())
				}
				return
			}
		}
	}()
}
