package websocket

import (
	"net/http"
	"strconv"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// WebSocketHandler upgrades watcher connections on /ws/listings/{listingID}.
// Watchers are read-only consumers of listing events, all mutations go
// through the REST API.
type WebSocketHandler struct {
	connManager domain.ConnectionManager
	log         logger.Logger
}

func NewWebSocketHandler(connManager domain.ConnectionManager, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		connManager: connManager,
		log:         log,
	}
}

func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	listingID, err := strconv.ParseUint(vars["listingID"], 10, 64)
	if err != nil {
		http.Error(w, "invalid listing id", http.StatusBadRequest)
		return
	}

	watcherID := r.URL.Query().Get("watcher_id")
	if watcherID == "" {
		http.Error(w, "watcher_id required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	wsConn := NewWebSocketConnection(conn, watcherID, listingID, h.log)

	if err := h.connManager.RegisterConnection(watcherID, listingID, wsConn); err != nil {
		h.log.Error("Failed to register connection", "error", err)
		conn.Close()
		return
	}

	go h.handleMessages(wsConn, watcherID, listingID)
}

func (h *WebSocketHandler) handleMessages(conn *WebSocketConnection, watcherID string, listingID uint64) {
	defer func() {
		h.connManager.UnregisterConnection(watcherID, listingID)
		conn.Close()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.conn.ReadJSON(&msg); err != nil {
			break
		}

		msgType, ok := msg["type"].(string)
		if !ok {
			continue
		}

		switch msgType {
		case "ping":
			conn.Send(map[string]string{"type": "pong"})
		}
	}
}

type WebSocketConnection struct {
	conn      *websocket.Conn
	watcherID string
	listingID uint64
	log       logger.Logger
}

func NewWebSocketConnection(conn *websocket.Conn, watcherID string, listingID uint64, log logger.Logger) *WebSocketConnection {
	return &WebSocketConnection{
		conn:      conn,
		watcherID: watcherID,
		listingID: listingID,
		log:       log,
	}
}

func (wsc *WebSocketConnection) Send(message interface{}) error {
	return wsc.conn.WriteJSON(message)
}

func (wsc *WebSocketConnection) Close() error {
	return wsc.conn.Close()
}

func (wsc *WebSocketConnection) WatcherID() string {
	return wsc.watcherID
}

func (wsc *WebSocketConnection) ListingID() uint64 {
	return wsc.listingID
}
