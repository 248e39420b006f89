package websocket

import (
	"encoding/json"
	"sync"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"
)

// ConnectionManager tracks the websocket watchers of each listing.
type ConnectionManager struct {
	connections map[uint64]map[string]domain.WebSocketConnection // listingID -> watcherID -> connection
	mutex       sync.RWMutex
	log         logger.Logger
}

func NewConnectionManager(log logger.Logger) *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[uint64]map[string]domain.WebSocketConnection),
		log:         log,
	}
}

func (cm *ConnectionManager) RegisterConnection(watcherID string, listingID uint64, conn domain.WebSocketConnection) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if cm.connections[listingID] == nil {
		cm.connections[listingID] = make(map[string]domain.WebSocketConnection)
	}
	cm.connections[listingID][watcherID] = conn

	cm.log.Info("Connection registered", "watcher_id", watcherID, "listing_id", listingID)
	return nil
}

func (cm *ConnectionManager) UnregisterConnection(watcherID string, listingID uint64) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if listingConns, exists := cm.connections[listingID]; exists {
		delete(listingConns, watcherID)
		if len(listingConns) == 0 {
			delete(cm.connections, listingID)
		}
	}

	cm.log.Info("Connection unregistered", "watcher_id", watcherID, "listing_id", listingID)
	return nil
}

func (cm *ConnectionManager) GetConnectionsForListing(listingID uint64) []domain.WebSocketConnection {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	var connections []domain.WebSocketConnection
	for _, conn := range cm.connections[listingID] {
		connections = append(connections, conn)
	}

	return connections
}

func (cm *ConnectionManager) BroadcastToListing(listingID uint64, message interface{}) error {
	connections := cm.GetConnectionsForListing(listingID)

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	for _, conn := range connections {
		if err := conn.Send(messageBytes); err != nil {
			cm.log.Error("Failed to send message", "watcher_id", conn.WatcherID(),
				"listing_id", listingID, "error", err)
			// Continue to other connections
		}
	}

	return nil
}
