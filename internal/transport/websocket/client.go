package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-solo/internal/domain"
)

// ConnectionManager handles active WebSocket connections thread-safely.
// Each game has at most one renderer attached.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// writeMu ensures only one goroutine writes to a specific socket at a time,
	// conn.WriteJSON is not safe for concurrent use.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers a renderer for gameID, replacing any older one.
func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[gameID]; exists {
		oldConn.Close()
	}

	cm.connections[gameID] = conn
	cm.writeMu[gameID] = &sync.Mutex{}
}

// RemoveConnection closes and forgets the renderer of gameID.
func (cm *ConnectionManager) RemoveConnection(gameID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[gameID]; exists {
		conn.Close()
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
}

// RemoveConnectionIfMatching avoids closing a newer connection when cleaning
// up an old one.
func (cm *ConnectionManager) RemoveConnectionIfMatching(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[gameID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
}

// SendMessage sends a JSON message to the renderer of gameID, if any.
func (cm *ConnectionManager) SendMessage(gameID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	mu, muExists := cm.writeMu[gameID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil // nobody watching
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(message)
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
