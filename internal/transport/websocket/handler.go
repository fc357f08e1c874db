package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"github.com/iamasit07/connect4-solo/pkg/auth"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	JWTSecret      string
	Upgrader       websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. checkOrigin may be nil to
// accept any origin.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, jwtSecret string, checkOrigin func(r *http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		JWTSecret:      jwtSecret,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	// 1. Wait for initialization with the game token
	gameID, err := h.authenticate(conn)
	if err != nil {
		log.Printf("[WS] Rejected connection: %v", err)
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: err.Error()})
		conn.Close()
		return
	}

	session, exists := h.SessionManager.GetSession(gameID)
	if !exists {
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: domain.ErrGameNotFound.Error()})
		conn.Close()
		return
	}

	h.ConnManager.AddConnection(gameID, conn)
	log.Printf("[WS] Renderer attached to game %s", gameID)

	done := make(chan struct{})
	defer func() {
		close(done)
		log.Printf("[WS] Connection closed for game %s", gameID)
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
	}()

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	snapshot := session.Snapshot()
	h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, Game: &snapshot})

	// 2. Main Message Loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Renderer for game %s disconnected unexpectedly: %v", gameID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			continue
		}

		// the session may have been discarded while the socket stayed open
		session, exists = h.SessionManager.GetSession(gameID)
		if !exists {
			h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "error", Message: domain.ErrGameNotFound.Error()})
			return
		}

		h.processMessage(session, msg)
	}
}

func (h *Handler) authenticate(conn *websocket.Conn) (string, error) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return "", err
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil {
		return "", errors.New("invalid init message")
	}
	if message.Type != "init" || message.Token == "" {
		return "", errors.New("missing initialization or token")
	}

	claims, err := auth.ValidateGameToken(message.Token, h.JWTSecret)
	if err != nil {
		return "", errors.New("invalid or expired game token")
	}
	return claims.GameID, nil
}

// processMessage routes specific actions
func (h *Handler) processMessage(session *game.GameSession, msg domain.ClientMessage) {
	switch msg.Type {
	case "make_move":
		// the move itself is broadcast by the session
		if _, err := session.HandleMove(msg.Column); err != nil {
			h.ConnManager.SendMessage(session.GameID, domain.ServerMessage{Type: "error", GameID: session.GameID, Message: err.Error()})
		}

	case "new_game":
		session.HandleReset()

	case "get_state":
		snapshot := session.Snapshot()
		h.ConnManager.SendMessage(session.GameID, domain.ServerMessage{Type: "game_state", GameID: session.GameID, Game: &snapshot})

	default:
		h.ConnManager.SendMessage(session.GameID, domain.ServerMessage{Type: "error", Message: "unknown message type " + msg.Type})
	}
}
