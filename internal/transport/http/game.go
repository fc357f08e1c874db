package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	"github.com/iamasit07/connect4-solo/pkg/auth"
	"github.com/iamasit07/connect4-solo/pkg/httputil"
)

type GameHandler struct {
	SessionManager *game.SessionManager
	JWTSecret      string
	TokenTTL       time.Duration
	SecureCookies  bool
}

func NewGameHandler(sm *game.SessionManager, jwtSecret string, tokenTTL time.Duration, secureCookies bool) *GameHandler {
	return &GameHandler{
		SessionManager: sm,
		JWTSecret:      jwtSecret,
		TokenTTL:       tokenTTL,
		SecureCookies:  secureCookies,
	}
}

type createGameRequest struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type createGameResponse struct {
	GameID string              `json:"gameId"`
	Token  string              `json:"token"`
	Game   domain.GameSnapshot `json:"game"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	Result domain.MoveResult   `json:"result"`
	Game   domain.GameSnapshot `json:"game"`
}

// CreateGame starts a new game against the bot and issues its token
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	// an empty body means default dimensions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	session, err := h.SessionManager.CreateSession(req.Rows, req.Cols)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := auth.GenerateGameToken(session.GameID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		log.Printf("[HTTP] Failed to sign token for game %s: %v", session.GameID, err)
		h.SessionManager.RemoveSession(session.GameID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	httputil.SetGameCookie(c.Writer, token, int(h.TokenTTL.Seconds()), h.SecureCookies)
	c.JSON(http.StatusCreated, createGameResponse{
		GameID: session.GameID,
		Token:  token,
		Game:   session.Snapshot(),
	})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	snapshot, err := h.SessionManager.LookupSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		log.Printf("[HTTP] Snapshot lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load game"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *GameHandler) MakeMove(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	result, err := session.HandleMove(*req.Column)
	if err != nil {
		c.JSON(moveErrorStatus(err), gin.H{
			"error":  err.Error(),
			"result": result,
			"game":   session.Snapshot(),
		})
		return
	}

	c.JSON(http.StatusOK, moveResponse{Result: result, Game: session.Snapshot()})
}

func (h *GameHandler) ResetGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, session.HandleReset())
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.SessionManager.RemoveSession(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	httputil.ClearGameCookie(c.Writer)
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"activeGames": h.SessionManager.ActiveCount(),
	})
}

func (h *GameHandler) session(c *gin.Context) (*game.GameSession, bool) {
	session, exists := h.SessionManager.GetSession(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return nil, false
	}
	return session, true
}

func moveErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidColumn):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, domain.ErrGameOver),
		errors.Is(err, domain.ErrNotYourTurn):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
