package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-solo/internal/transport/http/middleware"
)

// NewRouter wires every HTTP route. wsHandler serves the /ws upgrade.
func NewRouter(h *GameHandler, allowedOrigins []string, wsHandler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	router.GET("/health", h.Health)
	router.POST("/api/games", h.CreateGame)

	// Protected Routes
	protected := router.Group("/api/games/:id")
	protected.Use(middleware.GameAuthMiddleware(h.JWTSecret))
	{
		protected.GET("", h.GetGame)
		protected.POST("/moves", h.MakeMove)
		protected.POST("/reset", h.ResetGame)
		protected.DELETE("", h.DeleteGame)
	}

	// WebSocket Route (auth handled inside the WS handler itself)
	if wsHandler != nil {
		router.GET("/ws", wsHandler)
	}

	return router
}
