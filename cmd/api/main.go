package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-solo/internal/config"
	"github.com/iamasit07/connect4-solo/internal/repository/redis"
	"github.com/iamasit07/connect4-solo/internal/service/cleanup"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-solo/internal/transport/http"
	"github.com/iamasit07/connect4-solo/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-solo/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	// 1. Snapshot cache (optional)
	var cache game.SnapshotCache
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := redis.NewClient(pingCtx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	cancelPing()
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = redis.NewSnapshotCache(redisClient, cfg.SnapshotTTL)
	}

	// 2. Services
	connManager := websocket.NewConnectionManager()
	sessionManager := game.NewSessionManager(game.Options{
		Rows:     cfg.BoardRows,
		Cols:     cfg.BoardCols,
		BotDelay: cfg.BotDelay,
		Seed:     cfg.RandomSeed,
	}, connManager, cache)

	// 3. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionIdleTimeout, cfg.CleanupInterval)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	// 4. Handlers
	gameHandler := transportHttp.NewGameHandler(sessionManager, cfg.JWTSecret, cfg.GameTokenTTL, cfg.SecureCookies)
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.JWTSecret, middleware.OriginChecker(cfg.AllowedOrigins))

	router := transportHttp.NewRouter(gameHandler, cfg.AllowedOrigins, func(c *gin.Context) {
		wsHandler.HandleWebSocket(c.Writer, c.Request)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (board %dx%d, bot delay %s)", cfg.Port, cfg.BoardRows, cfg.BoardCols, cfg.BotDelay)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
