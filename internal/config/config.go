package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	FrontendURL    string
	SecureCookies  bool

	BoardRows  int
	BoardCols  int
	BotDelay   time.Duration
	RandomSeed int64

	JWTSecret    string
	GameTokenTTL time.Duration

	RedisURL      string
	RedisPassword string
	RedisDB       int
	SnapshotTTL   time.Duration

	SessionIdleTimeout time.Duration
	CleanupInterval    time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + CSV values)
	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Game
	boardRows := GetEnvAsInt("BOARD_ROWS", 6)
	boardCols := GetEnvAsInt("BOARD_COLS", 7)
	botDelayMs := GetEnvAsInt("BOT_MOVE_DELAY_MS", 500)
	randomSeed := GetEnvAsInt64("RANDOM_SEED", 0)

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	gameTokenTTLMin := GetEnvAsInt("GAME_TOKEN_TTL_MINUTES", 24*60)

	// Redis snapshot cache
	snapshotTTLMin := GetEnvAsInt("SNAPSHOT_TTL_MINUTES", 60)

	AppConfig = &Config{
		Port:               port,
		AllowedOrigins:     allowedOrigins,
		FrontendURL:        frontendURL,
		SecureCookies:      GetEnv("ENVIRONMENT", "development") == "production",
		BoardRows:          boardRows,
		BoardCols:          boardCols,
		BotDelay:           time.Duration(botDelayMs) * time.Millisecond,
		RandomSeed:         randomSeed,
		JWTSecret:          jwtSecret,
		GameTokenTTL:       time.Duration(gameTokenTTLMin) * time.Minute,
		RedisURL:           GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:      GetEnv("REDIS_PASSWORD", ""),
		RedisDB:            GetEnvAsInt("REDIS_DB", 0),
		SnapshotTTL:        time.Duration(snapshotTTLMin) * time.Minute,
		SessionIdleTimeout: time.Duration(GetEnvAsInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		CleanupInterval:    time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 5)) * time.Minute,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
