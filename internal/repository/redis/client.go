package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "connect4:game:"

// NewClient connects to Redis. A nil client and no error means Redis is
// unreachable and the server should run without the snapshot cache.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis at %s: %v. Running without snapshot cache.", addr, err)
		client.Close()
		return nil, nil
	}

	log.Println("[REDIS] Connected successfully")
	return client, nil
}

// SnapshotCache stores the latest snapshot of each live game with a TTL.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(gameID string) string {
	return snapshotKeyPrefix + gameID
}

func (c *SnapshotCache) SaveSnapshot(ctx context.Context, snapshot domain.GameSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return c.client.Set(ctx, snapshotKey(snapshot.GameID), data, c.ttl).Err()
}

// GetSnapshot returns nil, nil when nothing is cached for gameID.
func (c *SnapshotCache) GetSnapshot(ctx context.Context, gameID string) (*domain.GameSnapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot domain.GameSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", gameID, err)
	}
	// a cached game has no live timer behind it
	snapshot.BotThinking = false
	return &snapshot, nil
}

func (c *SnapshotCache) DeleteSnapshot(ctx context.Context, gameID string) error {
	return c.client.Del(ctx, snapshotKey(gameID)).Err()
}
