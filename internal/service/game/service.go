package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/pkg/uid"
)

// ConnectionManagerInterface pushes updates to whoever renders a game.
type ConnectionManagerInterface interface {
	SendMessage(gameID string, message domain.ServerMessage) error
	RemoveConnection(gameID string)
}

// SnapshotCache keeps the latest snapshot of live games so they can still be
// shown after the in-memory session is gone.
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, snapshot domain.GameSnapshot) error
	GetSnapshot(ctx context.Context, gameID string) (*domain.GameSnapshot, error)
	DeleteSnapshot(ctx context.Context, gameID string) error
}

type Options struct {
	Rows     int
	Cols     int
	BotDelay time.Duration
	// Seed makes games reproducible. Zero seeds from the clock.
	Seed int64
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session map[string]*GameSession // gameID → GameSession
	mu      sync.RWMutex
	opts    Options
	conn    ConnectionManagerInterface
	cache   SnapshotCache
	seeds   *rand.Rand
}

// NewSessionManager wires the driver. cache may be nil when Redis is off.
func NewSessionManager(opts Options, conn ConnectionManagerInterface, cache SnapshotCache) *SessionManager {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.Rows == 0 {
		opts.Rows = domain.DefaultRows
	}
	if opts.Cols == 0 {
		opts.Cols = domain.DefaultColumns
	}

	return &SessionManager{
		Session: make(map[string]*GameSession),
		opts:    opts,
		conn:    conn,
		cache:   cache,
		seeds:   rand.New(rand.NewSource(seed)),
	}
}

func validDimension(n int) bool {
	return n >= domain.MinDimension && n <= domain.MaxDimension
}

// CreateSession starts a new game against the bot. Zero rows or cols fall
// back to the configured board size.
func (sm *SessionManager) CreateSession(rows, cols int) (*GameSession, error) {
	if rows == 0 {
		rows = sm.opts.Rows
	}
	if cols == 0 {
		cols = sm.opts.Cols
	}
	if !validDimension(rows) || !validDimension(cols) {
		return nil, fmt.Errorf("%dx%d: %w", rows, cols, domain.ErrInvalidDimensions)
	}

	sm.mu.Lock()
	rng := rand.New(rand.NewSource(sm.seeds.Int63()))
	session := newGameSession(uid.GenerateGameID(), rows, cols, rng, sm.opts.BotDelay, sm.conn, sm.cache)
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s (%dx%d), first turn: %s", session.GameID, rows, cols, session.firstMover())

	session.start()
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

// LookupSnapshot returns the live snapshot of a game, or the cached one when
// the session is no longer held in memory.
func (sm *SessionManager) LookupSnapshot(ctx context.Context, gameID string) (domain.GameSnapshot, error) {
	if session, ok := sm.GetSession(gameID); ok {
		return session.Snapshot(), nil
	}

	if sm.cache == nil {
		return domain.GameSnapshot{}, domain.ErrGameNotFound
	}
	snapshot, err := sm.cache.GetSnapshot(ctx, gameID)
	if err != nil {
		return domain.GameSnapshot{}, fmt.Errorf("snapshot lookup for %s: %w", gameID, err)
	}
	if snapshot == nil {
		return domain.GameSnapshot{}, domain.ErrGameNotFound
	}
	return *snapshot, nil
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	session, exists := sm.Session[gameID]
	if exists {
		delete(sm.Session, gameID)
	}
	sm.mu.Unlock()

	if !exists {
		return domain.ErrGameNotFound
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	session.close()
	sm.conn.RemoveConnection(gameID)

	if sm.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		defer cancel()
		if err := sm.cache.DeleteSnapshot(ctx, gameID); err != nil {
			log.Printf("[SESSION] Failed to drop cached snapshot for %s: %v", gameID, err)
		}
	}
	return nil
}

// CleanupIdleSessions drops sessions nobody touched for maxIdle and returns
// how many were removed.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	now := time.Now()

	sm.mu.RLock()
	stale := make([]string, 0)
	for gameID, session := range sm.Session {
		if now.Sub(session.lastActivity()) > maxIdle {
			stale = append(stale, gameID)
		}
	}
	sm.mu.RUnlock()

	count := 0
	for _, gameID := range stale {
		if err := sm.RemoveSession(gameID); err == nil {
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d idle game sessions", count)
	}
	return count
}

func (sm *SessionManager) ActiveCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}
