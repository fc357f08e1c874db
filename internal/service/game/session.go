package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
)

const cacheTimeout = 2 * time.Second

// GameSession is one human playing against the bot. The mutex serialises
// every mutation of the game, including the delayed bot move.
type GameSession struct {
	GameID    string
	Game      *domain.Game
	Human     domain.PlayerID
	Bot       domain.PlayerID
	CreatedAt time.Time

	lastActive time.Time
	botTimer   *time.Timer
	botPending bool
	// bumped on reset and close so a timer that already fired is ignored
	generation uint64
	botDelay   time.Duration
	rng        *rand.Rand
	mu         sync.Mutex
	conn       ConnectionManagerInterface
	cache      SnapshotCache
}

func newGameSession(gameID string, rows, cols int, rng *rand.Rand, botDelay time.Duration, conn ConnectionManagerInterface, cache SnapshotCache) *GameSession {
	now := time.Now()
	return &GameSession{
		GameID:     gameID,
		Game:       domain.NewGame(rows, cols, rng),
		Human:      domain.Player1,
		Bot:        domain.Player2,
		CreatedAt:  now,
		lastActive: now,
		botDelay:   botDelay,
		rng:        rng,
		conn:       conn,
		cache:      cache,
	}
}

func (gs *GameSession) firstMover() string {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gs.Game.Turn == gs.Bot {
		return "bot"
	}
	return "human"
}

// start lets the bot open the game when the coin toss went its way.
func (gs *GameSession) start() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.saveSnapshotLocked()
	if gs.Game.Turn == gs.Bot {
		gs.scheduleBotMoveLocked()
	}
}

func (gs *GameSession) close() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.cancelBotMoveLocked()
}

func (gs *GameSession) lastActivity() time.Time {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.lastActive
}

// Snapshot returns the renderer view of the game.
func (gs *GameSession) Snapshot() domain.GameSnapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

func (gs *GameSession) snapshotLocked() domain.GameSnapshot {
	snapshot := gs.Game.Snapshot()
	snapshot.GameID = gs.GameID
	snapshot.Human = gs.Human
	snapshot.Bot = gs.Bot
	snapshot.BotThinking = gs.botPending
	return snapshot
}

// HandleMove plays the human's disc in column. A rejected move comes back
// with Accepted=false together with the reason.
func (gs *GameSession) HandleMove(column int) (domain.MoveResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.lastActive = time.Now()
	rejected := domain.MoveResult{Row: -1, Column: column, Player: gs.Human, Outcome: gs.Game.Phase, Winner: gs.Game.Winner}

	if !gs.Game.Board.ValidColumn(column) {
		return rejected, domain.ErrInvalidColumn
	}
	if gs.Game.IsFinished() {
		return rejected, domain.ErrGameOver
	}
	if gs.Game.Turn != gs.Human {
		return rejected, domain.ErrNotYourTurn
	}

	result := gs.Game.AttemptMove(column)
	if !result.Accepted {
		return result, domain.ErrColumnFull
	}

	if !gs.Game.IsFinished() {
		gs.scheduleBotMoveLocked()
	}
	gs.afterMoveLocked(result)
	gs.saveSnapshotLocked()

	return result, nil
}

// HandleReset throws the current game away and starts a fresh one under the
// same id. A pending bot move is cancelled.
func (gs *GameSession) HandleReset() domain.GameSnapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.lastActive = time.Now()
	gs.cancelBotMoveLocked()
	gs.Game.Reset()

	log.Printf("[GAME] Game %s reset, first turn: %s", gs.GameID, gs.Game.Turn)

	if gs.Game.Turn == gs.Bot {
		gs.scheduleBotMoveLocked()
	}
	gs.saveSnapshotLocked()

	snapshot := gs.snapshotLocked()
	gs.conn.SendMessage(gs.GameID, domain.ServerMessage{
		Type:   "game_state",
		GameID: gs.GameID,
		Game:   &snapshot,
	})
	return snapshot
}

// scheduleBotMoveLocked picks the bot's column now and applies it after the
// thinking delay. Caller must hold gs.mu.
func (gs *GameSession) scheduleBotMoveLocked() {
	column := bot.ChooseColumn(gs.Game.Board, gs.Human, gs.Bot, gs.rng)
	if column < 0 {
		return
	}

	generation := gs.generation
	gs.botPending = true
	gs.botTimer = time.AfterFunc(gs.botDelay, func() {
		gs.applyBotMove(generation, column)
	})
	log.Printf("[BOT] Game %s: bot will play column %d in %s", gs.GameID, column, gs.botDelay)
}

func (gs *GameSession) cancelBotMoveLocked() {
	if gs.botTimer != nil {
		gs.botTimer.Stop()
		gs.botTimer = nil
	}
	gs.botPending = false
	gs.generation++
}

func (gs *GameSession) applyBotMove(generation uint64, column int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	// Verify the move still belongs to this game (reset race check)
	if generation != gs.generation || !gs.botPending {
		return
	}
	gs.botPending = false
	gs.botTimer = nil

	if gs.Game.IsFinished() || gs.Game.Turn != gs.Bot {
		return
	}

	result := gs.Game.AttemptMove(column)
	if !result.Accepted {
		log.Printf("[BOT] Game %s: column %d rejected", gs.GameID, column)
		return
	}

	gs.afterMoveLocked(result)
	gs.saveSnapshotLocked()
}

// afterMoveLocked reports an accepted move, and the outcome if it ended the game.
func (gs *GameSession) afterMoveLocked(result domain.MoveResult) {
	snapshot := gs.snapshotLocked()
	gs.conn.SendMessage(gs.GameID, domain.ServerMessage{
		Type:   "move_made",
		GameID: gs.GameID,
		Move:   &result,
		Game:   &snapshot,
	})

	if !gs.Game.IsFinished() {
		return
	}

	switch gs.Game.Phase {
	case domain.PhaseWon:
		log.Printf("[GAME] Game %s won by %s after %d moves", gs.GameID, gs.Game.Winner, gs.Game.MoveCount)
	case domain.PhaseDrawn:
		log.Printf("[GAME] Game %s drawn after %d moves", gs.GameID, gs.Game.MoveCount)
	}

	gs.conn.SendMessage(gs.GameID, domain.ServerMessage{
		Type:   "game_over",
		GameID: gs.GameID,
		Move:   &result,
		Game:   &snapshot,
	})
}

func (gs *GameSession) saveSnapshotLocked() {
	if gs.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := gs.cache.SaveSnapshot(ctx, gs.snapshotLocked()); err != nil {
		log.Printf("[GAME] Error caching snapshot for %s: %v", gs.GameID, err)
	}
}
