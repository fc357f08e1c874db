package cleanup

import (
	"log"
	"time"

	"github.com/iamasit07/connect4-solo/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	MaxIdle        time.Duration
	Interval       time.Duration

	stop chan struct{}
}

func NewWorker(sm *game.SessionManager, maxIdle, interval time.Duration) *Worker {
	return &Worker{SessionManager: sm, MaxIdle: maxIdle, Interval: interval, stop: make(chan struct{})}
}

// Start initiates the background ticker
func (w *Worker) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.runCleanup()
			case <-w.stop:
				return
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) Stop() {
	close(w.stop)
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() int {
	removed := w.SessionManager.CleanupIdleSessions(w.MaxIdle)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d idle games, %d still active", removed, w.SessionManager.ActiveCount())
	}
	return removed
}
