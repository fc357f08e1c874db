package cleanup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-solo/internal/domain"
	"github.com/iamasit07/connect4-solo/internal/service/game"
)

type nopConn struct{}

func (nopConn) SendMessage(string, domain.ServerMessage) error { return nil }
func (nopConn) RemoveConnection(string)                         {}

func newManager(t *testing.T, games int) *game.SessionManager {
	t.Helper()
	sm := game.NewSessionManager(game.Options{BotDelay: time.Hour, Seed: 5}, nopConn{}, nil)
	for i := 0; i < games; i++ {
		_, err := sm.CreateSession(0, 0)
		require.NoError(t, err)
	}
	return sm
}

func TestRunCleanupKeepsActiveGames(t *testing.T) {
	sm := newManager(t, 2)
	w := NewWorker(sm, time.Hour, time.Hour)

	assert.Zero(t, w.runCleanup())
	assert.Equal(t, 2, sm.ActiveCount())
}

func TestRunCleanupRemovesIdleGames(t *testing.T) {
	sm := newManager(t, 3)
	w := NewWorker(sm, time.Millisecond, time.Hour)

	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 3, w.runCleanup())
	assert.Zero(t, sm.ActiveCount())
}

func TestWorkerTicks(t *testing.T) {
	sm := newManager(t, 1)
	w := NewWorker(sm, time.Millisecond, 5*time.Millisecond)

	w.Start()
	defer w.Stop()

	assert.Eventually(t, func() bool {
		return sm.ActiveCount() == 0
	}, time.Second, 5*time.Millisecond)
}
