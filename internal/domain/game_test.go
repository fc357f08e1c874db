package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, first PlayerID) *Game {
	t.Helper()
	g := NewGame(DefaultRows, DefaultColumns, rand.New(rand.NewSource(1)))
	g.Turn = first
	return g
}

// playMoves applies columns in order and returns the last result.
func playMoves(t *testing.T, g *Game, columns ...int) MoveResult {
	t.Helper()
	var result MoveResult
	for i, col := range columns {
		result = g.AttemptMove(col)
		require.True(t, result.Accepted, "move %d (column %d) rejected", i, col)
	}
	return result
}

func TestNewGameInitialState(t *testing.T) {
	g := NewGame(DefaultRows, DefaultColumns, rand.New(rand.NewSource(7)))

	assert.Equal(t, PhaseInProgress, g.Phase)
	assert.Equal(t, Empty, g.Winner)
	assert.Zero(t, g.MoveCount)
	assert.Contains(t, []PlayerID{Player1, Player2}, g.Turn)
	assert.Len(t, g.Board.ValidColumns(), DefaultColumns)
}

func TestNewGameStartingTurnIsRandom(t *testing.T) {
	seen := map[PlayerID]int{}
	for seed := int64(0); seed < 64; seed++ {
		g := NewGame(DefaultRows, DefaultColumns, rand.New(rand.NewSource(seed)))
		seen[g.Turn]++
	}

	assert.Len(t, seen, 2)
	assert.NotContains(t, seen, Empty)
}

func TestNewGameIsReproducible(t *testing.T) {
	for seed := int64(0); seed < 16; seed++ {
		a := NewGame(DefaultRows, DefaultColumns, rand.New(rand.NewSource(seed)))
		b := NewGame(DefaultRows, DefaultColumns, rand.New(rand.NewSource(seed)))
		assert.Equal(t, a.Turn, b.Turn)
	}
}

func TestAttemptMoveAlternatesTurns(t *testing.T) {
	g := newTestGame(t, Player1)

	result := g.AttemptMove(3)
	require.True(t, result.Accepted)
	assert.Equal(t, 5, result.Row)
	assert.Equal(t, Player1, result.Player)
	assert.Equal(t, PhaseInProgress, result.Outcome)
	assert.Equal(t, Player2, g.Turn)

	result = g.AttemptMove(3)
	require.True(t, result.Accepted)
	assert.Equal(t, 4, result.Row)
	assert.Equal(t, Player2, result.Player)
	assert.Equal(t, Player1, g.Turn)
	assert.Equal(t, 2, g.MoveCount)
}

func TestVerticalWinInColumnThree(t *testing.T) {
	g := newTestGame(t, Player1)

	// human stacks column 3 while the opponent plays elsewhere
	playMoves(t, g, 3, 0, 3, 1, 3, 0)
	result := g.AttemptMove(3)

	require.True(t, result.Accepted)
	assert.Equal(t, 2, result.Row)
	assert.Equal(t, PhaseWon, result.Outcome)
	assert.Equal(t, Player1, result.Winner)
	assert.Equal(t, PhaseWon, g.Phase)
	assert.Equal(t, Player1, g.Winner)
	for _, row := range []int{5, 4, 3, 2} {
		assert.Equal(t, Player1, g.Board.Owner(row, 3))
		assert.True(t, g.Board.IsWinning(row, 3))
	}
	// the winner keeps the turn
	assert.Equal(t, Player1, g.Turn)
}

func TestMovesRejectedAfterWin(t *testing.T) {
	g := newTestGame(t, Player1)
	playMoves(t, g, 3, 0, 3, 1, 3, 0, 3)
	before := g.Board.Snapshot()

	result := g.AttemptMove(5)

	assert.False(t, result.Accepted)
	assert.Equal(t, PhaseWon, result.Outcome)
	assert.Equal(t, Player1, result.Winner)
	assert.Equal(t, before, g.Board.Snapshot())
	assert.Equal(t, 7, g.MoveCount)
}

func TestFullColumnRejected(t *testing.T) {
	g := newTestGame(t, Player1)
	playMoves(t, g, 0, 0, 0, 0, 0, 0)
	require.True(t, g.Board.IsColumnFull(0))

	before := g.Board.Snapshot()
	turn := g.Turn

	result := g.AttemptMove(0)

	assert.False(t, result.Accepted)
	assert.Equal(t, -1, result.Row)
	assert.Equal(t, PhaseInProgress, result.Outcome)
	assert.Equal(t, before, g.Board.Snapshot())
	assert.Equal(t, turn, g.Turn)
	assert.Equal(t, 6, g.MoveCount)
}

func TestOutOfRangeMovePanics(t *testing.T) {
	g := newTestGame(t, Player1)

	assert.Panics(t, func() { g.AttemptMove(DefaultColumns) })
	assert.Panics(t, func() { g.AttemptMove(-1) })
}

// fills the board as
//
//	1122112
//	2211221
//	...
//
// which contains no four in a row anywhere
var drawSequence = []int{
	2, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2,
	3, 3, 3, 3, 3, 3,
	6, 4, 4, 4, 4, 4, 4,
	5, 5, 5, 5, 5, 5,
	6, 6, 6, 6, 6,
}

func TestFullBoardWithoutLineIsDrawn(t *testing.T) {
	g := newTestGame(t, Player1)
	require.Len(t, drawSequence, DefaultRows*DefaultColumns)

	last := drawSequence[len(drawSequence)-1]
	playMoves(t, g, drawSequence[:len(drawSequence)-1]...)
	require.Equal(t, PhaseInProgress, g.Phase)

	result := g.AttemptMove(last)

	require.True(t, result.Accepted)
	assert.Equal(t, PhaseDrawn, result.Outcome)
	assert.Equal(t, Empty, result.Winner)
	assert.True(t, g.Board.IsFull())
	assert.True(t, g.IsFinished())
	assert.Empty(t, winningCells(g.Board))
}

func TestResetStartsOver(t *testing.T) {
	g := newTestGame(t, Player1)
	playMoves(t, g, 3, 0, 3, 1, 3, 0, 3)
	require.True(t, g.IsFinished())

	g.Reset()

	assert.Equal(t, PhaseInProgress, g.Phase)
	assert.Equal(t, Empty, g.Winner)
	assert.Zero(t, g.MoveCount)
	assert.Empty(t, winningCells(g.Board))
	assert.Len(t, g.Board.ValidColumns(), DefaultColumns)
	assert.True(t, g.AttemptMove(3).Accepted)
}

func TestPhaseIsTerminal(t *testing.T) {
	assert.False(t, PhaseNotStarted.IsTerminal())
	assert.False(t, PhaseInProgress.IsTerminal())
	assert.True(t, PhaseWon.IsTerminal())
	assert.True(t, PhaseDrawn.IsTerminal())
}

func TestSnapshotReflectsGame(t *testing.T) {
	g := newTestGame(t, Player2)
	g.AttemptMove(4)

	snap := g.Snapshot()
	assert.Equal(t, DefaultRows, snap.Rows)
	assert.Equal(t, DefaultColumns, snap.Cols)
	assert.Equal(t, Player2, snap.Cells[5][4].Owner)
	assert.Equal(t, Player1, snap.Turn)
	assert.Equal(t, 1, snap.MoveCount)
	assert.Equal(t, PhaseInProgress, snap.Phase)
}
