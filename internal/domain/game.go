package domain

import "math/rand"

// MoveResult is what a placement attempt reports back to the driver.
type MoveResult struct {
	Accepted bool      `json:"accepted"`
	Row      int       `json:"row"`
	Column   int       `json:"column"`
	Player   PlayerID  `json:"player"`
	Outcome  GamePhase `json:"outcome"`
	Winner   PlayerID  `json:"winner,omitempty"`
}

type Game struct {
	Board     *Board
	Turn      PlayerID
	Phase     GamePhase
	Winner    PlayerID
	MoveCount int

	rng *rand.Rand
}

// NewGame starts a game on an empty rows x cols board. The first mover is
// drawn from rng.
func NewGame(rows, cols int, rng *rand.Rand) *Game {
	g := &Game{
		Board: NewBoard(rows, cols),
		Phase: PhaseNotStarted,
		rng:   rng,
	}
	g.Reset()
	return g
}

// Reset clears the board and starts over with a new random first mover.
func (g *Game) Reset() {
	g.Board.Reset()
	g.Turn = Player1
	if g.rng.Intn(2) == 1 {
		g.Turn = Player2
	}
	g.Phase = PhaseInProgress
	g.Winner = Empty
	g.MoveCount = 0
}

// AttemptMove drops a disc for the player whose turn it is. A full column or
// a finished game is rejected without changing anything. An out-of-range
// column panics.
func (g *Game) AttemptMove(column int) MoveResult {
	result := MoveResult{Row: -1, Column: column, Player: g.Turn, Outcome: g.Phase, Winner: g.Winner}
	if g.Phase != PhaseInProgress {
		return result
	}

	row, err := g.Board.DropDisk(column, g.Turn)
	if err != nil {
		return result
	}
	g.MoveCount++
	result.Accepted = true
	result.Row = row

	if CheckWin(g.Board, row, column) {
		g.Phase = PhaseWon
		g.Winner = g.Turn
	} else if g.Board.IsFull() {
		g.Phase = PhaseDrawn
	} else {
		g.Turn = g.Turn.Opponent()
	}

	result.Outcome = g.Phase
	result.Winner = g.Winner
	return result
}

func (g *Game) IsFinished() bool {
	return g.Phase.IsTerminal()
}
