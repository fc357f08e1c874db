package domain

// PlayerID identifies the owner of a cell. Empty means nobody owns it.
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "empty"
}

const (
	DefaultRows    = 6
	DefaultColumns = 7
	ToWin          = 4

	MinDimension = 4
	MaxDimension = 16
)

// to represent the game phase
type GamePhase string

const (
	PhaseNotStarted GamePhase = "not_started"
	PhaseInProgress GamePhase = "in_progress"
	PhaseWon        GamePhase = "won"
	PhaseDrawn      GamePhase = "drawn"
)

// IsTerminal reports whether no further placements are accepted.
func (p GamePhase) IsTerminal() bool {
	return p == PhaseWon || p == PhaseDrawn
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrColumnFull        Error = "column is full"
	ErrInvalidColumn     Error = "column out of range"
	ErrInvalidDimensions Error = "invalid board dimensions"
	ErrGameOver          Error = "game is over"
	ErrNotYourTurn       Error = "not your turn"
	ErrGameNotFound      Error = "game not found"
)
