package domain

// GameSnapshot is the read-only view handed to renderers.
type GameSnapshot struct {
	GameID      string    `json:"gameId"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	Cells       [][]Cell  `json:"cells"`
	Turn        PlayerID  `json:"turn"`
	Phase       GamePhase `json:"phase"`
	Winner      PlayerID  `json:"winner,omitempty"`
	MoveCount   int       `json:"moveCount"`
	Human       PlayerID  `json:"human"`
	Bot         PlayerID  `json:"bot"`
	BotThinking bool      `json:"botThinking"`
}

func (g *Game) Snapshot() GameSnapshot {
	return GameSnapshot{
		Rows:      g.Board.Rows(),
		Cols:      g.Board.Cols(),
		Cells:     g.Board.Snapshot(),
		Turn:      g.Turn,
		Phase:     g.Phase,
		Winner:    g.Winner,
		MoveCount: g.MoveCount,
	}
}

// ClientMessage is sent by the renderer over the websocket.
type ClientMessage struct {
	Type   string `json:"type"`
	Token  string `json:"token,omitempty"`
	Column int    `json:"column"`
}

// ServerMessage is pushed to the renderer over the websocket.
type ServerMessage struct {
	Type    string        `json:"type"`
	Message string        `json:"message,omitempty"`
	GameID  string        `json:"gameId,omitempty"`
	Move    *MoveResult   `json:"move,omitempty"`
	Game    *GameSnapshot `json:"game,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
