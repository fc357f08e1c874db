package domain

type position struct {
	row, col int
}

// line directions through a cell, in the order they are checked
var directions = [][2]int{
	{1, 1},  // diagonal \ (row-col constant)
	{1, -1}, // diagonal / (row+col constant)
	{0, 1},  // horizontal
	{1, 0},  // vertical
}

// CheckWin reports whether the disc at (row, column) completes four in a row
// for its owner. Only the four lines passing through that cell are scanned.
// On a win the cells of the first qualifying run are flagged as winning.
func CheckWin(board *Board, row, column int) bool {
	player := board.Owner(row, column)
	if player == Empty {
		return false
	}

	for _, dir := range directions {
		if run := scanLine(board, lineThrough(board, row, column, dir[0], dir[1]), player); run != nil {
			for _, p := range run {
				board.cells[p.row][p.col].Winning = true
			}
			return true
		}
	}
	return false
}

// lineThrough returns every cell on the line through (row, col) with the
// given step, ordered by increasing row (increasing column for horizontals).
func lineThrough(board *Board, row, col, dRow, dCol int) []position {
	// walk back to the first cell of the line
	r, c := row, col
	for inBounds(board, r-dRow, c-dCol) {
		r -= dRow
		c -= dCol
	}

	line := make([]position, 0, max(board.rows, board.cols))
	for inBounds(board, r, c) {
		line = append(line, position{r, c})
		r += dRow
		c += dCol
	}
	return line
}

// scanLine returns the first run of ToWin consecutive cells owned by player.
func scanLine(board *Board, line []position, player PlayerID) []position {
	count := 0
	lastOwner := Empty
	run := make([]position, 0, ToWin)

	for _, p := range line {
		owner := board.cells[p.row][p.col].Owner
		switch {
		case owner == Empty:
			count = 0
			run = run[:0]
		case owner == lastOwner:
			count++
			run = append(run, p)
		default:
			count = 1
			run = append(run[:0], p)
		}
		lastOwner = owner

		if count == ToWin && owner == player {
			return run
		}
	}
	return nil
}

func inBounds(board *Board, row, col int) bool {
	return row >= 0 && row < board.rows && col >= 0 && col < board.cols
}
