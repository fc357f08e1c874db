package domain

import "fmt"

// Cell is a single slot of the grid.
type Cell struct {
	Owner   PlayerID `json:"owner"`
	Winning bool     `json:"winning"`
}

// Board is a rows x columns grid. Row 0 is the top, row rows-1 the bottom,
// so discs fall towards higher row indices.
type Board struct {
	rows  int
	cols  int
	cells [][]Cell
}

func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("domain: invalid board size %dx%d", rows, cols))
	}
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Board{rows: rows, cols: cols, cells: cells}
}

func (b *Board) Rows() int { return b.rows }

func (b *Board) Cols() int { return b.cols }

// Owner returns who holds the cell at (row, col).
func (b *Board) Owner(row, col int) PlayerID {
	return b.cells[row][col].Owner
}

func (b *Board) IsWinning(row, col int) bool {
	return b.cells[row][col].Winning
}

func (b *Board) mustColumn(col int) {
	if col < 0 || col >= b.cols {
		panic(fmt.Sprintf("domain: column %d out of range [0,%d)", col, b.cols))
	}
}

// ValidColumn reports whether col indexes a column of this board.
func (b *Board) ValidColumn(col int) bool {
	return col >= 0 && col < b.cols
}

// LowestEmptyRow scans the column from the bottom up and returns the first
// empty row. ok is false when the column is full.
func (b *Board) LowestEmptyRow(col int) (row int, ok bool) {
	b.mustColumn(col)

	for r := b.rows - 1; r >= 0; r-- {
		if b.cells[r][col].Owner == Empty {
			return r, true
		}
	}
	return -1, false
}

// IsColumnFull reports whether every row of col is taken.
func (b *Board) IsColumnFull(col int) bool {
	b.mustColumn(col)
	// gravity: the top cell is the last one to fill
	return b.cells[0][col].Owner != Empty
}

// Place sets the owner of an empty cell. It is the only ownership mutation
// during play; placing on an occupied cell is a programming error.
func (b *Board) Place(row, col int, owner PlayerID) {
	b.mustColumn(col)
	if row < 0 || row >= b.rows {
		panic(fmt.Sprintf("domain: row %d out of range [0,%d)", row, b.rows))
	}
	if b.cells[row][col].Owner != Empty {
		panic(fmt.Sprintf("domain: cell (%d,%d) already owned by %s", row, col, b.cells[row][col].Owner))
	}
	b.cells[row][col].Owner = owner
}

// Swap changes the owner of an occupied cell. Only tentative evaluation on
// scratch boards should need it.
func (b *Board) Swap(row, col int, owner PlayerID) {
	if b.cells[row][col].Owner == Empty {
		panic(fmt.Sprintf("domain: swap on empty cell (%d,%d)", row, col))
	}
	b.cells[row][col].Owner = owner
}

// clear empties a cell. Used to roll back tentative placements.
func (b *Board) clear(row, col int) {
	b.cells[row][col].Owner = Empty
}

// DropDisk places owner at the lowest empty row of col.
func (b *Board) DropDisk(col int, owner PlayerID) (int, error) {
	row, ok := b.LowestEmptyRow(col)
	if !ok {
		return -1, ErrColumnFull
	}
	b.Place(row, col, owner)
	return row, nil
}

// TryDrop places owner in col, runs fn and then removes the disc again.
// Winning flags set by fn are left for the caller to clear.
func (b *Board) TryDrop(col int, owner PlayerID, fn func(row int)) bool {
	row, ok := b.LowestEmptyRow(col)
	if !ok {
		return false
	}
	b.Place(row, col, owner)
	defer b.clear(row, col)

	fn(row)
	return true
}

func (b *Board) IsFull() bool {
	for c := 0; c < b.cols; c++ {
		if b.cells[0][c].Owner == Empty {
			return false
		}
	}
	return true
}

// ValidColumns lists the columns that still accept a disc.
func (b *Board) ValidColumns() []int {
	cols := make([]int, 0, b.cols)
	for c := 0; c < b.cols; c++ {
		if b.cells[0][c].Owner == Empty {
			cols = append(cols, c)
		}
	}
	return cols
}

func (b *Board) ClearWinning() {
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c].Winning = false
		}
	}
}

// Reset clears all owners and winning flags; dimensions are kept.
func (b *Board) Reset() {
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c] = Cell{}
		}
	}
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	nb := &Board{rows: b.rows, cols: b.cols, cells: make([][]Cell, b.rows)}
	for i := range b.cells {
		nb.cells[i] = make([]Cell, b.cols)
		copy(nb.cells[i], b.cells[i])
	}
	return nb
}

// Snapshot returns a read-only copy of the grid for rendering.
func (b *Board) Snapshot() [][]Cell {
	return b.Clone().cells
}

// BoardFromRows builds a board from a textual layout, top row first.
// '.' is empty, '1' and '2' are the players. Meant for tests and fixtures;
// it does not check gravity.
func BoardFromRows(rows ...string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	b := NewBoard(len(rows), len(rows[0]))
	for r, line := range rows {
		if len(line) != b.cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(line), b.cols, ErrInvalidDimensions)
		}
		for c, ch := range line {
			switch ch {
			case '.':
			case '1':
				b.cells[r][c].Owner = Player1
			case '2':
				b.cells[r][c].Owner = Player2
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected %q", r, c, ch)
			}
		}
	}
	return b, nil
}
