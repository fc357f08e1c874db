package bot

import (
	"math/rand"

	"github.com/iamasit07/connect4-solo/internal/domain"
)

// Tier ranks a candidate column. Lower values are preferred.
type Tier int

const (
	TierWin Tier = iota
	TierBlock
	TierNeutral
	TierSelfDefeating
	tierCount
)

func (t Tier) String() string {
	switch t {
	case TierWin:
		return "win"
	case TierBlock:
		return "block"
	case TierNeutral:
		return "neutral"
	case TierSelfDefeating:
		return "self_defeating"
	}
	return "unknown"
}

// Tiers holds the playable columns grouped by tier, in column order.
type Tiers [tierCount][]int

// Best returns the highest non-empty tier. ok is false when no column is
// playable.
func (t Tiers) Best() (Tier, []int, bool) {
	for tier := TierWin; tier < tierCount; tier++ {
		if len(t[tier]) > 0 {
			return tier, t[tier], true
		}
	}
	return 0, nil, false
}

// Classify sorts every playable column into a tier. The evaluation runs on a
// copy, so board is left exactly as it was, winning flags included.
func Classify(board *domain.Board, opponent, self domain.PlayerID) Tiers {
	var tiers Tiers

	scratch := board.Clone()
	scratch.ClearWinning()

	for col := 0; col < scratch.Cols(); col++ {
		scratch.TryDrop(col, self, func(row int) {
			tier := classifyColumn(scratch, row, col, opponent, self)
			tiers[tier] = append(tiers[tier], col)
		})
		scratch.ClearWinning()
	}

	return tiers
}

// classifyColumn expects self's disc to already sit at (row, col).
func classifyColumn(board *domain.Board, row, col int, opponent, self domain.PlayerID) Tier {
	// first priority, take the win
	if domain.CheckWin(board, row, col) {
		return TierWin
	}

	// second priority, deny the opponent the same spot
	board.Swap(row, col, opponent)
	blocked := domain.CheckWin(board, row, col)
	board.Swap(row, col, self)
	if blocked {
		return TierBlock
	}

	// last resort if our disc hands the opponent the cell above
	givesAway := false
	board.TryDrop(col, opponent, func(above int) {
		givesAway = domain.CheckWin(board, above, col)
	})
	if givesAway {
		return TierSelfDefeating
	}
	return TierNeutral
}

// ChooseColumn picks a column for self, uniformly at random among the
// columns of the best tier. It returns -1 if the board is full.
func ChooseColumn(board *domain.Board, opponent, self domain.PlayerID, rng *rand.Rand) int {
	_, cols, ok := Classify(board, opponent, self).Best()
	if !ok {
		return -1
	}
	return cols[rng.Intn(len(cols))]
}
