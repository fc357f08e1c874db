package bot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-solo/internal/domain"
)

const (
	human = domain.Player1
	me    = domain.Player2
)

func mustBoard(t *testing.T, rows ...string) *domain.Board {
	t.Helper()
	b, err := domain.BoardFromRows(rows...)
	require.NoError(t, err)
	return b
}

func TestClassifyPrefersWinOverBlock(t *testing.T) {
	board := mustBoard(t,
		".......",
		".......",
		".......",
		"...2.1.",
		"...2.1.",
		"...2.1.",
	)

	tiers := Classify(board, human, me)

	assert.Equal(t, []int{3}, tiers[TierWin])
	assert.Equal(t, []int{5}, tiers[TierBlock])
	assert.Equal(t, []int{0, 1, 2, 4, 6}, tiers[TierNeutral])
	assert.Empty(t, tiers[TierSelfDefeating])

	for seed := int64(0); seed < 20; seed++ {
		assert.Equal(t, 3, ChooseColumn(board, human, me, rand.New(rand.NewSource(seed))))
	}
}

func TestClassifyBlocksOpponentThreat(t *testing.T) {
	board := mustBoard(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"111.22.",
	)

	tiers := Classify(board, human, me)

	assert.Empty(t, tiers[TierWin])
	assert.Equal(t, []int{3}, tiers[TierBlock])
	for seed := int64(0); seed < 20; seed++ {
		assert.Equal(t, 3, ChooseColumn(board, human, me, rand.New(rand.NewSource(seed))))
	}
}

func TestClassifyFlagsSelfDefeatingColumns(t *testing.T) {
	board := mustBoard(t,
		".......",
		".......",
		".......",
		".......",
		"..111.2",
		"..212.2",
	)

	tiers := Classify(board, human, me)

	assert.Empty(t, tiers[TierWin])
	assert.Empty(t, tiers[TierBlock])
	assert.Equal(t, []int{0, 2, 3, 4, 6}, tiers[TierNeutral])
	assert.Equal(t, []int{1, 5}, tiers[TierSelfDefeating])

	for seed := int64(0); seed < 50; seed++ {
		col := ChooseColumn(board, human, me, rand.New(rand.NewSource(seed)))
		assert.NotContains(t, []int{1, 5}, col)
	}
}

func TestSelfDefeatingChosenWhenNothingElseLeft(t *testing.T) {
	tiers := Tiers{nil, nil, nil, {1, 5}}

	tier, cols, ok := tiers.Best()

	require.True(t, ok)
	assert.Equal(t, TierSelfDefeating, tier)
	assert.Equal(t, []int{1, 5}, cols)
}

func TestChooseColumnOnFullBoard(t *testing.T) {
	board := mustBoard(t,
		"1122112",
		"2211221",
		"1122112",
		"2211221",
		"1122112",
		"2211221",
	)

	_, _, ok := Classify(board, human, me).Best()
	assert.False(t, ok)
	assert.Equal(t, -1, ChooseColumn(board, human, me, rand.New(rand.NewSource(1))))
}

func TestClassifyLeavesBoardUntouched(t *testing.T) {
	board := mustBoard(t,
		".......",
		".......",
		"...1...",
		"...1...",
		"...1...",
		"...1222",
	)
	require.True(t, domain.CheckWin(board, 2, 3))
	before := board.Snapshot()

	Classify(board, human, me)
	ChooseColumn(board, human, me, rand.New(rand.NewSource(3)))

	assert.Equal(t, before, board.Snapshot())
}

func TestChooseColumnIsSeeded(t *testing.T) {
	board := domain.NewBoard(domain.DefaultRows, domain.DefaultColumns)

	seen := map[int]bool{}
	for seed := int64(0); seed < 100; seed++ {
		a := ChooseColumn(board, human, me, rand.New(rand.NewSource(seed)))
		b := ChooseColumn(board, human, me, rand.New(rand.NewSource(seed)))
		require.Equal(t, a, b)
		require.True(t, board.ValidColumn(a))
		seen[a] = true
	}

	// every column is neutral on an empty board
	assert.Greater(t, len(seen), 1)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "win", TierWin.String())
	assert.Equal(t, "block", TierBlock.String())
	assert.Equal(t, "neutral", TierNeutral.String())
	assert.Equal(t, "self_defeating", TierSelfDefeating.String())
}
