package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tictactoe/game"
)

func newBoard(t *testing.T, size, winLength int) *game.Board {
	t.Helper()
	b, err := game.NewBoard(size, winLength)
	require.NoError(t, err)
	return b
}

func TestWindowEvaluatorThreatTiers(t *testing.T) {
	// X X .        row 0 scores the immediate threat tier, the two columns
	// . . .        and the main diagonal holding a lone X score the double
	// . . .        threat tier. O holds nothing.
	b := newBoard(t, 3, 3)
	require.True(t, b.ApplyMove(0, 0, game.X))
	require.True(t, b.ApplyMove(0, 1, game.X))

	eval := NewWindowEvaluator(true)
	require.Equal(t, 25.0, eval(b, game.X), "10 for the open pair, 5 each for col 0, col 1 and the diagonal")
	require.Equal(t, -25.0, eval(b, game.O))

	legacy := NewWindowEvaluator(false)
	require.Equal(t, 20.0, legacy(b, game.X), "without diagonals the lone diagonal X is worth nothing")
}

func TestWindowEvaluatorBlockedWindows(t *testing.T) {
	// X X O        the completed block kills row 0 for both sides; X keeps
	// . . .        col 0, col 1 and the diagonal, O keeps col 2 and the
	// . . .        anti-diagonal.
	b := newBoard(t, 3, 3)
	require.True(t, b.ApplyMove(0, 0, game.X))
	require.True(t, b.ApplyMove(0, 1, game.X))
	require.True(t, b.ApplyMove(0, 2, game.O))

	eval := NewWindowEvaluator(true)
	require.Equal(t, 5.0, eval(b, game.X), "15 for X against 10 for O")
	require.Equal(t, -5.0, eval(b, game.O))
}

func TestWindowEvaluatorZeroSum(t *testing.T) {
	eval := NewWindowEvaluator(true)
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		b := newBoard(t, 4, 3)
		mark := game.X
		for n := 0; n < 6; n++ {
			moves := b.LegalMoves()
			mv := moves[rng.Intn(len(moves))]
			require.True(t, b.ApplyMove(mv.Row, mv.Col, mark))
			mark = mark.Opponent()
		}
		require.Equal(t, eval(b, game.X), -eval(b, game.O), "board %d", i)
	}
}

func TestWindowEvaluatorUnreachableWinLength(t *testing.T) {
	b := newBoard(t, 3, 5)
	b.ApplyMove(0, 0, game.X)
	b.ApplyMove(1, 1, game.X)
	eval := NewWindowEvaluator(true)
	require.Zero(t, eval(b, game.X), "no window fits, so no window can score")
}

func TestWindowEvaluatorEmptyBoard(t *testing.T) {
	b := newBoard(t, 5, 4)
	eval := NewWindowEvaluator(true)
	require.Zero(t, eval(b, game.X))
	require.Zero(t, eval(b, game.O))
}
