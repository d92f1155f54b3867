package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// place fills the given squares with mark, failing the test on an illegal
// placement.
func place(t *testing.T, b *Board, mark Cell, moves ...Move) {
	t.Helper()
	for _, mv := range moves {
		require.True(t, b.ApplyMove(mv.Row, mv.Col, mark), "placing %v", mv)
	}
}

func TestCheckWinCompletesRow(t *testing.T) {
	b, _ := NewBoard(3, 3)
	place(t, b, X, Move{0, 0}, Move{0, 1})
	require.False(t, b.CheckWin(0, 1), "two in a row is not a win")

	place(t, b, X, Move{0, 2})
	require.True(t, b.CheckWin(0, 2), "third mark should complete the row")
}

func TestCheckWinAllAxes(t *testing.T) {
	cases := []struct {
		name string
		line []Move
	}{
		{"horizontal", []Move{{2, 1}, {2, 2}, {2, 3}}},
		{"vertical", []Move{{1, 2}, {2, 2}, {3, 2}}},
		{"diagonal", []Move{{1, 1}, {2, 2}, {3, 3}}},
		{"anti-diagonal", []Move{{1, 3}, {2, 2}, {3, 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBoard(5, 3)
			require.NoError(t, err)
			place(t, b, O, tc.line...)
			// Any cell of the line works as the anchor.
			for _, anchor := range tc.line {
				require.True(t, b.CheckWin(anchor.Row, anchor.Col), "anchor %v", anchor)
			}
		})
	}
}

func TestCheckWinIsAnchorLocal(t *testing.T) {
	b, _ := NewBoard(5, 3)
	place(t, b, X, Move{0, 0}, Move{0, 1}, Move{0, 2})
	place(t, b, O, Move{4, 4})

	require.True(t, b.CheckWin(0, 1))
	require.False(t, b.CheckWin(4, 4), "a win elsewhere must not be found from an unrelated anchor")
	require.False(t, b.CheckWin(2, 2), "empty anchor never wins")
}

func TestCheckWinAtBoardEdge(t *testing.T) {
	b, _ := NewBoard(4, 4)
	place(t, b, O, Move{0, 3}, Move{1, 3}, Move{2, 3}, Move{3, 3})
	require.True(t, b.CheckWin(3, 3), "line hugging the right edge")
	require.True(t, b.CheckWin(0, 3), "anchored from the other end")
}

func TestCheckWinRunLongerThanNeeded(t *testing.T) {
	b, _ := NewBoard(6, 3)
	place(t, b, X, Move{3, 0}, Move{3, 1}, Move{3, 2}, Move{3, 3})
	require.True(t, b.CheckWin(3, 2), "a run longer than the win length still wins")
}

func TestCheckWinImpossibleLength(t *testing.T) {
	b, _ := NewBoard(3, 5)
	place(t, b, X, Move{0, 0}, Move{0, 1}, Move{0, 2})
	require.False(t, b.CheckWin(0, 2), "win length beyond board size can never be reached")
}

func TestCheckWinOutOfRangeAnchor(t *testing.T) {
	b, _ := NewBoard(3, 3)
	require.False(t, b.CheckWin(-1, 0))
	require.False(t, b.CheckWin(0, 9))
}

func TestCheckWinIgnoresOpponentMarks(t *testing.T) {
	b, _ := NewBoard(3, 3)
	place(t, b, X, Move{0, 0}, Move{0, 2})
	place(t, b, O, Move{0, 1})
	require.False(t, b.CheckWin(0, 1), "mixed marks never form a line")
	require.False(t, b.CheckWin(0, 2))
}

func TestWinningLine(t *testing.T) {
	t.Run("returns the run end to end", func(t *testing.T) {
		b, _ := NewBoard(5, 3)
		place(t, b, X, Move{2, 1}, Move{2, 2}, Move{2, 3})
		line := b.WinningLine(2, 2)
		require.Equal(t, []Move{{2, 1}, {2, 2}, {2, 3}}, line)
	})

	t.Run("nil without a completed run", func(t *testing.T) {
		b, _ := NewBoard(5, 3)
		place(t, b, X, Move{2, 1}, Move{2, 2})
		require.Nil(t, b.WinningLine(2, 2))
		require.Nil(t, b.WinningLine(0, 0))
	})
}
