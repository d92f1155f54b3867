package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("accepts supported sizes", func(t *testing.T) {
		for _, size := range []int{3, 5, 19, 100} {
			b, err := NewBoard(size, DefaultWinLength(size))
			require.NoError(t, err)
			require.Equal(t, size, b.Size())
			require.Equal(t, size*size, b.EmptyCount(), "fresh board should be all empty")
		}
	})

	t.Run("rejects out-of-range sizes", func(t *testing.T) {
		for _, size := range []int{-1, 0, 2, 101} {
			_, err := NewBoard(size, 3)
			require.Error(t, err, "size %d should be rejected", size)
		}
	})

	t.Run("rejects non-positive win length", func(t *testing.T) {
		_, err := NewBoard(3, 0)
		require.Error(t, err)
		_, err = NewBoard(3, -2)
		require.Error(t, err)
	})

	t.Run("allows win length beyond board size", func(t *testing.T) {
		b, err := NewBoard(3, 5)
		require.NoError(t, err)
		require.Equal(t, 5, b.WinLength())
	})
}

func TestDefaultWinLength(t *testing.T) {
	cases := map[int]int{3: 3, 4: 4, 5: 5, 6: 5, 15: 5, 100: 5}
	for size, want := range cases {
		require.Equal(t, want, DefaultWinLength(size), "size %d", size)
	}
}

func TestApplyMove(t *testing.T) {
	t.Run("places a mark and updates bookkeeping", func(t *testing.T) {
		b, err := NewBoard(3, 3)
		require.NoError(t, err)

		require.True(t, b.ApplyMove(1, 2, X))
		require.Equal(t, X, b.At(1, 2))
		require.Equal(t, 8, b.EmptyCount())

		last, by := b.LastMove()
		require.Equal(t, Move{Row: 1, Col: 2}, last)
		require.Equal(t, X, by)
	})

	t.Run("rejects occupied squares", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		require.True(t, b.ApplyMove(0, 0, X))
		require.False(t, b.ApplyMove(0, 0, O), "occupied square should be refused")
		require.Equal(t, X, b.At(0, 0), "refused move must not alter the board")
		require.Equal(t, 8, b.EmptyCount())
	})

	t.Run("rejects out-of-range squares", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		for _, mv := range []Move{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {7, 7}} {
			require.False(t, b.ApplyMove(mv.Row, mv.Col, X), "move %v", mv)
		}
		require.Equal(t, 9, b.EmptyCount())
	})

	t.Run("rejects the empty mark", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		require.False(t, b.ApplyMove(0, 0, Empty))
	})
}

func TestUndoMove(t *testing.T) {
	t.Run("restores the square and the counter", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		b.ApplyMove(2, 2, O)
		b.UndoMove(2, 2)
		require.Equal(t, Empty, b.At(2, 2))
		require.Equal(t, 9, b.EmptyCount())
	})

	t.Run("panics on an empty square", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		require.Panics(t, func() { b.UndoMove(1, 1) })
	})

	t.Run("panics out of range", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		require.Panics(t, func() { b.UndoMove(5, 5) })
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("row-major order on a fresh board", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		moves := b.LegalMoves()
		require.Len(t, moves, 9)
		require.Equal(t, Move{0, 0}, moves[0])
		require.Equal(t, Move{0, 1}, moves[1])
		require.Equal(t, Move{2, 2}, moves[8])
		for i := 1; i < len(moves); i++ {
			prev, cur := moves[i-1], moves[i]
			require.True(t, prev.Row < cur.Row || (prev.Row == cur.Row && prev.Col < cur.Col),
				"moves must stay in row-major order")
		}
	})

	t.Run("excludes occupied squares", func(t *testing.T) {
		b, _ := NewBoard(3, 3)
		b.ApplyMove(0, 0, X)
		b.ApplyMove(1, 1, O)
		moves := b.LegalMoves()
		require.Len(t, moves, 7)
		require.NotContains(t, moves, Move{0, 0})
		require.NotContains(t, moves, Move{1, 1})
	})
}

func TestSnapshotIsDetached(t *testing.T) {
	b, _ := NewBoard(3, 3)
	b.ApplyMove(0, 0, X)

	view := b.Snapshot()
	require.Equal(t, X, view.At(0, 0))
	require.Equal(t, 3, view.Size())
	require.Equal(t, 3, view.WinLength())

	b.ApplyMove(1, 1, O)
	require.Equal(t, Empty, view.At(1, 1), "later board changes must not leak into the view")
}

func TestScratchRebuildsMutableBoard(t *testing.T) {
	b, _ := NewBoard(4, 3)
	b.ApplyMove(0, 0, X)
	b.ApplyMove(3, 3, O)

	scratch := b.Snapshot().Scratch()
	require.Equal(t, b.EmptyCount(), scratch.EmptyCount(), "scratch must recount empties")
	require.Equal(t, X, scratch.At(0, 0))
	require.Equal(t, O, scratch.At(3, 3))

	require.True(t, scratch.ApplyMove(2, 2, X))
	require.Equal(t, Empty, b.At(2, 2), "scratch writes must not reach the source board")
}

func TestClone(t *testing.T) {
	b, _ := NewBoard(3, 3)
	b.ApplyMove(1, 1, X)

	c := b.Clone()
	c.ApplyMove(0, 0, O)
	require.Equal(t, Empty, b.At(0, 0))
	require.Equal(t, 8, b.EmptyCount())
	require.Equal(t, 7, c.EmptyCount())
}

func TestCellOpponent(t *testing.T) {
	require.Equal(t, O, X.Opponent())
	require.Equal(t, X, O.Opponent())
	require.Equal(t, Empty, Empty.Opponent())
}

func TestBoardString(t *testing.T) {
	b, _ := NewBoard(3, 3)
	b.ApplyMove(1, 1, X)
	s := b.String()
	require.Contains(t, s, "X")
	require.Contains(t, s, "0 1 2", "column headers should be printed")
}
