package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateAlternation(t *testing.T) {
	s, err := NewState(3, 3)
	require.NoError(t, err)
	require.Equal(t, X, s.CurrentPlayer(), "X always opens")

	require.True(t, s.Play(0, 0))
	require.Equal(t, O, s.CurrentPlayer())

	require.True(t, s.Play(1, 1))
	require.Equal(t, X, s.CurrentPlayer())

	require.Equal(t, X, s.Board().At(0, 0))
	require.Equal(t, O, s.Board().At(1, 1))
}

func TestStateRejectsBadMoves(t *testing.T) {
	s, _ := NewState(3, 3)
	require.True(t, s.Play(0, 0))
	require.False(t, s.Play(0, 0), "occupied square")
	require.False(t, s.Play(4, 0), "out of range")
	require.Equal(t, O, s.CurrentPlayer(), "rejected moves must not flip the turn")
}

func TestStateWin(t *testing.T) {
	s, _ := NewState(3, 3)
	// X takes the top row while O mirrors below.
	for _, mv := range []Move{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		require.True(t, s.Play(mv.Row, mv.Col))
	}
	require.True(t, s.Finished())
	require.Equal(t, X, s.Winner())
	require.False(t, s.Play(2, 2), "no moves after the game ended")
	require.Len(t, s.History(), 5)
}

func TestStateDraw(t *testing.T) {
	s, _ := NewState(3, 3)
	seq := []Move{{0, 0}, {1, 1}, {0, 1}, {0, 2}, {2, 0}, {1, 0}, {1, 2}, {2, 1}, {2, 2}}
	for i, mv := range seq {
		require.True(t, s.Play(mv.Row, mv.Col), "move %d: %v", i, mv)
	}
	require.True(t, s.Finished())
	require.Equal(t, Empty, s.Winner(), "full board without a line is a draw")
	require.Equal(t, 0, s.Board().EmptyCount())
}

func TestStateHistoryOrder(t *testing.T) {
	s, _ := NewState(3, 3)
	s.Play(2, 2)
	s.Play(0, 0)
	s.Play(1, 1)

	h := s.History()
	require.Equal(t, []HistoryEntry{
		{Move: Move{2, 2}, Player: X},
		{Move: Move{0, 0}, Player: O},
		{Move: Move{1, 1}, Player: X},
	}, h)

	// The returned slice is a copy.
	h[0].Player = O
	require.Equal(t, X, s.History()[0].Player)
}

func TestStateReset(t *testing.T) {
	s, _ := NewState(3, 3)
	for _, mv := range []Move{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		s.Play(mv.Row, mv.Col)
	}
	require.True(t, s.Finished())

	s.Reset()
	require.False(t, s.Finished())
	require.Equal(t, X, s.CurrentPlayer())
	require.Equal(t, Empty, s.Winner())
	require.Equal(t, 9, s.Board().EmptyCount())
	require.Empty(t, s.History())
	require.True(t, s.Play(1, 1))
}
