package player

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tictactoe/game"
)

func fullView(t *testing.T, size, winLength int) (game.BoardView, []game.Move) {
	t.Helper()
	b, err := game.NewBoard(size, winLength)
	require.NoError(t, err)
	return b.Snapshot(), b.LegalMoves()
}

func TestRandomIsSeedReproducible(t *testing.T) {
	view, moves := fullView(t, 5, 4)
	a := NewRandom("a", 42)
	b := NewRandom("b", 42)
	for i := 0; i < 10; i++ {
		mvA, errA := a.ChooseMove(view, moves)
		mvB, errB := b.ChooseMove(view, moves)
		require.NoError(t, errA)
		require.NoError(t, errB)
		require.Equal(t, mvA, mvB, "pick %d", i)
	}
}

func TestRandomPicksFromOfferedMoves(t *testing.T) {
	view, moves := fullView(t, 4, 3)
	legal := make(map[game.Move]bool, len(moves))
	for _, mv := range moves {
		legal[mv] = true
	}
	r := NewRandom("r", 1)
	for i := 0; i < 50; i++ {
		mv, err := r.ChooseMove(view, moves)
		require.NoError(t, err)
		require.True(t, legal[mv], "pick %v not among the offered moves", mv)
	}
}

func TestRandomRejectsEmptyMoveList(t *testing.T) {
	view, _ := fullView(t, 3, 3)
	_, err := NewRandom("r", 1).ChooseMove(view, nil)
	require.Error(t, err)
}

func TestRandomDefaultName(t *testing.T) {
	require.Equal(t, DefaultRandomName, NewRandom("", 1).Name())
	require.Equal(t, "Dicey", NewRandom("Dicey", 1).Name())
}
