package player

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tictactoe/game"
)

func TestHumanReadsMove(t *testing.T) {
	view, moves := fullView(t, 3, 3)
	var out bytes.Buffer
	h := NewHuman("Ada", strings.NewReader("1 2\n"), &out)
	h.BeginGame(game.X)

	mv, err := h.ChooseMove(view, moves)
	require.NoError(t, err)
	require.Equal(t, game.Move{Row: 1, Col: 2}, mv)
	require.Contains(t, out.String(), "Ada (X), enter your move")
}

func TestHumanRepromptsUntilValid(t *testing.T) {
	b, err := game.NewBoard(3, 3)
	require.NoError(t, err)
	require.True(t, b.ApplyMove(0, 0, game.O))

	var out bytes.Buffer
	h := NewHuman("Ada", strings.NewReader("nonsense\n0 0\n2 2\n"), &out)
	h.BeginGame(game.X)

	mv, err := h.ChooseMove(b.Snapshot(), b.LegalMoves())
	require.NoError(t, err)
	require.Equal(t, game.Move{Row: 2, Col: 2}, mv)
	require.Contains(t, out.String(), "two numbers", "garbage should explain the format")
	require.Contains(t, out.String(), "Invalid move", "occupied square should be refused")
}

func TestHumanPreviewIsCapped(t *testing.T) {
	view, moves := fullView(t, 5, 4)
	var out bytes.Buffer
	h := NewHuman("Ada", strings.NewReader("99 99\n0 0\n"), &out)
	h.BeginGame(game.O)

	_, err := h.ChooseMove(view, moves)
	require.NoError(t, err)
	require.Contains(t, out.String(), "and 15 more", "25 legal moves should preview 10")
}

func TestHumanClosedInputForfeits(t *testing.T) {
	view, moves := fullView(t, 3, 3)
	var out bytes.Buffer
	h := NewHuman("Ada", strings.NewReader(""), &out)
	h.BeginGame(game.X)

	_, err := h.ChooseMove(view, moves)
	require.Error(t, err)
	require.Contains(t, err.Error(), "input closed")
}

func TestHumanGameOverMessages(t *testing.T) {
	var out bytes.Buffer
	h := NewHuman("Ada", strings.NewReader(""), &out)
	h.BeginGame(game.X)

	h.GameOver(game.X)
	h.GameOver(game.O)
	h.GameOver(game.Empty)

	text := out.String()
	require.Contains(t, text, "Ada wins!")
	require.Contains(t, text, "Ada loses.")
	require.Contains(t, text, "draw")
}
