package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"tictactoe/game"
	"tictactoe/player"
)

func TestNewCursorPlayerName(t *testing.T) {
	require.Equal(t, "Dana", NewCursorPlayer("Dana").Name())
	require.Equal(t, player.DefaultHumanName, NewCursorPlayer("").Name())
}

func TestCursorPlayerUnattached(t *testing.T) {
	c := NewCursorPlayer("Dana")
	board, err := game.NewBoard(3, 3)
	require.NoError(t, err)

	_, err = c.ChooseMove(board.Snapshot(), board.LegalMoves())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not attached")
}

func TestCursorPlayerRoundTrip(t *testing.T) {
	c := NewCursorPlayer("Dana")
	updates := make(chan tea.Msg, 1)
	done := make(chan struct{})
	c.attach(updates, done)
	c.BeginGame(game.O)

	board, err := game.NewBoard(3, 3)
	require.NoError(t, err)

	type answer struct {
		mv  game.Move
		err error
	}
	got := make(chan answer, 1)
	go func() {
		mv, err := c.ChooseMove(board.Snapshot(), board.LegalMoves())
		got <- answer{mv, err}
	}()

	var req moveRequestMsg
	select {
	case msg := <-updates:
		var ok bool
		req, ok = msg.(moveRequestMsg)
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("no move request reached the display")
	}
	require.Equal(t, game.O, req.side)
	require.Len(t, req.legal, 9)
	require.True(t, req.legal[game.Move{Row: 2, Col: 0}])

	req.reply <- moveReply{mv: game.Move{Row: 2, Col: 0}}

	select {
	case ans := <-got:
		require.NoError(t, ans.err)
		require.Equal(t, game.Move{Row: 2, Col: 0}, ans.mv)
	case <-time.After(time.Second):
		t.Fatal("ChooseMove never returned")
	}
}

func TestCursorPlayerDisplayClosed(t *testing.T) {
	board, err := game.NewBoard(3, 3)
	require.NoError(t, err)

	t.Run("while sending the request", func(t *testing.T) {
		c := NewCursorPlayer("Dana")
		done := make(chan struct{})
		close(done)
		// Unbuffered channel with no reader, so the send cannot win.
		c.attach(make(chan tea.Msg), done)

		_, err := c.ChooseMove(board.Snapshot(), board.LegalMoves())
		require.Error(t, err)
		require.Contains(t, err.Error(), "display closed")
	})

	t.Run("while waiting for the reply", func(t *testing.T) {
		c := NewCursorPlayer("Dana")
		updates := make(chan tea.Msg, 1)
		done := make(chan struct{})
		c.attach(updates, done)

		got := make(chan error, 1)
		go func() {
			_, err := c.ChooseMove(board.Snapshot(), board.LegalMoves())
			got <- err
		}()

		select {
		case <-updates:
		case <-time.After(time.Second):
			t.Fatal("no move request reached the display")
		}
		close(done)

		select {
		case err := <-got:
			require.Error(t, err)
			require.Contains(t, err.Error(), "display closed")
		case <-time.After(time.Second):
			t.Fatal("ChooseMove never returned")
		}
	})
}
