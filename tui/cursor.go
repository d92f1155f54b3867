package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tictactoe/game"
	"tictactoe/player"
)

// CursorPlayer is an interactive seat driven by the display. Run
// attaches it to the program before the game starts; unattached it
// cannot move.
type CursorPlayer struct {
	name    string
	side    game.Cell
	updates chan<- tea.Msg
	done    <-chan struct{}
}

// NewCursorPlayer returns an interactive seat with the given display
// name.
func NewCursorPlayer(name string) *CursorPlayer {
	if name == "" {
		name = player.DefaultHumanName
	}
	return &CursorPlayer{name: name}
}

func (c *CursorPlayer) Name() string              { return c.name }
func (c *CursorPlayer) BeginGame(side game.Cell)  { c.side = side }
func (c *CursorPlayer) GameOver(winner game.Cell) {}

func (c *CursorPlayer) attach(updates chan<- tea.Msg, done <-chan struct{}) {
	c.updates = updates
	c.done = done
}

// ChooseMove hands the turn to the display and waits for the selected
// square. Closing the display while a request is pending returns an
// error, which the engine treats as a forfeit.
func (c *CursorPlayer) ChooseMove(_ game.BoardView, moves []game.Move) (game.Move, error) {
	if c.updates == nil {
		return game.Move{}, errors.New("tui: cursor player is not attached to a display")
	}

	legal := make(map[game.Move]bool, len(moves))
	for _, mv := range moves {
		legal[mv] = true
	}
	req := moveRequestMsg{side: c.side, legal: legal, reply: make(chan moveReply, 1)}

	select {
	case c.updates <- req:
	case <-c.done:
		return game.Move{}, errors.New("tui: display closed")
	}
	select {
	case rep := <-req.reply:
		return rep.mv, rep.err
	case <-c.done:
		return game.Move{}, errors.New("tui: display closed")
	}
}
