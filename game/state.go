package game

// HistoryEntry records one applied move in play order.
type HistoryEntry struct {
	Move   Move
	Player Cell
}

// State couples a board with turn order and outcome tracking. The raw board
// stays reachable through Board for code that needs apply/undo access; the
// engine plays through State so alternation and game-over bookkeeping cannot
// drift from the grid.
type State struct {
	board    *Board
	current  Cell
	finished bool
	winner   Cell
	history  []HistoryEntry
}

// NewState starts a fresh game. X always moves first.
func NewState(size, winLength int) (*State, error) {
	b, err := NewBoard(size, winLength)
	if err != nil {
		return nil, err
	}
	return &State{board: b, current: X}, nil
}

func (s *State) Board() *Board       { return s.board }
func (s *State) CurrentPlayer() Cell { return s.current }
func (s *State) Finished() bool      { return s.finished }

// Winner returns the winning mark once the game is over. Empty means a draw,
// or a game still in progress.
func (s *State) Winner() Cell { return s.winner }

// History returns a copy of the moves applied so far, oldest first.
func (s *State) History() []HistoryEntry {
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Play applies a move for the side to move. It reports false, changing
// nothing, when the game is already over or the square is unplayable. On
// success the turn passes to the opponent unless the move ended the game;
// after a win the winner stays the current player.
func (s *State) Play(row, col int) bool {
	if s.finished {
		return false
	}
	if !s.board.ApplyMove(row, col, s.current) {
		return false
	}
	s.history = append(s.history, HistoryEntry{Move: Move{Row: row, Col: col}, Player: s.current})
	switch {
	case s.board.CheckWin(row, col):
		s.finished = true
		s.winner = s.current
	case s.board.EmptyCount() == 0:
		s.finished = true
	default:
		s.current = s.current.Opponent()
	}
	return true
}

// Reset clears the game for a rematch on the same dimensions.
func (s *State) Reset() {
	for i := range s.board.cells {
		s.board.cells[i] = Empty
	}
	s.board.empty = len(s.board.cells)
	s.board.last = Move{}
	s.board.lastBy = Empty
	s.current = X
	s.finished = false
	s.winner = Empty
	s.history = s.history[:0]
}
