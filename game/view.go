package game

// BoardView is a read-only copy of a board position handed to move sources.
// It shares no memory with the live board, so an agent may keep it around or
// read it from another goroutine; it has no mutators, so a buggy agent cannot
// corrupt the game it was cut from.
type BoardView struct {
	size      int
	winLength int
	cells     []Cell
}

func (v BoardView) Size() int      { return v.size }
func (v BoardView) WinLength() int { return v.winLength }

// InBounds reports whether (row, col) addresses a square on the board.
func (v BoardView) InBounds(row, col int) bool {
	return row >= 0 && row < v.size && col >= 0 && col < v.size
}

// At returns the mark at (row, col), panicking out of range like Board.At.
func (v BoardView) At(row, col int) Cell {
	if !v.InBounds(row, col) {
		panic("game: view cell out of range")
	}
	return v.cells[row*v.size+col]
}

// Scratch rebuilds a mutable Board holding the same position. Agents that
// run their own search take one scratch copy per turn and apply and undo
// moves on it freely.
func (v BoardView) Scratch() *Board {
	cells := make([]Cell, len(v.cells))
	empty := 0
	for i, c := range v.cells {
		cells[i] = c
		if c == Empty {
			empty++
		}
	}
	return &Board{size: v.size, winLength: v.winLength, cells: cells, empty: empty}
}

func (v BoardView) String() string {
	return renderGrid(v.size, v.At)
}
