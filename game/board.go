// Package game holds the board representation and rules for generalized
// tic-tac-toe: a square grid of configurable size on which a configurable
// number of marks in a row wins.
package game

import (
	"fmt"
	"strings"
)

// Cell holds the contents of one board square. The zero value is an empty
// square; the two players are the non-zero marks.
type Cell int8

const (
	Empty Cell = 0
	X     Cell = -1
	O     Cell = 1
)

// Opponent returns the other player's mark. Empty has no opponent and maps
// to itself.
func (c Cell) Opponent() Cell { return -c }

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Move addresses one square by zero-based row and column.
type Move struct {
	Row int
	Col int
}

func (m Move) String() string { return fmt.Sprintf("(%d,%d)", m.Row, m.Col) }

// Board sizes accepted by NewBoard.
const (
	MinBoardSize = 3
	MaxBoardSize = 100
)

// DefaultWinLength is the win length used when a game does not pick its own:
// the full board edge up to 5x5, then gomoku-style five in a row.
func DefaultWinLength(size int) int {
	if size <= 5 {
		return size
	}
	return 5
}

// Board is a size x size grid backed by a single flat slice, with a running
// count of empty squares and the last applied move kept alongside so draw
// checks and win checks need no grid scan. Board is not safe for concurrent
// use; search code clones one per goroutine instead of locking.
type Board struct {
	size      int
	winLength int
	cells     []Cell
	empty     int
	last      Move
	lastBy    Cell
}

// NewBoard returns an empty board. Size must lie in [MinBoardSize,
// MaxBoardSize] and winLength must be at least 1. A winLength larger than
// size is accepted; such a game cannot be won and always ends in a draw.
func NewBoard(size, winLength int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("board size %d out of range [%d,%d]", size, MinBoardSize, MaxBoardSize)
	}
	if winLength < 1 {
		return nil, fmt.Errorf("win length %d must be at least 1", winLength)
	}
	return &Board{
		size:      size,
		winLength: winLength,
		cells:     make([]Cell, size*size),
		empty:     size * size,
	}, nil
}

func (b *Board) Size() int       { return b.size }
func (b *Board) WinLength() int  { return b.winLength }
func (b *Board) EmptyCount() int { return b.empty }

// InBounds reports whether (row, col) addresses a square on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// At returns the mark at (row, col). It panics on an out-of-range cell;
// flattening an out-of-range coordinate would silently alias another square.
func (b *Board) At(row, col int) Cell {
	return b.cells[b.index(row, col)]
}

func (b *Board) index(row, col int) int {
	if !b.InBounds(row, col) {
		panic(fmt.Sprintf("game: cell (%d,%d) out of range for board size %d", row, col, b.size))
	}
	return row*b.size + col
}

// ApplyMove places p at (row, col). It reports false, changing nothing, when
// the square is out of range or already taken, or when p is Empty.
func (b *Board) ApplyMove(row, col int, p Cell) bool {
	if p == Empty || !b.InBounds(row, col) {
		return false
	}
	i := row*b.size + col
	if b.cells[i] != Empty {
		return false
	}
	if b.empty <= 0 {
		panic("game: empty count out of sync with grid")
	}
	b.cells[i] = p
	b.empty--
	b.last = Move{Row: row, Col: col}
	b.lastBy = p
	return true
}

// UndoMove clears (row, col) again. It exists for search code unwinding its
// own ApplyMove calls and panics when asked to undo an empty square, since
// that means the caller's apply/undo pairing is broken. The last-move marker
// is not rewound.
func (b *Board) UndoMove(row, col int) {
	i := b.index(row, col)
	if b.cells[i] == Empty {
		panic(fmt.Sprintf("game: undo of empty cell (%d,%d)", row, col))
	}
	b.cells[i] = Empty
	b.empty++
}

// LegalMoves returns every empty square in row-major order. The ordering is
// part of the contract: deterministic agents rely on it.
func (b *Board) LegalMoves() []Move {
	moves := make([]Move, 0, b.empty)
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.cells[r*b.size+c] == Empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// LastMove returns the most recently applied move and its mark. The mark is
// Empty while the board is untouched.
func (b *Board) LastMove() (Move, Cell) {
	return b.last, b.lastBy
}

// Clone returns an independent copy sharing no memory with b.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:      b.size,
		winLength: b.winLength,
		cells:     cells,
		empty:     b.empty,
		last:      b.last,
		lastBy:    b.lastBy,
	}
}

// Snapshot returns a read-only copy for handing to untrusted agents.
func (b *Board) Snapshot() BoardView {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return BoardView{size: b.size, winLength: b.winLength, cells: cells}
}

// String renders the grid with row and column headers, matching what a human
// player sees at the prompt.
func (b *Board) String() string {
	return renderGrid(b.size, func(r, c int) Cell { return b.cells[r*b.size+c] })
}

func renderGrid(size int, at func(r, c int) Cell) string {
	width := len(fmt.Sprintf("%d", size-1))
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width+1))
	for c := 0; c < size; c++ {
		fmt.Fprintf(&sb, " %*d", width, c)
	}
	sb.WriteByte('\n')
	for r := 0; r < size; r++ {
		fmt.Fprintf(&sb, "%*d ", width, r)
		for c := 0; c < size; c++ {
			fmt.Fprintf(&sb, " %*s", width, at(r, c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
