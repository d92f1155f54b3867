package game

// The four axes a winning line can run along, as (dRow, dCol) steps. Each is
// walked in both directions from the anchor cell.
var lineAxes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal
	{1, -1}, // anti-diagonal
}

// CheckWin reports whether the mark at (row, col) completes a run of at least
// winLength marks along any axis. Only the two arms around the anchor cell
// are inspected, never the whole grid, so a call costs O(winLength) on any
// board size. The anchor must be the move just played; a finished line
// elsewhere on the board is not found from an unrelated anchor.
func (b *Board) CheckWin(row, col int) bool {
	if !b.InBounds(row, col) {
		return false
	}
	mark := b.cells[row*b.size+col]
	if mark == Empty {
		return false
	}
	for _, axis := range lineAxes {
		run := 1 +
			b.runFrom(row, col, axis[0], axis[1], mark) +
			b.runFrom(row, col, -axis[0], -axis[1], mark)
		if run >= b.winLength {
			return true
		}
	}
	return false
}

// runFrom counts consecutive cells holding mark, starting one step away from
// (row, col) in direction (dr, dc). The walk stops after winLength steps;
// longer runs cannot change the outcome.
func (b *Board) runFrom(row, col, dr, dc int, mark Cell) int {
	n := 0
	for r, c := row+dr, col+dc; n < b.winLength && b.InBounds(r, c) && b.cells[r*b.size+c] == mark; r, c = r+dr, c+dc {
		n++
	}
	return n
}

// WinningLine returns the full run of cells through (row, col) on the first
// axis holding a completed line, ordered end to end, or nil when the anchor
// completes nothing. Display code uses it to highlight the winning row.
func (b *Board) WinningLine(row, col int) []Move {
	if !b.InBounds(row, col) {
		return nil
	}
	mark := b.cells[row*b.size+col]
	if mark == Empty {
		return nil
	}
	for _, axis := range lineAxes {
		dr, dc := axis[0], axis[1]
		back := b.runFrom(row, col, -dr, -dc, mark)
		ahead := b.runFrom(row, col, dr, dc, mark)
		if back+1+ahead < b.winLength {
			continue
		}
		line := make([]Move, 0, back+1+ahead)
		for i := back; i > 0; i-- {
			line = append(line, Move{Row: row - i*dr, Col: col - i*dc})
		}
		line = append(line, Move{Row: row, Col: col})
		for i := 1; i <= ahead; i++ {
			line = append(line, Move{Row: row + i*dr, Col: col + i*dc})
		}
		return line
	}
	return nil
}
