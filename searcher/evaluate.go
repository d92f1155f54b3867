// Package searcher implements move selection for generalized tic-tac-toe:
// depth-limited minimax with alpha-beta pruning over a sliding-window
// position heuristic.
package searcher

import "tictactoe/game"

// Evaluate scores a position from the given player's perspective. Higher is
// better for that player, and the score for one player is the negation of
// the score for the opponent.
type Evaluate func(b *game.Board, p game.Cell) float64

// Threat tiers for a single window. A window one mark short of a win
// dominates everything else; two marks short still beats raw material.
const (
	immediateThreatScore = 10
	doubleThreatScore    = 5
)

// NewWindowEvaluator returns the standard heuristic. Every window of
// winLength consecutive cells in every row and column is scored per side and
// the two totals are subtracted. A window holding both marks is dead and
// scores zero; winLength-1 own marks with one gap score the immediate threat
// tier; winLength-2 own marks with two gaps score the double threat tier;
// any other unblocked window scores its own-mark count. With diagonals set,
// windows along both diagonal directions are scanned too; the classic scan
// covered rows and columns only.
func NewWindowEvaluator(diagonals bool) Evaluate {
	return func(b *game.Board, p game.Cell) float64 {
		return windowScore(b, p, diagonals) - windowScore(b, p.Opponent(), diagonals)
	}
}

func windowScore(b *game.Board, p game.Cell, diagonals bool) float64 {
	size, k := b.Size(), b.WinLength()
	if k > size {
		return 0
	}
	var total float64
	for r := 0; r < size; r++ {
		for c := 0; c+k <= size; c++ {
			total += scoreWindow(b, p, r, c, 0, 1)
		}
	}
	for c := 0; c < size; c++ {
		for r := 0; r+k <= size; r++ {
			total += scoreWindow(b, p, r, c, 1, 0)
		}
	}
	if diagonals {
		for r := 0; r+k <= size; r++ {
			for c := 0; c+k <= size; c++ {
				total += scoreWindow(b, p, r, c, 1, 1)
			}
		}
		for r := 0; r+k <= size; r++ {
			for c := k - 1; c < size; c++ {
				total += scoreWindow(b, p, r, c, 1, -1)
			}
		}
	}
	return total
}

// scoreWindow rates the winLength-cell window starting at (row, col) and
// stepping by (dr, dc) for player p.
func scoreWindow(b *game.Board, p game.Cell, row, col, dr, dc int) float64 {
	k := b.WinLength()
	own, empty := 0, 0
	for i := 0; i < k; i++ {
		switch b.At(row+i*dr, col+i*dc) {
		case p:
			own++
		case game.Empty:
			empty++
		default:
			return 0 // opponent inside, window is dead
		}
	}
	switch {
	case own == k-1 && empty == 1:
		return immediateThreatScore
	case own == k-2 && empty == 2:
		return doubleThreatScore
	default:
		return float64(own)
	}
}
