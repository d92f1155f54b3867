package searcher

import (
	"errors"
	"math"

	"tictactoe/game"
)

// winScore anchors the scores of decided positions. A win reached at depth d
// scores winScore-d, so a shallower win always outranks a deeper one and a
// winning engine closes the game out instead of wandering.
const winScore = 1000.0

// ErrNoMoves is returned when ChooseMove is handed an empty candidate list.
// That is a caller bug, not a pass.
var ErrNoMoves = errors.New("searcher: no legal moves to choose from")

// DefaultDepth returns the depth limit used when the caller sets none:
// exhaustive up to 3x3, six plies up to 5x5, three plies beyond. Zero means
// unlimited.
func DefaultDepth(size int) int {
	switch {
	case size <= 3:
		return 0
	case size <= 5:
		return 6
	default:
		return 3
	}
}

// Minimax picks moves by depth-limited minimax with alpha-beta pruning. It
// keeps the metric of its last search, so it is not safe for concurrent use;
// build one per goroutine.
type Minimax struct {
	depth    int
	evaluate Evaluate
	metrics  Collector
	last     SearchMetric
}

type Option func(m *Minimax)

// WithDepth fixes the depth limit in plies. Values below 1 keep the
// size-derived default.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithEvaluator replaces the leaf evaluator.
func WithEvaluator(evaluate Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithDiagonals rebuilds the standard window evaluator with or without
// diagonal scanning. Diagonals are on by default; passing false restores the
// classic rows-and-columns scan.
func WithDiagonals(enabled bool) Option {
	return func(m *Minimax) {
		m.evaluate = NewWindowEvaluator(enabled)
	}
}

// WithMetrics attaches a collector recording node counts and timing for
// every search.
func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = NewCollector()
	}
}

func New(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		evaluate: NewWindowEvaluator(true),
		metrics:  NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// ChooseMove returns the best move for p among moves on b. The board is
// mutated through apply/undo pairs during the search and is back in its
// entry state when ChooseMove returns. Candidates are tried in the given
// order and ties keep the earliest winner, so identical inputs always give
// identical outputs.
func (m *Minimax) ChooseMove(b *game.Board, moves []game.Move, p game.Cell) (game.Move, error) {
	if len(moves) == 0 {
		return game.Move{}, ErrNoMoves
	}

	limit := m.depth
	if limit <= 0 {
		limit = DefaultDepth(b.Size())
	}
	if cells := b.Size() * b.Size(); limit <= 0 || limit > cells {
		// Deeper than the board can fill is just an exhaustive search.
		limit = cells
	}

	m.metrics.Start(limit)
	best := moves[0]
	bestScore := math.Inf(-1)
	for _, mv := range moves {
		b.ApplyMove(mv.Row, mv.Col, p)
		score := m.search(b, mv, 0, false, math.Inf(-1), math.Inf(1), limit, p)
		b.UndoMove(mv.Row, mv.Col)
		if score > bestScore {
			bestScore, best = score, mv
		}
	}
	m.last = m.metrics.Complete()
	return best, nil
}

// LastMetric returns the counters from the most recent ChooseMove.
func (m *Minimax) LastMetric() SearchMetric { return m.last }

// search scores the position reached by playing last, depth plies past the
// root candidate. maximizing is true when the root player is to move. Wins
// are detected at the move that produced the node, so only the two arms
// around last are ever scanned.
func (m *Minimax) search(b *game.Board, last game.Move, depth int, maximizing bool, alpha, beta float64, limit int, root game.Cell) float64 {
	m.metrics.AddNode()

	if b.CheckWin(last.Row, last.Col) {
		if b.At(last.Row, last.Col) == root {
			return winScore - float64(depth)
		}
		return -winScore + float64(depth)
	}
	if b.EmptyCount() == 0 {
		return 0
	}
	if depth >= limit {
		m.metrics.AddLeaf()
		return m.evaluate(b, root)
	}

	moves := b.LegalMoves()
	if maximizing {
		best := math.Inf(-1)
		for _, mv := range moves {
			b.ApplyMove(mv.Row, mv.Col, root)
			score := m.search(b, mv, depth+1, false, alpha, beta, limit, root)
			b.UndoMove(mv.Row, mv.Col)
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				m.metrics.AddCutoff()
				break
			}
		}
		return best
	}

	opponent := root.Opponent()
	best := math.Inf(1)
	for _, mv := range moves {
		b.ApplyMove(mv.Row, mv.Col, opponent)
		score := m.search(b, mv, depth+1, true, alpha, beta, limit, root)
		b.UndoMove(mv.Row, mv.Col)
		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			m.metrics.AddCutoff()
			break
		}
	}
	return best
}
