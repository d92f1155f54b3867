package player

import (
	"fmt"

	"tictactoe/game"
	"tictactoe/searcher"
)

// Minimax drives the alpha-beta searcher from a seat. Each turn it rebuilds
// a scratch board from the view and searches on that copy, so the live game
// never sees the search's apply/undo churn.
type Minimax struct {
	name    string
	search  *searcher.Minimax
	side    game.Cell
	metrics []searcher.SearchMetric
}

func NewMinimax(name string, options ...searcher.Option) *Minimax {
	if name == "" {
		name = DefaultMinimaxName
	}
	return &Minimax{name: name, search: searcher.New(options...)}
}

func (m *Minimax) Name() string { return m.name }

func (m *Minimax) BeginGame(side game.Cell) {
	m.side = side
	m.metrics = nil
}

func (m *Minimax) ChooseMove(view game.BoardView, moves []game.Move) (game.Move, error) {
	if m.side == game.Empty {
		return game.Move{}, fmt.Errorf("minimax: no side assigned before the first move")
	}
	mv, err := m.search.ChooseMove(view.Scratch(), moves, m.side)
	if err != nil {
		return game.Move{}, err
	}
	// The dummy collector reports zero nodes; only real searches count.
	if metric := m.search.LastMetric(); metric.Nodes > 0 {
		m.metrics = append(m.metrics, metric)
	}
	return mv, nil
}

func (m *Minimax) GameOver(winner game.Cell) {}

// LastMetric exposes the search counters of the turn just taken.
func (m *Minimax) LastMetric() searcher.SearchMetric { return m.search.LastMetric() }

// TakeMetrics drains the per-turn counters gathered since BeginGame.
// Empty unless the searcher was built with metrics enabled.
func (m *Minimax) TakeMetrics() []searcher.SearchMetric {
	taken := m.metrics
	m.metrics = nil
	return taken
}
