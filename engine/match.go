// Package engine runs games between two move sources and turns whatever
// happens, including misbehaving players, into a settled Result.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/game"
	"tictactoe/player"
)

// Reason explains how a game reached its result.
type Reason int

const (
	// ReasonPlayed marks a result settled on the board, win or draw.
	ReasonPlayed Reason = iota
	// ReasonInvalidMove marks a forfeit for an illegal or out-of-range move.
	ReasonInvalidMove
	// ReasonAgentError marks a forfeit for an error or panic inside ChooseMove.
	ReasonAgentError
	// ReasonTimeout marks a forfeit for overrunning the per-move budget.
	ReasonTimeout
)

func (r Reason) String() string {
	switch r {
	case ReasonPlayed:
		return "played"
	case ReasonInvalidMove:
		return "invalid move"
	case ReasonAgentError:
		return "agent error"
	case ReasonTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// SeatStats aggregates move timing for one seat over a game.
type SeatStats struct {
	Moves   int
	Total   time.Duration
	Longest time.Duration
}

func (s *SeatStats) record(d time.Duration) {
	s.Moves++
	s.Total += d
	if d > s.Longest {
		s.Longest = d
	}
}

// Average is the mean thinking time per move, zero before the first move.
func (s SeatStats) Average() time.Duration {
	if s.Moves == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Moves)
}

// Result is the full outcome of one game.
type Result struct {
	PlayerX  string
	PlayerO  string
	Winner   game.Cell // Empty for a draw
	Reason   Reason
	Offender string // forfeiting player, empty otherwise
	Moves    []game.HistoryEntry
	StatsX   SeatStats
	StatsO   SeatStats
	Duration time.Duration
}

// WinnerName resolves the winning mark to a player name, empty for a draw.
func (r Result) WinnerName() string {
	switch r.Winner {
	case game.X:
		return r.PlayerX
	case game.O:
		return r.PlayerO
	default:
		return ""
	}
}

// Forfeit reports whether the game ended by disqualification.
func (r Result) Forfeit() bool { return r.Reason != ReasonPlayed }

type Option func(m *Match)

// WithTimeout sets the per-move time budget. A move is never interrupted
// mid-search; the clock is read after ChooseMove returns and an overrun
// forfeits the game. Zero disables the budget.
func WithTimeout(d time.Duration) Option {
	return func(m *Match) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithObserver registers a callback invoked after every applied move with
// the entry and the position it produced. Displays and live recorders hang
// off this hook; it runs on the match goroutine, so it should return fast.
func WithObserver(observe func(game.HistoryEntry, game.BoardView)) Option {
	return func(m *Match) {
		m.observe = observe
	}
}

// Match plays games of one fixed board configuration.
type Match struct {
	size      int
	winLength int
	timeout   time.Duration
	observe   func(game.HistoryEntry, game.BoardView)
}

func NewMatch(size, winLength int, options ...Option) (*Match, error) {
	if _, err := game.NewBoard(size, winLength); err != nil {
		return nil, err
	}
	m := &Match{size: size, winLength: winLength}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

func (m *Match) Size() int      { return m.size }
func (m *Match) WinLength() int { return m.winLength }

// Play runs one game to completion with px holding X and po holding O. The
// error covers board setup only; player misbehavior ends as a forfeit inside
// the Result, never as an error.
func (m *Match) Play(px, po player.MoveSource) (Result, error) {
	state, err := game.NewState(m.size, m.winLength)
	if err != nil {
		return Result{}, err
	}

	seats := map[game.Cell]player.MoveSource{game.X: px, game.O: po}
	result := Result{PlayerX: px.Name(), PlayerO: po.Name()}
	stats := map[game.Cell]*SeatStats{game.X: &result.StatsX, game.O: &result.StatsO}

	beginGame(px, game.X)
	beginGame(po, game.O)
	log.Info().
		Str("x", px.Name()).
		Str("o", po.Name()).
		Int("size", m.size).
		Int("win_length", m.winLength).
		Msg("game starting")

	start := time.Now()
	for !state.Finished() {
		side := state.CurrentPlayer()
		src := seats[side]
		moves := state.Board().LegalMoves()

		turnStart := time.Now()
		mv, err := safeChoose(src, state.Board().Snapshot(), moves)
		elapsed := time.Since(turnStart)
		stats[side].record(elapsed)

		if err != nil {
			log.Warn().Err(err).Str("player", src.Name()).Msg("agent failed, forfeiting")
			m.forfeit(&result, side, src.Name(), ReasonAgentError)
			break
		}
		if m.timeout > 0 && elapsed > m.timeout {
			log.Warn().
				Str("player", src.Name()).
				Dur("took", elapsed).
				Dur("budget", m.timeout).
				Msg("move over budget, forfeiting")
			m.forfeit(&result, side, src.Name(), ReasonTimeout)
			break
		}
		if !state.Play(mv.Row, mv.Col) {
			log.Warn().Str("player", src.Name()).Stringer("move", mv).Msg("illegal move, forfeiting")
			m.forfeit(&result, side, src.Name(), ReasonInvalidMove)
			break
		}

		log.Debug().Str("player", src.Name()).Stringer("move", mv).Dur("took", elapsed).Msg("move applied")
		if m.observe != nil {
			m.observe(game.HistoryEntry{Move: mv, Player: side}, state.Board().Snapshot())
		}
	}

	if result.Reason == ReasonPlayed {
		result.Winner = state.Winner()
	}
	result.Moves = state.History()
	result.Duration = time.Since(start)

	notifyGameOver(px, result.Winner)
	notifyGameOver(po, result.Winner)

	if result.Winner == game.Empty {
		log.Info().Int("moves", len(result.Moves)).Dur("duration", result.Duration).Msg("game drawn")
	} else {
		log.Info().
			Str("winner", result.WinnerName()).
			Stringer("reason", result.Reason).
			Int("moves", len(result.Moves)).
			Dur("duration", result.Duration).
			Msg("game over")
	}
	return result, nil
}

func (m *Match) forfeit(result *Result, offender game.Cell, name string, reason Reason) {
	result.Winner = offender.Opponent()
	result.Reason = reason
	result.Offender = name
}

// safeChoose runs ChooseMove, converting a panic into an error so one broken
// agent loses its game instead of taking the process down.
func safeChoose(src player.MoveSource, view game.BoardView, moves []game.Move) (mv game.Move, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("agent panic: %v", r)
		}
	}()
	return src.ChooseMove(view, moves)
}

func beginGame(src player.MoveSource, side game.Cell) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Str("player", src.Name()).Msg("agent panicked in BeginGame")
		}
	}()
	src.BeginGame(side)
}

// notifyGameOver delivers the result and swallows agent panics; the game is
// already decided.
func notifyGameOver(src player.MoveSource, winner game.Cell) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Str("player", src.Name()).Msg("agent panicked in GameOver")
		}
	}()
	src.GameOver(winner)
}
