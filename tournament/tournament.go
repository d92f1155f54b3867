// Package tournament runs head-to-head series and round-robin
// tournaments on top of the match engine.
package tournament

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"
)

// searchCounter is implemented by players that count their search work,
// such as minimax built with metrics enabled.
type searchCounter interface {
	TakeMetrics() []searcher.SearchMetric
}

type options struct {
	timeout  time.Duration
	onGame   func(n int, res engine.Result)
	recorder *Recorder
	matchup  int
}

type Option func(o *options)

// WithTimeout forwards a per-move time budget to every game.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithGameHook registers a callback invoked after each finished game
// with its one-based number within the series.
func WithGameHook(fn func(n int, res engine.Result)) Option {
	return func(o *options) {
		o.onGame = fn
	}
}

// WithRecorder streams per-game and per-series rows into rec.
func WithRecorder(rec *Recorder) Option {
	return func(o *options) {
		o.recorder = rec
	}
}

func withMatchup(id int) Option {
	return func(o *options) {
		o.matchup = id
	}
}

// SeriesResult aggregates a head-to-head series. Wins are counted from
// the fixed player order handed to RunSeries, not from the seats, which
// swap every game.
type SeriesResult struct {
	Player1  string
	Player2  string
	Games    int
	Wins1    int
	Wins2    int
	Draws    int
	Forfeits int
}

// RunSeries plays the given number of games between p1 and p2 on one
// board configuration. The first mover alternates each game.
func RunSeries(p1, p2 player.MoveSource, size, winLength, games int, opts ...Option) (SeriesResult, error) {
	if games < 1 {
		return SeriesResult{}, fmt.Errorf("tournament: series needs at least one game, got %d", games)
	}
	o := options{matchup: 1}
	for _, opt := range opts {
		opt(&o)
	}

	var engineOpts []engine.Option
	if o.timeout > 0 {
		engineOpts = append(engineOpts, engine.WithTimeout(o.timeout))
	}
	match, err := engine.NewMatch(size, winLength, engineOpts...)
	if err != nil {
		return SeriesResult{}, err
	}

	res := SeriesResult{Player1: p1.Name(), Player2: p2.Name(), Games: games}
	log.Info().
		Str("player1", res.Player1).
		Str("player2", res.Player2).
		Int("games", games).
		Int("size", size).
		Int("win_length", match.WinLength()).
		Msg("series starting")

	every := games / 10
	if every < 1 {
		every = 1
	}

	for i := 0; i < games; i++ {
		px, po := p1, p2
		if i%2 == 1 {
			px, po = p2, p1
		}

		outcome, err := match.Play(px, po)
		if err != nil {
			return res, err
		}

		// Map the winning mark back to the unswapped player order.
		winner := outcome.Winner
		if i%2 == 1 {
			winner = winner.Opponent()
		}
		switch winner {
		case game.X:
			res.Wins1++
		case game.O:
			res.Wins2++
		default:
			res.Draws++
		}
		if outcome.Forfeit() {
			res.Forfeits++
		}

		if o.recorder != nil {
			o.recorder.AddGame(GameRecord{
				Matchup:  o.matchup,
				Game:     i + 1,
				PlayerX:  outcome.PlayerX,
				PlayerO:  outcome.PlayerO,
				Winner:   winnerLabel(outcome),
				Reason:   outcome.Reason.String(),
				Moves:    len(outcome.Moves),
				Duration: outcome.Duration,
			})
			for _, seat := range []player.MoveSource{px, po} {
				counter, ok := seat.(searchCounter)
				if !ok {
					continue
				}
				for turn, metric := range counter.TakeMetrics() {
					o.recorder.AddSearch(SearchRecord{
						Matchup:  o.matchup,
						Game:     i + 1,
						Player:   seat.Name(),
						Turn:     turn + 1,
						Depth:    metric.Depth,
						Nodes:    metric.Nodes,
						Leaves:   metric.Leaves,
						Cutoffs:  metric.Cutoffs,
						Duration: metric.Duration,
					})
				}
			}
		}
		if o.onGame != nil {
			o.onGame(i+1, outcome)
		}
		if (i+1)%every == 0 {
			log.Info().Int("played", i+1).Int("games", games).Msg("series progress")
		}
	}

	if o.recorder != nil {
		o.recorder.AddMatchup(MatchupRecord{
			Matchup: o.matchup,
			Player1: res.Player1,
			Player2: res.Player2,
			Games:   res.Games,
			Wins1:   res.Wins1,
			Wins2:   res.Wins2,
			Draws:   res.Draws,
		})
	}

	log.Info().
		Str("player1", res.Player1).
		Int("wins1", res.Wins1).
		Str("player2", res.Player2).
		Int("wins2", res.Wins2).
		Int("draws", res.Draws).
		Msg("series complete")
	return res, nil
}

func winnerLabel(res engine.Result) string {
	if name := res.WinnerName(); name != "" {
		return name
	}
	return "draw"
}

// Standing is one participant's aggregate across a round robin. Points
// score a win as one and a draw as a half.
type Standing struct {
	Name   string
	Games  int
	Wins   int
	Losses int
	Draws  int
	Points float64
}

// RunRoundRobin plays every pair of participants over a series of
// GamesPerMatchup games and returns the standings, best first. The
// build function turns a config entry into a live player; it is called
// once per participant per matchup so stateful players start fresh.
func RunRoundRobin(cfg Config, size, winLength int, build func(Participant) (player.MoveSource, error), opts ...Option) ([]Standing, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	games := cfg.GamesPerMatchup
	if games == 0 {
		games = DefaultGamesPerMatchup
	}

	standings := make(map[string]*Standing, len(cfg.Participants))
	for _, p := range cfg.Participants {
		standings[p.Name] = &Standing{Name: p.Name}
	}

	matchup := 0
	for i := 0; i < len(cfg.Participants); i++ {
		for j := i + 1; j < len(cfg.Participants); j++ {
			matchup++
			first, second := cfg.Participants[i], cfg.Participants[j]

			a, err := build(first)
			if err != nil {
				return nil, fmt.Errorf("failed to create player %q: %w", first.Name, err)
			}
			b, err := build(second)
			if err != nil {
				closePlayer(a)
				return nil, fmt.Errorf("failed to create player %q: %w", second.Name, err)
			}

			log.Info().
				Int("matchup", matchup).
				Str("player1", a.Name()).
				Str("player2", b.Name()).
				Msg("matchup starting")

			seriesOpts := append(append([]Option{}, opts...), withMatchup(matchup))
			series, err := RunSeries(a, b, size, winLength, games, seriesOpts...)
			closePlayer(a)
			closePlayer(b)
			if err != nil {
				return nil, err
			}

			sa, sb := standings[first.Name], standings[second.Name]
			sa.Games += series.Games
			sb.Games += series.Games
			sa.Wins += series.Wins1
			sa.Losses += series.Wins2
			sb.Wins += series.Wins2
			sb.Losses += series.Wins1
			sa.Draws += series.Draws
			sb.Draws += series.Draws
		}
	}

	out := make([]Standing, 0, len(standings))
	for _, p := range cfg.Participants {
		s := standings[p.Name]
		s.Points = float64(s.Wins) + 0.5*float64(s.Draws)
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b Standing) int {
		switch {
		case a.Points > b.Points:
			return -1
		case a.Points < b.Points:
			return 1
		case a.Wins != b.Wins:
			return b.Wins - a.Wins
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// closePlayer releases player resources, such as an external agent's
// subprocess.
func closePlayer(src player.MoveSource) {
	if c, ok := src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Str("player", src.Name()).Msg("failed to close player")
		}
	}
}
