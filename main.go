// Command tictactoe plays generalized tic-tac-toe games between humans,
// built-in agents and external programs. It runs single games, head to
// head series and round-robin tournaments, with optional ELO tracking,
// replay logs, CSV records and a move heat map.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tictactoe/config"
	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/heatmap"
	"tictactoe/player"
	"tictactoe/rating"
	"tictactoe/replay"
	"tictactoe/tournament"
	"tictactoe/tui"
)

// defaultTournamentConfig is picked up from the working directory when no
// players are given on the command line.
const defaultTournamentConfig = "tournament_participants.json"

type cliOptions struct {
	player1, player2 string
	name1, name2     string
	games            int
	size             int
	winLength        int
	depth            int
	seed             int64
	display          bool
	quiet            bool
	saveTo           string
	timeout          time.Duration
	elo              bool
	eloFile          string
	heatmap          bool
	heatmapOut       string
	noStats          bool
	leaderboard      bool
	tournamentConfig string
	gamesPerMatchup  int
	recordDir        string
}

func parseFlags(cfg config.Config) cliOptions {
	var opts cliOptions
	flag.StringVar(&opts.player1, "player1", "", "player 1 spec: human, random, minimax or exec:cmd=<agent> (see -help-players)")
	flag.StringVar(&opts.player2, "player2", "", "player 2 spec, same grammar as -player1")
	flag.StringVar(&opts.name1, "name1", "", "display name for player 1")
	flag.StringVar(&opts.name2, "name2", "", "display name for player 2")
	flag.IntVar(&opts.games, "games", cfg.Games, "number of games to play")
	flag.IntVar(&opts.size, "size", 3, "board size")
	flag.IntVar(&opts.winLength, "win-length", 0, "marks in a row needed to win (0 means board size, capped at 5 for boards over 5x5)")
	flag.IntVar(&opts.depth, "depth", cfg.Depth, "search depth for minimax players without an explicit depth= parameter (0 picks the size default)")
	flag.Int64Var(&opts.seed, "seed", 0, "seed for random players without an explicit seed= parameter (0 seeds from the clock)")
	flag.BoolVar(&opts.display, "display", false, "play a single game inside the interactive display")
	flag.BoolVar(&opts.quiet, "quiet", false, "suppress everything except final results")
	flag.StringVar(&opts.saveTo, "save-to", "", "append finished games to this replay log")
	flag.DurationVar(&opts.timeout, "timeout", cfg.Timeout, "per-move time budget, forfeit on overrun (0 disables)")
	flag.BoolVar(&opts.elo, "elo", false, "track ELO ratings across runs")
	flag.StringVar(&opts.eloFile, "elo-file", cfg.EloFile, "ELO ratings file")
	flag.BoolVar(&opts.heatmap, "heatmap", false, "render a move heat map after the run")
	flag.StringVar(&opts.heatmapOut, "heatmap-output", "heatmap.png", "heat map output path")
	flag.BoolVar(&opts.noStats, "no-stats", false, "skip timing and move pattern statistics")
	flag.BoolVar(&opts.leaderboard, "leaderboard", false, "print the ELO leaderboard and exit")
	flag.StringVar(&opts.tournamentConfig, "tournament-config", "", "round-robin participants file (default "+defaultTournamentConfig+" when no players are given)")
	flag.IntVar(&opts.gamesPerMatchup, "games-per-matchup", 0, "games per round-robin matchup (0 defers to the config file)")
	flag.StringVar(&opts.recordDir, "record", "", "write CSV game and search records under this directory")
	helpPlayers := flag.Bool("help-players", false, "describe the player spec grammar and exit")
	flag.Parse()

	if *helpPlayers {
		printPlayerHelp()
		os.Exit(0)
	}
	return opts
}

func printPlayerHelp() {
	fmt.Println("Player specs take the form kind:key=value,key=value. Registered kinds:")
	fmt.Printf("  %s\n", strings.Join(player.Kinds(), ", "))
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  human                          prompt for moves on stdin")
	fmt.Println("  random:seed=7                  uniform random agent, fixed seed")
	fmt.Println("  minimax:depth=4                bounded alpha-beta search")
	fmt.Println("  minimax:diagonals=false        legacy rules, rows and columns only")
	fmt.Println("  exec:cmd=./my-agent            external agent over stdin/stdout")
}

func setupLogging(level string, quiet bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	if quiet && parsed < zerolog.WarnLevel {
		parsed = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func resolveWinLength(size, winLength int) int {
	if winLength > 0 {
		return winLength
	}
	return game.DefaultWinLength(size)
}

func usageError(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	flag.Usage()
	os.Exit(2)
}

func main() {
	cfg := config.Load()
	opts := parseFlags(cfg)
	setupLogging(cfg.LogLevel, opts.quiet)

	if opts.leaderboard {
		printLeaderboard(rating.Load(opts.eloFile))
		return
	}

	// Fall back to the repository tournament config when the command names
	// no players at all.
	if opts.tournamentConfig == "" && opts.player1 == "" && opts.player2 == "" {
		if _, err := os.Stat(defaultTournamentConfig); err == nil {
			opts.tournamentConfig = defaultTournamentConfig
		}
	}

	if opts.tournamentConfig != "" {
		if opts.player1 != "" || opts.player2 != "" {
			usageError("-tournament-config cannot be combined with -player1/-player2")
		}
		if err := runTournament(opts); err != nil {
			log.Fatal().Err(err).Msg("tournament failed")
		}
		return
	}

	if opts.player1 == "" || opts.player2 == "" {
		usageError("-player1 and -player2 are required to play games")
	}
	if err := runMatch(opts); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// buildPlayer turns a spec into a live move source. Interactive seats get
// numbered default names, and swap to display-driven players under
// -display.
func buildPlayer(opts cliOptions, spec, name string, seat int, display bool) (player.MoveSource, error) {
	kind := spec
	if i := strings.Index(spec, ":"); i >= 0 {
		kind = spec[:i]
	}
	if kind == "human" {
		if name == "" && seat > 0 {
			name = fmt.Sprintf("%s %d", player.DefaultHumanName, seat)
		}
		if display {
			return tui.NewCursorPlayer(name), nil
		}
	}
	if opts.depth > 0 {
		spec = withParam(spec, "minimax", "depth", strconv.Itoa(opts.depth))
	}
	if opts.seed != 0 {
		spec = withParam(spec, "random", "seed", strconv.FormatInt(opts.seed, 10))
	}
	if opts.recordDir != "" {
		spec = withParam(spec, "minimax", "metrics", "true")
	}
	return player.New(spec, name)
}

// withParam appends key=value to a spec of the given kind unless the spec
// already sets the key. Specs of other kinds pass through untouched.
func withParam(spec, kind, key, value string) string {
	if spec != kind && !strings.HasPrefix(spec, kind+":") {
		return spec
	}
	if strings.Contains(spec, key+"=") {
		return spec
	}
	if spec == kind {
		return spec + ":" + key + "=" + value
	}
	return spec + "," + key + "=" + value
}

func closePlayer(src player.MoveSource) {
	if closer, ok := src.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Str("player", src.Name()).Msg("failed to close player")
		}
	}
}

// wantDisplay decides whether the interactive display runs. Redirected
// output and -quiet both force the headless path.
func wantDisplay(opts cliOptions) bool {
	if !opts.display || opts.games != 1 || opts.quiet {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		log.Warn().Msg("stdout is not a terminal, running without the display")
		return false
	}
	return true
}

// analytics bundles the optional per-game bookkeeping shared by every run
// mode.
type analytics struct {
	ratings *rating.Table
	heat    *heatmap.Map
	replays *replay.FileWriter
}

func newAnalytics(opts cliOptions) (*analytics, error) {
	a := &analytics{}
	if opts.elo {
		a.ratings = rating.Load(opts.eloFile)
	}
	if opts.heatmap {
		heat, err := heatmap.New(opts.size)
		if err != nil {
			return nil, err
		}
		a.heat = heat
	}
	if opts.saveTo != "" {
		replays, err := replay.Create(opts.saveTo)
		if err != nil {
			return nil, err
		}
		a.replays = replays
	}
	return a, nil
}

// record folds one finished game into every enabled sink.
func (a *analytics) record(size, winLength int, res engine.Result) {
	if a.ratings != nil {
		var score float64
		switch res.Winner {
		case game.X:
			score = rating.ScoreWin
		case game.O:
			score = rating.ScoreLoss
		default:
			score = rating.ScoreDraw
		}
		a.ratings.Update(res.PlayerX, res.PlayerO, score)
	}
	if a.heat != nil {
		a.heat.RecordGame(res.Moves, res.Winner)
	}
	if a.replays != nil {
		err := a.replays.Append(replay.Game{
			PlayerX:   res.PlayerX,
			PlayerO:   res.PlayerO,
			Size:      size,
			WinLength: winLength,
			Moves:     res.Moves,
			Winner:    res.Winner,
			Reason:    res.Reason.String(),
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to append replay")
		}
	}
}

// finish writes every enabled sink out and reports where the results went.
func (a *analytics) finish(opts cliOptions) {
	if a.ratings != nil {
		if err := a.ratings.Save(); err != nil {
			log.Warn().Err(err).Msg("failed to save ratings")
		} else {
			log.Info().Str("path", opts.eloFile).Msg("ratings updated")
		}
	}
	if a.heat != nil {
		if err := a.heat.Save(opts.heatmapOut); err != nil {
			log.Warn().Err(err).Str("path", opts.heatmapOut).Msg("failed to render heat map")
		} else {
			log.Info().Str("path", opts.heatmapOut).Int("games", a.heat.Games()).Msg("heat map written")
		}
		if !opts.noStats && !opts.quiet {
			printHeatmapStats(a.heat)
		}
	}
	if a.replays != nil {
		games := a.replays.Games()
		if err := a.replays.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close replay log")
		} else {
			log.Info().Str("path", opts.saveTo).Int("games", games).Msg("replay log written")
		}
	}
}

// runMatch covers the two-player modes: a single game, optionally on the
// interactive display, or a head-to-head series.
func runMatch(opts cliOptions) error {
	winLength := resolveWinLength(opts.size, opts.winLength)
	display := wantDisplay(opts)

	p1, err := buildPlayer(opts, opts.player1, opts.name1, 1, display)
	if err != nil {
		return err
	}
	defer closePlayer(p1)
	p2, err := buildPlayer(opts, opts.player2, opts.name2, 2, display)
	if err != nil {
		return err
	}
	defer closePlayer(p2)

	a, err := newAnalytics(opts)
	if err != nil {
		return err
	}
	defer a.finish(opts)

	if opts.games == 1 {
		if opts.recordDir != "" {
			log.Warn().Msg("-record applies to series and tournaments, ignoring")
		}
		return runSingle(a, p1, p2, winLength, display, opts)
	}
	return runSeries(a, p1, p2, winLength, opts)
}

func runSingle(a *analytics, p1, p2 player.MoveSource, winLength int, display bool, opts cliOptions) error {
	var (
		res engine.Result
		err error
	)
	if display {
		// Log lines would tear the full-screen display, so logging pauses
		// for the duration of the game.
		level := zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.Disabled)
		res, err = tui.Run(opts.size, winLength, p1, p2, engine.WithTimeout(opts.timeout))
		zerolog.SetGlobalLevel(level)
	} else {
		var match *engine.Match
		match, err = engine.NewMatch(opts.size, winLength, engine.WithTimeout(opts.timeout))
		if err != nil {
			return err
		}
		res, err = match.Play(p1, p2)
	}
	if err != nil {
		return err
	}

	a.record(opts.size, winLength, res)
	if !opts.quiet {
		printGameResult(res, opts.noStats)
	}
	return nil
}

func runSeries(a *analytics, p1, p2 player.MoveSource, winLength int, opts cliOptions) error {
	seriesOpts := []tournament.Option{
		tournament.WithTimeout(opts.timeout),
		tournament.WithGameHook(func(n int, res engine.Result) {
			a.record(opts.size, winLength, res)
		}),
	}
	rec, flush, err := newRecorder(opts.recordDir)
	if err != nil {
		return err
	}
	if rec != nil {
		seriesOpts = append(seriesOpts, tournament.WithRecorder(rec))
	}

	res, err := tournament.RunSeries(p1, p2, opts.size, winLength, opts.games, seriesOpts...)
	if err != nil {
		return err
	}
	flush()

	printSeriesResults(res, opts.quiet)
	return nil
}

func runTournament(opts cliOptions) error {
	tcfg, err := tournament.LoadConfig(opts.tournamentConfig)
	if err != nil {
		return err
	}
	switch {
	case opts.gamesPerMatchup > 0:
		tcfg.GamesPerMatchup = opts.gamesPerMatchup
	case opts.games > 1:
		tcfg.GamesPerMatchup = opts.games
	}
	winLength := resolveWinLength(opts.size, opts.winLength)

	a, err := newAnalytics(opts)
	if err != nil {
		return err
	}
	defer a.finish(opts)

	tourOpts := []tournament.Option{
		tournament.WithTimeout(opts.timeout),
		tournament.WithGameHook(func(n int, res engine.Result) {
			a.record(opts.size, winLength, res)
		}),
	}
	rec, flush, err := newRecorder(opts.recordDir)
	if err != nil {
		return err
	}
	if rec != nil {
		tourOpts = append(tourOpts, tournament.WithRecorder(rec))
	}

	build := func(p tournament.Participant) (player.MoveSource, error) {
		return buildPlayer(opts, p.Spec(), p.Name, 0, false)
	}
	standings, err := tournament.RunRoundRobin(tcfg, opts.size, winLength, build, tourOpts...)
	if err != nil {
		return err
	}
	flush()

	printStandings(standings)
	return nil
}

// newRecorder opens the CSV record sink when a directory is configured.
// The returned flush is always safe to call.
func newRecorder(dir string) (*tournament.Recorder, func(), error) {
	if dir == "" {
		return nil, func() {}, nil
	}
	rec, err := tournament.NewRecorder(dir)
	if err != nil {
		return nil, nil, err
	}
	flush := func() {
		if err := rec.Flush(); err != nil {
			log.Warn().Err(err).Msg("failed to write records")
			return
		}
		log.Info().Str("dir", rec.Dir()).Msg("records written")
	}
	return rec, flush, nil
}

func printGameResult(res engine.Result, noStats bool) {
	switch {
	case res.Forfeit():
		fmt.Printf("\n%s forfeits (%s), %s wins!\n", res.Offender, res.Reason, res.WinnerName())
	case res.Winner == game.Empty:
		fmt.Println("\nGame ended in a draw!")
	default:
		fmt.Printf("\n%s wins!\n", res.WinnerName())
	}
	if noStats {
		return
	}
	fmt.Printf("\nTiming over %d moves (%s total):\n", len(res.Moves), res.Duration.Round(time.Millisecond))
	printSeatTiming(res.PlayerX, "X", res.StatsX)
	printSeatTiming(res.PlayerO, "O", res.StatsO)
}

func printSeatTiming(name, mark string, stats engine.SeatStats) {
	fmt.Printf("  %s (%s): %d moves, avg %s, longest %s\n",
		name, mark, stats.Moves,
		stats.Average().Round(time.Microsecond),
		stats.Longest.Round(time.Microsecond))
}

func printSeriesResults(res tournament.SeriesResult, quiet bool) {
	if quiet {
		fmt.Printf("%s: %d\n", res.Player1, res.Wins1)
		fmt.Printf("%s: %d\n", res.Player2, res.Wins2)
		fmt.Printf("Draws: %d\n", res.Draws)
		return
	}
	pct := func(n int) float64 { return float64(n) / float64(res.Games) * 100 }
	fmt.Printf("\nResults after %d games:\n", res.Games)
	fmt.Printf("  %s: %d wins (%.1f%%)\n", res.Player1, res.Wins1, pct(res.Wins1))
	fmt.Printf("  %s: %d wins (%.1f%%)\n", res.Player2, res.Wins2, pct(res.Wins2))
	fmt.Printf("  Draws: %d (%.1f%%)\n", res.Draws, pct(res.Draws))
	if res.Forfeits > 0 {
		fmt.Printf("  Forfeits: %d\n", res.Forfeits)
	}
}

func printStandings(standings []tournament.Standing) {
	fmt.Println("\nFinal standings:")
	for i, s := range standings {
		fmt.Printf("%3d. %-24s %6.1f pts   %dW %dL %dD over %d games\n",
			i+1, s.Name, s.Points, s.Wins, s.Losses, s.Draws, s.Games)
	}
}

func printHeatmapStats(m *heatmap.Map) {
	s := m.Stats()
	fmt.Println("\nMove pattern statistics:")
	fmt.Printf("  Total moves recorded: %d\n", s.TotalMoves)
	if s.TotalMoves > 0 {
		fmt.Printf("  Most played cell: %s\n", s.MostPlayed)
		fmt.Printf("  Least played cell: %s\n", s.LeastPlayed)
	}
	fmt.Printf("  Center preference: %.1f%%\n", s.CenterPct)
	fmt.Printf("  Corner preference: %.1f%%\n", s.CornerPct)
	fmt.Printf("  Edge preference: %.1f%%\n", s.EdgePct)
}

func printLeaderboard(table *rating.Table) {
	entries := table.Leaderboard()
	if len(entries) == 0 {
		fmt.Println("No ratings recorded yet.")
		return
	}
	rule := strings.Repeat("=", 40)
	fmt.Println(rule)
	fmt.Println("ELO Leaderboard")
	fmt.Println(rule)
	for i, e := range entries {
		fmt.Printf("%3d. %s: %.0f\n", i+1, e.Name, e.Rating)
	}
	fmt.Println(rule)
}
