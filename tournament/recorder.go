package tournament

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GameRecord is one game row in the records output.
type GameRecord struct {
	Matchup  int
	Game     int
	PlayerX  string
	PlayerO  string
	Winner   string
	Reason   string
	Moves    int
	Duration time.Duration
}

// MatchupRecord is one series row in the records output.
type MatchupRecord struct {
	Matchup int
	Player1 string
	Player2 string
	Games   int
	Wins1   int
	Wins2   int
	Draws   int
}

// SearchRecord is one search-engine turn in the records output. Turn
// counts the player's own decisions within the game, starting at one.
type SearchRecord struct {
	Matchup  int
	Game     int
	Player   string
	Turn     int
	Depth    int
	Nodes    int
	Leaves   int
	Cutoffs  int
	Duration time.Duration
}

// Recorder collects game, matchup and search rows and writes them as
// CSV files under a timestamped directory.
type Recorder struct {
	baseDir  string
	games    []GameRecord
	matchups []MatchupRecord
	searches []SearchRecord
}

// NewRecorder creates a subdirectory of root named by the current
// timestamp to hold this run's records.
func NewRecorder(root string) (*Recorder, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create records directory: %w", err)
	}
	return &Recorder{baseDir: baseDir}, nil
}

// Dir returns the directory the records are written to.
func (r *Recorder) Dir() string { return r.baseDir }

func (r *Recorder) AddGame(rec GameRecord)       { r.games = append(r.games, rec) }
func (r *Recorder) AddMatchup(rec MatchupRecord) { r.matchups = append(r.matchups, rec) }
func (r *Recorder) AddSearch(rec SearchRecord)   { r.searches = append(r.searches, rec) }

// Flush writes games.csv, matchups.csv and search.csv with everything
// collected so far. search.csv only appears when a player counted its
// search work.
func (r *Recorder) Flush() error {
	if err := r.writeGames(); err != nil {
		return err
	}
	if err := r.writeMatchups(); err != nil {
		return err
	}
	if len(r.searches) == 0 {
		return nil
	}
	return r.writeSearches()
}

func (r *Recorder) writeGames() error {
	path := filepath.Join(r.baseDir, "games.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"matchup", "game", "player_x", "player_o", "winner", "reason", "moves", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write games header: %w", err)
	}

	for _, rec := range r.games {
		row := []string{
			strconv.Itoa(rec.Matchup),
			strconv.Itoa(rec.Game),
			rec.PlayerX,
			rec.PlayerO,
			rec.Winner,
			rec.Reason,
			strconv.Itoa(rec.Moves),
			rec.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game row: %w", err)
		}
	}
	return nil
}

func (r *Recorder) writeMatchups() error {
	path := filepath.Join(r.baseDir, "matchups.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create matchups file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"matchup", "player1", "player2", "games", "wins1", "wins2", "draws"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write matchups header: %w", err)
	}

	for _, rec := range r.matchups {
		row := []string{
			strconv.Itoa(rec.Matchup),
			rec.Player1,
			rec.Player2,
			strconv.Itoa(rec.Games),
			strconv.Itoa(rec.Wins1),
			strconv.Itoa(rec.Wins2),
			strconv.Itoa(rec.Draws),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write matchup row: %w", err)
		}
	}
	return nil
}

func (r *Recorder) writeSearches() error {
	path := filepath.Join(r.baseDir, "search.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create search file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"matchup", "game", "player", "turn", "depth", "nodes", "leaves", "cutoffs", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write search header: %w", err)
	}

	for _, rec := range r.searches {
		row := []string{
			strconv.Itoa(rec.Matchup),
			strconv.Itoa(rec.Game),
			rec.Player,
			strconv.Itoa(rec.Turn),
			strconv.Itoa(rec.Depth),
			strconv.Itoa(rec.Nodes),
			strconv.Itoa(rec.Leaves),
			strconv.Itoa(rec.Cutoffs),
			rec.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write search row: %w", err)
		}
	}
	return nil
}
