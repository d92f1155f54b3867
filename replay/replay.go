// Package replay writes finished games to a JSON-lines log and reads
// them back. Each line is one object tagged with a type: a game header
// with the players and board dimensions, one line per move in play
// order, and a closing result line.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tictactoe/game"
)

// Game is one finished game as stored in the log.
type Game struct {
	PlayerX   string
	PlayerO   string
	Size      int
	WinLength int
	Moves     []game.HistoryEntry
	Winner    game.Cell
	Reason    string
}

type gameRecord struct {
	Type      string `json:"type"`
	Game      int    `json:"game"`
	Size      int    `json:"size"`
	WinLength int    `json:"win_length"`
	PlayerX   string `json:"player_x"`
	PlayerO   string `json:"player_o"`
}

type moveRecord struct {
	Type   string `json:"type"`
	Game   int    `json:"game"`
	Move   int    `json:"move"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player string `json:"player"`
}

type resultRecord struct {
	Type   string `json:"type"`
	Game   int    `json:"game"`
	Winner string `json:"winner"`
	Reason string `json:"reason"`
	Moves  int    `json:"moves"`
}

// Writer appends games to a log. Game ids count up from one in append
// order.
type Writer struct {
	enc   *json.Encoder
	games int
}

// NewWriter returns a Writer emitting JSON lines to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// Games returns how many games have been appended.
func (w *Writer) Games() int { return w.games }

// Append writes one game as a header line, its moves and a result line.
func (w *Writer) Append(g Game) error {
	w.games++
	id := w.games

	err := w.enc.Encode(gameRecord{
		Type:      "game",
		Game:      id,
		Size:      g.Size,
		WinLength: g.WinLength,
		PlayerX:   g.PlayerX,
		PlayerO:   g.PlayerO,
	})
	if err != nil {
		return fmt.Errorf("failed to write game header: %w", err)
	}

	for i, entry := range g.Moves {
		err := w.enc.Encode(moveRecord{
			Type:   "move",
			Game:   id,
			Move:   i + 1,
			Row:    entry.Move.Row,
			Col:    entry.Move.Col,
			Player: entry.Player.String(),
		})
		if err != nil {
			return fmt.Errorf("failed to write move %d: %w", i+1, err)
		}
	}

	err = w.enc.Encode(resultRecord{
		Type:   "result",
		Game:   id,
		Winner: winnerToken(g.Winner),
		Reason: g.Reason,
		Moves:  len(g.Moves),
	})
	if err != nil {
		return fmt.Errorf("failed to write game result: %w", err)
	}
	return nil
}

func winnerToken(winner game.Cell) string {
	if winner == game.Empty {
		return "draw"
	}
	return winner.String()
}

func parseWinner(token string) (game.Cell, error) {
	if token == "draw" {
		return game.Empty, nil
	}
	return parseMark(token)
}

func parseMark(token string) (game.Cell, error) {
	switch token {
	case "X":
		return game.X, nil
	case "O":
		return game.O, nil
	}
	return game.Empty, fmt.Errorf("unknown mark %q", token)
}

// ReadAll parses a log back into games in stored order.
func ReadAll(r io.Reader) ([]Game, error) {
	var games []Game
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("replay: line %d: %w", line, err)
		}

		switch probe.Type {
		case "game":
			var rec gameRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("replay: line %d: %w", line, err)
			}
			games = append(games, Game{
				PlayerX:   rec.PlayerX,
				PlayerO:   rec.PlayerO,
				Size:      rec.Size,
				WinLength: rec.WinLength,
			})
		case "move":
			if len(games) == 0 {
				return nil, fmt.Errorf("replay: line %d: move before any game header", line)
			}
			var rec moveRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("replay: line %d: %w", line, err)
			}
			mark, err := parseMark(rec.Player)
			if err != nil {
				return nil, fmt.Errorf("replay: line %d: %w", line, err)
			}
			g := &games[len(games)-1]
			g.Moves = append(g.Moves, game.HistoryEntry{
				Move:   game.Move{Row: rec.Row, Col: rec.Col},
				Player: mark,
			})
		case "result":
			if len(games) == 0 {
				return nil, fmt.Errorf("replay: line %d: result before any game header", line)
			}
			var rec resultRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("replay: line %d: %w", line, err)
			}
			winner, err := parseWinner(rec.Winner)
			if err != nil {
				return nil, fmt.Errorf("replay: line %d: %w", line, err)
			}
			g := &games[len(games)-1]
			g.Winner = winner
			g.Reason = rec.Reason
		default:
			return nil, fmt.Errorf("replay: line %d: unknown record type %q", line, probe.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return games, nil
}

// FileWriter is a Writer bound to a file on disk.
type FileWriter struct {
	*Writer
	f *os.File
}

// Create opens path for writing, replacing any existing log.
func Create(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create replay log: %w", err)
	}
	return &FileWriter{Writer: NewWriter(f), f: f}, nil
}

// Close flushes and closes the underlying file.
func (w *FileWriter) Close() error {
	return w.f.Close()
}

// Load reads a log file from disk.
func Load(path string) ([]Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay log: %w", err)
	}
	defer f.Close()
	return ReadAll(f)
}
