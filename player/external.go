package player

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/game"
)

// External bridges to an agent running as a child process speaking a line
// protocol on its standard streams. Per turn the engine writes a header line
// "move <size> <winLength> <mark>" followed by one board row per line using
// the characters X, O and '.', then reads a single "<row> <col>" line back.
// At game end it writes "result <X|O|draw>". A crashed or garbled agent
// costs its seat the game by forfeit, nothing more.
type External struct {
	name  string
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bufio.Scanner
	side  game.Cell
}

// NewExternal launches the agent process. The child inherits stderr so agent
// diagnostics stay visible on the terminal.
func NewExternal(name, command string, args ...string) (*External, error) {
	if name == "" {
		name = command
	}
	cmd := exec.Command(command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("external agent %s: %w", name, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("external agent %s: %w", name, err)
	}
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting external agent %s: %w", name, err)
	}
	log.Debug().Str("agent", name).Str("command", command).Msg("external agent started")
	return &External{name: name, cmd: cmd, stdin: stdin, out: bufio.NewScanner(stdout)}, nil
}

// newExternalPipes wires an External to in-memory streams so tests can speak
// the protocol without spawning a process.
func newExternalPipes(name string, stdin io.WriteCloser, stdout io.Reader) *External {
	return &External{name: name, stdin: stdin, out: bufio.NewScanner(stdout)}
}

func (e *External) Name() string             { return e.name }
func (e *External) BeginGame(side game.Cell) { e.side = side }

func (e *External) ChooseMove(view game.BoardView, moves []game.Move) (game.Move, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "move %d %d %s\n", view.Size(), view.WinLength(), e.side)
	for r := 0; r < view.Size(); r++ {
		for c := 0; c < view.Size(); c++ {
			sb.WriteString(view.At(r, c).String())
		}
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(e.stdin, sb.String()); err != nil {
		return game.Move{}, fmt.Errorf("external agent %s: write: %w", e.name, err)
	}

	if !e.out.Scan() {
		if err := e.out.Err(); err != nil {
			return game.Move{}, fmt.Errorf("external agent %s: read: %w", e.name, err)
		}
		return game.Move{}, fmt.Errorf("external agent %s: closed its output", e.name)
	}
	reply := strings.TrimSpace(e.out.Text())
	var row, col int
	if _, err := fmt.Sscanf(reply, "%d %d", &row, &col); err != nil {
		return game.Move{}, fmt.Errorf("external agent %s: bad reply %q: %w", e.name, reply, err)
	}
	return game.Move{Row: row, Col: col}, nil
}

func (e *External) GameOver(winner game.Cell) {
	token := "draw"
	if winner != game.Empty {
		token = winner.String()
	}
	if _, err := fmt.Fprintf(e.stdin, "result %s\n", token); err != nil {
		log.Warn().Err(err).Str("agent", e.name).Msg("could not deliver game result")
	}
}

// Close ends the session: stdin closes so a well-behaved agent exits on EOF,
// and a stuck one is killed after a grace period.
func (e *External) Close() error {
	if e.stdin != nil {
		e.stdin.Close()
	}
	if e.cmd == nil {
		return nil
	}
	timer := time.AfterFunc(3*time.Second, func() { _ = e.cmd.Process.Kill() })
	defer timer.Stop()
	return e.cmd.Wait()
}
