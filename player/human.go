package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"tictactoe/game"
)

// maxMovePreview caps how many legal moves the prompt lists after a bad
// entry; a 100x100 board has ten thousand of them.
const maxMovePreview = 10

// Human reads moves from a terminal-style stream. Bad input is re-prompted,
// not punished; only a closed input stream gives the game up.
type Human struct {
	name string
	in   *bufio.Reader
	out  io.Writer
	side game.Cell
}

func NewHuman(name string, in io.Reader, out io.Writer) *Human {
	if name == "" {
		name = DefaultHumanName
	}
	return &Human{name: name, in: bufio.NewReader(in), out: out}
}

func (h *Human) Name() string             { return h.name }
func (h *Human) BeginGame(side game.Cell) { h.side = side }

func (h *Human) ChooseMove(view game.BoardView, moves []game.Move) (game.Move, error) {
	legal := make(map[game.Move]bool, len(moves))
	for _, mv := range moves {
		legal[mv] = true
	}

	fmt.Fprintf(h.out, "\n%s\n", view)
	for {
		fmt.Fprintf(h.out, "%s (%s), enter your move as 'row col': ", h.name, h.side)
		line, err := h.in.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return game.Move{}, fmt.Errorf("human: input closed: %w", err)
		}

		var row, col int
		if _, scanErr := fmt.Sscanf(strings.TrimSpace(line), "%d %d", &row, &col); scanErr != nil {
			fmt.Fprintln(h.out, "Please enter two numbers separated by a space.")
			continue
		}
		mv := game.Move{Row: row, Col: col}
		if !legal[mv] {
			fmt.Fprintf(h.out, "Invalid move. Valid moves include: %s\n", previewMoves(moves))
			continue
		}
		return mv, nil
	}
}

func (h *Human) GameOver(winner game.Cell) {
	switch winner {
	case game.Empty:
		fmt.Fprintln(h.out, "It's a draw!")
	case h.side:
		fmt.Fprintf(h.out, "%s wins!\n", h.name)
	default:
		fmt.Fprintf(h.out, "%s loses.\n", h.name)
	}
}

func previewMoves(moves []game.Move) string {
	shown := moves
	var suffix string
	if len(shown) > maxMovePreview {
		shown = shown[:maxMovePreview]
		suffix = fmt.Sprintf(" and %d more", len(moves)-maxMovePreview)
	}
	parts := make([]string, len(shown))
	for i, mv := range shown {
		parts[i] = mv.String()
	}
	return strings.Join(parts, " ") + suffix
}
