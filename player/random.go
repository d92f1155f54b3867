package player

import (
	"fmt"

	"golang.org/x/exp/rand"

	"tictactoe/game"
)

// Random picks uniformly among the legal moves. Seeded instances replay the
// same choices, which keeps tournaments reproducible.
type Random struct {
	name string
	rng  *rand.Rand
}

func NewRandom(name string, seed uint64) *Random {
	if name == "" {
		name = DefaultRandomName
	}
	return &Random{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string             { return r.name }
func (r *Random) BeginGame(side game.Cell) {}

func (r *Random) ChooseMove(_ game.BoardView, moves []game.Move) (game.Move, error) {
	if len(moves) == 0 {
		return game.Move{}, fmt.Errorf("random: no legal moves offered")
	}
	return moves[r.rng.Intn(len(moves))], nil
}

func (r *Random) GameOver(winner game.Cell) {}
