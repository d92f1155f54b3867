// Package player defines the competitors that can occupy a seat in a match:
// alpha-beta search, scripted randomness, interactive humans and external
// agents running as child processes.
package player

import "tictactoe/game"

// MoveSource is the one capability a seat needs: given a read-only view of
// the position and the legal moves in row-major order, pick one. An error or
// panic out of ChooseMove forfeits the game for this player; it never aborts
// the match loop.
type MoveSource interface {
	// Name identifies the player in logs, records and ratings.
	Name() string
	// BeginGame announces the mark this player owns for the coming game.
	// Seats swap between games, so the mark is per game, not per player.
	BeginGame(side game.Cell)
	// ChooseMove picks one of moves. The slice is never empty.
	ChooseMove(view game.BoardView, moves []game.Move) (game.Move, error)
	// GameOver reports the final winner, Empty for a draw. A win by
	// forfeit arrives the same way as a win on the board.
	GameOver(winner game.Cell)
}

// Default display names per player kind.
const (
	DefaultHumanName   = "Human Player"
	DefaultRandomName  = "Random AI"
	DefaultMinimaxName = "Minimax AI"
)
