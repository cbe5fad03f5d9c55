package engine

import (
	"golang.org/x/exp/rand"

	"ludeme/game"
)

// RandomAgent plays uniformly random legal moves. It uses its own RNG so
// that the context's stream only serves the game's own randomness.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) SelectMove(ctx *game.Context, legal *game.MoveList) *game.Move {
	return legal.At(a.rng.Intn(legal.Len()))
}

// FirstAgent always plays the first legal move.
type FirstAgent struct{}

func (FirstAgent) SelectMove(ctx *game.Context, legal *game.MoveList) *game.Move {
	return legal.At(0)
}
