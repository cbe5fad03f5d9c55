// Package end holds the end rules, checked after every move.
package end

import (
	"github.com/bits-and-blooms/bitset"

	"ludeme/game"
)

// Result describes the outcome an end rule declares.
type Result struct {
	outcome game.Outcome
	who     game.IntFunction
}

// Win declares a player the winner. A nil player is the mover.
func Win(who game.IntFunction) Result { return Result{outcome: game.Win, who: who} }

// Loss declares a player the loser. A nil player is the mover.
func Loss(who game.IntFunction) Result { return Result{outcome: game.Loss, who: who} }

func Draw() Result { return Result{outcome: game.Draw} }

func (r Result) concept() game.Concept {
	switch r.outcome {
	case game.Win:
		return game.ConceptWin
	case game.Loss:
		return game.ConceptLoss
	default:
		return game.ConceptDraw
	}
}

func (r Result) eval(ctx *game.Context) *game.Result {
	player := 0
	if r.outcome != game.Draw {
		player = ctx.Mover()
		if r.who != nil {
			player = r.who.Eval(ctx)
		}
	}
	return &game.Result{Outcome: r.outcome, Player: player}
}

// If ends the game with a result when its condition holds.
type If struct {
	game.Base
	cond   game.BooleanFunction
	result Result
}

func NewIf(cond game.BooleanFunction, result Result) *If {
	return &If{
		Base:   game.NewBase(cond, result.who).Dynamic().WithConcepts(result.concept()),
		cond:   cond,
		result: result,
	}
}

func (n *If) Eval(ctx *game.Context) *game.Result {
	if !n.cond.Eval(ctx) {
		return nil
	}
	return n.result.eval(ctx)
}

// ByScore ends the game when its condition holds (always, when nil): the
// player with the highest score wins, and a tie for the highest score is a
// draw.
type ByScore struct {
	game.Base
	cond game.BooleanFunction
}

func NewByScore(cond game.BooleanFunction) *ByScore {
	return &ByScore{
		Base: game.NewBase(cond).Dynamic().WithFlags(game.FlagScore).WithConcepts(game.ConceptScoring),
		cond: cond,
	}
}

func (n *ByScore) Eval(ctx *game.Context) *game.Result {
	if n.cond != nil && !n.cond.Eval(ctx) {
		return nil
	}
	best, winner, tie := 0, 0, false
	for p := 1; p <= ctx.NumPlayers(); p++ {
		if !ctx.Active(p) {
			continue
		}
		score := ctx.Score(p)
		switch {
		case winner == 0 || score > best:
			best, winner, tie = score, p, false
		case score == best:
			tie = true
		}
	}
	if tie || winner == 0 {
		return &game.Result{Outcome: game.Draw}
	}
	return &game.Result{Outcome: game.Win, Player: winner}
}

func (n *ByScore) Concepts(g *game.Game) *bitset.BitSet {
	c := n.Base.Concepts(g)
	c.Set(uint(game.ConceptWin))
	c.Set(uint(game.ConceptDraw))
	return c
}
