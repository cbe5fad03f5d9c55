package ints

import "ludeme/game"

// Register reads an integer eval-context register.
type Register struct {
	game.Base
	reg game.Register
}

func newRegister(reg game.Register) *Register {
	return &Register{Base: game.NewBase().Reading(reg), reg: reg}
}

// From, To, Site, Value and Level read the matching register.
func From() *Register  { return newRegister(game.RegFrom) }
func To() *Register    { return newRegister(game.RegTo) }
func Site() *Register  { return newRegister(game.RegSite) }
func Value() *Register { return newRegister(game.RegValue) }
func Level() *Register { return newRegister(game.RegLevel) }

func (n *Register) Eval(ctx *game.Context) int {
	return ctx.Eval().Get(n.reg)
}

func (n *Register) String() string { return n.reg.String() }

type playerKind int

const (
	mover playerKind = iota
	next
	prev
)

// Player is the mover, the next player or the previous mover.
type Player struct {
	game.Base
	kind playerKind
}

func Mover() *Player { return &Player{Base: game.NewBase().Dynamic(), kind: mover} }
func Next() *Player  { return &Player{Base: game.NewBase().Dynamic(), kind: next} }
func Prev() *Player  { return &Player{Base: game.NewBase().Dynamic(), kind: prev} }

func (n *Player) Eval(ctx *game.Context) int {
	switch n.kind {
	case next:
		return ctx.Next()
	case prev:
		return ctx.Prev()
	default:
		return ctx.Mover()
	}
}

// NumPlayers is the number of seats of the game.
type NumPlayers struct {
	game.Base
}

func NewNumPlayers() *NumPlayers { return &NumPlayers{Base: game.NewBase()} }

func (n *NumPlayers) Eval(ctx *game.Context) int { return ctx.NumPlayers() }

// Score is a player's score.
type Score struct {
	game.Base
	player game.IntFunction
}

func NewScore(player game.IntFunction) *Score {
	return &Score{
		Base:   game.NewBase(player).Dynamic().WithFlags(game.FlagScore).WithConcepts(game.ConceptScoring),
		player: player,
	}
}

func (n *Score) Eval(ctx *game.Context) int {
	return ctx.Score(n.player.Eval(ctx))
}

// Var is a named variable, or Off when it was never set.
type Var struct {
	game.Base
	name string
}

func NewVar(name string) *Var {
	return &Var{Base: game.NewBase().Dynamic().WithFlags(game.FlagVars), name: name}
}

func (n *Var) Eval(ctx *game.Context) int {
	if v, ok := ctx.Var(n.name); ok {
		return v
	}
	return game.Off
}

// NumRemembered counts the values remembered under a name.
type NumRemembered struct {
	game.Base
	name string
}

func NewNumRemembered(name string) *NumRemembered {
	return &NumRemembered{Base: game.NewBase().Dynamic().WithFlags(game.FlagRemember), name: name}
}

func (n *NumRemembered) Eval(ctx *game.Context) int {
	return len(ctx.Remembered(n.name))
}

// CountMoves is the number of legal moves of the mover.
type CountMoves struct {
	game.Base
}

func NewCountMoves() *CountMoves { return &CountMoves{Base: game.NewBase().Dynamic()} }

func (n *CountMoves) Eval(ctx *game.Context) int {
	return ctx.Game().Rules().Play.Eval(ctx).Len()
}
