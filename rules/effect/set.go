package effect

import "ludeme/game"

type siteField int

const (
	fieldState siteField = iota
	fieldRotation
	fieldValue
)

// SetSite sets the state, rotation or value of the piece on a site.
type SetSite struct {
	game.MovesBase
	field siteField
	site  game.IntFunction
	value game.IntFunction
}

func newSetSite(f siteField, site, value game.IntFunction, then *game.Then) *SetSite {
	b := game.NewBase(site, value)
	switch f {
	case fieldRotation:
		b = b.WithFlags(game.FlagRotation).WithConcepts(game.ConceptSetRotation)
	case fieldValue:
		b = b.WithFlags(game.FlagPieceValue).WithConcepts(game.ConceptSetValue)
	default:
		b = b.WithFlags(game.FlagPieceState).WithConcepts(game.ConceptSetState)
	}
	return &SetSite{MovesBase: b.ForMoves(then), field: f, site: site, value: value}
}

func SetState(site, value game.IntFunction, then *game.Then) *SetSite {
	return newSetSite(fieldState, site, value, then)
}

func SetRotation(site, value game.IntFunction, then *game.Then) *SetSite {
	return newSetSite(fieldRotation, site, value, then)
}

func SetValue(site, value game.IntFunction, then *game.Then) *SetSite {
	return newSetSite(fieldValue, site, value, then)
}

func (n *SetSite) Eval(ctx *game.Context) *game.MoveList {
	site := n.site.Eval(ctx)
	if ctx.Board().IsEmpty(site) {
		return game.NewMoveList()
	}
	value := n.value.Eval(ctx)
	var action game.Action
	switch n.field {
	case fieldRotation:
		action = game.ActionSetRotation{Site: site, Rotation: value}
	case fieldValue:
		action = game.ActionSetValue{Site: site, Value: value}
	default:
		action = game.ActionSetState{Site: site, State: value}
	}
	return single(ctx, false, action).AttachThen(n.Then())
}

// SetScore sets a player's score; with add, it adds to it instead.
type SetScore struct {
	game.MovesBase
	player game.IntFunction
	value  game.IntFunction
	add    bool
}

func NewSetScore(player, value game.IntFunction, then *game.Then) *SetScore {
	return &SetScore{
		MovesBase: game.NewBase(player, value).WithFlags(game.FlagScore).
			WithConcepts(game.ConceptSetScore, game.ConceptScoring).ForMoves(then),
		player: player,
		value:  value,
	}
}

func NewAddScore(player, delta game.IntFunction, then *game.Then) *SetScore {
	n := NewSetScore(player, delta, then)
	n.add = true
	return n
}

func (n *SetScore) Eval(ctx *game.Context) *game.MoveList {
	player := ctx.Mover()
	if n.player != nil {
		player = n.player.Eval(ctx)
	}
	ctx.CheckPlayer("set score", player)
	value := n.value.Eval(ctx)
	if n.add {
		return single(ctx, false, game.ActionAddScore{Player: player, Delta: value}).AttachThen(n.Then())
	}
	return single(ctx, false, game.ActionSetScore{Player: player, Score: value}).AttachThen(n.Then())
}

// SetVar sets a named variable.
type SetVar struct {
	game.MovesBase
	name  string
	value game.IntFunction
}

func NewSetVar(name string, value game.IntFunction, then *game.Then) *SetVar {
	return &SetVar{
		MovesBase: game.NewBase(value).WithFlags(game.FlagVars).WithConcepts(game.ConceptSetVar).ForMoves(then),
		name:      name,
		value:     value,
	}
}

func (n *SetVar) Eval(ctx *game.Context) *game.MoveList {
	return single(ctx, false, game.ActionSetVar{Name: n.name, Value: n.value.Eval(ctx)}).AttachThen(n.Then())
}

// Remember appends a value to a named list.
type Remember struct {
	game.MovesBase
	name  string
	value game.IntFunction
}

func NewRemember(name string, value game.IntFunction, then *game.Then) *Remember {
	return &Remember{
		MovesBase: game.NewBase(value).WithFlags(game.FlagRemember).WithConcepts(game.ConceptRemember).ForMoves(then),
		name:      name,
		value:     value,
	}
}

func (n *Remember) Eval(ctx *game.Context) *game.MoveList {
	return single(ctx, false, game.ActionRemember{Name: n.name, Value: n.value.Eval(ctx)}).AttachThen(n.Then())
}

// Forget removes a value from a named list, or the whole list when value is
// nil.
type Forget struct {
	game.MovesBase
	name  string
	value game.IntFunction
}

func NewForget(name string, value game.IntFunction, then *game.Then) *Forget {
	return &Forget{
		MovesBase: game.NewBase(value).WithFlags(game.FlagRemember).WithConcepts(game.ConceptForget).ForMoves(then),
		name:      name,
		value:     value,
	}
}

func (n *Forget) Eval(ctx *game.Context) *game.MoveList {
	if n.value == nil {
		return single(ctx, false, game.ActionForget{Name: n.name, All: true}).AttachThen(n.Then())
	}
	return single(ctx, false, game.ActionForget{Name: n.name, Value: n.value.Eval(ctx)}).AttachThen(n.Then())
}
