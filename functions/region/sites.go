// Package region holds the region-valued ludemes.
package region

import (
	"fmt"

	"ludeme/game"
	"ludeme/topology"
)

// Sites is an explicit list of sites.
type Sites struct {
	game.Base
	sites  []game.IntFunction
	cached game.Cached[game.Region]
}

func NewSites(sites ...game.IntFunction) *Sites {
	return &Sites{Base: game.NewBase(game.IntNodes(sites)...), sites: sites}
}

func (n *Sites) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "sites", n.IsStatic(), n.Eval)
}

func (n *Sites) Eval(ctx *game.Context) game.Region {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	sites := make([]int, len(n.sites))
	for i, s := range n.sites {
		sites[i] = s.Eval(ctx)
	}
	return game.NewRegion(sites...)
}

type layout int

const (
	board layout = iota
	row
	column
	perimeter
	corners
	centre
	side
)

// Layout is a region fixed by the board geometry.
type Layout struct {
	game.Base
	layout layout
	index  game.IntFunction
	side   topology.Direction
	cached game.Cached[game.Region]
}

func newLayout(l layout, index game.IntFunction) *Layout {
	return &Layout{Base: game.NewBase(index), layout: l, index: index}
}

func Board() *Layout                     { return newLayout(board, nil) }
func Row(r game.IntFunction) *Layout     { return newLayout(row, r) }
func Column(c game.IntFunction) *Layout  { return newLayout(column, c) }
func Perimeter() *Layout                 { return newLayout(perimeter, nil) }
func Corners() *Layout                   { return newLayout(corners, nil) }
func Centre() *Layout                    { return newLayout(centre, nil) }

// Side is the edge of the board in direction d (N, E, S or W).
func Side(d topology.Direction) *Layout {
	switch d {
	case topology.N, topology.E, topology.S, topology.W:
	default:
		panic(fmt.Sprintf("no side %s", d))
	}
	n := newLayout(side, nil)
	n.side = d
	return n
}

func (n *Layout) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "layout", n.IsStatic(), n.Eval)
}

func (n *Layout) Eval(ctx *game.Context) game.Region {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	t := ctx.Topology()
	switch n.layout {
	case row, column:
		i := n.index.Eval(ctx)
		limit := t.Rows()
		if n.layout == column {
			limit = t.Columns()
		}
		if i < 0 || i >= limit {
			game.Fail("layout", "index %d out of range [0,%d)", i, limit)
		}
		if n.layout == row {
			return game.NewRegion(t.Row(i)...)
		}
		return game.NewRegion(t.Column(i)...)
	case perimeter:
		return game.NewRegion(t.Perimeter()...)
	case corners:
		return game.NewRegion(t.Corners()...)
	case centre:
		return game.NewRegion(t.Centre()...)
	case side:
		return game.NewRegion(t.Side(n.side)...)
	default:
		sites := make([]int, t.NumSites())
		for i := range sites {
			sites[i] = i
		}
		return game.NewRegion(sites...)
	}
}

// Empty is the set of empty sites.
type Empty struct {
	game.Base
}

func NewEmpty() *Empty { return &Empty{Base: game.NewBase().Dynamic()} }

func (n *Empty) Eval(ctx *game.Context) game.Region {
	return ctx.Board().EmptySites()
}

// Occupied is the set of sites holding a piece of a player, or any piece
// when player is nil.
type Occupied struct {
	game.Base
	player game.IntFunction
}

func NewOccupied(player game.IntFunction) *Occupied {
	return &Occupied{Base: game.NewBase(player).Dynamic(), player: player}
}

func (n *Occupied) Eval(ctx *game.Context) game.Region {
	player := 0
	if n.player != nil {
		player = n.player.Eval(ctx)
	}
	return ctx.Board().SitesOwnedBy(player)
}

// Remembered is the set of sites remembered under a name.
type Remembered struct {
	game.Base
	name string
}

func NewRemembered(name string) *Remembered {
	return &Remembered{Base: game.NewBase().Dynamic().WithFlags(game.FlagRemember), name: name}
}

func (n *Remembered) Eval(ctx *game.Context) game.Region {
	return game.NewRegion(ctx.Remembered(n.name)...)
}

// FromRegion reads the Region register.
type FromRegion struct {
	game.Base
}

func NewFromRegion() *FromRegion {
	return &FromRegion{Base: game.NewBase().Reading(game.RegRegion)}
}

func (n *FromRegion) Eval(ctx *game.Context) game.Region {
	return ctx.Eval().Region()
}
