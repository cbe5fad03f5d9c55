package ints

import (
	"github.com/bits-and-blooms/bitset"

	"ludeme/game"
)

type field int

const (
	fieldWhat field = iota
	fieldWho
	fieldState
	fieldRotation
	fieldValue
	fieldCount
)

var fieldNames = [...]string{"what", "who", "state", "rotation", "value", "count"}

// AtSite reads one field of the content of a site. Stacks are not
// supported: a level other than 0 is an evaluation error.
type AtSite struct {
	game.Base
	field field
	site  game.IntFunction
	level game.IntFunction
}

func newAtSite(f field, site game.IntFunction, level []game.IntFunction) *AtSite {
	n := &AtSite{field: f, site: site}
	if len(level) > 0 {
		n.level = level[0]
	}
	base := game.NewBase(site, n.level).Dynamic()
	switch f {
	case fieldState:
		base = base.WithFlags(game.FlagPieceState)
	case fieldRotation:
		base = base.WithFlags(game.FlagRotation)
	case fieldValue:
		base = base.WithFlags(game.FlagPieceValue)
	case fieldCount:
		base = base.WithFlags(game.FlagPieceCount)
	}
	n.Base = base
	return n
}

// What is the piece index at a site, 0 when empty.
func What(site game.IntFunction, level ...game.IntFunction) *AtSite {
	return newAtSite(fieldWhat, site, level)
}

// Who is the owner of the piece at a site, 0 when empty.
func Who(site game.IntFunction, level ...game.IntFunction) *AtSite {
	return newAtSite(fieldWho, site, level)
}

func State(site game.IntFunction, level ...game.IntFunction) *AtSite {
	return newAtSite(fieldState, site, level)
}

func Rotation(site game.IntFunction, level ...game.IntFunction) *AtSite {
	return newAtSite(fieldRotation, site, level)
}

func PieceValue(site game.IntFunction, level ...game.IntFunction) *AtSite {
	return newAtSite(fieldValue, site, level)
}

func Count(site game.IntFunction, level ...game.IntFunction) *AtSite {
	return newAtSite(fieldCount, site, level)
}

func (n *AtSite) Eval(ctx *game.Context) int {
	if n.level != nil {
		if level := n.level.Eval(ctx); level != 0 {
			game.Fail(fieldNames[n.field], "level %d: stacks are not supported", level)
		}
	}
	site := n.site.Eval(ctx)
	board := ctx.Board()
	switch n.field {
	case fieldWho:
		return board.Who(site)
	case fieldState:
		return board.State(site)
	case fieldRotation:
		return board.Rotation(site)
	case fieldValue:
		return board.Value(site)
	case fieldCount:
		return board.Count(site)
	default:
		return board.What(site)
	}
}

// CountSites is the number of sites of a region.
type CountSites struct {
	game.Base
	region game.RegionFunction
	cached game.Cached[int]
}

func NewCountSites(region game.RegionFunction) *CountSites {
	return &CountSites{Base: game.NewBase(region), region: region}
}

func (n *CountSites) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "count sites", n.IsStatic(), n.Eval)
}

func (n *CountSites) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	return n.region.Eval(ctx).Count()
}

// CountPieces is the number of pieces owned by a player (every player when
// player is nil), counting each piece of a site's count.
type CountPieces struct {
	game.Base
	player game.IntFunction
}

func NewCountPieces(player game.IntFunction) *CountPieces {
	return &CountPieces{Base: game.NewBase(player).Dynamic(), player: player}
}

func (n *CountPieces) Eval(ctx *game.Context) int {
	player := 0
	if n.player != nil {
		player = n.player.Eval(ctx)
	}
	board := ctx.Board()
	total := 0
	for _, site := range board.SitesOwnedBy(player).Sites() {
		total += board.Count(site)
	}
	return total
}

// CountGroups is the number of groups matching a query.
type CountGroups struct {
	game.Base
	query game.GroupQuery
}

func NewCountGroups(options ...game.GroupOption) *CountGroups {
	q := game.NewGroupQuery(options...)
	return &CountGroups{
		Base: game.NewBase(q.Nodes()...).Dynamic().Setting(game.RegSite).
			WithFlags(game.FlagGroups).WithConcepts(game.ConceptGroup),
		query: q,
	}
}

func (n *CountGroups) ReadsEvalContext() *bitset.BitSet { return n.query.ReadsEvalContext() }

func (n *CountGroups) Eval(ctx *game.Context) int {
	return len(n.query.Groups(ctx))
}

// SizeLargestGroup is the size of the largest group matching a query, 0
// when there is none.
type SizeLargestGroup struct {
	game.Base
	query game.GroupQuery
}

func NewSizeLargestGroup(options ...game.GroupOption) *SizeLargestGroup {
	q := game.NewGroupQuery(options...)
	return &SizeLargestGroup{
		Base: game.NewBase(q.Nodes()...).Dynamic().Setting(game.RegSite).
			WithFlags(game.FlagGroups).WithConcepts(game.ConceptGroup),
		query: q,
	}
}

func (n *SizeLargestGroup) ReadsEvalContext() *bitset.BitSet { return n.query.ReadsEvalContext() }

func (n *SizeLargestGroup) Eval(ctx *game.Context) int {
	largest := 0
	for _, group := range n.query.Groups(ctx) {
		largest = max(largest, len(group))
	}
	return largest
}
