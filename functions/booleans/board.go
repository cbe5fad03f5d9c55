package booleans

import (
	"slices"

	"ludeme/game"
)

type siteTest int

const (
	empty siteTest = iota
	occupied
	friend
	enemy
)

// SiteTest checks the content of a site relative to the mover. An off-board
// site is neither empty nor occupied.
type SiteTest struct {
	game.Base
	test siteTest
	site game.IntFunction
}

func newSiteTest(test siteTest, site game.IntFunction) *SiteTest {
	return &SiteTest{Base: game.NewBase(site).Dynamic(), test: test, site: site}
}

func IsEmpty(site game.IntFunction) *SiteTest    { return newSiteTest(empty, site) }
func IsOccupied(site game.IntFunction) *SiteTest { return newSiteTest(occupied, site) }

// IsFriend holds when the site holds a piece of the mover.
func IsFriend(site game.IntFunction) *SiteTest { return newSiteTest(friend, site) }

// IsEnemy holds when the site holds a piece owned by another player.
func IsEnemy(site game.IntFunction) *SiteTest { return newSiteTest(enemy, site) }

func (n *SiteTest) Eval(ctx *game.Context) bool {
	site := n.site.Eval(ctx)
	if !ctx.Topology().OnBoard(site) {
		return false
	}
	board := ctx.Board()
	switch n.test {
	case occupied:
		return !board.IsEmpty(site)
	case friend:
		return !board.IsEmpty(site) && board.Who(site) == ctx.Mover()
	case enemy:
		who := board.Who(site)
		return !board.IsEmpty(site) && who != 0 && who != ctx.Mover()
	default:
		return board.IsEmpty(site)
	}
}

// IsIn holds when a site belongs to a region.
type IsIn struct {
	game.Base
	site   game.IntFunction
	region game.RegionFunction
	cached game.Cached[bool]
}

func NewIsIn(site game.IntFunction, region game.RegionFunction) *IsIn {
	return &IsIn{Base: game.NewBase(site, region), site: site, region: region}
}

func (n *IsIn) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "is in", n.IsStatic(), n.Eval)
}

func (n *IsIn) Eval(ctx *game.Context) bool {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	return n.region.Eval(ctx).Contains(n.site.Eval(ctx))
}

// IsFull holds when no site of the board is empty.
type IsFull struct {
	game.Base
}

func NewIsFull() *IsFull {
	return &IsFull{Base: game.NewBase().Dynamic().WithConcepts(game.ConceptFullBoardEnd)}
}

func (n *IsFull) Eval(ctx *game.Context) bool {
	return ctx.Board().EmptySites().IsEmpty()
}

// IsRemembered holds when value was remembered under name.
type IsRemembered struct {
	game.Base
	name  string
	value game.IntFunction
}

func NewIsRemembered(name string, value game.IntFunction) *IsRemembered {
	return &IsRemembered{
		Base:  game.NewBase(value).Dynamic().WithFlags(game.FlagRemember),
		name:  name,
		value: value,
	}
}

func (n *IsRemembered) Eval(ctx *game.Context) bool {
	return slices.Contains(ctx.Remembered(n.name), n.value.Eval(ctx))
}

// NoMoves holds when a player would have no legal move if it were to move
// now. The player defaults to the next player.
type NoMoves struct {
	game.Base
	player game.IntFunction
}

func NewNoMoves(player game.IntFunction) *NoMoves {
	return &NoMoves{Base: game.NewBase(player).Dynamic().WithConcepts(game.ConceptNoMovesEnd), player: player}
}

func (n *NoMoves) Eval(ctx *game.Context) bool {
	player := ctx.Next()
	if n.player != nil {
		player = n.player.Eval(ctx)
	}
	defer ctx.ScopeMover(player)()
	return ctx.Game().Rules().Play.Eval(ctx).Len() == 0
}

// CanMove holds when moves generates at least one move.
type CanMove struct {
	game.Base
	moves game.Moves
}

func NewCanMove(moves game.Moves) *CanMove {
	return &CanMove{Base: game.NewBase(moves).Dynamic(), moves: moves}
}

func (n *CanMove) Eval(ctx *game.Context) bool {
	return n.moves.Eval(ctx).Len() > 0
}
