// Package start holds the rules setting up the board before the first move.
package start

import "ludeme/game"

func resolve(ctx *game.Context, node, piece string) (what, owner int) {
	what, ok := ctx.Game().PieceIndex(piece)
	if !ok {
		game.Fail(node, "unknown piece %q", piece)
	}
	return what, ctx.Game().Piece(what).Owner
}

func missing(g *game.Game, node, piece string) bool {
	if _, ok := g.PieceIndex(piece); ok {
		return false
	}
	g.Report().AddMissingRequirement("%s: game declares no piece %q", node, piece)
	return true
}

func placement(ctx *game.Context, actions []game.Action) *game.MoveList {
	if len(actions) == 0 {
		return game.NewMoveList()
	}
	return game.NewMoveList(game.NewMove(ctx.Mover(), actions...))
}

// Place puts a piece on every site of a region. The piece is owned by the
// player it is declared for.
type Place struct {
	game.MovesBase
	piece  string
	region game.RegionFunction
}

func NewPlace(piece string, region game.RegionFunction) *Place {
	return &Place{
		MovesBase: game.NewBase(region).WithConcepts(game.ConceptPiecePlacement).ForMoves(nil),
		piece:     piece,
		region:    region,
	}
}

func (n *Place) Eval(ctx *game.Context) *game.MoveList {
	what, owner := resolve(ctx, "place", n.piece)
	var actions []game.Action
	for _, site := range n.region.Eval(ctx).Sites() {
		actions = append(actions, game.ActionAdd{Site: site, What: what, Who: owner})
	}
	return placement(ctx, actions)
}

func (n *Place) MissingRequirement(g *game.Game) bool {
	m := n.MovesBase.MissingRequirement(g)
	return missing(g, "place", n.piece) || m
}

// PlaceRandom puts a piece on count distinct empty sites of a region drawn
// from the context's RNG stream.
type PlaceRandom struct {
	game.MovesBase
	piece  string
	region game.RegionFunction
	count  game.IntFunction
}

func NewPlaceRandom(piece string, region game.RegionFunction, count game.IntFunction) *PlaceRandom {
	return &PlaceRandom{
		MovesBase: game.NewBase(region, count).WithFlags(game.FlagStochastic).
			WithConcepts(game.ConceptRandomPlacement, game.ConceptStochastic, game.ConceptPiecePlacement).ForMoves(nil),
		piece:  piece,
		region: region,
		count:  count,
	}
}

func (n *PlaceRandom) Eval(ctx *game.Context) *game.MoveList {
	what, owner := resolve(ctx, "place random", n.piece)
	candidates := n.region.Eval(ctx).Intersection(ctx.Board().EmptySites()).Sites()
	count := n.count.Eval(ctx)
	if count < 0 || count > len(candidates) {
		game.Fail("place random", "cannot place %d pieces on %d empty sites", count, len(candidates))
	}
	ctx.Rand().Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	actions := make([]game.Action, 0, count)
	for _, site := range candidates[:count] {
		actions = append(actions, game.ActionAdd{Site: site, What: what, Who: owner})
	}
	return placement(ctx, actions)
}

func (n *PlaceRandom) MissingRequirement(g *game.Game) bool {
	m := n.MovesBase.MissingRequirement(g)
	return missing(g, "place random", n.piece) || m
}
