// Package effect holds the primitive move ludemes: decisions offered to the
// mover (placing, stepping, sliding, hopping, passing...) and the effects
// that change the state as consequences.
package effect

import "ludeme/game"

// single returns a list holding one move made of actions, or an empty list
// when there is nothing to do.
func single(ctx *game.Context, decision bool, actions ...game.Action) *game.MoveList {
	if len(actions) == 0 {
		return game.NewMoveList()
	}
	m := game.NewMove(ctx.Mover(), actions...)
	m.Decision = decision
	return game.NewMoveList(m)
}

// pieceFor resolves a piece name for a player, failing when the game does
// not declare it.
func pieceFor(ctx *game.Context, node, name string, player int) int {
	what, ok := ctx.Game().PieceOf(name, player)
	if !ok {
		game.Fail(node, "unknown piece %q", name)
	}
	return what
}

func missingPiece(g *game.Game, node, name string) bool {
	for p := 1; p <= g.NumPlayers; p++ {
		if _, ok := g.PieceOf(name, p); ok {
			return false
		}
	}
	g.Report().AddMissingRequirement("%s: game declares no piece %q", node, name)
	return true
}

// Add lets the mover place one of its pieces on any empty site of a region.
// The piece name is resolved per player: "Disc" places "Disc1" for player 1
// when the game declares it.
type Add struct {
	game.MovesBase
	piece string
	to    game.RegionFunction
}

func NewAdd(piece string, to game.RegionFunction, then *game.Then) *Add {
	return &Add{
		MovesBase: game.NewBase(to).WithConcepts(game.ConceptAddDecision, game.ConceptPiecePlacement).ForMoves(then),
		piece:     piece,
		to:        to,
	}
}

func (n *Add) Eval(ctx *game.Context) *game.MoveList {
	mover := ctx.Mover()
	what := pieceFor(ctx, "add", n.piece, mover)
	board := ctx.Board()
	moves := game.NewMoveList()
	for _, site := range n.to.Eval(ctx).Sites() {
		if !ctx.Topology().OnBoard(site) || !board.IsEmpty(site) {
			continue
		}
		m := game.NewMove(mover, game.ActionAdd{Site: site, What: what, Who: mover})
		m.To = site
		m.Decision = true
		moves.Add(m)
	}
	return moves.AttachThen(n.Then())
}

func (n *Add) MissingRequirement(g *game.Game) bool {
	missing := n.MovesBase.MissingRequirement(g)
	return missingPiece(g, "add", n.piece) || missing
}

// Claim lets the mover take ownership of any occupied site of a region it
// does not own yet.
type Claim struct {
	game.MovesBase
	region game.RegionFunction
}

func NewClaim(region game.RegionFunction, then *game.Then) *Claim {
	return &Claim{
		MovesBase: game.NewBase(region).WithConcepts(game.ConceptClaimEffect).ForMoves(then),
		region:    region,
	}
}

func (n *Claim) Eval(ctx *game.Context) *game.MoveList {
	mover := ctx.Mover()
	board := ctx.Board()
	moves := game.NewMoveList()
	for _, site := range n.region.Eval(ctx).Sites() {
		if board.IsEmpty(site) || board.Who(site) == mover {
			continue
		}
		what := ctx.Game().Convert(board.What(site), mover)
		m := game.NewMove(mover, game.ActionSetOwner{Site: site, Who: mover, What: what})
		m.To = site
		m.Decision = true
		moves.Add(m)
	}
	return moves.AttachThen(n.Then())
}

// Remove empties every occupied site of a region, as one effect.
type Remove struct {
	game.MovesBase
	region game.RegionFunction
}

func NewRemove(region game.RegionFunction, then *game.Then) *Remove {
	return &Remove{
		MovesBase: game.NewBase(region).WithConcepts(game.ConceptRemoveEffect).
			WithFlags(game.FlagCapture).ForMoves(then),
		region: region,
	}
}

func (n *Remove) Eval(ctx *game.Context) *game.MoveList {
	var actions []game.Action
	for _, site := range n.region.Eval(ctx).Sites() {
		if !ctx.Board().IsEmpty(site) {
			actions = append(actions, game.ActionRemove{Site: site})
		}
	}
	return single(ctx, false, actions...).AttachThen(n.Then())
}

// Flip turns every enemy piece of a region into a piece of the mover, as
// one effect.
type Flip struct {
	game.MovesBase
	region game.RegionFunction
}

func NewFlip(region game.RegionFunction, then *game.Then) *Flip {
	return &Flip{
		MovesBase: game.NewBase(region).WithConcepts(game.ConceptFlipEffect).ForMoves(then),
		region:    region,
	}
}

func (n *Flip) Eval(ctx *game.Context) *game.MoveList {
	mover := ctx.Mover()
	board := ctx.Board()
	var actions []game.Action
	for _, site := range n.region.Eval(ctx).Sites() {
		if board.IsEmpty(site) || board.Who(site) == mover || board.Who(site) == 0 {
			continue
		}
		what := ctx.Game().Convert(board.What(site), mover)
		actions = append(actions, game.ActionSetOwner{Site: site, Who: mover, What: what})
	}
	return single(ctx, false, actions...).AttachThen(n.Then())
}

// Pass is the decision to do nothing.
type Pass struct {
	game.MovesBase
}

func NewPass(then *game.Then) *Pass {
	return &Pass{
		MovesBase: game.NewBase().WithConcepts(game.ConceptPassDecision).WithFlags(game.FlagPass).ForMoves(then),
	}
}

func (n *Pass) Eval(ctx *game.Context) *game.MoveList {
	return single(ctx, true, game.ActionPass{}).AttachThen(n.Then())
}

// MoveAgain makes the mover play again after the current move.
type MoveAgain struct {
	game.MovesBase
}

func NewMoveAgain() *MoveAgain {
	return &MoveAgain{
		MovesBase: game.NewBase().WithConcepts(game.ConceptMoveAgain).WithFlags(game.FlagMoveAgain).ForMoves(nil),
	}
}

func (n *MoveAgain) Eval(ctx *game.Context) *game.MoveList {
	return single(ctx, false, game.ActionSetNextPlayer{Player: ctx.Mover()})
}
