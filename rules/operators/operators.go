// Package operators combines Moves ludemes.
package operators

import (
	"slices"

	"github.com/bits-and-blooms/bitset"

	"ludeme/game"
)

// merge builds one move doing everything parts do, in order. Continuations
// are concatenated in the same order, each bound to the endpoints of its
// own part. From is the first endpoint set, To the last one.
func merge(mover int, parts ...*game.Move) *game.Move {
	m := game.NewMove(mover)
	for _, p := range parts {
		m.Actions = append(m.Actions, p.Actions...)
		for _, then := range p.Thens {
			m.Thens = append(m.Thens, then.At(p.From, p.To))
		}
		m.Decision = m.Decision || p.Decision
		if m.From == game.Off {
			m.From = p.From
		}
		if p.To != game.Off {
			m.To = p.To
		}
	}
	return m
}

// Or offers the moves of every child, in order.
type Or struct {
	game.MovesBase
	children []game.Moves
}

func NewOr(then *game.Then, children ...game.Moves) *Or {
	return &Or{
		MovesBase: game.NewBase(game.MovesNodes(children)...).WithConcepts(game.ConceptChoice).ForMoves(then),
		children:  children,
	}
}

func (n *Or) Eval(ctx *game.Context) *game.MoveList {
	moves := game.NewMoveList()
	for _, c := range n.children {
		moves.Append(c.Eval(ctx))
	}
	return moves.AttachThen(n.Then())
}

// And chains its children: every combination of one move per child becomes
// a single move. A child producing nothing produces no combination.
type And struct {
	game.MovesBase
	children []game.Moves
}

func NewAnd(then *game.Then, children ...game.Moves) *And {
	return &And{
		MovesBase: game.NewBase(game.MovesNodes(children)...).WithConcepts(game.ConceptSequence).ForMoves(then),
		children:  children,
	}
}

func (n *And) Eval(ctx *game.Context) *game.MoveList {
	mover := ctx.Mover()
	combos := [][]*game.Move{nil}
	for _, c := range n.children {
		produced := c.Eval(ctx).All()
		next := make([][]*game.Move, 0, len(combos)*len(produced))
		for _, combo := range combos {
			for _, m := range produced {
				next = append(next, append(slices.Clip(combo), m))
			}
		}
		combos = next
	}
	moves := game.NewMoveList()
	for _, combo := range combos {
		if len(combo) > 0 {
			moves.Add(merge(mover, combo...))
		}
	}
	return moves.AttachThen(n.Then())
}

// Seq gathers everything its children produce into a single move.
type Seq struct {
	game.MovesBase
	children []game.Moves
}

func NewSeq(then *game.Then, children ...game.Moves) *Seq {
	return &Seq{
		MovesBase: game.NewBase(game.MovesNodes(children)...).WithConcepts(game.ConceptSequence).ForMoves(then),
		children:  children,
	}
}

func (n *Seq) Eval(ctx *game.Context) *game.MoveList {
	var parts []*game.Move
	for _, c := range n.children {
		parts = append(parts, c.Eval(ctx).All()...)
	}
	if len(parts) == 0 {
		return game.NewMoveList()
	}
	return game.NewMoveList(merge(ctx.Mover(), parts...)).AttachThen(n.Then())
}

// If offers the moves of then when cond holds, of otherwise (possibly nil)
// when it does not.
type If struct {
	game.MovesBase
	cond      game.BooleanFunction
	then      game.Moves
	otherwise game.Moves
}

func NewIf(cond game.BooleanFunction, then, otherwise game.Moves, consequence *game.Then) *If {
	return &If{
		MovesBase: game.NewBase(cond, then, otherwise).WithConcepts(game.ConceptConditional).ForMoves(consequence),
		cond:      cond,
		then:      then,
		otherwise: otherwise,
	}
}

func (n *If) Eval(ctx *game.Context) *game.MoveList {
	var moves *game.MoveList
	switch {
	case n.cond.Eval(ctx):
		moves = n.then.Eval(ctx)
	case n.otherwise != nil:
		moves = n.otherwise.Eval(ctx)
	default:
		moves = game.NewMoveList()
	}
	return moves.AttachThen(n.Then())
}

// Priority offers the moves of the first child producing any.
type Priority struct {
	game.MovesBase
	children []game.Moves
}

func NewPriority(then *game.Then, children ...game.Moves) *Priority {
	return &Priority{
		MovesBase: game.NewBase(game.MovesNodes(children)...).WithConcepts(game.ConceptPriority).ForMoves(then),
		children:  children,
	}
}

func (n *Priority) Eval(ctx *game.Context) *game.MoveList {
	for _, c := range n.children {
		if moves := c.Eval(ctx); moves.Len() > 0 {
			return moves.AttachThen(n.Then())
		}
	}
	return game.NewMoveList()
}

// ForEach offers the moves of its child evaluated with the Site register set
// to each site of a region in turn.
type ForEach struct {
	game.MovesBase
	region game.RegionFunction
	moves  game.Moves
}

func NewForEach(region game.RegionFunction, moves game.Moves, then *game.Then) *ForEach {
	return &ForEach{
		MovesBase: game.NewBase(region, moves).Setting(game.RegSite).WithConcepts(game.ConceptForEachSite).ForMoves(then),
		region:    region,
		moves:     moves,
	}
}

// ReadsEvalContext hides Site from the looped moves only.
func (n *ForEach) ReadsEvalContext() *bitset.BitSet {
	reads := game.ScopedReads(game.Registers(game.RegSite), n.moves)
	return game.CombineReads(reads, n.region, n.Then())
}

func (n *ForEach) Eval(ctx *game.Context) *game.MoveList {
	moves := game.NewMoveList()
	for _, site := range n.region.Eval(ctx).Sites() {
		moves.Append(n.evalAt(ctx, site))
	}
	return moves.AttachThen(n.Then())
}

func (n *ForEach) evalAt(ctx *game.Context, site int) *game.MoveList {
	defer ctx.Eval().Scope(game.RegSite, site)()
	return n.moves.Eval(ctx)
}

// ForEachGroup offers the moves of its child evaluated once per group, with
// the Region register set to the group and From to its first site.
type ForEachGroup struct {
	game.MovesBase
	query game.GroupQuery
	moves game.Moves
}

func NewForEachGroup(moves game.Moves, then *game.Then, options ...game.GroupOption) *ForEachGroup {
	q := game.NewGroupQuery(options...)
	nodes := append(q.Nodes(), moves)
	return &ForEachGroup{
		MovesBase: game.NewBase(nodes...).Setting(game.RegRegion, game.RegFrom, game.RegSite).
			WithFlags(game.FlagGroups).WithConcepts(game.ConceptForEachGroup, game.ConceptGroup).ForMoves(then),
		query: q,
		moves: moves,
	}
}

// ReadsEvalContext hides Region and From from the looped moves, and Site
// from the query's condition.
func (n *ForEachGroup) ReadsEvalContext() *bitset.BitSet {
	reads := game.ScopedReads(game.Registers(game.RegRegion, game.RegFrom), n.moves)
	reads.InPlaceUnion(n.query.ReadsEvalContext())
	return game.CombineReads(reads, n.Then())
}

func (n *ForEachGroup) Eval(ctx *game.Context) *game.MoveList {
	moves := game.NewMoveList()
	for _, group := range n.query.Groups(ctx) {
		moves.Append(n.evalOn(ctx, group))
	}
	return moves.AttachThen(n.Then())
}

func (n *ForEachGroup) evalOn(ctx *game.Context, group []int) *game.MoveList {
	defer ctx.Eval().ScopeRegion(game.NewRegion(group...))()
	defer ctx.Eval().Scope(game.RegFrom, group[0])()
	return n.moves.Eval(ctx)
}
