package region

import (
	"github.com/bits-and-blooms/bitset"

	"ludeme/game"
	"ludeme/topology"
)

type setOp int

const (
	union setOp = iota
	intersection
	difference
)

// SetOp combines regions left to right.
type SetOp struct {
	game.Base
	op      setOp
	regions []game.RegionFunction
	cached  game.Cached[game.Region]
}

func newSetOp(op setOp, concept game.Concept, regions []game.RegionFunction) *SetOp {
	if len(regions) == 0 {
		panic("set operation requires at least one region")
	}
	return &SetOp{
		Base:    game.NewBase(game.RegionNodes(regions)...).WithConcepts(concept),
		op:      op,
		regions: regions,
	}
}

func Union(regions ...game.RegionFunction) *SetOp {
	return newSetOp(union, game.ConceptUnion, regions)
}

func Intersection(regions ...game.RegionFunction) *SetOp {
	return newSetOp(intersection, game.ConceptIntersection, regions)
}

// Difference removes every following region from the first one.
func Difference(regions ...game.RegionFunction) *SetOp {
	return newSetOp(difference, game.ConceptDifference, regions)
}

func (n *SetOp) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "set operation", n.IsStatic(), n.Eval)
}

func (n *SetOp) Eval(ctx *game.Context) game.Region {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	result := n.regions[0].Eval(ctx)
	for _, r := range n.regions[1:] {
		switch n.op {
		case union:
			result = result.Union(r.Eval(ctx))
		case intersection:
			result = result.Intersection(r.Eval(ctx))
		default:
			result = result.Difference(r.Eval(ctx))
		}
	}
	return result
}

// If picks one of two regions on a condition. A nil otherwise is empty.
type If struct {
	game.Base
	cond      game.BooleanFunction
	then      game.RegionFunction
	otherwise game.RegionFunction
	cached    game.Cached[game.Region]
}

func NewIf(cond game.BooleanFunction, then, otherwise game.RegionFunction) *If {
	return &If{
		Base:      game.NewBase(cond, then, otherwise).WithConcepts(game.ConceptConditional),
		cond:      cond,
		then:      then,
		otherwise: otherwise,
	}
}

func (n *If) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "if", n.IsStatic(), n.Eval)
}

func (n *If) Eval(ctx *game.Context) game.Region {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	if n.cond.Eval(ctx) {
		return n.then.Eval(ctx)
	}
	if n.otherwise == nil {
		return game.Region{}
	}
	return n.otherwise.Eval(ctx)
}

// ForEach keeps the sites of a region for which cond holds, evaluated with
// the Site register set to each site.
type ForEach struct {
	game.Base
	region game.RegionFunction
	cond   game.BooleanFunction
}

func NewForEach(region game.RegionFunction, cond game.BooleanFunction) *ForEach {
	return &ForEach{
		Base:   game.NewBase(region, cond).Setting(game.RegSite).WithConcepts(game.ConceptForEachSite),
		region: region,
		cond:   cond,
	}
}

// ReadsEvalContext hides Site from cond only: region runs outside the loop.
func (n *ForEach) ReadsEvalContext() *bitset.BitSet {
	return game.CombineReads(game.ScopedReads(game.Registers(game.RegSite), n.cond), n.region)
}

func (n *ForEach) Eval(ctx *game.Context) game.Region {
	var kept []int
	for _, site := range n.region.Eval(ctx).Sites() {
		if n.holds(ctx, site) {
			kept = append(kept, site)
		}
	}
	return game.NewRegion(kept...)
}

func (n *ForEach) holds(ctx *game.Context, site int) bool {
	defer ctx.Eval().Scope(game.RegSite, site)()
	return n.cond.Eval(ctx)
}

// Around is the set of neighbours of a site.
type Around struct {
	game.Base
	site   game.IntFunction
	dirs   topology.Directions
	cached game.Cached[game.Region]
}

func NewAround(site game.IntFunction, dirs topology.Directions) *Around {
	base := game.NewBase(site).WithConcepts(game.ConceptAdjacency)
	if dirs.IsRelative() {
		base = base.Dynamic()
	}
	return &Around{Base: base, site: site, dirs: dirs}
}

func (n *Around) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "around", n.IsStatic(), n.Eval)
}

func (n *Around) Eval(ctx *game.Context) game.Region {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	site := n.site.Eval(ctx)
	if !ctx.Topology().OnBoard(site) {
		return game.Region{}
	}
	return game.NewRegion(ctx.Topology().Neighbours(site, n.dirs, ctx.Facing(ctx.Mover()))...)
}

// Direction is the set of sites along the given directions from a site,
// up to a distance when set. With stopAtOccupied the walk stops before the
// first occupied site.
type Direction struct {
	game.Base
	site           game.IntFunction
	dirs           topology.Directions
	distance       game.IntFunction
	stopAtOccupied bool
	cached         game.Cached[game.Region]
}

func NewDirection(site game.IntFunction, dirs topology.Directions, distance game.IntFunction, stopAtOccupied bool) *Direction {
	base := game.NewBase(site, distance)
	if dirs.IsRelative() || stopAtOccupied {
		base = base.Dynamic()
	}
	return &Direction{Base: base, site: site, dirs: dirs, distance: distance, stopAtOccupied: stopAtOccupied}
}

func (n *Direction) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "direction", n.IsStatic(), n.Eval)
}

func (n *Direction) Eval(ctx *game.Context) game.Region {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	t := ctx.Topology()
	site := n.site.Eval(ctx)
	if !t.OnBoard(site) {
		return game.Region{}
	}
	limit := -1
	if n.distance != nil {
		limit = n.distance.Eval(ctx)
	}
	var sites []int
	for _, d := range n.dirs.Resolve(t, ctx.Facing(ctx.Mover())) {
		for i, s := range t.Trajectories().Radial(site, d) {
			if limit >= 0 && i >= limit {
				break
			}
			if n.stopAtOccupied && !ctx.Board().IsEmpty(s) {
				break
			}
			sites = append(sites, s)
		}
	}
	return game.NewRegion(sites...)
}

// Group is the group containing a site, empty when the site is not a
// member.
type Group struct {
	game.Base
	at    game.IntFunction
	query game.GroupQuery
}

func NewGroup(at game.IntFunction, options ...game.GroupOption) *Group {
	q := game.NewGroupQuery(options...)
	return &Group{
		Base: game.NewBase(append([]game.Node{at}, q.Nodes()...)...).Dynamic().Setting(game.RegSite).
			WithFlags(game.FlagGroups).WithConcepts(game.ConceptGroup),
		at:    at,
		query: q,
	}
}

func (n *Group) ReadsEvalContext() *bitset.BitSet {
	return game.CombineReads(n.query.ReadsEvalContext(), n.at)
}

func (n *Group) Eval(ctx *game.Context) game.Region {
	site := n.at.Eval(ctx)
	if !ctx.Topology().OnBoard(site) {
		return game.Region{}
	}
	return game.NewRegion(game.GroupAt(ctx, site, n.query.Directions(), n.query.Member(ctx))...)
}
