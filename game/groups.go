package game

import (
	"github.com/bits-and-blooms/bitset"

	"ludeme/topology"
)

// GroupMember decides whether a site belongs to a group.
type GroupMember func(site int) bool

// MemberOf returns the membership test used by group nodes: a site belongs
// when it holds a piece of player, or when cond accepts it. Player 0 drops
// the ownership criterion; without cond any occupied site then belongs.
func MemberOf(ctx *Context, player int, cond GroupMember) GroupMember {
	board := ctx.Board()
	return func(site int) bool {
		if player > 0 && !board.IsEmpty(site) && board.Who(site) == player {
			return true
		}
		if cond != nil {
			return cond(site)
		}
		return player == 0 && !board.IsEmpty(site)
	}
}

// GroupAt grows the group containing start. The frontier is a list plus a
// bitset of visited sites; neighbours are explored in the board's listed
// order for dirs. Returns nil when start is not a member.
func GroupAt(ctx *Context, start int, dirs topology.Directions, member GroupMember) []int {
	visited := bitset.New(uint(ctx.Topology().NumSites()))
	return growGroup(ctx, start, dirs, member, visited)
}

func growGroup(ctx *Context, start int, dirs topology.Directions, member GroupMember, visited *bitset.BitSet) []int {
	if visited.Test(uint(start)) || !member(start) {
		return nil
	}
	t := ctx.Topology()
	facing := ctx.Facing(ctx.Mover())
	group := []int{start}
	visited.Set(uint(start))
	for i := 0; i < len(group); i++ {
		for _, to := range t.Neighbours(group[i], dirs, facing) {
			if visited.Test(uint(to)) || !member(to) {
				continue
			}
			visited.Set(uint(to))
			group = append(group, to)
		}
	}
	return group
}

// Groups returns every group of at least minSize sites, seeding from each
// member site not yet visited in ascending site order.
func Groups(ctx *Context, dirs topology.Directions, member GroupMember, minSize int) [][]int {
	n := ctx.Topology().NumSites()
	visited := bitset.New(uint(n))
	var groups [][]int
	for site := 0; site < n; site++ {
		group := growGroup(ctx, site, dirs, member, visited)
		if len(group) > 0 && len(group) >= minSize {
			groups = append(groups, group)
		}
	}
	return groups
}

// GroupQuery is the shared configuration of the group ludemes: whose pieces
// form groups, along which directions, an optional extra membership
// condition (evaluated with the Site register set to the candidate site)
// and a minimum group size.
type GroupQuery struct {
	player IntFunction
	dirs   topology.Directions
	cond   BooleanFunction
	min    IntFunction
}

type GroupOption func(q *GroupQuery)

// GroupOf selects the owner of the group; 0 means any owner. Defaults to
// the mover.
func GroupOf(player IntFunction) GroupOption {
	return func(q *GroupQuery) {
		if player != nil {
			q.player = player
		}
	}
}

// GroupDirections sets the connecting directions. Defaults to Adjacent.
func GroupDirections(dirs topology.Directions) GroupOption {
	return func(q *GroupQuery) {
		q.dirs = dirs
	}
}

func GroupIf(cond BooleanFunction) GroupOption {
	return func(q *GroupQuery) {
		q.cond = cond
	}
}

// GroupMin keeps only groups of at least size sites. Defaults to 1.
func GroupMin(size IntFunction) GroupOption {
	return func(q *GroupQuery) {
		q.min = size
	}
}

func NewGroupQuery(options ...GroupOption) GroupQuery {
	q := GroupQuery{dirs: topology.Adjacent}
	for _, option := range options {
		option(&q)
	}
	return q
}

// Nodes returns the child nodes of the query.
func (q GroupQuery) Nodes() []Node {
	var nodes []Node
	for _, n := range []Node{q.player, q.cond, q.min} {
		if !isNil(n) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// ReadsEvalContext is the reads of the query's children. Only cond runs
// with Site set to the candidate site.
func (q GroupQuery) ReadsEvalContext() *bitset.BitSet {
	return CombineReads(ScopedReads(Registers(RegSite), q.cond), q.player, q.min)
}

func (q GroupQuery) Directions() topology.Directions { return q.dirs }

func (q GroupQuery) Player(ctx *Context) int {
	if q.player == nil {
		return ctx.Mover()
	}
	return q.player.Eval(ctx)
}

// Member returns the membership test for the current state.
func (q GroupQuery) Member(ctx *Context) GroupMember {
	var cond GroupMember
	if q.cond != nil {
		cond = func(site int) bool {
			defer ctx.Eval().Scope(RegSite, site)()
			return q.cond.Eval(ctx)
		}
	}
	return MemberOf(ctx, q.Player(ctx), cond)
}

// Groups returns the groups matching the query.
func (q GroupQuery) Groups(ctx *Context) [][]int {
	minSize := 1
	if q.min != nil {
		minSize = q.min.Eval(ctx)
	}
	return Groups(ctx, q.dirs, q.Member(ctx), minSize)
}

// GroupsFrom grows the groups containing the given seed sites. A site
// belongs to at most one returned group; seeds that are not members are
// skipped.
func GroupsFrom(ctx *Context, seeds []int, dirs topology.Directions, member GroupMember) [][]int {
	visited := bitset.New(uint(ctx.Topology().NumSites()))
	var groups [][]int
	for _, seed := range seeds {
		if group := growGroup(ctx, seed, dirs, member, visited); len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
