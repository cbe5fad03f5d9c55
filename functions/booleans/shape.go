package booleans

import (
	"ludeme/game"
	"ludeme/topology"
)

// IsLine holds when a player owns a line of at least length pieces along
// one of the given directions. The player defaults to the mover. When
// through is set, only lines crossing that site count.
type IsLine struct {
	game.Base
	length  game.IntFunction
	dirs    topology.Directions
	player  game.IntFunction
	through game.IntFunction
}

type LineOption func(n *IsLine)

func LineOf(player game.IntFunction) LineOption {
	return func(n *IsLine) { n.player = player }
}

func LineDirections(dirs topology.Directions) LineOption {
	return func(n *IsLine) { n.dirs = dirs }
}

func LineThrough(site game.IntFunction) LineOption {
	return func(n *IsLine) { n.through = site }
}

func NewIsLine(length game.IntFunction, options ...LineOption) *IsLine {
	n := &IsLine{length: length, dirs: topology.All}
	for _, option := range options {
		option(n)
	}
	n.Base = game.NewBase(length, n.player, n.through).Dynamic().
		WithFlags(game.FlagLine).WithConcepts(game.ConceptLine)
	return n
}

func (n *IsLine) Eval(ctx *game.Context) bool {
	length := n.length.Eval(ctx)
	if length <= 0 {
		game.Fail("is line", "length %d is not positive", length)
	}
	player := ctx.Mover()
	if n.player != nil {
		player = n.player.Eval(ctx)
	}
	board := ctx.Board()
	var sites []int
	if n.through != nil {
		site := n.through.Eval(ctx)
		if !ctx.Topology().OnBoard(site) || board.Who(site) != player || board.IsEmpty(site) {
			return false
		}
		sites = []int{site}
	} else {
		sites = board.SitesOwnedBy(player).Sites()
	}
	tr := ctx.Topology().Trajectories()
	owned := func(site int) bool { return !board.IsEmpty(site) && board.Who(site) == player }
	run := func(site int, d topology.Direction) int {
		count := 0
		for _, s := range tr.Radial(site, d) {
			if !owned(s) {
				break
			}
			count++
		}
		return count
	}
	dirs := n.dirs.Resolve(ctx.Topology(), ctx.Facing(player))
	for _, site := range sites {
		for _, d := range dirs {
			if 1+run(site, d)+run(site, d.Opposite()) >= length {
				return true
			}
		}
	}
	return false
}

// IsPattern holds when walking from a site, turning by each relative
// direction of walk in turn and stepping once, visits pieces matching whats.
// whats has one entry per visited site, starting with the site itself; a
// single entry applies to every site. Every supported direction is tried as
// the initial heading.
type IsPattern struct {
	game.Base
	walk  []topology.RelativeDirection
	whats []game.IntFunction
	from  game.IntFunction
}

func NewIsPattern(from game.IntFunction, walk []topology.RelativeDirection, whats ...game.IntFunction) *IsPattern {
	if len(whats) != 1 && len(whats) != len(walk)+1 {
		panic("is pattern: whats must hold one entry or one per visited site")
	}
	nodes := append([]game.Node{from}, game.IntNodes(whats)...)
	return &IsPattern{
		Base:  game.NewBase(nodes...).Dynamic().WithConcepts(game.ConceptPattern),
		walk:  walk,
		whats: whats,
		from:  from,
	}
}

func (n *IsPattern) Eval(ctx *game.Context) bool {
	t := ctx.Topology()
	start := n.from.Eval(ctx)
	if !t.OnBoard(start) {
		return false
	}
	whats := make([]int, len(n.walk)+1)
	for i := range whats {
		if len(n.whats) == 1 {
			whats[i] = n.whats[0].Eval(ctx)
		} else {
			whats[i] = n.whats[i].Eval(ctx)
		}
	}
	board := ctx.Board()
	for _, heading := range t.SupportedDirections() {
		if n.matches(t, board, start, heading, whats) {
			return true
		}
	}
	return false
}

func (n *IsPattern) matches(t *topology.Topology, board *game.ContainerState, site int, heading topology.Direction, whats []int) bool {
	if board.What(site) != whats[0] {
		return false
	}
	for i, rel := range n.walk {
		heading = heading.Turn(rel)
		steps := t.Trajectories().Steps(site, heading)
		if len(steps) == 0 {
			return false
		}
		site = steps[0].To
		if board.What(site) != whats[i+1] {
			return false
		}
	}
	return true
}

// IsConnected holds when a single group of the player's pieces touches
// every region. The player defaults to the mover.
type IsConnected struct {
	game.Base
	regions []game.RegionFunction
	player  game.IntFunction
	dirs    topology.Directions
}

func NewIsConnected(player game.IntFunction, dirs topology.Directions, regions ...game.RegionFunction) *IsConnected {
	if len(regions) < 2 {
		panic("is connected requires at least two regions")
	}
	nodes := append([]game.Node{player}, game.RegionNodes(regions)...)
	return &IsConnected{
		Base:    game.NewBase(nodes...).Dynamic().WithFlags(game.FlagConnection).WithConcepts(game.ConceptConnection),
		regions: regions,
		player:  player,
		dirs:    dirs,
	}
}

func (n *IsConnected) Eval(ctx *game.Context) bool {
	player := ctx.Mover()
	if n.player != nil {
		player = n.player.Eval(ctx)
	}
	regions := make([]game.Region, len(n.regions))
	for i, r := range n.regions {
		regions[i] = r.Eval(ctx)
	}
	member := game.MemberOf(ctx, player, nil)
	for _, group := range game.GroupsFrom(ctx, regions[0].Sites(), n.dirs, member) {
		touched := game.NewRegion(group...)
		all := true
		for _, r := range regions[1:] {
			if r.Intersection(touched).IsEmpty() {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
