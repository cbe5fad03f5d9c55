package game

import "github.com/bits-and-blooms/bitset"

// Cell is the content of one site. What is the piece index (0 for empty) and
// Who its owner (0 for nobody).
type Cell struct {
	What     int
	Who      int
	Count    int
	State    int
	Rotation int
	Value    int
}

// ContainerState holds the per-site contents of the board, indexed by site.
// It is owned by exactly one Context and only changes through Actions.
type ContainerState struct {
	what     []int
	who      []int
	count    []int
	state    []int
	rotation []int
	value    []int
	empty    *bitset.BitSet
}

func newContainerState(numSites int) *ContainerState {
	cs := &ContainerState{
		what:     make([]int, numSites),
		who:      make([]int, numSites),
		count:    make([]int, numSites),
		state:    make([]int, numSites),
		rotation: make([]int, numSites),
		value:    make([]int, numSites),
		empty:    bitset.New(uint(numSites)),
	}
	cs.empty.FlipRange(0, uint(numSites))
	return cs
}

func (cs *ContainerState) copy() *ContainerState {
	clone := func(s []int) []int {
		c := make([]int, len(s))
		copy(c, s)
		return c
	}
	return &ContainerState{
		what:     clone(cs.what),
		who:      clone(cs.who),
		count:    clone(cs.count),
		state:    clone(cs.state),
		rotation: clone(cs.rotation),
		value:    clone(cs.value),
		empty:    cs.empty.Clone(),
	}
}

func (cs *ContainerState) NumSites() int {
	return len(cs.what)
}

func (cs *ContainerState) check(site int) {
	if site < 0 || site >= len(cs.what) {
		Fail("container", "site %d out of range [0,%d)", site, len(cs.what))
	}
}

func (cs *ContainerState) What(site int) int {
	cs.check(site)
	return cs.what[site]
}

func (cs *ContainerState) Who(site int) int {
	cs.check(site)
	return cs.who[site]
}

func (cs *ContainerState) Count(site int) int {
	cs.check(site)
	return cs.count[site]
}

func (cs *ContainerState) State(site int) int {
	cs.check(site)
	return cs.state[site]
}

func (cs *ContainerState) Rotation(site int) int {
	cs.check(site)
	return cs.rotation[site]
}

func (cs *ContainerState) Value(site int) int {
	cs.check(site)
	return cs.value[site]
}

func (cs *ContainerState) IsEmpty(site int) bool {
	cs.check(site)
	return cs.what[site] == 0
}

// Cell returns a copy of the content of site.
func (cs *ContainerState) Cell(site int) Cell {
	cs.check(site)
	return Cell{
		What:     cs.what[site],
		Who:      cs.who[site],
		Count:    cs.count[site],
		State:    cs.state[site],
		Rotation: cs.rotation[site],
		Value:    cs.value[site],
	}
}

func (cs *ContainerState) setCell(site int, c Cell) {
	cs.check(site)
	cs.what[site] = c.What
	cs.who[site] = c.Who
	cs.count[site] = c.Count
	cs.state[site] = c.State
	cs.rotation[site] = c.Rotation
	cs.value[site] = c.Value
	cs.empty.SetTo(uint(site), c.What == 0)
}

// EmptySites returns the region of empty sites.
func (cs *ContainerState) EmptySites() Region {
	return regionOf(cs.empty.Clone())
}

// SitesOwnedBy returns the sites holding a piece of player, or of anybody
// when player is 0.
func (cs *ContainerState) SitesOwnedBy(player int) Region {
	b := bitset.New(uint(len(cs.what)))
	for site, who := range cs.who {
		if cs.what[site] == 0 {
			continue
		}
		if player == 0 || who == player {
			b.Set(uint(site))
		}
	}
	return regionOf(b)
}

// Equal compares every site.
func (cs *ContainerState) Equal(other *ContainerState) bool {
	if cs.NumSites() != other.NumSites() {
		return false
	}
	for site := range cs.what {
		if cs.Cell(site) != other.Cell(site) {
			return false
		}
	}
	return true
}
