package topology

// Step is one precomputed move from a site to a neighbour in a direction.
type Step struct {
	From      int
	To        int
	Direction Direction
}

// Trajectories is the lookup table from (site, direction) to reachable
// neighbours, plus full radials (every site along a direction until the edge
// of the board). It does not depend on game state.
type Trajectories struct {
	steps   [][numDirections][]Step
	radials [][numDirections][]int
}

func newTrajectories(t *Topology) *Trajectories {
	n := t.NumSites()
	tr := &Trajectories{
		steps:   make([][numDirections][]Step, n),
		radials: make([][numDirections][]int, n),
	}
	for site := 0; site < n; site++ {
		from := t.coords[site]
		for _, d := range t.supported {
			off := t.offsets[d]
			to := t.SiteAt(from.Row+off.Row, from.Col+off.Col)
			if to < 0 {
				continue
			}
			tr.steps[site][d] = []Step{{From: site, To: to, Direction: d}}

			var radial []int
			r, c := from.Row+off.Row, from.Col+off.Col
			for s := t.SiteAt(r, c); s >= 0; s = t.SiteAt(r, c) {
				radial = append(radial, s)
				r += off.Row
				c += off.Col
			}
			tr.radials[site][d] = radial
		}
	}
	return tr
}

// Steps returns the neighbours reachable from site in direction d. The slice
// is shared and must not be modified.
func (tr *Trajectories) Steps(site int, d Direction) []Step {
	if site < 0 || site >= len(tr.steps) || d < 0 || d >= numDirections {
		return nil
	}
	return tr.steps[site][d]
}

// Radial returns every site from site (exclusive) to the board edge in
// direction d, nearest first.
func (tr *Trajectories) Radial(site int, d Direction) []int {
	if site < 0 || site >= len(tr.radials) || d < 0 || d >= numDirections {
		return nil
	}
	return tr.radials[site][d]
}
