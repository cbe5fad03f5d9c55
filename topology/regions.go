package topology

import "fmt"

// Row returns the sites of row r, left to right.
func (t *Topology) Row(r int) []int {
	if r < 0 || r >= t.rows {
		panic(fmt.Sprintf("row %d out of range [0,%d)", r, t.rows))
	}
	sites := make([]int, 0, t.cols)
	for c := 0; c < t.cols; c++ {
		sites = append(sites, t.SiteAt(r, c))
	}
	return sites
}

// Column returns the sites of column c, bottom to top.
func (t *Topology) Column(c int) []int {
	if c < 0 || c >= t.cols {
		panic(fmt.Sprintf("column %d out of range [0,%d)", c, t.cols))
	}
	sites := make([]int, 0, t.rows)
	for r := 0; r < t.rows; r++ {
		sites = append(sites, t.SiteAt(r, c))
	}
	return sites
}

// Perimeter returns the sites with at least one missing orthogonal neighbour.
func (t *Topology) Perimeter() []int {
	var sites []int
	for site := range t.coords {
		for _, d := range t.orthogonal {
			if len(t.trajectory.Steps(site, d)) == 0 {
				sites = append(sites, site)
				break
			}
		}
	}
	return sites
}

// Corners returns the corner sites of a grid board.
func (t *Topology) Corners() []int {
	if t.kind == GraphTiling {
		return nil
	}
	candidates := []int{
		t.SiteAt(0, 0),
		t.SiteAt(0, t.cols-1),
		t.SiteAt(t.rows-1, 0),
		t.SiteAt(t.rows-1, t.cols-1),
	}
	var sites []int
	seen := map[int]bool{}
	for _, s := range candidates {
		if !seen[s] {
			seen[s] = true
			sites = append(sites, s)
		}
	}
	return sites
}

// Centre returns the middle site, or the middle 2 or 4 sites on boards with
// even dimensions.
func (t *Topology) Centre() []int {
	if t.kind == GraphTiling {
		return nil
	}
	rows := middle(t.rows)
	cols := middle(t.cols)
	var sites []int
	for _, r := range rows {
		for _, c := range cols {
			sites = append(sites, t.SiteAt(r, c))
		}
	}
	return sites
}

func middle(n int) []int {
	if n%2 == 1 {
		return []int{n / 2}
	}
	return []int{n/2 - 1, n / 2}
}

// Side returns the board edge facing d. Only the four cardinal directions
// name a side.
func (t *Topology) Side(d Direction) []int {
	switch d {
	case N:
		return t.Row(t.rows - 1)
	case S:
		return t.Row(0)
	case E:
		return t.Column(t.cols - 1)
	case W:
		return t.Column(0)
	default:
		panic(fmt.Sprintf("no board side in direction %s", d))
	}
}
