package topology

import (
	"fmt"
	"slices"

	"ludeme/utils"
)

type Kind int

const (
	SquareTiling Kind = iota
	HexTiling
	GraphTiling
)

func (k Kind) String() string {
	switch k {
	case SquareTiling:
		return "square"
	case HexTiling:
		return "hex"
	default:
		return "graph"
	}
}

// Coord is the (row, column) position of a site. Row 0 is the bottom row.
type Coord struct {
	Row int
	Col int
}

// Topology is the static graph of board sites. It is built once per game and
// is read-only afterwards, so it can be shared by any number of contexts.
type Topology struct {
	kind       Kind
	rows       int
	cols       int
	coords     []Coord
	supported  []Direction // listed order used for every tie-break
	orthogonal []Direction
	diagonal   []Direction
	adjacent   []Direction
	offsets    map[Direction]Coord
	edges      [][]int // explicit adjacency for graph tilings
	trajectory *Trajectories
}

// Square builds an n x n board of square cells.
func Square(n int) *Topology {
	return Rectangle(n, n)
}

// Rectangle builds a rows x cols board of square cells. Sites are numbered
// row by row starting from the bottom-left corner.
func Rectangle(rows, cols int) *Topology {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", rows, cols))
	}
	t := &Topology{
		kind:       SquareTiling,
		rows:       rows,
		cols:       cols,
		supported:  []Direction{N, NE, E, SE, S, SW, W, NW},
		orthogonal: []Direction{N, E, S, W},
		diagonal:   []Direction{NE, SE, SW, NW},
		offsets: map[Direction]Coord{
			N: {1, 0}, NE: {1, 1}, E: {0, 1}, SE: {-1, 1},
			S: {-1, 0}, SW: {-1, -1}, W: {0, -1}, NW: {1, -1},
		},
	}
	t.adjacent = t.orthogonal
	t.layoutGrid()
	return t
}

// Hex builds an n x n rhombus of hexagonal cells, the board used by the
// connection game of the same name.
func Hex(n int) *Topology {
	if n <= 0 {
		panic(fmt.Sprintf("invalid board dimension %d", n))
	}
	t := &Topology{
		kind:       HexTiling,
		rows:       n,
		cols:       n,
		supported:  []Direction{NNE, E, SSE, SSW, W, NNW},
		orthogonal: []Direction{NNE, E, SSE, SSW, W, NNW},
		diagonal:   []Direction{},
		offsets: map[Direction]Coord{
			NNE: {1, 0}, E: {0, 1}, SSE: {-1, 1},
			SSW: {-1, 0}, W: {0, -1}, NNW: {1, -1},
		},
	}
	t.adjacent = t.orthogonal
	t.layoutGrid()
	return t
}

// FromEdges builds an arbitrary graph of n sites. It has no compass
// directions: only Adjacent (and All) selections reach neighbours.
func FromEdges(n int, edges [][2]int) *Topology {
	t := &Topology{
		kind:       GraphTiling,
		rows:       1,
		cols:       n,
		coords:     make([]Coord, n),
		supported:  []Direction{},
		orthogonal: []Direction{},
		diagonal:   []Direction{},
		adjacent:   []Direction{},
		offsets:    map[Direction]Coord{},
		edges:      make([][]int, n),
	}
	for i := range t.coords {
		t.coords[i] = Coord{Row: 0, Col: i}
	}
	for _, e := range edges {
		t.AddBorder(e[0], e[1])
	}
	t.trajectory = newTrajectories(t)
	return t
}

// AddBorder adds a bidirectional edge between two sites of a graph tiling.
func (t *Topology) AddBorder(a, b int) {
	if t.kind != GraphTiling {
		panic("borders can only be added to graph tilings")
	}
	t.checkSite(a)
	t.checkSite(b)
	t.edges[a] = utils.AppendUnique(t.edges[a], b)
	t.edges[b] = utils.AppendUnique(t.edges[b], a)
}

func (t *Topology) layoutGrid() {
	t.coords = make([]Coord, t.rows*t.cols)
	for r := 0; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			t.coords[r*t.cols+c] = Coord{Row: r, Col: c}
		}
	}
	t.trajectory = newTrajectories(t)
}

func (t *Topology) Kind() Kind   { return t.kind }
func (t *Topology) Rows() int    { return t.rows }
func (t *Topology) Columns() int { return t.cols }

func (t *Topology) NumSites() int {
	return len(t.coords)
}

// SupportedDirections returns the board's directions in listed order.
func (t *Topology) SupportedDirections() []Direction {
	return t.supported
}

func (t *Topology) Coord(site int) Coord {
	t.checkSite(site)
	return t.coords[site]
}

// SiteAt returns the site at (row, col), or -1 when off board.
func (t *Topology) SiteAt(row, col int) int {
	if t.kind == GraphTiling {
		if row != 0 || col < 0 || col >= t.cols {
			return -1
		}
		return col
	}
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		return -1
	}
	return row*t.cols + col
}

func (t *Topology) OnBoard(site int) bool {
	return site >= 0 && site < len(t.coords)
}

func (t *Topology) Trajectories() *Trajectories {
	return t.trajectory
}

// Neighbours returns the sites one step away from site in the selected
// directions, in resolution order and without duplicates.
func (t *Topology) Neighbours(site int, dirs Directions, facing Direction) []int {
	if t.kind == GraphTiling {
		if dirs.kind == kindAdjacent || dirs.kind == kindAll {
			return t.edges[site]
		}
		return nil
	}
	var out []int
	for _, d := range dirs.Resolve(t, facing) {
		for _, step := range t.trajectory.Steps(site, d) {
			out = utils.AppendUnique(out, step.To)
		}
	}
	return out
}

// Adjacent reports whether b is one Adjacent step away from a.
func (t *Topology) Adjacent(a, b int) bool {
	return slices.Contains(t.Neighbours(a, Adjacent, N), b)
}

// Rotate turns d by the given number of positions within the board's listed
// directions. It returns false when d is not supported.
func (t *Topology) Rotate(d Direction, positions int) (Direction, bool) {
	i := slices.Index(t.supported, d)
	if i < 0 {
		return d, false
	}
	n := len(t.supported)
	return t.supported[((i+positions)%n+n)%n], true
}

func (t *Topology) filterSupported(dirs []Direction) []Direction {
	out := make([]Direction, 0, len(dirs))
	for _, d := range dirs {
		if slices.Contains(t.supported, d) {
			out = append(out, d)
		}
	}
	return out
}

func (t *Topology) checkSite(site int) {
	if !t.OnBoard(site) {
		panic(fmt.Sprintf("site %d out of range [0,%d)", site, len(t.coords)))
	}
}

func (t *Topology) String() string {
	return fmt.Sprintf("%s %dx%d (%d sites)", t.kind, t.rows, t.cols, t.NumSites())
}
