// Package graph holds the ludemes building boards. Boards are always
// static: they are built once, when the game is preprocessed.
package graph

import (
	"ludeme/game"
	"ludeme/topology"
)

type shape int

const (
	square shape = iota
	rectangle
	hex
)

// Board builds a topology from dimensions.
type Board struct {
	game.Base
	shape shape
	dims  []game.DimFunction
	built *topology.Topology
}

func newBoard(s shape, dims ...game.DimFunction) *Board {
	nodes := make([]game.Node, len(dims))
	for i, d := range dims {
		nodes[i] = d
	}
	return &Board{Base: game.NewBase(nodes...), shape: s, dims: dims}
}

// Square is an n x n board with orthogonal and diagonal directions.
func Square(n game.DimFunction) *Board { return newBoard(square, n) }

func Rectangle(rows, cols game.DimFunction) *Board { return newBoard(rectangle, rows, cols) }

// Hex is an n x n rhombus of hexagons.
func Hex(n game.DimFunction) *Board { return newBoard(hex, n) }

// Preprocess builds the board. Dimensions never read the context, so they
// are evaluated without one.
func (n *Board) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	if !n.IsStatic() {
		panic("board dimensions must be static")
	}
	dims := make([]int, len(n.dims))
	for i, d := range n.dims {
		dims[i] = d.Eval(nil)
	}
	switch n.shape {
	case rectangle:
		n.built = topology.Rectangle(dims[0], dims[1])
	case hex:
		n.built = topology.Hex(dims[0])
	default:
		n.built = topology.Square(dims[0])
	}
}

func (n *Board) Eval(ctx *game.Context) *topology.Topology {
	if n.built == nil {
		game.Fail("board", "board used before preprocessing")
	}
	return n.built
}

func (n *Board) GameFlags(g *game.Game) game.Flags {
	switch n.shape {
	case hex:
		return game.FlagHex
	default:
		return game.FlagSquare
	}
}

// Graph is a board given as an explicit list of edges between sites.
type Graph struct {
	game.Base
	numSites int
	edges    [][2]int
	built    *topology.Topology
}

func NewGraph(numSites int, edges [][2]int) *Graph {
	return &Graph{Base: game.NewBase(), numSites: numSites, edges: edges}
}

func (n *Graph) Preprocess(g *game.Game) {
	n.built = topology.FromEdges(n.numSites, n.edges)
}

func (n *Graph) Eval(ctx *game.Context) *topology.Topology {
	if n.built == nil {
		game.Fail("graph", "board used before preprocessing")
	}
	return n.built
}

func (n *Graph) GameFlags(g *game.Game) game.Flags { return game.FlagGraph }
