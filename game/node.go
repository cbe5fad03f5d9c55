package game

import (
	"github.com/bits-and-blooms/bitset"

	"ludeme/topology"
)

// Node is the contract every ludeme implements. Everything except Eval is a
// static query over the rule tree: it may only be called once the tree is
// fully built, and Preprocess must have run before any Eval.
//
// Eval must be a pure function of the context and the node's own fields. Any
// persistent change is expressed as Actions inside Moves.
type Node interface {
	// Preprocess resolves defaulted parameters, preprocesses children and,
	// when the node is static, caches its single result.
	Preprocess(g *Game)
	// IsStatic reports whether the result does not depend on the context.
	IsStatic() bool
	GameFlags(g *Game) Flags
	Concepts(g *Game) *bitset.BitSet
	// ReadsEvalContext is the set of registers this subtree expects an
	// ancestor to have set: everything read below, minus what this node sets
	// itself before evaluating its children.
	ReadsEvalContext() *bitset.BitSet
	// WritesEvalContext is the set of registers written anywhere in the
	// subtree.
	WritesEvalContext() *bitset.BitSet
	// MissingRequirement and WillCrash append diagnostics to the game report
	// and report whether any were found.
	MissingRequirement(g *Game) bool
	WillCrash(g *Game) bool
}

type IntFunction interface {
	Node
	Eval(ctx *Context) int
}

type BooleanFunction interface {
	Node
	Eval(ctx *Context) bool
}

type RegionFunction interface {
	Node
	Eval(ctx *Context) Region
}

// GraphFunction builds the board. Graph functions are always static.
type GraphFunction interface {
	Node
	Eval(ctx *Context) *topology.Topology
}

type DimFunction interface {
	Node
	Eval(ctx *Context) int
}

// Moves is a node producing candidate moves. Decision nodes produce moves the
// mover chooses between; effect nodes produce forced state changes.
type Moves interface {
	Node
	Eval(ctx *Context) *MoveList
	// Then is the continuation attached to every produced move, or nil.
	Then() *Then
}

// EndRule decides whether the game is over after a move.
type EndRule interface {
	Node
	Eval(ctx *Context) *Result
}

func isNil(n Node) bool {
	return n == nil
}

// PreprocessAll preprocesses every non-nil node in order.
func PreprocessAll(g *Game, nodes ...Node) {
	for _, n := range nodes {
		if !isNil(n) {
			n.Preprocess(g)
		}
	}
}

// AllStatic reports whether every non-nil node is static.
func AllStatic(nodes ...Node) bool {
	for _, n := range nodes {
		if !isNil(n) && !n.IsStatic() {
			return false
		}
	}
	return true
}

func CombineFlags(g *Game, nodes ...Node) Flags {
	var f Flags
	for _, n := range nodes {
		if !isNil(n) {
			f |= n.GameFlags(g)
		}
	}
	return f
}

// CombineConcepts returns own plus the concepts of every non-nil node.
func CombineConcepts(g *Game, own *bitset.BitSet, nodes ...Node) *bitset.BitSet {
	out := NewConcepts()
	if own != nil {
		out.InPlaceUnion(own)
	}
	for _, n := range nodes {
		if !isNil(n) {
			out.InPlaceUnion(n.Concepts(g))
		}
	}
	return out
}

// CombineReads returns own plus the reads of every non-nil node.
func CombineReads(own *bitset.BitSet, nodes ...Node) *bitset.BitSet {
	out := Registers()
	if own != nil {
		out.InPlaceUnion(own)
	}
	for _, n := range nodes {
		if !isNil(n) {
			out.InPlaceUnion(n.ReadsEvalContext())
		}
	}
	return out
}

// CombineWrites returns own plus the writes of every non-nil node.
func CombineWrites(own *bitset.BitSet, nodes ...Node) *bitset.BitSet {
	out := Registers()
	if own != nil {
		out.InPlaceUnion(own)
	}
	for _, n := range nodes {
		if !isNil(n) {
			out.InPlaceUnion(n.WritesEvalContext())
		}
	}
	return out
}

// ScopedReads is the reads of children evaluated while this node has set the
// registers in sets: those are satisfied locally and not exposed upwards.
func ScopedReads(sets *bitset.BitSet, children ...Node) *bitset.BitSet {
	reads := CombineReads(nil, children...)
	return reads.Difference(sets)
}

// AnyMissingRequirement checks every node, so that all diagnostics are
// collected, and reports whether any failed.
func AnyMissingRequirement(g *Game, nodes ...Node) bool {
	missing := false
	for _, n := range nodes {
		if !isNil(n) && n.MissingRequirement(g) {
			missing = true
		}
	}
	return missing
}

// AnyWillCrash checks every node and reports whether any would crash.
func AnyWillCrash(g *Game, nodes ...Node) bool {
	crash := false
	for _, n := range nodes {
		if !isNil(n) && n.WillCrash(g) {
			crash = true
		}
	}
	return crash
}

// IntNodes and friends adapt typed slices for the variadic helpers above.
func IntNodes(fns []IntFunction) []Node {
	nodes := make([]Node, len(fns))
	for i, f := range fns {
		nodes[i] = f
	}
	return nodes
}

func BooleanNodes(fns []BooleanFunction) []Node {
	nodes := make([]Node, len(fns))
	for i, f := range fns {
		nodes[i] = f
	}
	return nodes
}

func RegionNodes(fns []RegionFunction) []Node {
	nodes := make([]Node, len(fns))
	for i, f := range fns {
		nodes[i] = f
	}
	return nodes
}

func MovesNodes(fns []Moves) []Node {
	nodes := make([]Node, len(fns))
	for i, f := range fns {
		nodes[i] = f
	}
	return nodes
}
