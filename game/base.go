package game

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Base implements the static queries of the Node contract from a node's
// children and its own contributions. Node types embed it and override what
// they need, typically Preprocess (to cache static results) and the
// diagnostic checks.
type Base struct {
	children []Node
	flags    Flags
	concepts []Concept
	reads    []Register
	sets     []Register
	dynamic  bool
}

// NewBase returns a Base over the given children. Nil children are skipped.
func NewBase(children ...Node) Base {
	b := Base{}
	for _, c := range children {
		if !isNil(c) {
			b.children = append(b.children, c)
		}
	}
	return b
}

// WithFlags adds game flags contributed by the node itself.
func (b Base) WithFlags(f Flags) Base {
	b.flags |= f
	return b
}

// WithConcepts adds concepts contributed by the node itself.
func (b Base) WithConcepts(c ...Concept) Base {
	b.concepts = append(b.concepts, c...)
	return b
}

// Reading declares registers the node reads directly.
func (b Base) Reading(r ...Register) Base {
	b.reads = append(b.reads, r...)
	return b
}

// Setting declares registers the node sets before evaluating its children.
func (b Base) Setting(r ...Register) Base {
	b.sets = append(b.sets, r...)
	return b
}

// Dynamic marks a node reading game state (board, mover, scores...).
func (b Base) Dynamic() Base {
	b.dynamic = true
	return b
}

func (b *Base) Children() []Node { return b.children }

func (b *Base) Preprocess(g *Game) {
	PreprocessAll(g, b.children...)
}

// IsStatic holds when neither the node nor any child reads game state or a
// register.
func (b *Base) IsStatic() bool {
	return !b.dynamic && len(b.reads) == 0 && AllStatic(b.children...)
}

func (b *Base) GameFlags(g *Game) Flags {
	return b.flags | CombineFlags(g, b.children...)
}

func (b *Base) Concepts(g *Game) *bitset.BitSet {
	return CombineConcepts(g, NewConcepts(b.concepts...), b.children...)
}

func (b *Base) ReadsEvalContext() *bitset.BitSet {
	reads := ScopedReads(Registers(b.sets...), b.children...)
	reads.InPlaceUnion(Registers(b.reads...))
	return reads
}

func (b *Base) WritesEvalContext() *bitset.BitSet {
	return CombineWrites(Registers(b.sets...), b.children...)
}

func (b *Base) MissingRequirement(g *Game) bool {
	return AnyMissingRequirement(g, b.children...)
}

func (b *Base) WillCrash(g *Game) bool {
	return AnyWillCrash(g, b.children...)
}

// MovesBase is Base for Moves nodes: the continuation takes part in the
// static queries like any child.
type MovesBase struct {
	Base
	then *Then
}

// ForMoves turns b into the base of a Moves node with continuation then.
// Moves always depend on the mover, so the node is dynamic.
func (b Base) ForMoves(then *Then) MovesBase {
	b.children = slices.Clip(b.children)
	if then != nil {
		b.children = append(b.children, then)
	}
	b.dynamic = true
	return MovesBase{Base: b, then: then}
}

func (m *MovesBase) Then() *Then { return m.then }

// Cached holds the result of a static node, computed once during
// preprocessing.
type Cached[T any] struct {
	valid bool
	value T
}

// Precompute evaluates eval against the scratch context when static is set.
// A failing evaluation is left uncached (see Game.Precompute).
func (c *Cached[T]) Precompute(g *Game, node string, static bool, eval func(ctx *Context) T) {
	if !static || c.valid {
		return
	}
	var value T
	if g.Precompute(node, func(ctx *Context) { value = eval(ctx) }) {
		c.value = value
		c.valid = true
	}
}

// Get returns the cached value, if any.
func (c *Cached[T]) Get() (T, bool) {
	return c.value, c.valid
}
