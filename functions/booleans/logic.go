// Package booleans holds the boolean-valued ludemes.
package booleans

import (
	"fmt"

	"ludeme/game"
)

// Constant is True or False.
type Constant struct {
	game.Base
	value bool
}

func True() *Constant  { return &Constant{Base: game.NewBase(), value: true} }
func False() *Constant { return &Constant{Base: game.NewBase(), value: false} }

func (n *Constant) Eval(ctx *game.Context) bool { return n.value }

func (n *Constant) String() string { return fmt.Sprint(n.value) }

// And holds when every operand holds. Evaluation stops at the first false
// operand.
type And struct {
	game.Base
	operands []game.BooleanFunction
	cached   game.Cached[bool]
}

func NewAnd(operands ...game.BooleanFunction) *And {
	return &And{
		Base:     game.NewBase(game.BooleanNodes(operands)...).WithConcepts(game.ConceptConjunction),
		operands: operands,
	}
}

func (n *And) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "and", n.IsStatic(), n.Eval)
}

func (n *And) Eval(ctx *game.Context) bool {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	for _, op := range n.operands {
		if !op.Eval(ctx) {
			return false
		}
	}
	return true
}

// Or holds when any operand holds. Evaluation stops at the first true
// operand.
type Or struct {
	game.Base
	operands []game.BooleanFunction
	cached   game.Cached[bool]
}

func NewOr(operands ...game.BooleanFunction) *Or {
	return &Or{
		Base:     game.NewBase(game.BooleanNodes(operands)...).WithConcepts(game.ConceptDisjunction),
		operands: operands,
	}
}

func (n *Or) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "or", n.IsStatic(), n.Eval)
}

func (n *Or) Eval(ctx *game.Context) bool {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	for _, op := range n.operands {
		if op.Eval(ctx) {
			return true
		}
	}
	return false
}

type Not struct {
	game.Base
	operand game.BooleanFunction
	cached  game.Cached[bool]
}

func NewNot(operand game.BooleanFunction) *Not {
	return &Not{Base: game.NewBase(operand).WithConcepts(game.ConceptNegation), operand: operand}
}

func (n *Not) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "not", n.IsStatic(), n.Eval)
}

func (n *Not) Eval(ctx *game.Context) bool {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	return !n.operand.Eval(ctx)
}

type Xor struct {
	game.Base
	a, b   game.BooleanFunction
	cached game.Cached[bool]
}

func NewXor(a, b game.BooleanFunction) *Xor {
	return &Xor{Base: game.NewBase(a, b).WithConcepts(game.ConceptExclusiveDisjunction), a: a, b: b}
}

func (n *Xor) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "xor", n.IsStatic(), n.Eval)
}

func (n *Xor) Eval(ctx *game.Context) bool {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	return n.a.Eval(ctx) != n.b.Eval(ctx)
}

type comparison int

const (
	eq comparison = iota
	ne
	lt
	le
	gt
	ge
)

var comparisonConcepts = [...]game.Concept{
	game.ConceptEqual, game.ConceptNotEqual, game.ConceptLessThan,
	game.ConceptLessThanOrEqual, game.ConceptGreaterThan, game.ConceptGreaterThanOrEqual,
}

var comparisonSymbols = [...]string{"=", "!=", "<", "<=", ">", ">="}

// Compare compares two integers.
type Compare struct {
	game.Base
	op     comparison
	a, b   game.IntFunction
	cached game.Cached[bool]
}

func newCompare(op comparison, a, b game.IntFunction) *Compare {
	return &Compare{Base: game.NewBase(a, b).WithConcepts(comparisonConcepts[op]), op: op, a: a, b: b}
}

func Equal(a, b game.IntFunction) *Compare    { return newCompare(eq, a, b) }
func NotEqual(a, b game.IntFunction) *Compare { return newCompare(ne, a, b) }
func Lt(a, b game.IntFunction) *Compare       { return newCompare(lt, a, b) }
func Le(a, b game.IntFunction) *Compare       { return newCompare(le, a, b) }
func Gt(a, b game.IntFunction) *Compare       { return newCompare(gt, a, b) }
func Ge(a, b game.IntFunction) *Compare       { return newCompare(ge, a, b) }

func (n *Compare) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, comparisonSymbols[n.op], n.IsStatic(), n.Eval)
}

func (n *Compare) Eval(ctx *game.Context) bool {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	a, b := n.a.Eval(ctx), n.b.Eval(ctx)
	switch n.op {
	case ne:
		return a != b
	case lt:
		return a < b
	case le:
		return a <= b
	case gt:
		return a > b
	case ge:
		return a >= b
	default:
		return a == b
	}
}

func (n *Compare) String() string {
	return fmt.Sprintf("(%s %v %v)", comparisonSymbols[n.op], n.a, n.b)
}
