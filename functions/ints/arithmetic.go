// Package ints holds the integer-valued ludemes.
package ints

import (
	"fmt"

	"ludeme/game"
)

// Constant is a fixed integer.
type Constant struct {
	game.Base
	value int
}

func NewConstant(value int) *Constant {
	return &Constant{Base: game.NewBase(), value: value}
}

func (n *Constant) Eval(ctx *game.Context) int { return n.value }

func (n *Constant) String() string { return fmt.Sprint(n.value) }

// Add sums its terms.
type Add struct {
	game.Base
	terms  []game.IntFunction
	cached game.Cached[int]
}

func NewAdd(terms ...game.IntFunction) *Add {
	if len(terms) == 0 {
		panic("add requires at least one term")
	}
	return &Add{
		Base:  game.NewBase(game.IntNodes(terms)...).WithConcepts(game.ConceptAddition),
		terms: terms,
	}
}

func (n *Add) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "add", n.IsStatic(), n.Eval)
}

func (n *Add) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	sum := 0
	for _, t := range n.terms {
		sum += t.Eval(ctx)
	}
	return sum
}

// Sub is a - b.
type Sub struct {
	game.Base
	a, b   game.IntFunction
	cached game.Cached[int]
}

func NewSub(a, b game.IntFunction) *Sub {
	return &Sub{Base: game.NewBase(a, b).WithConcepts(game.ConceptSubtraction), a: a, b: b}
}

func (n *Sub) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "sub", n.IsStatic(), n.Eval)
}

func (n *Sub) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	return n.a.Eval(ctx) - n.b.Eval(ctx)
}

// Mul multiplies its factors.
type Mul struct {
	game.Base
	factors []game.IntFunction
	cached  game.Cached[int]
}

func NewMul(factors ...game.IntFunction) *Mul {
	if len(factors) == 0 {
		panic("mul requires at least one factor")
	}
	return &Mul{
		Base:    game.NewBase(game.IntNodes(factors)...).WithConcepts(game.ConceptMultiplication),
		factors: factors,
	}
}

func (n *Mul) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "mul", n.IsStatic(), n.Eval)
}

func (n *Mul) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	product := 1
	for _, f := range n.factors {
		product *= f.Eval(ctx)
	}
	return product
}

// Div is integer division truncated towards zero. A zero divisor is an
// evaluation error.
type Div struct {
	game.Base
	a, b   game.IntFunction
	cached game.Cached[int]
}

func NewDiv(a, b game.IntFunction) *Div {
	return &Div{Base: game.NewBase(a, b).WithConcepts(game.ConceptDivision), a: a, b: b}
}

func (n *Div) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "div", n.IsStatic(), n.Eval)
}

func (n *Div) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	divisor := n.b.Eval(ctx)
	if divisor == 0 {
		game.Fail("div", "division by zero")
	}
	return n.a.Eval(ctx) / divisor
}

// WillCrash flags a divisor that is statically zero.
func (n *Div) WillCrash(g *game.Game) bool {
	crash := n.Base.WillCrash(g)
	if n.b.IsStatic() && staticZero(g, n.b) {
		g.Report().AddCrash("div: divisor is always zero")
		crash = true
	}
	return crash
}

// Mod is the remainder of a / b, with the sign of a. A zero divisor is an
// evaluation error.
type Mod struct {
	game.Base
	a, b   game.IntFunction
	cached game.Cached[int]
}

func NewMod(a, b game.IntFunction) *Mod {
	return &Mod{Base: game.NewBase(a, b).WithConcepts(game.ConceptModulo), a: a, b: b}
}

func (n *Mod) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "mod", n.IsStatic(), n.Eval)
}

func (n *Mod) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	divisor := n.b.Eval(ctx)
	if divisor == 0 {
		game.Fail("mod", "modulo by zero")
	}
	return n.a.Eval(ctx) % divisor
}

func (n *Mod) WillCrash(g *game.Game) bool {
	crash := n.Base.WillCrash(g)
	if n.b.IsStatic() && staticZero(g, n.b) {
		g.Report().AddCrash("mod: divisor is always zero")
		crash = true
	}
	return crash
}

func staticZero(g *game.Game, n game.IntFunction) bool {
	zero := false
	game.Guard(func() { zero = n.Eval(g.ScratchContext()) == 0 })
	return zero
}

// Abs is the absolute value.
type Abs struct {
	game.Base
	a      game.IntFunction
	cached game.Cached[int]
}

func NewAbs(a game.IntFunction) *Abs {
	return &Abs{Base: game.NewBase(a).WithConcepts(game.ConceptAbsolute), a: a}
}

func (n *Abs) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "abs", n.IsStatic(), n.Eval)
}

func (n *Abs) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	v := n.a.Eval(ctx)
	if v < 0 {
		return -v
	}
	return v
}

// Min and Max pick the smallest and largest of their values.
type Min struct {
	game.Base
	values []game.IntFunction
	cached game.Cached[int]
}

func NewMin(values ...game.IntFunction) *Min {
	if len(values) == 0 {
		panic("min requires at least one value")
	}
	return &Min{Base: game.NewBase(game.IntNodes(values)...).WithConcepts(game.ConceptMinimum), values: values}
}

func (n *Min) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "min", n.IsStatic(), n.Eval)
}

func (n *Min) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	best := n.values[0].Eval(ctx)
	for _, v := range n.values[1:] {
		best = min(best, v.Eval(ctx))
	}
	return best
}

type Max struct {
	game.Base
	values []game.IntFunction
	cached game.Cached[int]
}

func NewMax(values ...game.IntFunction) *Max {
	if len(values) == 0 {
		panic("max requires at least one value")
	}
	return &Max{Base: game.NewBase(game.IntNodes(values)...).WithConcepts(game.ConceptMaximum), values: values}
}

func (n *Max) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "max", n.IsStatic(), n.Eval)
}

func (n *Max) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	best := n.values[0].Eval(ctx)
	for _, v := range n.values[1:] {
		best = max(best, v.Eval(ctx))
	}
	return best
}

// Pow raises a to a non-negative power.
type Pow struct {
	game.Base
	base, exp game.IntFunction
	cached    game.Cached[int]
}

func NewPow(base, exp game.IntFunction) *Pow {
	return &Pow{Base: game.NewBase(base, exp).WithConcepts(game.ConceptExponentiation), base: base, exp: exp}
}

func (n *Pow) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "pow", n.IsStatic(), n.Eval)
}

func (n *Pow) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	base, exp := n.base.Eval(ctx), n.exp.Eval(ctx)
	if exp < 0 {
		game.Fail("pow", "negative exponent %d", exp)
	}
	result := 1
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
	}
	return result
}

// If picks one of two values on a condition.
type If struct {
	game.Base
	cond      game.BooleanFunction
	then      game.IntFunction
	otherwise game.IntFunction
	cached    game.Cached[int]
}

func NewIf(cond game.BooleanFunction, then, otherwise game.IntFunction) *If {
	return &If{
		Base:      game.NewBase(cond, then, otherwise).WithConcepts(game.ConceptConditional),
		cond:      cond,
		then:      then,
		otherwise: otherwise,
	}
}

func (n *If) Preprocess(g *game.Game) {
	n.Base.Preprocess(g)
	n.cached.Precompute(g, "if", n.IsStatic(), n.Eval)
}

func (n *If) Eval(ctx *game.Context) int {
	if v, ok := n.cached.Get(); ok {
		return v
	}
	if n.cond.Eval(ctx) {
		return n.then.Eval(ctx)
	}
	return n.otherwise.Eval(ctx)
}
