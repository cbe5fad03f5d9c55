// Package dim holds the dimension-valued ludemes used to size boards.
package dim

import (
	"fmt"

	"ludeme/game"
)

// Constant is a fixed dimension.
type Constant struct {
	game.Base
	value int
}

func NewConstant(value int) *Constant {
	if value <= 0 {
		panic(fmt.Sprintf("dimension %d is not positive", value))
	}
	return &Constant{Base: game.NewBase(), value: value}
}

func (n *Constant) Eval(ctx *game.Context) int { return n.value }

// Add sums dimensions.
type Add struct {
	game.Base
	terms []game.DimFunction
}

func NewAdd(terms ...game.DimFunction) *Add {
	nodes := make([]game.Node, len(terms))
	for i, t := range terms {
		nodes[i] = t
	}
	return &Add{Base: game.NewBase(nodes...), terms: terms}
}

func (n *Add) Eval(ctx *game.Context) int {
	sum := 0
	for _, t := range n.terms {
		sum += t.Eval(ctx)
	}
	return sum
}

// Sub is a - b. A non-positive result is an evaluation error.
type Sub struct {
	game.Base
	a, b game.DimFunction
}

func NewSub(a, b game.DimFunction) *Sub {
	return &Sub{Base: game.NewBase(a, b), a: a, b: b}
}

func (n *Sub) Eval(ctx *game.Context) int {
	v := n.a.Eval(ctx) - n.b.Eval(ctx)
	if v <= 0 {
		game.Fail("dim sub", "dimension %d is not positive", v)
	}
	return v
}
