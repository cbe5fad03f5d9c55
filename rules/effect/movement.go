package effect

import (
	"ludeme/game"
	"ludeme/topology"
)

type movement struct {
	from    game.RegionFunction
	dirs    topology.Directions
	cond    game.BooleanFunction
	capture bool
	then    *game.Then
}

type MoveOption func(m *movement)

// From restricts the moving pieces to the mover's pieces on a region.
// Defaults to every piece of the mover.
func From(region game.RegionFunction) MoveOption {
	return func(m *movement) { m.from = region }
}

// Directions sets the directions pieces move along. Defaults to Adjacent.
func Directions(dirs topology.Directions) MoveOption {
	return func(m *movement) { m.dirs = dirs }
}

// If replaces the default target test. It is evaluated with the From and To
// registers set; for Hop it tests the hopped site, set in Between.
func If(cond game.BooleanFunction) MoveOption {
	return func(m *movement) { m.cond = cond }
}

// Capture allows moving onto an enemy piece, which is removed.
func Capture() MoveOption {
	return func(m *movement) { m.capture = true }
}

func Then(then *game.Then) MoveOption {
	return func(m *movement) { m.then = then }
}

func newMovement(options []MoveOption) movement {
	m := movement{dirs: topology.Adjacent}
	for _, option := range options {
		option(&m)
	}
	return m
}

func (m movement) base(concepts ...game.Concept) game.MovesBase {
	b := game.NewBase(m.from, m.cond).Setting(game.RegFrom, game.RegTo).WithConcepts(concepts...)
	if m.capture {
		b = b.WithFlags(game.FlagCapture)
	}
	if m.dirs.IsRelative() {
		b = b.WithConcepts(game.ConceptForwardMovement)
	}
	return b.ForMoves(m.then)
}

func (m movement) origins(ctx *game.Context) []int {
	mine := ctx.Board().SitesOwnedBy(ctx.Mover())
	if m.from == nil {
		return mine.Sites()
	}
	return m.from.Eval(ctx).Intersection(mine).Sites()
}

// holds evaluates the target test with From and To scoped.
func (m movement) holds(ctx *game.Context, from, to int) bool {
	defer ctx.Eval().Scope(game.RegFrom, from)()
	defer ctx.Eval().Scope(game.RegTo, to)()
	return m.cond.Eval(ctx)
}

func enemy(ctx *game.Context, site int) bool {
	board := ctx.Board()
	who := board.Who(site)
	return !board.IsEmpty(site) && who != 0 && who != ctx.Mover()
}

func decision(ctx *game.Context, from, to int, actions ...game.Action) *game.Move {
	m := game.NewMove(ctx.Mover(), actions...)
	m.From = from
	m.To = to
	m.Decision = true
	return m
}

// Step moves a piece to a neighbouring site: an empty one, or an enemy one
// when capturing.
type Step struct {
	game.MovesBase
	movement
}

func NewStep(options ...MoveOption) *Step {
	m := newMovement(options)
	concepts := []game.Concept{game.ConceptStepDecision}
	if m.capture {
		concepts = append(concepts, game.ConceptReplacementCapture)
	}
	return &Step{MovesBase: m.base(concepts...), movement: m}
}

func (n *Step) Eval(ctx *game.Context) *game.MoveList {
	t := ctx.Topology()
	facing := ctx.Facing(ctx.Mover())
	moves := game.NewMoveList()
	for _, from := range n.origins(ctx) {
		for _, to := range t.Neighbours(from, n.dirs, facing) {
			if n.legal(ctx, from, to) {
				moves.Add(decision(ctx, from, to, game.ActionMove{From: from, To: to}))
			}
		}
	}
	return moves.AttachThen(n.Then())
}

func (n *Step) legal(ctx *game.Context, from, to int) bool {
	if n.cond != nil {
		return n.holds(ctx, from, to)
	}
	return ctx.Board().IsEmpty(to) || (n.capture && enemy(ctx, to))
}

// Slide moves a piece any distance along a direction over empty sites,
// stopping on the first enemy piece when capturing.
type Slide struct {
	game.MovesBase
	movement
}

func NewSlide(options ...MoveOption) *Slide {
	m := newMovement(options)
	concepts := []game.Concept{game.ConceptSlideDecision}
	if m.capture {
		concepts = append(concepts, game.ConceptReplacementCapture)
	}
	return &Slide{MovesBase: m.base(concepts...), movement: m}
}

func (n *Slide) Eval(ctx *game.Context) *game.MoveList {
	t := ctx.Topology()
	board := ctx.Board()
	dirs := n.dirs.Resolve(t, ctx.Facing(ctx.Mover()))
	moves := game.NewMoveList()
	for _, from := range n.origins(ctx) {
		for _, d := range dirs {
			for _, to := range t.Trajectories().Radial(from, d) {
				if n.cond != nil {
					if !n.holds(ctx, from, to) {
						break
					}
				} else if !board.IsEmpty(to) {
					if n.capture && enemy(ctx, to) {
						moves.Add(decision(ctx, from, to, game.ActionMove{From: from, To: to}))
					}
					break
				}
				moves.Add(decision(ctx, from, to, game.ActionMove{From: from, To: to}))
			}
		}
	}
	return moves.AttachThen(n.Then())
}

// Hop jumps a piece over the neighbouring site onto the empty site behind
// it. The hopped site must hold a piece (an enemy piece when capturing, in
// which case it is removed) unless If says otherwise.
type Hop struct {
	game.MovesBase
	movement
}

func NewHop(options ...MoveOption) *Hop {
	m := newMovement(options)
	concepts := []game.Concept{game.ConceptHopDecision}
	if m.capture {
		concepts = append(concepts, game.ConceptHopCapture)
	}
	b := game.NewBase(m.from, m.cond).Setting(game.RegFrom, game.RegTo, game.RegBetween).WithConcepts(concepts...)
	if m.capture {
		b = b.WithFlags(game.FlagCapture)
	}
	return &Hop{MovesBase: b.ForMoves(m.then), movement: m}
}

func (n *Hop) Eval(ctx *game.Context) *game.MoveList {
	t := ctx.Topology()
	board := ctx.Board()
	dirs := n.dirs.Resolve(t, ctx.Facing(ctx.Mover()))
	moves := game.NewMoveList()
	for _, from := range n.origins(ctx) {
		for _, d := range dirs {
			radial := t.Trajectories().Radial(from, d)
			if len(radial) < 2 {
				continue
			}
			between, to := radial[0], radial[1]
			if !board.IsEmpty(to) || !n.canHop(ctx, from, between, to) {
				continue
			}
			actions := []game.Action{game.ActionMove{From: from, To: to}}
			if n.capture {
				actions = append(actions, game.ActionRemove{Site: between})
			}
			moves.Add(decision(ctx, from, to, actions...))
		}
	}
	return moves.AttachThen(n.Then())
}

func (n *Hop) canHop(ctx *game.Context, from, between, to int) bool {
	if n.cond != nil {
		defer ctx.Eval().Scope(game.RegBetween, between)()
		return n.holds(ctx, from, to)
	}
	if n.capture {
		return enemy(ctx, between)
	}
	return !ctx.Board().IsEmpty(between)
}

// Custodial removes the runs of enemy pieces flanked between the piece on
// the To site and another piece of the mover. Runs longer than the maximum
// length, when set, are left alone.
type Custodial struct {
	game.MovesBase
	dirs   topology.Directions
	length game.IntFunction
}

func NewCustodial(dirs topology.Directions, length game.IntFunction, then *game.Then) *Custodial {
	return &Custodial{
		MovesBase: game.NewBase(length).Reading(game.RegTo).
			WithFlags(game.FlagCapture).WithConcepts(game.ConceptCustodialCapture).ForMoves(then),
		dirs:   dirs,
		length: length,
	}
}

func (n *Custodial) Eval(ctx *game.Context) *game.MoveList {
	t := ctx.Topology()
	board := ctx.Board()
	site := ctx.Eval().To()
	if !t.OnBoard(site) {
		return game.NewMoveList()
	}
	limit := -1
	if n.length != nil {
		limit = n.length.Eval(ctx)
	}
	mover := ctx.Mover()
	var actions []game.Action
	for _, d := range n.dirs.Resolve(t, ctx.Facing(mover)) {
		var run []int
		for _, s := range t.Trajectories().Radial(site, d) {
			if enemy(ctx, s) {
				run = append(run, s)
				continue
			}
			if len(run) > 0 && (limit < 0 || len(run) <= limit) && !board.IsEmpty(s) && board.Who(s) == mover {
				for _, captured := range run {
					actions = append(actions, game.ActionRemove{Site: captured})
				}
			}
			break
		}
	}
	return single(ctx, false, actions...).AttachThen(n.Then())
}
