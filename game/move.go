package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Move is a candidate choice: an ordered list of Actions plus the
// continuations to run once it is applied. A move is immutable once it has
// been added to a MoveList.
type Move struct {
	Actions  []Action
	Mover    int
	From     int
	To       int
	Decision bool
	// Forced marks the pass the engine adds when the mover has no legal move.
	Forced bool
	Thens  []*Then
}

// NewMove returns a move by mover made of actions, with From and To unset.
func NewMove(mover int, actions ...Action) *Move {
	return &Move{Actions: actions, Mover: mover, From: Off, To: Off}
}

// Apply applies the move's actions then its continuations, in order, and
// returns the actions reverting everything it did, in application order.
func (m *Move) Apply(ctx *Context) []Action {
	undo := make([]Action, 0, len(m.Actions))
	for _, a := range m.Actions {
		undo = append(undo, a.Apply(ctx))
	}
	for _, then := range m.Thens {
		undo = append(undo, then.apply(ctx, m)...)
	}
	return undo
}

// Revert undoes what Apply returned.
func Revert(ctx *Context, undo []Action) {
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i].Apply(ctx)
	}
}

// WithThen returns a copy of m with then appended to its continuations.
func (m *Move) WithThen(then *Then) *Move {
	if then == nil {
		return m
	}
	c := *m
	c.Thens = append(slices.Clone(m.Thens), then)
	return &c
}

// Equal compares mover, endpoints and the printed actions.
func (m *Move) Equal(other *Move) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Mover != other.Mover || m.From != other.From || m.To != other.To || len(m.Actions) != len(other.Actions) {
		return false
	}
	for i := range m.Actions {
		if m.Actions[i].String() != other.Actions[i].String() {
			return false
		}
	}
	return len(m.Thens) == len(other.Thens)
}

func (m *Move) String() string {
	parts := make([]string, len(m.Actions))
	for i, a := range m.Actions {
		parts[i] = a.String()
	}
	s := fmt.Sprintf("P%d[%s]", m.Mover, strings.Join(parts, ","))
	if len(m.Thens) > 0 {
		s += fmt.Sprintf("+then(%d)", len(m.Thens))
	}
	return s
}

// MoveList is the ordered result of evaluating a Moves node.
type MoveList struct {
	moves []*Move
}

func NewMoveList(moves ...*Move) *MoveList {
	return &MoveList{moves: moves}
}

func (l *MoveList) Add(m *Move) {
	l.moves = append(l.moves, m)
}

// Append adds every move of other, in order.
func (l *MoveList) Append(other *MoveList) {
	if other != nil {
		l.moves = append(l.moves, other.moves...)
	}
}

func (l *MoveList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.moves)
}

func (l *MoveList) At(i int) *Move {
	return l.moves[i]
}

func (l *MoveList) All() []*Move {
	if l == nil {
		return nil
	}
	return l.moves
}

// Contains reports whether an equal move is in the list.
func (l *MoveList) Contains(m *Move) bool {
	for _, candidate := range l.All() {
		if candidate.Equal(m) {
			return true
		}
	}
	return false
}

// AttachThen appends then to every move of l. Continuations of the producing
// children are already attached, so they keep running first.
func (l *MoveList) AttachThen(then *Then) *MoveList {
	if then == nil {
		return l
	}
	for i, m := range l.moves {
		l.moves[i] = m.WithThen(then)
	}
	return l
}

// Then is a continuation: once its move is applied, the moves it generates
// are applied as part of the same ply. It is evaluated with From and To set
// to the endpoints of the move it follows, or to the endpoints it was bound
// to with At.
//
// All methods accept a nil receiver.
type Then struct {
	moves    Moves
	bound    bool
	from, to int
}

func NewThen(moves Moves) *Then {
	if moves == nil {
		panic("then requires moves")
	}
	return &Then{moves: moves}
}

func (t *Then) Moves() Moves {
	if t == nil {
		return nil
	}
	return t.moves
}

// At returns t bound to the given endpoints, which it keeps when its move
// is merged into a larger one. A bound continuation is returned unchanged.
func (t *Then) At(from, to int) *Then {
	if t == nil || t.bound {
		return t
	}
	return &Then{moves: t.moves, bound: true, from: from, to: to}
}

func (t *Then) apply(ctx *Context, m *Move) []Action {
	from, to := m.From, m.To
	if t.bound {
		from, to = t.from, t.to
	}
	var generated *MoveList
	func() {
		defer ctx.eval.Scope(RegFrom, from)()
		defer ctx.eval.Scope(RegTo, to)()
		generated = t.moves.Eval(ctx)
	}()
	var undo []Action
	for _, consequence := range generated.All() {
		undo = append(undo, consequence.Apply(ctx)...)
	}
	return undo
}

func (t *Then) Preprocess(g *Game) {
	if t != nil {
		t.moves.Preprocess(g)
	}
}

func (t *Then) IsStatic() bool {
	return t == nil || t.moves.IsStatic()
}

func (t *Then) GameFlags(g *Game) Flags {
	if t == nil {
		return 0
	}
	return t.moves.GameFlags(g)
}

func (t *Then) Concepts(g *Game) *bitset.BitSet {
	if t == nil {
		return NewConcepts()
	}
	return CombineConcepts(g, NewConcepts(ConceptThen), t.moves)
}

// ReadsEvalContext excludes From and To, which are set from the move.
func (t *Then) ReadsEvalContext() *bitset.BitSet {
	if t == nil {
		return Registers()
	}
	return ScopedReads(Registers(RegFrom, RegTo), t.moves)
}

func (t *Then) WritesEvalContext() *bitset.BitSet {
	if t == nil {
		return Registers()
	}
	return CombineWrites(Registers(RegFrom, RegTo), t.moves)
}

func (t *Then) MissingRequirement(g *Game) bool {
	return t != nil && t.moves.MissingRequirement(g)
}

func (t *Then) WillCrash(g *Game) bool {
	return t != nil && t.moves.WillCrash(g)
}
