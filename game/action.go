package game

import (
	"fmt"
	"slices"
)

// Action is a primitive state change. Apply mutates the context and returns
// the action that reverts it.
type Action interface {
	Apply(ctx *Context) Action
	fmt.Stringer
}

// ActionAdd puts a piece on a site, replacing whatever was there.
type ActionAdd struct {
	Site  int
	What  int
	Who   int
	Count int
	State int
}

func (a ActionAdd) Apply(ctx *Context) Action {
	undo := restoreCell{Site: a.Site, Cell: ctx.board.Cell(a.Site)}
	count := a.Count
	if count <= 0 {
		count = 1
	}
	ctx.board.setCell(a.Site, Cell{What: a.What, Who: a.Who, Count: count, State: a.State})
	return undo
}

func (a ActionAdd) String() string {
	return fmt.Sprintf("Add(site=%d what=%d who=%d)", a.Site, a.What, a.Who)
}

// ActionRemove empties a site.
type ActionRemove struct {
	Site int
}

func (a ActionRemove) Apply(ctx *Context) Action {
	undo := restoreCell{Site: a.Site, Cell: ctx.board.Cell(a.Site)}
	ctx.board.setCell(a.Site, Cell{})
	return undo
}

func (a ActionRemove) String() string {
	return fmt.Sprintf("Remove(site=%d)", a.Site)
}

// ActionMove moves the content of From to To. Whatever stood on To is
// replaced (capture by replacement).
type ActionMove struct {
	From int
	To   int
}

func (a ActionMove) Apply(ctx *Context) Action {
	from := ctx.board.Cell(a.From)
	undo := actionSeq{
		restoreCell{Site: a.To, Cell: ctx.board.Cell(a.To)},
		restoreCell{Site: a.From, Cell: from},
	}
	ctx.board.setCell(a.From, Cell{})
	ctx.board.setCell(a.To, from)
	return undo
}

func (a ActionMove) String() string {
	return fmt.Sprintf("Move(%d->%d)", a.From, a.To)
}

// ActionSetCount sets the number of pieces on an occupied site.
type ActionSetCount struct {
	Site  int
	Count int
}

func (a ActionSetCount) Apply(ctx *Context) Action {
	return ctx.updateCell(a.Site, func(c *Cell) { c.Count = a.Count })
}

func (a ActionSetCount) String() string {
	return fmt.Sprintf("SetCount(site=%d count=%d)", a.Site, a.Count)
}

// ActionSetState sets the local state of the piece on a site.
type ActionSetState struct {
	Site  int
	State int
}

func (a ActionSetState) Apply(ctx *Context) Action {
	return ctx.updateCell(a.Site, func(c *Cell) { c.State = a.State })
}

func (a ActionSetState) String() string {
	return fmt.Sprintf("SetState(site=%d state=%d)", a.Site, a.State)
}

// ActionSetRotation sets the rotation of the piece on a site.
type ActionSetRotation struct {
	Site     int
	Rotation int
}

func (a ActionSetRotation) Apply(ctx *Context) Action {
	return ctx.updateCell(a.Site, func(c *Cell) { c.Rotation = a.Rotation })
}

func (a ActionSetRotation) String() string {
	return fmt.Sprintf("SetRotation(site=%d rotation=%d)", a.Site, a.Rotation)
}

// ActionSetValue sets the value of the piece on a site.
type ActionSetValue struct {
	Site  int
	Value int
}

func (a ActionSetValue) Apply(ctx *Context) Action {
	return ctx.updateCell(a.Site, func(c *Cell) { c.Value = a.Value })
}

func (a ActionSetValue) String() string {
	return fmt.Sprintf("SetValue(site=%d value=%d)", a.Site, a.Value)
}

// ActionSetOwner transfers ownership of the piece on a site. When What is
// non-zero the piece itself is swapped too (a player's piece type differs
// from its opponent's).
type ActionSetOwner struct {
	Site int
	Who  int
	What int
}

func (a ActionSetOwner) Apply(ctx *Context) Action {
	return ctx.updateCell(a.Site, func(c *Cell) {
		c.Who = a.Who
		if a.What != 0 {
			c.What = a.What
		}
	})
}

func (a ActionSetOwner) String() string {
	return fmt.Sprintf("SetOwner(site=%d who=%d)", a.Site, a.Who)
}

// ActionSetScore sets a player's score.
type ActionSetScore struct {
	Player int
	Score  int
}

func (a ActionSetScore) Apply(ctx *Context) Action {
	ctx.CheckPlayer("set score", a.Player)
	undo := ActionSetScore{Player: a.Player, Score: ctx.players[a.Player].score}
	ctx.players[a.Player].score = a.Score
	return undo
}

func (a ActionSetScore) String() string {
	return fmt.Sprintf("SetScore(player=%d score=%d)", a.Player, a.Score)
}

// ActionAddScore adds to a player's score.
type ActionAddScore struct {
	Player int
	Delta  int
}

func (a ActionAddScore) Apply(ctx *Context) Action {
	ctx.CheckPlayer("add score", a.Player)
	undo := ActionSetScore{Player: a.Player, Score: ctx.players[a.Player].score}
	ctx.players[a.Player].score += a.Delta
	return undo
}

func (a ActionAddScore) String() string {
	return fmt.Sprintf("AddScore(player=%d delta=%d)", a.Player, a.Delta)
}

// ActionRemember appends a value to the named remembered list.
type ActionRemember struct {
	Name  string
	Value int
}

func (a ActionRemember) Apply(ctx *Context) Action {
	undo := ctx.snapshotRemembered(a.Name)
	ctx.remembered[a.Name] = append(slices.Clone(ctx.remembered[a.Name]), a.Value)
	return undo
}

func (a ActionRemember) String() string {
	return fmt.Sprintf("Remember(%s=%d)", a.Name, a.Value)
}

// ActionForget removes one occurrence of a value from the named list, or the
// whole list when All is set.
type ActionForget struct {
	Name  string
	Value int
	All   bool
}

func (a ActionForget) Apply(ctx *Context) Action {
	undo := ctx.snapshotRemembered(a.Name)
	values := ctx.remembered[a.Name]
	if a.All {
		values = nil
	} else if i := slices.Index(values, a.Value); i >= 0 {
		values = slices.Delete(slices.Clone(values), i, i+1)
	}
	if len(values) == 0 {
		delete(ctx.remembered, a.Name)
	} else {
		ctx.remembered[a.Name] = values
	}
	return undo
}

func (a ActionForget) String() string {
	if a.All {
		return fmt.Sprintf("Forget(%s)", a.Name)
	}
	return fmt.Sprintf("Forget(%s=%d)", a.Name, a.Value)
}

// ActionSetVar sets a named integer variable.
type ActionSetVar struct {
	Name  string
	Value int
}

func (a ActionSetVar) Apply(ctx *Context) Action {
	prev, existed := ctx.vars[a.Name]
	ctx.vars[a.Name] = a.Value
	return restoreVar{Name: a.Name, Value: prev, Existed: existed}
}

func (a ActionSetVar) String() string {
	return fmt.Sprintf("SetVar(%s=%d)", a.Name, a.Value)
}

// ActionSetNextPlayer forces the player to move after the current move. A
// mover setting itself is a "move again".
type ActionSetNextPlayer struct {
	Player int
}

func (a ActionSetNextPlayer) Apply(ctx *Context) Action {
	ctx.CheckPlayer("set next player", a.Player)
	undo := ActionSetNextPlayer{Player: ctx.nextForced}
	ctx.nextForced = a.Player
	return restoreNextPlayer(undo)
}

func (a ActionSetNextPlayer) String() string {
	return fmt.Sprintf("SetNextPlayer(%d)", a.Player)
}

// ActionPass does nothing; a move made only of passes is a pass.
type ActionPass struct{}

func (a ActionPass) Apply(ctx *Context) Action {
	return a
}

func (a ActionPass) String() string {
	return "Pass"
}

type restoreCell struct {
	Site int
	Cell Cell
}

func (a restoreCell) Apply(ctx *Context) Action {
	undo := restoreCell{Site: a.Site, Cell: ctx.board.Cell(a.Site)}
	ctx.board.setCell(a.Site, a.Cell)
	return undo
}

func (a restoreCell) String() string {
	return fmt.Sprintf("Restore(site=%d)", a.Site)
}

type restoreRemembered struct {
	Name    string
	Values  []int
	Existed bool
}

func (a restoreRemembered) Apply(ctx *Context) Action {
	undo := ctx.snapshotRemembered(a.Name)
	if a.Existed {
		ctx.remembered[a.Name] = a.Values
	} else {
		delete(ctx.remembered, a.Name)
	}
	return undo
}

func (a restoreRemembered) String() string {
	return fmt.Sprintf("RestoreRemembered(%s)", a.Name)
}

type restoreVar struct {
	Name    string
	Value   int
	Existed bool
}

func (a restoreVar) Apply(ctx *Context) Action {
	prev, existed := ctx.vars[a.Name]
	if a.Existed {
		ctx.vars[a.Name] = a.Value
	} else {
		delete(ctx.vars, a.Name)
	}
	return restoreVar{Name: a.Name, Value: prev, Existed: existed}
}

func (a restoreVar) String() string {
	return fmt.Sprintf("RestoreVar(%s)", a.Name)
}

// restoreNextPlayer may restore "no forced player" (0), which
// ActionSetNextPlayer rejects.
type restoreNextPlayer ActionSetNextPlayer

func (a restoreNextPlayer) Apply(ctx *Context) Action {
	undo := restoreNextPlayer{Player: ctx.nextForced}
	ctx.nextForced = a.Player
	return undo
}

func (a restoreNextPlayer) String() string {
	return fmt.Sprintf("RestoreNextPlayer(%d)", a.Player)
}

// actionSeq applies its actions in order; its inverse reverts them in
// reverse order.
type actionSeq []Action

func (s actionSeq) Apply(ctx *Context) Action {
	undo := make(actionSeq, len(s))
	for i, a := range s {
		undo[len(s)-1-i] = a.Apply(ctx)
	}
	return undo
}

func (s actionSeq) String() string {
	return fmt.Sprintf("Seq%v", []Action(s))
}

func (c *Context) updateCell(site int, update func(*Cell)) Action {
	cell := c.board.Cell(site)
	undo := restoreCell{Site: site, Cell: cell}
	update(&cell)
	c.board.setCell(site, cell)
	return undo
}

func (c *Context) snapshotRemembered(name string) restoreRemembered {
	values, ok := c.remembered[name]
	return restoreRemembered{Name: name, Values: slices.Clone(values), Existed: ok}
}

// IsPass reports whether every action of m is a pass.
func IsPass(m *Move) bool {
	for _, a := range m.Actions {
		if _, ok := a.(ActionPass); !ok {
			return false
		}
	}
	return true
}
