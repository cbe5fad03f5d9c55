package game

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog/log"

	"ludeme/topology"
)

// Rules are the root rule nodes of a game.
type Rules struct {
	// Start moves are applied once, in order, by Start.
	Start []Moves
	// Play generates the legal moves of the mover.
	Play Moves
	// End rules are checked in order after every move; the first result wins.
	End []EndRule
}

// Game is a compiled rule tree plus the board it is played on. It is
// immutable once preprocessed and can be shared by any number of contexts.
type Game struct {
	Name       string
	NumPlayers int

	board        GraphFunction
	pieces       []Piece
	pieceIndex   map[string]int
	rules        Rules
	topology     *topology.Topology
	scratch      *Context
	flags        Flags
	concepts     *bitset.BitSet
	report       *Report
	preprocessed bool
}

// New builds a game. Invalid declarations (player count, missing board or
// play rules, duplicate piece names) are construction errors and panic.
func New(name string, numPlayers int, board GraphFunction, pieces []Piece, rules Rules) *Game {
	if numPlayers < 1 || numPlayers > MaxPlayers {
		panic(fmt.Sprintf("game %q: %d players out of range [1,%d]", name, numPlayers, MaxPlayers))
	}
	if board == nil {
		panic(fmt.Sprintf("game %q: no board", name))
	}
	if rules.Play == nil {
		panic(fmt.Sprintf("game %q: no play rules", name))
	}
	index := make(map[string]int, len(pieces))
	for i, p := range pieces {
		if _, dup := index[p.Name]; dup {
			panic(fmt.Sprintf("game %q: duplicate piece %q", name, p.Name))
		}
		if p.Owner < 0 || p.Owner > numPlayers {
			panic(fmt.Sprintf("game %q: piece %q owned by unknown player %d", name, p.Name, p.Owner))
		}
		index[p.Name] = i + 1
	}
	return &Game{
		Name:       name,
		NumPlayers: numPlayers,
		board:      board,
		pieces:     pieces,
		pieceIndex: index,
		rules:      rules,
	}
}

func (g *Game) Rules() Rules                  { return g.rules }
func (g *Game) Topology() *topology.Topology { return g.topology }
func (g *Game) Report() *Report              { return g.report }
func (g *Game) Preprocessed() bool           { return g.preprocessed }

// Flags is the memoized union of the flags of every rule node.
func (g *Game) Flags() Flags { return g.flags }

// Concepts is the memoized union of the concepts of every rule node.
func (g *Game) Concepts() *bitset.BitSet { return g.concepts }

// ScratchContext is an empty context used to precompute static nodes during
// preprocessing.
func (g *Game) ScratchContext() *Context { return g.scratch }

// PieceIndex returns the What value of the named piece.
func (g *Game) PieceIndex(name string) (int, bool) {
	what, ok := g.pieceIndex[name]
	return what, ok
}

// Piece returns the piece stored as what.
func (g *Game) Piece(what int) Piece {
	if what < 1 || what > len(g.pieces) {
		Fail("piece", "piece index %d out of range [1,%d]", what, len(g.pieces))
	}
	return g.pieces[what-1]
}

// PieceOf returns the What value of the piece named name+player, falling
// back to name itself.
func (g *Game) PieceOf(name string, player int) (int, bool) {
	if what, ok := g.pieceIndex[fmt.Sprintf("%s%d", name, player)]; ok {
		return what, true
	}
	return g.PieceIndex(name)
}

// Convert returns the piece matching what for another player: with pieces
// declared by PiecesFor, "Disc2" converts to "Disc1" for player 1. Pieces
// without a per-player variant are returned unchanged.
func (g *Game) Convert(what, player int) int {
	piece := g.Piece(what)
	if piece.Owner == 0 || piece.Owner == player {
		return what
	}
	base := strings.TrimSuffix(piece.Name, strconv.Itoa(piece.Owner))
	if converted, ok := g.pieceIndex[base+strconv.Itoa(player)]; ok {
		return converted
	}
	return what
}

// Facing returns the forward direction of a player: player 1 faces north,
// player 2 south, players 3 and 4 east and west.
func (g *Game) Facing(player int) topology.Direction {
	switch player {
	case 2:
		return topology.S
	case 3:
		return topology.E
	case 4:
		return topology.W
	default:
		return topology.N
	}
}

func (g *Game) ruleNodes() []Node {
	nodes := MovesNodes(g.rules.Start)
	nodes = append(nodes, g.rules.Play)
	for _, e := range g.rules.End {
		nodes = append(nodes, e)
	}
	return nodes
}

// Preprocess runs the static analysis pass once: it builds the board,
// preprocesses every rule node depth-first, memoizes flags and concepts and
// collects diagnostics. Diagnostics do not stop the game from being played.
// Later calls return the same report.
func (g *Game) Preprocess() *Report {
	if g.preprocessed {
		return g.report
	}
	g.report = NewReport(g.Name)

	g.board.Preprocess(g)
	if !g.board.IsStatic() {
		g.report.AddCrash("board is not static")
	}
	if err := Guard(func() { g.topology = g.board.Eval(nil) }); err != nil || g.topology == nil {
		panic(fmt.Sprintf("game %q: cannot build board: %v", g.Name, err))
	}
	g.scratch = newContext(g, g.topology, 0)

	nodes := g.ruleNodes()
	PreprocessAll(g, nodes...)

	g.flags = g.ownFlags() | CombineFlags(g, nodes...)
	g.concepts = CombineConcepts(g, g.ownConcepts(), nodes...)

	AnyMissingRequirement(g, nodes...)
	AnyWillCrash(g, nodes...)
	g.checkEvalContext()

	g.preprocessed = true
	log.Info().
		Str("game", g.Name).
		Str("board", g.topology.String()).
		Str("flags", g.flags.String()).
		Int("concepts", int(g.concepts.Count())).
		Bool("clean", g.report.Empty()).
		Msg("preprocessed game")
	return g.report
}

// Precompute runs fn, which evaluates a static node against the scratch
// context. An evaluation failure is recorded as a crash diagnostic and false
// is returned, leaving the node to fail again at evaluation time.
func (g *Game) Precompute(node string, fn func(ctx *Context)) bool {
	if err := Guard(func() { fn(g.scratch) }); err != nil {
		g.report.AddCrash("%s: %v", node, err)
		return false
	}
	return true
}

func (g *Game) ownFlags() Flags {
	switch g.topology.Kind() {
	case topology.HexTiling:
		return FlagHex
	case topology.GraphTiling:
		return FlagGraph
	default:
		return FlagSquare
	}
}

func (g *Game) ownConcepts() *bitset.BitSet {
	c := NewConcepts(ConceptAlternating)
	switch g.topology.Kind() {
	case topology.HexTiling:
		c.Set(uint(ConceptHexTiling))
	case topology.GraphTiling:
		c.Set(uint(ConceptGraphTiling))
	default:
		c.Set(uint(ConceptSquareTiling))
	}
	if g.NumPlayers == 2 {
		c.Set(uint(ConceptTwoPlayer))
	} else if g.NumPlayers > 2 {
		c.Set(uint(ConceptMultiPlayer))
	}
	return c
}

// checkEvalContext reports root rules reading registers that nothing above
// them sets. End rules are given From and To of the last move.
func (g *Game) checkEvalContext() {
	check := func(kind string, n Node, provided ...Register) {
		if reads := n.ReadsEvalContext().Difference(Registers(provided...)); reads.Any() {
			g.report.AddWarning("%s rule %T reads %v with no enclosing node setting them", kind, n, RegisterNames(reads))
		}
	}
	for _, s := range g.rules.Start {
		check("start", s)
	}
	check("play", g.rules.Play)
	for _, e := range g.rules.End {
		check("end", e, RegFrom, RegTo)
	}
}

// Validate is the strict gate: it fails when preprocessing found anything.
func (g *Game) Validate() error {
	if !g.preprocessed {
		return ErrNotPreprocessed
	}
	if g.report.Empty() {
		return nil
	}
	return fmt.Errorf("%w %q:\n%s", ErrInvalidGame, g.Name, g.report)
}

// Start applies the start rules to a fresh context. After an error the
// context is in an undefined state and must be discarded.
func (g *Game) Start(ctx *Context) error {
	if len(ctx.trial.entries) > 0 {
		return errors.New("context already started")
	}
	return Guard(func() {
		for _, rule := range g.rules.Start {
			for _, m := range rule.Eval(ctx).All() {
				before := ctx.bookkeeping()
				undo := m.Apply(ctx)
				ctx.trial.entries = append(ctx.trial.entries, trialEntry{move: m, undo: undo, before: before})
				ctx.trial.starts++
			}
		}
	})
}

// Moves returns the legal moves of the mover. When the game is running and
// the mover has none, the list holds a single forced pass.
func (g *Game) Moves(ctx *Context) (*MoveList, error) {
	if ctx.IsOver() {
		return NewMoveList(), nil
	}
	var legal *MoveList
	if err := Guard(func() { legal = g.rules.Play.Eval(ctx) }); err != nil {
		return nil, fmt.Errorf("generating moves: %w", err)
	}
	if legal.Len() == 0 {
		pass := NewMove(ctx.mover, ActionPass{})
		pass.Decision = true
		pass.Forced = true
		legal = NewMoveList(pass)
	}
	return legal, nil
}

// Apply applies m to ctx: its actions and continuations, then the end rules,
// then the turn change. After an error the context is in an undefined state
// and must be discarded.
func (g *Game) Apply(ctx *Context, m *Move) (*Move, error) {
	if ctx.IsOver() {
		return nil, ErrGameOver
	}
	before := ctx.bookkeeping()
	err := Guard(func() {
		ctx.nextForced = 0
		undo := m.Apply(ctx)
		ctx.trial.entries = append(ctx.trial.entries, trialEntry{move: m, undo: undo, before: before})
		g.endTurn(ctx, m)
	})
	if err != nil {
		return nil, fmt.Errorf("applying %s: %w", m, err)
	}
	return m, nil
}

func (g *Game) endTurn(ctx *Context, m *Move) {
	if IsPass(m) {
		ctx.passes++
	} else {
		ctx.passes = 0
	}

	if result := g.checkEnd(ctx, m); result != nil {
		ctx.applyResult(*result)
	}
	if ctx.trial.status == nil && ctx.passes >= ctx.numActive() {
		// everybody passed in a row
		ctx.trial.status = &Status{}
	}

	ctx.prev = ctx.mover
	if ctx.nextForced != 0 {
		ctx.mover = ctx.nextForced
	} else {
		ctx.mover = ctx.Next()
	}
	ctx.nextForced = 0
}

// checkEnd evaluates the end rules in order, with From and To set to the
// endpoints of the move just applied.
func (g *Game) checkEnd(ctx *Context, m *Move) *Result {
	defer ctx.eval.Scope(RegFrom, m.From)()
	defer ctx.eval.Scope(RegTo, m.To)()
	for _, rule := range g.rules.End {
		if result := rule.Eval(ctx); result != nil {
			return result
		}
	}
	return nil
}

// Undo reverts the last move applied with Apply.
func (g *Game) Undo(ctx *Context) error {
	if ctx.trial.NumMoves() == 0 {
		return ErrNothingToUndo
	}
	last := len(ctx.trial.entries) - 1
	entry := ctx.trial.entries[last]
	ctx.trial.entries = ctx.trial.entries[:last]
	Revert(ctx, entry.undo)
	ctx.restore(entry.before)
	return nil
}

func (c *Context) bookkeeping() bookkeeping {
	var status *Status
	if c.trial.status != nil {
		s := *c.trial.status
		status = &s
	}
	return bookkeeping{
		mover:      c.mover,
		prev:       c.prev,
		nextForced: c.nextForced,
		passes:     c.passes,
		players:    slices.Clone(c.players),
		status:     status,
	}
}

func (c *Context) restore(b bookkeeping) {
	c.mover = b.mover
	c.prev = b.prev
	c.nextForced = b.nextForced
	c.passes = b.passes
	c.players = slices.Clone(b.players)
	c.trial.status = b.status
}

func (c *Context) numActive() int {
	n := 0
	for p := 1; p <= c.game.NumPlayers; p++ {
		if c.players[p].active {
			n++
		}
	}
	return n
}

func (c *Context) applyResult(r Result) {
	switch r.Outcome {
	case Draw:
		c.trial.status = &Status{}
	case Win:
		c.CheckPlayer("result", r.Player)
		c.trial.status = &Status{Winner: r.Player}
	case Loss:
		c.CheckPlayer("result", r.Player)
		c.players[r.Player].active = false
		switch c.numActive() {
		case 0:
			c.trial.status = &Status{}
		case 1:
			for p := 1; p <= c.game.NumPlayers; p++ {
				if c.players[p].active {
					c.trial.status = &Status{Winner: p}
				}
			}
		}
	}
}
