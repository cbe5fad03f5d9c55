package game

import (
	"fmt"
	"slices"

	"golang.org/x/exp/rand"

	"ludeme/topology"
)

// MaxPlayers bounds the number of players a game may declare.
const MaxPlayers = 16

type playerRecord struct {
	score  int
	active bool
}

// Context is one live, mutable game state: board contents, player records,
// turn bookkeeping, move history, RNG stream and the eval-context registers.
// A Context is used by one goroutine at a time; use Clone to hand a copy to
// another goroutine.
type Context struct {
	game       *Game
	board      *ContainerState
	players    []playerRecord // indexed by player, entry 0 unused
	mover      int
	prev       int
	nextForced int // player set by a SetNextPlayer action during the current move, or 0
	passes     int // consecutive passes
	trial      *Trial
	src        *rand.PCGSource
	rng        *rand.Rand
	eval       EvalContext
	remembered map[string][]int
	vars       map[string]int
}

// NewContext creates a fresh context for g with an RNG stream seeded by
// seed. The game must have been preprocessed; call Start to apply its start
// rules.
func NewContext(g *Game, seed uint64) *Context {
	if !g.preprocessed {
		panic(ErrNotPreprocessed)
	}
	return newContext(g, g.topology, seed)
}

func newContext(g *Game, t *topology.Topology, seed uint64) *Context {
	src := &rand.PCGSource{}
	src.Seed(seed)
	numSites := 0
	if t != nil {
		numSites = t.NumSites()
	}
	ctx := &Context{
		game:       g,
		board:      newContainerState(numSites),
		players:    make([]playerRecord, g.NumPlayers+1),
		mover:      1,
		prev:       1,
		trial:      newTrial(),
		src:        src,
		rng:        rand.New(src),
		eval:       newEvalContext(),
		remembered: map[string][]int{},
		vars:       map[string]int{},
	}
	for p := 1; p <= g.NumPlayers; p++ {
		ctx.players[p].active = true
	}
	return ctx
}

// Start applies the game's start rules to the context.
func (c *Context) Start() error {
	return c.game.Start(c)
}

// Clone returns a deep copy sharing only the immutable game and topology.
// The copy continues the same RNG stream from the same position.
func (c *Context) Clone() *Context {
	state, err := c.src.MarshalBinary()
	if err != nil {
		panic(fmt.Sprintf("cannot copy rng state: %v", err))
	}
	src := &rand.PCGSource{}
	if err := src.UnmarshalBinary(state); err != nil {
		panic(fmt.Sprintf("cannot copy rng state: %v", err))
	}
	remembered := make(map[string][]int, len(c.remembered))
	for name, values := range c.remembered {
		remembered[name] = slices.Clone(values)
	}
	vars := make(map[string]int, len(c.vars))
	for name, v := range c.vars {
		vars[name] = v
	}
	return &Context{
		game:       c.game,
		board:      c.board.copy(),
		players:    slices.Clone(c.players),
		mover:      c.mover,
		prev:       c.prev,
		nextForced: c.nextForced,
		passes:     c.passes,
		trial:      c.trial.copy(),
		src:        src,
		rng:        rand.New(src),
		eval:       c.eval,
		remembered: remembered,
		vars:       vars,
	}
}

func (c *Context) Game() *Game                  { return c.game }
func (c *Context) Topology() *topology.Topology { return c.game.topology }
func (c *Context) Board() *ContainerState       { return c.board }
func (c *Context) Trial() *Trial                { return c.trial }
func (c *Context) Eval() *EvalContext           { return &c.eval }
func (c *Context) NumPlayers() int              { return c.game.NumPlayers }

// Rand is the context's own RNG stream. Node evaluation that needs
// randomness must draw from it so that playouts are reproducible per seed.
func (c *Context) Rand() *rand.Rand { return c.rng }

func (c *Context) Mover() int { return c.mover }

// Prev is the player who made the last move.
func (c *Context) Prev() int { return c.prev }

// Next is the next active player after the mover, in seating order.
func (c *Context) Next() int {
	return c.nextAfter(c.mover)
}

func (c *Context) nextAfter(player int) int {
	n := c.game.NumPlayers
	for i := 1; i <= n; i++ {
		candidate := (player+i-1)%n + 1
		if c.players[candidate].active {
			return candidate
		}
	}
	return player
}

// ScopeMover makes player the mover until the returned function is called.
// It is used to evaluate rules from another player's point of view.
func (c *Context) ScopeMover(player int) (restore func()) {
	c.CheckPlayer("mover", player)
	saved := c.mover
	c.mover = player
	return func() { c.mover = saved }
}

// CheckPlayer fails the evaluation when player is not a seat of the game.
func (c *Context) CheckPlayer(node string, player int) {
	if player < 1 || player > c.game.NumPlayers {
		Fail(node, "player %d out of range [1,%d]", player, c.game.NumPlayers)
	}
}

func (c *Context) Score(player int) int {
	c.CheckPlayer("score", player)
	return c.players[player].score
}

func (c *Context) Active(player int) bool {
	c.CheckPlayer("active", player)
	return c.players[player].active
}

// Facing is the direction a player's forward points to.
func (c *Context) Facing(player int) topology.Direction {
	return c.game.Facing(player)
}

// Remembered returns the values remembered under name.
func (c *Context) Remembered(name string) []int {
	return c.remembered[name]
}

func (c *Context) Var(name string) (int, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// IsOver reports whether the game has ended.
func (c *Context) IsOver() bool {
	return c.trial.Status() != nil
}

// SameState reports whether both contexts hold the same board, players and
// turn bookkeeping.
func (c *Context) SameState(other *Context) bool {
	if !c.board.Equal(other.board) || !slices.Equal(c.players, other.players) {
		return false
	}
	if c.mover != other.mover || c.prev != other.prev || c.passes != other.passes {
		return false
	}
	if len(c.vars) != len(other.vars) || len(c.remembered) != len(other.remembered) {
		return false
	}
	for name, v := range c.vars {
		if ov, ok := other.vars[name]; !ok || ov != v {
			return false
		}
	}
	for name, values := range c.remembered {
		if !slices.Equal(values, other.remembered[name]) {
			return false
		}
	}
	return true
}

func (c *Context) String() string {
	return fmt.Sprintf("context{mover=%d moves=%d over=%t}", c.mover, c.trial.NumMoves(), c.IsOver())
}
