package game

import "github.com/bits-and-blooms/bitset"

// Register names one of the eval-context registers: dynamically scoped
// parameters that nested nodes read without being passed explicit arguments.
type Register uint

const (
	RegFrom Register = iota
	RegTo
	RegSite
	RegLevel
	RegBetween
	RegValue
	RegPlayer
	RegEdge
	RegTrack
	RegPipCount
	RegRegion
	RegHintRegion
	numRegisters
)

var registerNames = [...]string{
	"From", "To", "Site", "Level", "Between", "Value", "Player", "Edge", "Track", "PipCount", "Region", "HintRegion",
}

func (r Register) String() string {
	if r >= numRegisters {
		return "Unknown"
	}
	return registerNames[r]
}

// Off is the value of an integer register that has not been set.
const Off = -1

// EvalContext holds the eval-context registers of a Context. Writes must be
// scoped: a node setting a register for a child restores the previous value
// before returning, on every path.
type EvalContext struct {
	ints       [RegRegion]int
	region     Region
	hintRegion Region
}

func newEvalContext() EvalContext {
	var e EvalContext
	for i := range e.ints {
		e.ints[i] = Off
	}
	return e
}

// Get returns the value of an integer register.
func (e *EvalContext) Get(r Register) int {
	if r >= RegRegion {
		panic("register " + r.String() + " is not integer valued")
	}
	return e.ints[r]
}

// Set writes an integer register. Prefer Scope, which also restores it.
func (e *EvalContext) Set(r Register, v int) {
	if r >= RegRegion {
		panic("register " + r.String() + " is not integer valued")
	}
	e.ints[r] = v
}

// Scope sets r to v and returns a function restoring the previous value.
// Typical use is `defer ctx.Eval().Scope(game.RegSite, site)()`.
func (e *EvalContext) Scope(r Register, v int) (restore func()) {
	saved := e.Get(r)
	e.Set(r, v)
	return func() { e.ints[r] = saved }
}

func (e *EvalContext) Region() Region     { return e.region }
func (e *EvalContext) HintRegion() Region { return e.hintRegion }

// ScopeRegion sets the Region register and returns a function restoring it.
func (e *EvalContext) ScopeRegion(region Region) (restore func()) {
	saved := e.region
	e.region = region
	return func() { e.region = saved }
}

// ScopeHintRegion sets the HintRegion register and returns a function
// restoring it.
func (e *EvalContext) ScopeHintRegion(region Region) (restore func()) {
	saved := e.hintRegion
	e.hintRegion = region
	return func() { e.hintRegion = saved }
}

func (e *EvalContext) From() int  { return e.ints[RegFrom] }
func (e *EvalContext) To() int    { return e.ints[RegTo] }
func (e *EvalContext) Site() int  { return e.ints[RegSite] }
func (e *EvalContext) Level() int { return e.ints[RegLevel] }
func (e *EvalContext) Value() int { return e.ints[RegValue] }

// Snapshot is a comparable copy of every register.
type Snapshot struct {
	Ints       [RegRegion]int
	Region     string
	HintRegion string
}

func (e *EvalContext) Snapshot() Snapshot {
	return Snapshot{Ints: e.ints, Region: e.region.String(), HintRegion: e.hintRegion.String()}
}

// Registers returns a register set holding the given registers.
func Registers(regs ...Register) *bitset.BitSet {
	b := bitset.New(uint(numRegisters))
	for _, r := range regs {
		b.Set(uint(r))
	}
	return b
}

// RegisterNames lists the registers in b in enumeration order.
func RegisterNames(b *bitset.BitSet) []string {
	var names []string
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		names = append(names, Register(i).String())
	}
	return names
}
