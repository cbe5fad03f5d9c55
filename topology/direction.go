package topology

import "fmt"

// Direction is an absolute compass direction. Directions are numbered
// clockwise from N in steps of 22.5 degrees so that rotations and opposites
// are plain modular arithmetic.
type Direction int

const (
	N Direction = iota
	NNE
	NE
	ENE
	E
	ESE
	SE
	SSE
	S
	SSW
	SW
	WSW
	W
	WNW
	NW
	NNW
	numDirections
)

var directionNames = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

func (d Direction) String() string {
	if d < 0 || d >= numDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + numDirections/2) % numDirections
}

// turn rotates d clockwise by the given number of 22.5 degree increments.
func (d Direction) turn(increments int) Direction {
	r := (int(d) + increments) % int(numDirections)
	if r < 0 {
		r += int(numDirections)
	}
	return Direction(r)
}

// RelativeDirection is a direction expressed relative to a player's facing.
type RelativeDirection int

const (
	Forward RelativeDirection = iota
	Backward
	Leftward
	Rightward
	ForwardLeft
	ForwardRight
	BackwardLeft
	BackwardRight
)

// quarter turn is 4 increments of 22.5 degrees
var relativeTurns = map[RelativeDirection]int{
	Forward:       0,
	Backward:      8,
	Leftward:      -4,
	Rightward:     4,
	ForwardLeft:   -2,
	ForwardRight:  2,
	BackwardLeft:  -6,
	BackwardRight: 6,
}

// Turn returns the absolute direction r points to for a piece facing d.
func (d Direction) Turn(r RelativeDirection) Direction {
	return d.turn(relativeTurns[r])
}

type choiceKind int

const (
	kindAdjacent choiceKind = iota
	kindOrthogonal
	kindDiagonal
	kindAll
	kindAbsolute
	kindRelative
)

// Directions selects a set of directions. The concrete directions are only
// known once resolved against a topology (its supported directions, in its
// listed order) and a facing.
type Directions struct {
	kind     choiceKind
	absolute []Direction
	relative []RelativeDirection
}

var (
	Adjacent   = Directions{kind: kindAdjacent}
	Orthogonal = Directions{kind: kindOrthogonal}
	Diagonal   = Directions{kind: kindDiagonal}
	All        = Directions{kind: kindAll}
)

// Absolute selects the given absolute directions, kept in the order given.
func Absolute(dirs ...Direction) Directions {
	return Directions{kind: kindAbsolute, absolute: dirs}
}

// Relative selects directions relative to the facing passed to Resolve.
func Relative(dirs ...RelativeDirection) Directions {
	return Directions{kind: kindRelative, relative: dirs}
}

// IsRelative reports whether resolving d depends on a facing.
func (d Directions) IsRelative() bool {
	return d.kind == kindRelative
}

func (d Directions) String() string {
	switch d.kind {
	case kindAdjacent:
		return "Adjacent"
	case kindOrthogonal:
		return "Orthogonal"
	case kindDiagonal:
		return "Diagonal"
	case kindAll:
		return "All"
	case kindAbsolute:
		return fmt.Sprintf("%v", d.absolute)
	default:
		return fmt.Sprintf("Relative%v", d.relative)
	}
}

// Resolve returns the absolute directions selected by d that t supports.
// Set selections follow t's listed order; explicit selections keep their own
// order.
func (d Directions) Resolve(t *Topology, facing Direction) []Direction {
	switch d.kind {
	case kindAdjacent:
		return t.adjacent
	case kindOrthogonal:
		return t.orthogonal
	case kindDiagonal:
		return t.diagonal
	case kindAll:
		return t.supported
	case kindAbsolute:
		return t.filterSupported(d.absolute)
	default:
		dirs := make([]Direction, 0, len(d.relative))
		for _, rel := range d.relative {
			dirs = append(dirs, facing.turn(relativeTurns[rel]))
		}
		return t.filterSupported(dirs)
	}
}
