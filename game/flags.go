package game

import "strings"

// Flags is the bitmask of engine capabilities a game uses.
type Flags uint64

const (
	FlagStochastic Flags = 1 << iota
	FlagRotation
	FlagPieceState
	FlagPieceValue
	FlagPieceCount
	FlagScore
	FlagRemember
	FlagVars
	FlagPass
	FlagMoveAgain
	FlagGroups
	FlagConnection
	FlagLine
	FlagCapture
	FlagHex
	FlagSquare
	FlagGraph
)

var flagNames = []string{
	"Stochastic", "Rotation", "PieceState", "PieceValue", "PieceCount", "Score", "Remember",
	"Vars", "Pass", "MoveAgain", "Groups", "Connection", "Line", "Capture", "Hex", "Square", "Graph",
}

func (f Flags) Has(other Flags) bool {
	return f&other == other
}

func (f Flags) String() string {
	var names []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
