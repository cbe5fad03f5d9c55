package game

import "github.com/bits-and-blooms/bitset"

// Concept is a semantic tag describing what a game does. A game's concepts
// are the union of the concepts of every node in its rule tree and are used
// to classify games.
type Concept uint

const (
	ConceptSquareTiling Concept = iota
	ConceptHexTiling
	ConceptGraphTiling
	ConceptTwoPlayer
	ConceptMultiPlayer
	ConceptAlternating
	ConceptStochastic

	// start
	ConceptPiecePlacement
	ConceptRandomPlacement

	// decisions
	ConceptAddDecision
	ConceptStepDecision
	ConceptSlideDecision
	ConceptHopDecision
	ConceptPassDecision
	ConceptForwardMovement
	ConceptDiagonalMovement

	// effects
	ConceptRemoveEffect
	ConceptClaimEffect
	ConceptFlipEffect
	ConceptSetState
	ConceptSetRotation
	ConceptSetValue
	ConceptSetScore
	ConceptSetVar
	ConceptRemember
	ConceptForget
	ConceptMoveAgain
	ConceptThen
	ConceptReplacementCapture
	ConceptHopCapture
	ConceptCustodialCapture

	// composition
	ConceptChoice
	ConceptSequence
	ConceptConditional
	ConceptPriority
	ConceptForEachSite
	ConceptForEachGroup

	// spatial
	ConceptLine
	ConceptConnection
	ConceptGroup
	ConceptPattern
	ConceptRegion
	ConceptAdjacency

	// arithmetic and logic
	ConceptAddition
	ConceptSubtraction
	ConceptMultiplication
	ConceptDivision
	ConceptModulo
	ConceptAbsolute
	ConceptExponentiation
	ConceptMinimum
	ConceptMaximum
	ConceptEqual
	ConceptNotEqual
	ConceptLessThan
	ConceptLessThanOrEqual
	ConceptGreaterThan
	ConceptGreaterThanOrEqual
	ConceptConjunction
	ConceptDisjunction
	ConceptNegation
	ConceptExclusiveDisjunction
	ConceptUnion
	ConceptIntersection
	ConceptDifference

	// end
	ConceptWin
	ConceptLoss
	ConceptDraw
	ConceptScoring
	ConceptNoMovesEnd
	ConceptFullBoardEnd

	numConcepts
)

var conceptNames = [...]string{
	"SquareTiling", "HexTiling", "GraphTiling", "TwoPlayer", "MultiPlayer", "Alternating", "Stochastic",
	"PiecePlacement", "RandomPlacement",
	"AddDecision", "StepDecision", "SlideDecision", "HopDecision", "PassDecision", "ForwardMovement", "DiagonalMovement",
	"RemoveEffect", "ClaimEffect", "FlipEffect", "SetState", "SetRotation", "SetValue", "SetScore", "SetVar",
	"Remember", "Forget", "MoveAgain", "Then", "ReplacementCapture", "HopCapture", "CustodialCapture",
	"Choice", "Sequence", "Conditional", "Priority", "ForEachSite", "ForEachGroup",
	"Line", "Connection", "Group", "Pattern", "Region", "Adjacency",
	"Addition", "Subtraction", "Multiplication", "Division", "Modulo", "Absolute", "Exponentiation",
	"Minimum", "Maximum", "Equal", "NotEqual", "LessThan", "LessThanOrEqual", "GreaterThan",
	"GreaterThanOrEqual", "Conjunction", "Disjunction", "Negation", "ExclusiveDisjunction",
	"Union", "Intersection", "Difference",
	"Win", "Loss", "Draw", "Scoring", "NoMovesEnd", "FullBoardEnd",
}

func (c Concept) String() string {
	if c >= numConcepts {
		return "Unknown"
	}
	return conceptNames[c]
}

// NewConcepts returns a concept set holding the given concepts.
func NewConcepts(concepts ...Concept) *bitset.BitSet {
	b := bitset.New(uint(numConcepts))
	for _, c := range concepts {
		b.Set(uint(c))
	}
	return b
}

// ConceptNames lists the names of the concepts in b in enumeration order.
func ConceptNames(b *bitset.BitSet) []string {
	var names []string
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		names = append(names, Concept(i).String())
	}
	return names
}
