package game

import (
	"fmt"
	"slices"
)

type Outcome int

const (
	Win Outcome = iota
	Loss
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}

// Result is what an end rule decides: Player wins or loses, or the game is a
// draw (Player is then ignored).
type Result struct {
	Outcome Outcome
	Player  int
}

// Status is the final state of a finished game. Winner is 0 for a draw.
type Status struct {
	Winner int
}

func (s Status) String() string {
	if s.Winner == 0 {
		return "draw"
	}
	return fmt.Sprintf("Player%d", s.Winner)
}

type bookkeeping struct {
	mover      int
	prev       int
	nextForced int
	passes     int
	players    []playerRecord
	status     *Status
}

type trialEntry struct {
	move   *Move
	undo   []Action
	before bookkeeping
}

// Trial is the history of a game: the moves applied so far with what is
// needed to revert them, and the final status once the game is over.
type Trial struct {
	entries []trialEntry
	starts  int // leading entries produced by start rules
	status  *Status
}

func newTrial() *Trial {
	return &Trial{}
}

func (t *Trial) copy() *Trial {
	c := &Trial{
		entries: slices.Clone(t.entries),
		starts:  t.starts,
	}
	if t.status != nil {
		s := *t.status
		c.status = &s
	}
	return c
}

// NumMoves counts the moves played since the start rules were applied.
func (t *Trial) NumMoves() int {
	return len(t.entries) - t.starts
}

// Moves returns the moves played since the start rules were applied.
func (t *Trial) Moves() []*Move {
	moves := make([]*Move, 0, t.NumMoves())
	for _, e := range t.entries[t.starts:] {
		moves = append(moves, e.move)
	}
	return moves
}

// LastMove returns the last move played, or nil.
func (t *Trial) LastMove() *Move {
	if t.NumMoves() == 0 {
		return nil
	}
	return t.entries[len(t.entries)-1].move
}

// Status is nil while the game is running.
func (t *Trial) Status() *Status {
	return t.status
}
