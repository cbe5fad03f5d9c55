package engine

import (
	"errors"

	"ludeme/game"
)

// MaxMoves bounds the length of a game run by an engine unless configured
// otherwise.
const MaxMoves = 10000

var ErrIllegalMove = errors.New("illegal move")

// Agent picks a move among the legal ones.
type Agent interface {
	SelectMove(ctx *game.Context, legal *game.MoveList) *game.Move
}

// Update is published after every move played through an engine.
type Update struct {
	Ply   int
	Mover int
	Move  *game.Move
	Hash  game.StateHash
	Over  bool
}

// UpdateGetter returns the next unread update, if any. It never blocks.
type UpdateGetter func() (Update, bool)
