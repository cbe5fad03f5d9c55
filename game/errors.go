package game

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	ErrGameOver        = errors.New("game is over - no moves allowed")
	ErrNotPreprocessed = errors.New("game has not been preprocessed")
	ErrNothingToUndo   = errors.New("no move to undo")
	ErrInvalidGame     = errors.New("invalid game")
)

// EvalError is raised when a node is evaluated on input outside its domain
// (division by zero, site out of range, too many players...). The engine has
// no fallback once this happens: the error reaches the caller of Moves, Apply
// or Start.
type EvalError struct {
	Node string
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Node, e.Msg)
}

// Fail aborts the current evaluation with an EvalError.
func Fail(node string, format string, args ...any) {
	panic(&EvalError{Node: node, Msg: fmt.Sprintf(format, args...)})
}

// Guard runs fn and turns an evaluation failure raised inside it into an
// error. Runtime errors (index out of range...) are reported the same way;
// any other panic is propagated.
func Guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *EvalError:
				err = e
			case runtime.Error:
				err = &EvalError{Node: "runtime", Msg: e.Error()}
			default:
				panic(r)
			}
		}
	}()
	fn()
	return nil
}
