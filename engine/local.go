package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ludeme/game"
)

type Option func(e *LocalEngine)

// WithMaxMoves stops Run after the given number of moves.
func WithMaxMoves(moves int) Option {
	return func(e *LocalEngine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// LocalEngine referees one game in process: it only lets legal moves
// through and publishes an update after each of them.
type LocalEngine struct {
	game     *game.Game
	ctx      *game.Context
	maxMoves int
	updateCh chan Update
	closed   bool
}

// Result summarizes a game run by an engine.
type Result struct {
	Status    *game.Status // nil when the move limit was hit first
	Moves     int
	StartTime time.Time
	Duration  time.Duration
}

// NewLocalEngine starts a game of g, which must be preprocessed, with the
// context RNG seeded by seed.
func NewLocalEngine(g *game.Game, seed uint64, options ...Option) (*LocalEngine, UpdateGetter, error) {
	if !g.Preprocessed() {
		return nil, nil, game.ErrNotPreprocessed
	}
	e := &LocalEngine{game: g, maxMoves: MaxMoves}
	for _, option := range options {
		option(e)
	}
	e.ctx = game.NewContext(g, seed)
	if err := e.ctx.Start(); err != nil {
		return nil, nil, fmt.Errorf("starting %s: %w", g.Name, err)
	}
	// one slot per move of a game without undos
	e.updateCh = make(chan Update, e.maxMoves+1)

	return e, func() (Update, bool) {
		select {
		case u, ok := <-e.updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}, nil
}

// Context returns a copy of the current state.
func (e *LocalEngine) Context() *game.Context {
	return e.ctx.Clone()
}

func (e *LocalEngine) Legal() (*game.MoveList, error) {
	return e.game.Moves(e.ctx)
}

// Play applies move if it is legal in the current state. The move is
// matched against the legal moves, and the matching legal move (with its
// continuations) is the one applied.
func (e *LocalEngine) Play(move *game.Move) error {
	if e.ctx.IsOver() {
		return game.ErrGameOver
	}
	if e.ctx.Trial().NumMoves() >= e.maxMoves {
		return fmt.Errorf("%w: move limit %d reached", ErrIllegalMove, e.maxMoves)
	}
	legal, err := e.game.Moves(e.ctx)
	if err != nil {
		return err
	}
	var chosen *game.Move
	for _, m := range legal.All() {
		if m.Equal(move) {
			chosen = m
			break
		}
	}
	if chosen == nil {
		return fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}

	mover := e.ctx.Mover()
	if _, err := e.game.Apply(e.ctx, chosen); err != nil {
		return err
	}
	if e.closed {
		// replaying after undoing past the end of the game
		return nil
	}
	update := Update{
		Ply:   e.ctx.Trial().NumMoves(),
		Mover: mover,
		Move:  chosen,
		Hash:  e.ctx.Hash(),
		Over:  e.ctx.IsOver(),
	}
	select {
	case e.updateCh <- update:
	default:
		log.Warn().Msgf("update feed full, dropping update for ply %d", update.Ply)
	}
	if e.ctx.IsOver() {
		close(e.updateCh)
		e.closed = true
	}
	return nil
}

// Undo takes back the last move.
func (e *LocalEngine) Undo() error {
	return e.game.Undo(e.ctx)
}

// Run lets agents, one per player, play until the game ends or the move
// limit is reached.
func (e *LocalEngine) Run(agents []Agent) (Result, error) {
	if len(agents) != e.game.NumPlayers {
		panic("number of agents does not match number of players")
	}
	result := Result{StartTime: time.Now()}
	log.Info().Msgf("player %d is starting %s", e.ctx.Mover(), e.game.Name)

	for !e.ctx.IsOver() && e.ctx.Trial().NumMoves() < e.maxMoves {
		legal, err := e.game.Moves(e.ctx)
		if err != nil {
			return result, err
		}
		move := agents[e.ctx.Mover()-1].SelectMove(e.ctx.Clone(), legal)
		if err := e.Play(move); err != nil {
			return result, err
		}
	}

	result.Status = e.ctx.Trial().Status()
	result.Moves = e.ctx.Trial().NumMoves()
	result.Duration = time.Since(result.StartTime)
	if result.Status != nil {
		log.Info().Msgf("%s over after %d moves, winner: %s", e.game.Name, result.Moves, result.Status)
	} else {
		log.Info().Msgf("%s stopped after %d moves (no winner yet)", e.game.Name, result.Moves)
	}
	return result, nil
}
