// Package playout runs random games in parallel. Every playout owns its own
// game context; the game itself is shared read-only by all workers.
package playout

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"ludeme/engine"
	"ludeme/game"
)

// Record describes one finished playout.
type Record struct {
	ID       int
	Seed     uint64
	Finished bool
	Winner   int // 0 for a draw
	Moves    int
	Duration time.Duration
}

// Runner plays random playouts of a game.
type Runner struct {
	workers  int
	playouts int
	maxMoves int
	seed     uint64
}

type Option func(r *Runner)

func WithWorkers(workers int) Option {
	return func(r *Runner) {
		r.workers = workers
	}
}

func WithPlayouts(playouts int) Option {
	return func(r *Runner) {
		r.playouts = playouts
	}
}

// WithMaxMoves stops a playout after the given number of moves.
func WithMaxMoves(moves int) Option {
	return func(r *Runner) {
		r.maxMoves = moves
	}
}

// WithSeed sets the seed of the first playout. Playout i uses seed+i, so a
// run is reproducible whatever the number of workers.
func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

func NewRunner(options ...Option) *Runner {
	r := &Runner{
		workers:  runtime.GOMAXPROCS(0),
		playouts: 100,
		maxMoves: engine.MaxMoves,
		seed:     1,
	}
	for _, option := range options {
		option(r)
	}
	if r.workers < 1 || r.playouts < 1 || r.maxMoves < 1 {
		panic(fmt.Sprintf("invalid playout runner: workers=%d playouts=%d max moves=%d", r.workers, r.playouts, r.maxMoves))
	}
	return r
}

// Run plays the configured number of playouts of g, which must be
// preprocessed. Cancelling ctx stops every worker between two moves.
func (r *Runner) Run(ctx context.Context, g *game.Game) (Summary, []Record, error) {
	if !g.Preprocessed() {
		return Summary{}, nil, game.ErrNotPreprocessed
	}
	run := uuid.New()
	collector := NewCollector(run)
	collector.Start(g.Name, r.workers, g.NumPlayers)
	records := make([]Record, r.playouts)
	log.Info().Msgf("starting run %s: %d playouts of %s on %d workers", run, r.playouts, g.Name, r.workers)

	var next atomic.Int64
	group, gctx := errgroup.WithContext(ctx)
	for w := 0; w < r.workers; w++ {
		group.Go(func() error {
			for {
				i := int(next.Add(1)) - 1
				if i >= r.playouts {
					return nil
				}
				record, err := r.playout(gctx, g, i)
				if err != nil {
					return fmt.Errorf("playout %d: %w", i, err)
				}
				records[i] = record
				collector.Add(record)
			}
		})
	}
	err := group.Wait()

	summary := collector.Complete()
	if err != nil {
		return summary, nil, err
	}
	log.Info().Msgf("completed run %s: %d playouts, %d moves in %s (%.0f playouts/s)",
		run, summary.Playouts, summary.Moves, summary.Duration, summary.PlayoutsPerSecond())
	return summary, records, nil
}

func (r *Runner) playout(ctx context.Context, g *game.Game, id int) (Record, error) {
	seed := r.seed + uint64(id)
	record := Record{ID: id, Seed: seed}
	start := time.Now()

	state := game.NewContext(g, seed)
	if err := state.Start(); err != nil {
		return record, err
	}
	agent := engine.NewRandomAgent(seed)
	for !state.IsOver() && state.Trial().NumMoves() < r.maxMoves {
		if err := ctx.Err(); err != nil {
			return record, err
		}
		legal, err := g.Moves(state)
		if err != nil {
			return record, err
		}
		if _, err := g.Apply(state, agent.SelectMove(state, legal)); err != nil {
			return record, err
		}
	}

	record.Moves = state.Trial().NumMoves()
	record.Duration = time.Since(start)
	if status := state.Trial().Status(); status != nil {
		record.Finished = true
		record.Winner = status.Winner
	}
	return record, nil
}
