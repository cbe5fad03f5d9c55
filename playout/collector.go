package playout

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Summary aggregates the playouts of one run.
type Summary struct {
	Run        uuid.UUID
	Game       string
	Workers    int
	Playouts   int
	Moves      int
	Draws      int
	Unfinished int   // playouts stopped by the move limit
	Wins       []int // indexed by player, entry 0 unused
	StartTime  time.Time
	Duration   time.Duration
}

func (s Summary) PlayoutsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Playouts) / s.Duration.Seconds()
}

func (s Summary) MovesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Moves) / s.Duration.Seconds()
}

// Collector counts finished playouts. It is safe for concurrent use.
type Collector interface {
	Start(game string, workers, numPlayers int)
	Add(record Record)
	Complete() Summary
}

type collector struct {
	run        uuid.UUID
	game       string
	workers    int
	startTime  time.Time
	playouts   atomic.Int64
	moves      atomic.Int64
	draws      atomic.Int64
	unfinished atomic.Int64
	wins       []atomic.Int64
}

func NewCollector(run uuid.UUID) Collector {
	return &collector{run: run}
}

func (m *collector) Start(game string, workers, numPlayers int) {
	m.startTime = time.Now()
	m.game = game
	m.workers = workers
	m.wins = make([]atomic.Int64, numPlayers+1)
}

func (m *collector) Add(record Record) {
	m.playouts.Add(1)
	m.moves.Add(int64(record.Moves))
	switch {
	case !record.Finished:
		m.unfinished.Add(1)
	case record.Winner == 0:
		m.draws.Add(1)
	default:
		m.wins[record.Winner].Add(1)
	}
}

func (m *collector) Complete() Summary {
	wins := make([]int, len(m.wins))
	for p := range m.wins {
		wins[p] = int(m.wins[p].Load())
	}
	return Summary{
		Run:        m.run,
		Game:       m.game,
		Workers:    m.workers,
		Playouts:   int(m.playouts.Load()),
		Moves:      int(m.moves.Load()),
		Draws:      int(m.draws.Load()),
		Unfinished: int(m.unfinished.Load()),
		Wins:       wins,
		StartTime:  m.startTime,
		Duration:   time.Since(m.startTime),
	}
}
