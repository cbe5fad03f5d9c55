package playout

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"ludeme/library"
)

func TestRun(t *testing.T) {
	g, err := library.Build("tictactoe")
	require.NoError(t, err)

	t.Run("playing every playout to the end", func(t *testing.T) {
		summary, records, err := NewRunner(WithWorkers(4), WithPlayouts(50)).Run(context.Background(), g)
		require.NoError(t, err)

		require.Equal(t, 50, summary.Playouts)
		require.Len(t, records, 50)
		require.Zero(t, summary.Unfinished, "Tic-tac-toe always ends within 9 moves")
		require.Equal(t, 50, summary.Wins[1]+summary.Wins[2]+summary.Draws, "Every playout should have an outcome")

		moves := 0
		for i, record := range records {
			require.Equal(t, i, record.ID)
			require.True(t, record.Finished)
			require.LessOrEqual(t, record.Moves, 9)
			require.GreaterOrEqual(t, record.Moves, 5, "Nobody can line up 3 before the 5th move")
			moves += record.Moves
		}
		require.Equal(t, moves, summary.Moves)
	})

	t.Run("reproducing a run whatever the number of workers", func(t *testing.T) {
		_, sequential, err := NewRunner(WithWorkers(1), WithPlayouts(20), WithSeed(42)).Run(context.Background(), g)
		require.NoError(t, err)
		_, parallel, err := NewRunner(WithWorkers(8), WithPlayouts(20), WithSeed(42)).Run(context.Background(), g)
		require.NoError(t, err)

		for i := range sequential {
			require.Equal(t, sequential[i].Seed, parallel[i].Seed)
			require.Equal(t, sequential[i].Winner, parallel[i].Winner, "Playout %d should replay identically", i)
			require.Equal(t, sequential[i].Moves, parallel[i].Moves, "Playout %d should replay identically", i)
		}
	})

	t.Run("stopping at the move limit", func(t *testing.T) {
		summary, records, err := NewRunner(WithWorkers(2), WithPlayouts(10), WithMaxMoves(2)).Run(context.Background(), g)
		require.NoError(t, err)
		require.Equal(t, 10, summary.Unfinished)
		for _, record := range records {
			require.False(t, record.Finished)
			require.Equal(t, 2, record.Moves)
		}
	})

	t.Run("cancelling a run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := NewRunner(WithPlayouts(10)).Run(ctx, g)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejecting a game that was not preprocessed", func(t *testing.T) {
		_, _, err := NewRunner().Run(context.Background(), library.TicTacToe())
		require.Error(t, err)
	})

	t.Run("rejecting invalid options", func(t *testing.T) {
		require.Panics(t, func() { NewRunner(WithWorkers(0)) })
		require.Panics(t, func() { NewRunner(WithPlayouts(-1)) })
	})
}

func TestWriter(t *testing.T) {
	summary := Summary{
		Run:      uuid.New(),
		Game:     "Tic-Tac-Toe",
		Workers:  2,
		Playouts: 2,
		Moves:    14,
		Draws:    1,
		Wins:     []int{0, 1, 0},
	}
	records := []Record{
		{ID: 0, Seed: 1, Finished: true, Winner: 1, Moves: 5},
		{ID: 1, Seed: 2, Finished: true, Winner: 0, Moves: 9},
	}

	w, err := NewWriter(t.TempDir(), summary)
	require.NoError(t, err)
	require.Equal(t, summary.Run.String(), filepath.Base(w.Dir()), "Directory should be named after the run")
	require.NoError(t, w.WriteSummary(summary))
	require.NoError(t, w.WriteRecords(records))

	read := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	rows := read("summary.csv")
	require.Len(t, rows, 2)
	require.Equal(t, "wins_p2", rows[0][len(rows[0])-1], "Summary should have one win column per player")
	require.Equal(t, "Tic-Tac-Toe", rows[1][1])

	rows = read("playouts.csv")
	require.Len(t, rows, 3)
	require.Equal(t, []string{"1", "2", "true", "0", "9", "0s"}, rows[2])
}
