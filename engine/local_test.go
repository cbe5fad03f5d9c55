package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ludeme/game"
	"ludeme/library"
)

func newTicTacToe(t *testing.T, options ...Option) (*LocalEngine, UpdateGetter) {
	t.Helper()
	g, err := library.Build("tictactoe")
	require.NoError(t, err)
	e, getUpdate, err := NewLocalEngine(g, 1, options...)
	require.NoError(t, err)
	return e, getUpdate
}

func TestNewLocalEngine(t *testing.T) {
	t.Run("starting a game", func(t *testing.T) {
		e, getUpdate := newTicTacToe(t)

		ctx := e.Context()
		require.Equal(t, 1, ctx.Mover(), "Player 1 should move first")
		require.Equal(t, 9, ctx.Board().EmptySites().Count(), "Board should start empty")

		_, ok := getUpdate()
		require.False(t, ok, "There should be no update before the first move")
	})

	t.Run("rejecting a game that was not preprocessed", func(t *testing.T) {
		_, _, err := NewLocalEngine(library.TicTacToe(), 1)
		require.ErrorIs(t, err, game.ErrNotPreprocessed)
	})
}

func TestLocalEnginePlay(t *testing.T) {
	t.Run("playing a legal move", func(t *testing.T) {
		e, getUpdate := newTicTacToe(t)
		legal, err := e.Legal()
		require.NoError(t, err)
		require.Equal(t, 9, legal.Len(), "Every site should be playable")

		move := legal.At(4)
		require.NoError(t, e.Play(move))

		update, ok := getUpdate()
		require.True(t, ok, "Playing should publish an update")
		require.Equal(t, 1, update.Ply)
		require.Equal(t, 1, update.Mover)
		require.True(t, update.Move.Equal(move), "Update should carry the played move")
		require.False(t, update.Over)
		require.Equal(t, e.Context().Hash(), update.Hash)

		ctx := e.Context()
		require.Equal(t, 1, ctx.Board().Who(move.To), "Site should belong to player 1")
		require.Equal(t, 2, ctx.Mover(), "Turn should pass to player 2")
	})

	t.Run("rejecting an illegal move", func(t *testing.T) {
		e, _ := newTicTacToe(t)
		legal, err := e.Legal()
		require.NoError(t, err)
		move := legal.At(0)
		require.NoError(t, e.Play(move))

		// the site is taken and it is no longer player 1's turn
		err = e.Play(move)
		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, 1, e.Context().Trial().NumMoves(), "Illegal move should not be applied")
	})

	t.Run("finishing the game", func(t *testing.T) {
		e, getUpdate := newTicTacToe(t)
		result, err := e.Run([]Agent{FirstAgent{}, FirstAgent{}})
		require.NoError(t, err)

		// player 1 takes 0, 2, 4 and 6, completing the 2-4-6 diagonal
		require.NotNil(t, result.Status, "Game should be over")
		require.Equal(t, 1, result.Status.Winner)
		require.Equal(t, 7, result.Moves)

		var last Update
		for i := 0; i < 7; i++ {
			u, ok := getUpdate()
			require.True(t, ok, "Every move should have an update")
			last = u
		}
		require.True(t, last.Over, "Last update should end the game")
		_, ok := getUpdate()
		require.False(t, ok, "Update feed should be closed after the game")

		err = e.Play(last.Move)
		require.ErrorIs(t, err, game.ErrGameOver)
	})

	t.Run("stopping at the move limit", func(t *testing.T) {
		e, _ := newTicTacToe(t, WithMaxMoves(3))
		result, err := e.Run([]Agent{FirstAgent{}, FirstAgent{}})
		require.NoError(t, err)
		require.Nil(t, result.Status, "Game should still be running")
		require.Equal(t, 3, result.Moves)

		legal, err := e.Legal()
		require.NoError(t, err)
		require.ErrorIs(t, e.Play(legal.At(0)), ErrIllegalMove)
	})
}

func TestLocalEngineUndo(t *testing.T) {
	e, _ := newTicTacToe(t)
	before := e.Context()
	legal, err := e.Legal()
	require.NoError(t, err)
	require.NoError(t, e.Play(legal.At(3)))
	require.NoError(t, e.Undo())

	require.True(t, before.SameState(e.Context()), "Undo should restore the previous state")
	require.ErrorIs(t, e.Undo(), game.ErrNothingToUndo)
}

func TestRandomAgent(t *testing.T) {
	g, err := library.Build("breakthrough")
	require.NoError(t, err)

	run := func() Result {
		e, _, err := NewLocalEngine(g, 7)
		require.NoError(t, err)
		result, err := e.Run([]Agent{NewRandomAgent(1), NewRandomAgent(2)})
		require.NoError(t, err)
		return result
	}

	first, second := run(), run()
	require.NotNil(t, first.Status, "Breakthrough always ends")
	require.NotZero(t, first.Status.Winner, "Breakthrough has no draws")
	require.Equal(t, first.Moves, second.Moves, "Same seeds should replay the same game")
	require.Equal(t, *first.Status, *second.Status, "Same seeds should replay the same game")
}
