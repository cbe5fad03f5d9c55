package start_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ludeme/functions/dim"
	"ludeme/functions/graph"
	"ludeme/functions/ints"
	"ludeme/functions/region"
	"ludeme/game"
	"ludeme/rules/effect"
	"ludeme/rules/start"
)

func newGame(rules ...game.Moves) *game.Game {
	g := game.New("test", 2, graph.Square(dim.NewConstant(3)), game.PiecesFor("Disc", 2), game.Rules{
		Start: rules,
		Play:  effect.NewAdd("Disc", region.NewEmpty(), nil),
	})
	g.Preprocess()
	return g
}

func TestPlace(t *testing.T) {
	g := newGame(
		start.NewPlace("Disc1", region.Row(ints.NewConstant(0))),
		start.NewPlace("Disc2", region.Row(ints.NewConstant(2))),
	)
	require.NoError(t, g.Validate())
	ctx := game.NewContext(g, 1)
	require.NoError(t, ctx.Start())

	require.Equal(t, []int{0, 1, 2}, ctx.Board().SitesOwnedBy(1).Sites())
	require.Equal(t, []int{6, 7, 8}, ctx.Board().SitesOwnedBy(2).Sites())
	require.Equal(t, 0, ctx.Trial().NumMoves(), "Start rules are not moves")
	require.Equal(t, 1, ctx.Mover())
	require.ErrorIs(t, g.Undo(ctx), game.ErrNothingToUndo)
	require.Error(t, ctx.Start(), "A context starts once")

	t.Run("reporting an unknown piece", func(t *testing.T) {
		g := newGame(start.NewPlace("Stone", region.Board()))
		require.ErrorIs(t, g.Validate(), game.ErrInvalidGame)
		require.Error(t, game.NewContext(g, 1).Start())
	})
}

func TestPlaceRandom(t *testing.T) {
	g := newGame(start.NewPlaceRandom("Disc2", region.Board(), ints.NewConstant(3)))
	require.True(t, g.Flags().Has(game.FlagStochastic))

	placed := func(seed uint64) []int {
		ctx := game.NewContext(g, seed)
		require.NoError(t, ctx.Start())
		return ctx.Board().SitesOwnedBy(2).Sites()
	}
	require.Len(t, placed(1), 3)
	require.Equal(t, placed(7), placed(7), "The same seed places the same sites")

	t.Run("placing only on empty sites", func(t *testing.T) {
		g := newGame(
			start.NewPlace("Disc1", region.Row(ints.NewConstant(0))),
			start.NewPlaceRandom("Disc2", region.Board(), ints.NewConstant(6)),
		)
		ctx := game.NewContext(g, 3)
		require.NoError(t, ctx.Start())
		require.Equal(t, 3, ctx.Board().SitesOwnedBy(1).Count())
		require.Equal(t, 6, ctx.Board().SitesOwnedBy(2).Count())
		require.True(t, ctx.Board().EmptySites().IsEmpty())
	})

	t.Run("failing without enough empty sites", func(t *testing.T) {
		g := newGame(start.NewPlaceRandom("Disc1", region.Board(), ints.NewConstant(10)))
		err := game.NewContext(g, 1).Start()
		var evalErr *game.EvalError
		require.ErrorAs(t, err, &evalErr)
		require.Equal(t, "place random", evalErr.Node)
	})

	t.Run("failing after an earlier start rule", func(t *testing.T) {
		g := newGame(
			start.NewPlace("Disc1", region.Row(ints.NewConstant(0))),
			start.NewPlaceRandom("Disc2", region.Board(), ints.NewConstant(7)),
		)
		ctx := game.NewContext(g, 1)
		require.Error(t, ctx.Start())
		require.Error(t, ctx.Start(), "A failed context cannot be started again")
	})
}
