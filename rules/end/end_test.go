package end_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"ludeme/functions/booleans"
	"ludeme/functions/dim"
	"ludeme/functions/graph"
	"ludeme/functions/ints"
	"ludeme/functions/region"
	"ludeme/game"
	"ludeme/rules/effect"
	"ludeme/rules/end"
)

func c(v int) game.IntFunction { return ints.NewConstant(v) }

// setup returns a 3x3 game where players add discs, ended by rules.
func setup(t *testing.T, play game.Moves, rules []game.EndRule, p1, p2 []int) (*game.Game, *game.Context) {
	t.Helper()
	if play == nil {
		play = effect.NewAdd("Disc", region.NewEmpty(), nil)
	}
	g := game.New("test", 2, graph.Square(dim.NewConstant(3)), game.PiecesFor("Disc", 2),
		game.Rules{Play: play, End: rules})
	g.Preprocess()
	ctx := game.NewContext(g, 1)
	require.NoError(t, ctx.Start())
	for player, sites := range [][]int{nil, p1, p2} {
		what, _ := g.PieceIndex("Disc" + strconv.Itoa(player))
		for _, site := range sites {
			game.ActionAdd{Site: site, What: what, Who: player}.Apply(ctx)
		}
	}
	return g, ctx
}

// playOn applies the legal move ending on site.
func playOn(t *testing.T, g *game.Game, ctx *game.Context, site int) {
	t.Helper()
	legal, err := g.Moves(ctx)
	require.NoError(t, err)
	for _, m := range legal.All() {
		if m.To == site {
			_, err := g.Apply(ctx, m)
			require.NoError(t, err)
			return
		}
	}
	require.Failf(t, "no legal move", "nothing ends on %d", site)
}

func TestIf(t *testing.T) {
	t.Run("winning", func(t *testing.T) {
		line := end.NewIf(booleans.NewIsLine(c(3)), end.Win(nil))
		g, ctx := setup(t, nil, []game.EndRule{line}, []int{0, 1}, []int{3, 4})
		playOn(t, g, ctx, 6)
		require.False(t, ctx.IsOver())
		playOn(t, g, ctx, 5)
		require.True(t, ctx.IsOver(), "Player 2 completes 3-4-5")
		require.Equal(t, 2, ctx.Trial().Status().Winner)
	})

	t.Run("losing", func(t *testing.T) {
		centre := end.NewIf(booleans.IsOccupied(c(4)), end.Loss(nil))
		g, ctx := setup(t, nil, []game.EndRule{centre}, nil, nil)
		playOn(t, g, ctx, 4)
		require.True(t, ctx.IsOver())
		require.Equal(t, 2, ctx.Trial().Status().Winner, "The last active player wins")
		require.False(t, ctx.Active(1))

		require.NoError(t, g.Undo(ctx))
		require.True(t, ctx.Active(1), "Undo should reactivate the loser")
		require.False(t, ctx.IsOver())
	})

	t.Run("drawing", func(t *testing.T) {
		full := end.NewIf(booleans.NewIsFull(), end.Draw())
		g, ctx := setup(t, nil, []game.EndRule{full}, []int{0, 1, 2, 3}, []int{4, 5, 6, 7})
		playOn(t, g, ctx, 8)
		require.True(t, ctx.IsOver())
		require.Equal(t, 0, ctx.Trial().Status().Winner)
	})

	t.Run("reading the move just played", func(t *testing.T) {
		// the mover is still the player who moved while end rules run
		onCentre := end.NewIf(booleans.Equal(ints.To(), c(4)), end.Win(ints.Next()))
		g, ctx := setup(t, nil, []game.EndRule{onCentre}, nil, nil)
		playOn(t, g, ctx, 0)
		require.False(t, ctx.IsOver())
		playOn(t, g, ctx, 4)
		require.Equal(t, 1, ctx.Trial().Status().Winner)
	})

	t.Run("first matching rule wins", func(t *testing.T) {
		rules := []game.EndRule{
			end.NewIf(booleans.True(), end.Win(c(2))),
			end.NewIf(booleans.True(), end.Draw()),
		}
		g, ctx := setup(t, nil, rules, nil, nil)
		playOn(t, g, ctx, 0)
		require.Equal(t, 2, ctx.Trial().Status().Winner)
	})
}

func TestByScore(t *testing.T) {
	scoring := effect.NewAdd("Disc", region.NewEmpty(), game.NewThen(effect.NewAddScore(nil, ints.To(), nil)))

	t.Run("highest score wins", func(t *testing.T) {
		g, ctx := setup(t, scoring, []game.EndRule{end.NewByScore(nil)}, nil, nil)
		playOn(t, g, ctx, 3)
		require.True(t, ctx.IsOver())
		require.Equal(t, 1, ctx.Trial().Status().Winner)
	})

	t.Run("tie is a draw", func(t *testing.T) {
		g, ctx := setup(t, scoring, []game.EndRule{end.NewByScore(nil)}, nil, nil)
		playOn(t, g, ctx, 0)
		require.True(t, ctx.IsOver())
		require.Equal(t, 0, ctx.Trial().Status().Winner, "Both players have 0")
	})

	t.Run("waiting for the condition", func(t *testing.T) {
		rule := end.NewByScore(booleans.Ge(ints.NewScore(ints.Mover()), c(8)))
		g, ctx := setup(t, scoring, []game.EndRule{rule}, nil, nil)
		playOn(t, g, ctx, 7)
		require.False(t, ctx.IsOver())
		playOn(t, g, ctx, 8)
		require.True(t, ctx.IsOver())
		require.Equal(t, 2, ctx.Trial().Status().Winner)
	})
}

func TestConcepts(t *testing.T) {
	g, _ := setup(t, nil, []game.EndRule{end.NewByScore(nil)}, nil, nil)
	concepts := g.Concepts()
	require.True(t, concepts.Test(uint(game.ConceptScoring)))
	require.True(t, concepts.Test(uint(game.ConceptWin)))
	require.True(t, concepts.Test(uint(game.ConceptDraw)))
}
