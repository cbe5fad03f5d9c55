package effect_test

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
	"ludeme/topology"
)

func c(v int) game.IntFunction { return ints.NewConstant(v) }

// setup returns a context of a 3x3 two player game whose play rule is play,
// with discs of player 1 on p1 and of player 2 on p2.
func setup(t *testing.T, play game.Moves, p1, p2 []int) (*game.Game, *game.Context) {
	t.Helper()
	g := game.New("test", 2, graph.Square(dim.NewConstant(3)), game.PiecesFor("Disc", 2), game.Rules{Play: play})
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

func targets(moves *game.MoveList) []int {
	var to []int
	for _, m := range moves.All() {
		to = append(to, m.To)
	}
	return to
}

func TestAdd(t *testing.T) {
	g, ctx := setup(t, effect.NewAdd("Disc", region.NewEmpty(), nil), []int{0}, []int{8})
	legal, err := g.Moves(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, targets(legal), "Only empty sites should be offered")
	for _, m := range legal.All() {
		require.True(t, m.Decision)
	}

	_, err = g.Apply(ctx, legal.At(0))
	require.NoError(t, err)
	require.Equal(t, 1, ctx.Board().Who(1))
	what, _ := g.PieceIndex("Disc1")
	require.Equal(t, what, ctx.Board().What(1), "Disc should resolve to the mover's Disc1")
}

func TestStep(t *testing.T) {
	t.Run("stepping onto empty neighbours", func(t *testing.T) {
		g, ctx := setup(t, effect.NewStep(), []int{4}, []int{7})
		legal, err := g.Moves(ctx)
		require.NoError(t, err)
		require.Equal(t, []int{5, 1, 3}, targets(legal), "The enemy on 7 blocks the step")
	})

	t.Run("capturing by replacement", func(t *testing.T) {
		g, ctx := setup(t, effect.NewStep(effect.Capture()), []int{4}, []int{7})
		legal, err := g.Moves(ctx)
		require.NoError(t, err)
		require.Equal(t, []int{7, 5, 1, 3}, targets(legal))

		_, err = g.Apply(ctx, legal.At(0))
		require.NoError(t, err)
		require.True(t, ctx.Board().IsEmpty(4))
		require.Equal(t, 1, ctx.Board().Who(7), "Player 1 should replace the captured piece")
	})

	t.Run("stepping forward for each player", func(t *testing.T) {
		forward := effect.NewStep(effect.Directions(topology.Relative(topology.Forward)))
		g, ctx := setup(t, forward, []int{1}, []int{7})
		legal, err := g.Moves(ctx)
		require.NoError(t, err)
		require.Equal(t, []int{4}, targets(legal), "Player 1 faces north")

		_, err = g.Apply(ctx, legal.At(0))
		require.NoError(t, err)
		legal, err = g.Moves(ctx)
		require.NoError(t, err)
		require.True(t, legal.At(0).Forced, "Player 2 faces south onto player 1's piece and must pass")
	})

	t.Run("testing targets with a condition", func(t *testing.T) {
		toCorner := effect.NewStep(effect.If(booleans.NewIsIn(ints.To(), region.Corners())))
		g, ctx := setup(t, toCorner, []int{1}, nil)
		legal, err := g.Moves(ctx)
		require.NoError(t, err)
		require.Equal(t, []int{2, 0}, targets(legal))
	})
}

func TestSlide(t *testing.T) {
	g, ctx := setup(t, effect.NewSlide(), []int{0}, []int{2})
	legal, err := g.Moves(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{3, 6, 1}, targets(legal), "Slides stop before the enemy on 2")

	g, ctx = setup(t, effect.NewSlide(effect.Capture()), []int{0}, []int{2})
	legal, err = g.Moves(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{3, 6, 1, 2}, targets(legal), "Capturing slides may end on the enemy")
}

func TestHop(t *testing.T) {
	g, ctx := setup(t, effect.NewHop(effect.Capture()), []int{0}, []int{1, 3})
	legal, err := g.Moves(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{6, 2}, targets(legal))

	_, err = g.Apply(ctx, legal.At(1))
	require.NoError(t, err)
	require.True(t, ctx.Board().IsEmpty(1), "The hopped piece should be captured")
	require.Equal(t, 1, ctx.Board().Who(2))
	require.Equal(t, 2, ctx.Board().Who(3))
}

func TestCustodial(t *testing.T) {
	flank := game.NewThen(effect.NewCustodial(topology.Orthogonal, nil, nil))
	g, ctx := setup(t, effect.NewAdd("Disc", region.NewEmpty(), flank), []int{0, 8}, []int{1, 5})
	legal, err := g.Moves(ctx)
	require.NoError(t, err)

	var onTwo *game.Move
	for _, m := range legal.All() {
		if m.To == 2 {
			onTwo = m
		}
	}
	require.NotNil(t, onTwo)
	_, err = g.Apply(ctx, onTwo)
	require.NoError(t, err)
	require.True(t, ctx.Board().IsEmpty(1), "1 is flanked by 0 and 2")
	require.True(t, ctx.Board().IsEmpty(5), "5 is flanked by 2 and 8")

	require.NoError(t, g.Undo(ctx))
	require.Equal(t, 2, ctx.Board().Who(1), "Undo should restore captured pieces")
	require.Equal(t, 2, ctx.Board().Who(5))
}

func TestClaimAndFlip(t *testing.T) {
	g, ctx := setup(t, effect.NewClaim(region.NewOccupied(ints.Next()), nil), []int{0}, []int{1, 2})
	legal, err := g.Moves(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, targets(legal))
	_, err = g.Apply(ctx, legal.At(0))
	require.NoError(t, err)
	require.Equal(t, 1, ctx.Board().Who(1))
	what, _ := g.PieceIndex("Disc1")
	require.Equal(t, what, ctx.Board().What(1), "Claimed piece should become the mover's")

	g, ctx = setup(t, effect.NewFlip(region.Board(), nil), []int{0}, []int{1, 2})
	legal, err = g.Moves(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, legal.Len(), "Flip is a single effect")
	_, err = g.Apply(ctx, legal.At(0))
	require.NoError(t, err)
	require.Equal(t, 3, ctx.Board().SitesOwnedBy(1).Count())
}

func TestRemove(t *testing.T) {
	g, ctx := setup(t, effect.NewRemove(region.Row(c(0)), nil), []int{0}, []int{2, 4})
	legal, err := g.Moves(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, legal.Len())
	_, err = g.Apply(ctx, legal.At(0))
	require.NoError(t, err)
	require.Equal(t, 8, ctx.Board().EmptySites().Count(), "Only row 0 should be cleared")
}

func TestMoveAgain(t *testing.T) {
	g, ctx := setup(t, effect.NewAdd("Disc", region.NewEmpty(), game.NewThen(effect.NewMoveAgain())), nil, nil)
	legal, err := g.Moves(ctx)
	require.NoError(t, err)
	_, err = g.Apply(ctx, legal.At(0))
	require.NoError(t, err)
	require.Equal(t, 1, ctx.Mover(), "Player 1 should move again")

	require.NoError(t, g.Undo(ctx))
	require.Equal(t, 1, ctx.Mover())
}

func TestPass(t *testing.T) {
	g, ctx := setup(t, effect.NewPass(nil), nil, nil)
	legal, err := g.Moves(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, legal.Len())
	require.True(t, game.IsPass(legal.At(0)))
	require.False(t, legal.At(0).Forced, "A declared pass is a choice")
}

func TestSetters(t *testing.T) {
	t.Run("scores", func(t *testing.T) {
		g, ctx := setup(t, effect.NewSetScore(nil, c(3), game.NewThen(effect.NewAddScore(ints.Next(), c(2), nil))), nil, nil)
		legal, err := g.Moves(ctx)
		require.NoError(t, err)
		_, err = g.Apply(ctx, legal.At(0))
		require.NoError(t, err)
		require.Equal(t, 3, ctx.Score(1))
		require.Equal(t, 2, ctx.Score(2))
	})

	t.Run("remembered values and variables", func(t *testing.T) {
		play := effect.NewRemember("seen", c(4), game.NewThen(effect.NewSetVar("turns", c(1), nil)))
		g, ctx := setup(t, play, nil, nil)
		for i := 0; i < 2; i++ {
			legal, err := g.Moves(ctx)
			require.NoError(t, err)
			_, err = g.Apply(ctx, legal.At(0))
			require.NoError(t, err)
		}
		require.Equal(t, []int{4, 4}, ctx.Remembered("seen"))
		v, ok := ctx.Var("turns")
		require.True(t, ok)
		require.Equal(t, 1, v)

		forgetOne := effect.NewForget("seen", c(4), nil)
		forgetOne.Preprocess(g)
		for _, m := range forgetOne.Eval(ctx).All() {
			m.Apply(ctx)
		}
		require.Equal(t, []int{4}, ctx.Remembered("seen"))

		forgetAll := effect.NewForget("seen", nil, nil)
		forgetAll.Preprocess(g)
		for _, m := range forgetAll.Eval(ctx).All() {
			m.Apply(ctx)
		}
		require.Empty(t, ctx.Remembered("seen"))
	})

	t.Run("site properties", func(t *testing.T) {
		g, ctx := setup(t, effect.SetState(c(4), c(2), game.NewThen(effect.SetValue(c(4), c(7), nil))), []int{4}, nil)
		legal, err := g.Moves(ctx)
		require.NoError(t, err)
		_, err = g.Apply(ctx, legal.At(0))
		require.NoError(t, err)
		require.Equal(t, 2, ctx.Board().State(4))
		require.Equal(t, 7, ctx.Board().Value(4))
	})
}
