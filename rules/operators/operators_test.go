package operators_test

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
	"ludeme/rules/operators"
)

func c(v int) game.IntFunction { return ints.NewConstant(v) }

func addOn(sites ...int) game.Moves {
	fs := make([]game.IntFunction, len(sites))
	for i, s := range sites {
		fs[i] = c(s)
	}
	return effect.NewAdd("Disc", region.NewSites(fs...), nil)
}

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

func legal(t *testing.T, g *game.Game, ctx *game.Context) *game.MoveList {
	t.Helper()
	moves, err := g.Moves(ctx)
	require.NoError(t, err)
	return moves
}

func targets(moves *game.MoveList) []int {
	var to []int
	for _, m := range moves.All() {
		to = append(to, m.To)
	}
	return to
}

func TestOr(t *testing.T) {
	g, ctx := setup(t, operators.NewOr(nil, addOn(6, 7), addOn(0)), nil, nil)
	require.Equal(t, []int{6, 7, 0}, targets(legal(t, g, ctx)), "Children keep their order")
}

func TestAnd(t *testing.T) {
	g, ctx := setup(t, operators.NewAnd(nil, addOn(0, 1), addOn(7, 8)), nil, nil)
	moves := legal(t, g, ctx)
	require.Equal(t, 4, moves.Len(), "Every pair of child moves is combined")
	require.Equal(t, []int{7, 8, 7, 8}, targets(moves))

	_, err := g.Apply(ctx, moves.At(1))
	require.NoError(t, err)
	require.Equal(t, 1, ctx.Board().Who(0))
	require.Equal(t, 1, ctx.Board().Who(8))
	require.Equal(t, 7, ctx.Board().EmptySites().Count())

	g, ctx = setup(t, operators.NewAnd(nil, addOn(0), addOn(4)), nil, []int{4})
	require.True(t, legal(t, g, ctx).At(0).Forced, "A child without moves leaves no combination")
}

func TestSeq(t *testing.T) {
	g, ctx := setup(t, operators.NewSeq(nil, addOn(0), addOn(1, 2)), nil, nil)
	moves := legal(t, g, ctx)
	require.Equal(t, 1, moves.Len())
	require.Equal(t, 2, moves.At(0).To)

	_, err := g.Apply(ctx, moves.At(0))
	require.NoError(t, err)
	require.Equal(t, 6, ctx.Board().EmptySites().Count())
}

// marking adds a disc on site and then sets the state of the site just
// played to state.
func marking(site, state int) game.Moves {
	mark := game.NewThen(effect.SetState(ints.To(), c(state), nil))
	return effect.NewAdd("Disc", region.NewSites(c(site)), mark)
}

func TestMergedContinuations(t *testing.T) {
	tests := []struct {
		name string
		play game.Moves
	}{
		{"seq", operators.NewSeq(nil, marking(0, 5), marking(1, 6))},
		{"and", operators.NewAnd(nil, marking(0, 5), marking(1, 6))},
		{"nested seq", operators.NewSeq(nil, operators.NewSeq(nil, marking(0, 5), marking(1, 6)), addOn(2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ctx := setup(t, tt.play, nil, nil)
			moves := legal(t, g, ctx)
			require.Equal(t, 1, moves.Len())

			_, err := g.Apply(ctx, moves.At(0))
			require.NoError(t, err)
			require.Equal(t, 5, ctx.Board().State(0), "Each continuation should read its own part's To")
			require.Equal(t, 6, ctx.Board().State(1))
			require.Equal(t, 0, ctx.Board().State(2))

			require.NoError(t, g.Undo(ctx))
			require.Equal(t, 9, ctx.Board().EmptySites().Count(), "Undo should revert the continuations too")
		})
	}

	t.Run("operator continuation reads the merged move", func(t *testing.T) {
		mark := game.NewThen(effect.SetState(ints.To(), c(7), nil))
		g, ctx := setup(t, operators.NewSeq(mark, addOn(0), addOn(1)), nil, nil)
		_, err := g.Apply(ctx, legal(t, g, ctx).At(0))
		require.NoError(t, err)
		require.Equal(t, 0, ctx.Board().State(0))
		require.Equal(t, 7, ctx.Board().State(1), "To of a merged move is its last part's")
	})
}

func TestIf(t *testing.T) {
	play := operators.NewIf(booleans.IsEmpty(c(4)), addOn(4), addOn(0, 8), nil)
	g, ctx := setup(t, play, nil, nil)
	require.Equal(t, []int{4}, targets(legal(t, g, ctx)))

	g, ctx = setup(t, play, nil, []int{4})
	require.Equal(t, []int{0, 8}, targets(legal(t, g, ctx)))

	g, ctx = setup(t, operators.NewIf(booleans.False(), addOn(4), nil, nil), nil, nil)
	require.True(t, legal(t, g, ctx).At(0).Forced)
}

func TestPriority(t *testing.T) {
	play := operators.NewPriority(nil, effect.NewClaim(region.NewOccupied(ints.Next()), nil), addOn(3))
	g, ctx := setup(t, play, nil, nil)
	require.Equal(t, []int{3}, targets(legal(t, g, ctx)), "Nothing to claim on an empty board")

	g, ctx = setup(t, play, nil, []int{5})
	require.Equal(t, []int{5}, targets(legal(t, g, ctx)))
}

func TestForEach(t *testing.T) {
	play := operators.NewForEach(region.Corners(), effect.NewAdd("Disc", region.NewSites(ints.Site()), nil), nil)
	g, ctx := setup(t, play, []int{0}, nil)
	require.Equal(t, []int{2, 6, 8}, targets(legal(t, g, ctx)))
	require.Equal(t, game.Off, ctx.Eval().Site(), "Site should be restored")
}

func TestForEachGroup(t *testing.T) {
	play := operators.NewForEachGroup(effect.NewRemove(region.NewFromRegion(), nil), nil)
	g, ctx := setup(t, play, []int{0, 1, 8}, []int{4})
	moves := legal(t, g, ctx)
	require.Equal(t, 2, moves.Len(), "{0,1} and {8} are the mover's groups")

	_, err := g.Apply(ctx, moves.At(0))
	require.NoError(t, err)
	require.True(t, ctx.Board().IsEmpty(0))
	require.True(t, ctx.Board().IsEmpty(1))
	require.Equal(t, 1, ctx.Board().Who(8))
	require.Equal(t, 2, ctx.Board().Who(4))
	require.Equal(t, game.Off, ctx.Eval().From())
}

func TestThenOnOperators(t *testing.T) {
	score := game.NewThen(effect.NewAddScore(nil, c(1), nil))
	g, ctx := setup(t, operators.NewOr(score, addOn(0), addOn(1)), nil, nil)
	moves := legal(t, g, ctx)
	for _, m := range moves.All() {
		require.Len(t, m.Thens, 1)
	}
	_, err := g.Apply(ctx, moves.At(0))
	require.NoError(t, err)
	require.Equal(t, 1, ctx.Score(1))
}
