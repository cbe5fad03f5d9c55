package region_test

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

func setup(t *testing.T, size int, p1, p2 []int) (*game.Game, *game.Context) {
	t.Helper()
	g := game.New("test", 2, graph.Square(dim.NewConstant(size)), game.PiecesFor("Disc", 2),
		game.Rules{Play: effect.NewAdd("Disc", region.NewEmpty(), nil)})
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

func sites(t *testing.T, g *game.Game, ctx *game.Context, n game.RegionFunction) []int {
	t.Helper()
	n.Preprocess(g)
	var r game.Region
	require.NoError(t, game.Guard(func() { r = n.Eval(ctx) }))
	return r.Sites()
}

func TestLayouts(t *testing.T) {
	g, ctx := setup(t, 3, nil, nil)
	tests := []struct {
		name string
		node game.RegionFunction
		want []int
	}{
		{"board", region.Board(), []int{0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{"row", region.Row(c(1)), []int{3, 4, 5}},
		{"column", region.Column(c(2)), []int{2, 5, 8}},
		{"perimeter", region.Perimeter(), []int{0, 1, 2, 3, 5, 6, 7, 8}},
		{"corners", region.Corners(), []int{0, 2, 6, 8}},
		{"centre", region.Centre(), []int{4}},
		{"north side", region.Side(topology.N), []int{6, 7, 8}},
		{"west side", region.Side(topology.W), []int{0, 3, 6}},
		{"explicit sites", region.NewSites(c(5), c(1)), []int{1, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sites(t, g, ctx, tt.node))
			require.True(t, tt.node.IsStatic(), "Layouts of constants should be static")
		})
	}

	t.Run("centre of an even board", func(t *testing.T) {
		g, ctx := setup(t, 4, nil, nil)
		require.Equal(t, []int{5, 6, 9, 10}, sites(t, g, ctx, region.Centre()))
	})

	t.Run("failing on a row off the board", func(t *testing.T) {
		n := region.Row(ints.NewVar("row"))
		n.Preprocess(g)
		require.Error(t, game.Guard(func() { n.Eval(ctx) }), "An unset variable is Off")
	})

	require.Panics(t, func() { region.Side(topology.NE) })
}

func TestContent(t *testing.T) {
	g, ctx := setup(t, 3, []int{0, 4}, []int{8})
	require.Equal(t, []int{1, 2, 3, 5, 6, 7}, sites(t, g, ctx, region.NewEmpty()))
	require.Equal(t, []int{0, 4, 8}, sites(t, g, ctx, region.NewOccupied(nil)))
	require.Equal(t, []int{0, 4}, sites(t, g, ctx, region.NewOccupied(ints.Mover())))
	require.Equal(t, []int{8}, sites(t, g, ctx, region.NewOccupied(ints.Next())))

	game.ActionRemember{Name: "marks", Value: 7}.Apply(ctx)
	game.ActionRemember{Name: "marks", Value: 2}.Apply(ctx)
	require.Equal(t, []int{2, 7}, sites(t, g, ctx, region.NewRemembered("marks")))

	restore := ctx.Eval().ScopeRegion(game.NewRegion(3, 1))
	require.Equal(t, []int{1, 3}, sites(t, g, ctx, region.NewFromRegion()))
	restore()
}

func TestOperations(t *testing.T) {
	g, ctx := setup(t, 3, []int{0, 4}, []int{8})
	tests := []struct {
		name string
		node game.RegionFunction
		want []int
	}{
		{"union", region.Union(region.Row(c(0)), region.Column(c(0))), []int{0, 1, 2, 3, 6}},
		{"intersection", region.Intersection(region.Perimeter(), region.Row(c(1))), []int{3, 5}},
		{"difference", region.Difference(region.Board(), region.Perimeter(), region.Centre()), nil},
		{"if", region.NewIf(booleans.True(), region.Centre(), region.Corners()), []int{4}},
		{"if not", region.NewIf(booleans.False(), region.Centre(), region.Corners()), []int{0, 2, 6, 8}},
		{"if not without otherwise", region.NewIf(booleans.False(), region.Centre(), nil), nil},
		{"for each", region.NewForEach(region.Corners(), booleans.IsOccupied(ints.Site())), []int{0, 8}},
		{"around", region.NewAround(c(4), topology.Orthogonal), []int{1, 3, 5, 7}},
		{"around a corner", region.NewAround(c(0), topology.All), []int{1, 3, 4}},
		{"around off the board", region.NewAround(c(9), topology.All), nil},
		{"direction", region.NewDirection(c(0), topology.Absolute(topology.N, topology.E), nil, false), []int{1, 2, 3, 6}},
		{"direction up to a distance", region.NewDirection(c(0), topology.Absolute(topology.N), c(1), false), []int{3}},
		{"direction stopping at pieces", region.NewDirection(c(0), topology.Absolute(topology.NE), nil, true), nil},
		{"forward of the mover", region.NewDirection(c(1), topology.Relative(topology.Forward), nil, false), []int{4, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sites(t, g, ctx, tt.node)
			if tt.want == nil {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}

	require.Panics(t, func() { region.Union() })
}

func TestGroup(t *testing.T) {
	g, ctx := setup(t, 3, []int{0, 1, 4, 8}, []int{2})
	require.Equal(t, []int{0, 1, 4}, sites(t, g, ctx, region.NewGroup(c(0))))
	require.Equal(t, []int{8}, sites(t, g, ctx, region.NewGroup(c(8))), "8 touches 4 only diagonally")
	require.Equal(t, []int{0, 1, 4, 8}, sites(t, g, ctx, region.NewGroup(c(0), game.GroupDirections(topology.All))))
	require.Equal(t, []int{2}, sites(t, g, ctx, region.NewGroup(c(2), game.GroupOf(c(2)))))
	require.Empty(t, sites(t, g, ctx, region.NewGroup(c(2))), "2 is not the mover's")
	require.Empty(t, sites(t, g, ctx, region.NewGroup(c(5))), "5 is empty")
}
