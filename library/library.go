// Package library builds complete games out of ludemes.
package library

import (
	"fmt"
	"slices"

	"ludeme/functions/booleans"
	"ludeme/functions/dim"
	"ludeme/functions/graph"
	"ludeme/functions/ints"
	"ludeme/functions/region"
	"ludeme/game"
	"ludeme/rules/effect"
	"ludeme/rules/end"
	"ludeme/rules/operators"
	"ludeme/rules/start"
	"ludeme/topology"
)

// Games maps the names accepted by the command line to game builders. Every
// call builds a fresh, unpreprocessed game.
var Games = map[string]func() *game.Game{
	"tictactoe":    TicTacToe,
	"connect4x4":   func() *game.Game { return NInARow(4, 4) },
	"gomoku":       func() *game.Game { return NInARow(15, 5) },
	"hex":          func() *game.Game { return Hex(11) },
	"breakthrough": func() *game.Game { return Breakthrough(8) },
}

// Names lists the games of Games in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(Games))
	for name := range Games {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build returns the named game, preprocessed.
func Build(name string) (*game.Game, error) {
	build, ok := Games[name]
	if !ok {
		return nil, fmt.Errorf("unknown game %q, expected one of %v", name, Names())
	}
	g := build()
	g.Preprocess()
	return g, nil
}

func c(v int) game.IntFunction { return ints.NewConstant(v) }

// TicTacToe is played on a 3x3 board.
func TicTacToe() *game.Game {
	g := NInARow(3, 3)
	g.Name = "Tic-Tac-Toe"
	return g
}

// NInARow: players take turns placing a disc on an empty site of a size x
// size board; the first to line up length discs wins, and a full board is a
// draw.
func NInARow(size, length int) *game.Game {
	return game.New(fmt.Sprintf("%d-in-a-row %dx%d", length, size, size), 2,
		graph.Square(dim.NewConstant(size)),
		game.PiecesFor("Disc", 2),
		game.Rules{
			Play: effect.NewAdd("Disc", region.NewEmpty(), nil),
			End: []game.EndRule{
				end.NewIf(booleans.NewIsLine(c(length), booleans.LineThrough(ints.To())), end.Win(nil)),
				end.NewIf(booleans.NewIsFull(), end.Draw()),
			},
		},
	)
}

// Hex: player 1 connects the north and south sides, player 2 the west and
// east sides. Draws are impossible.
func Hex(size int) *game.Game {
	isFirst := booleans.Equal(ints.Mover(), c(1))
	return game.New(fmt.Sprintf("Hex %dx%d", size, size), 2,
		graph.Hex(dim.NewConstant(size)),
		game.PiecesFor("Disc", 2),
		game.Rules{
			Play: effect.NewAdd("Disc", region.NewEmpty(), nil),
			End: []game.EndRule{
				end.NewIf(booleans.NewIsConnected(nil, topology.Adjacent,
					region.NewIf(isFirst, region.Side(topology.N), region.Side(topology.W)),
					region.NewIf(isFirst, region.Side(topology.S), region.Side(topology.E)),
				), end.Win(nil)),
			},
		},
	)
}

// Breakthrough: pawns step forward onto an empty site, or diagonally forward
// onto an empty or enemy site, capturing by replacement. Reaching the far
// row, or leaving the opponent without a move, wins.
func Breakthrough(size int) *game.Game {
	isFirst := booleans.Equal(ints.Mover(), c(1))
	farRow := region.NewIf(isFirst, region.Side(topology.N), region.Side(topology.S))
	return game.New(fmt.Sprintf("Breakthrough %dx%d", size, size), 2,
		graph.Square(dim.NewConstant(size)),
		game.PiecesFor("Pawn", 2),
		game.Rules{
			Start: []game.Moves{
				start.NewPlace("Pawn1", region.Union(region.Row(c(0)), region.Row(c(1)))),
				start.NewPlace("Pawn2", region.Union(region.Row(c(size-2)), region.Row(c(size-1)))),
			},
			Play: operators.NewOr(nil,
				effect.NewStep(
					effect.Directions(topology.Relative(topology.Forward)),
					effect.If(booleans.IsEmpty(ints.To())),
				),
				effect.NewStep(
					effect.Directions(topology.Relative(topology.ForwardLeft, topology.ForwardRight)),
					effect.If(booleans.NewNot(booleans.IsFriend(ints.To()))),
				),
			),
			End: []game.EndRule{
				end.NewIf(booleans.Gt(ints.NewCountSites(region.Intersection(region.NewOccupied(ints.Mover()), farRow)), c(0)), end.Win(nil)),
				end.NewIf(booleans.NewNoMoves(nil), end.Win(nil)),
			},
		},
	)
}
