package game

import "fmt"

// Piece is a component declared by a game. Its index in the game's piece
// list plus one is the What value stored on the board.
type Piece struct {
	Name  string
	Owner int
}

// PiecesFor declares one piece named name+N for each player N, e.g.
// "Disc1" and "Disc2".
func PiecesFor(name string, numPlayers int) []Piece {
	pieces := make([]Piece, 0, numPlayers)
	for p := 1; p <= numPlayers; p++ {
		pieces = append(pieces, Piece{Name: fmt.Sprintf("%s%d", name, p), Owner: p})
	}
	return pieces
}
