package game

import (
	"encoding/binary"
	"hash/fnv"
	"slices"
)

type StateHash uint64

// Hash fingerprints the observable state of the context: mover, board,
// player records, remembered values and variables. Two contexts with the
// same hash almost surely satisfy SameState.
func (c *Context) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(c.mover))
	binary.Write(hasher, binary.LittleEndian, int64(c.passes))

	for site := 0; site < c.board.NumSites(); site++ {
		cell := c.board.Cell(site)
		binary.Write(hasher, binary.LittleEndian, [6]int64{
			int64(cell.What), int64(cell.Who), int64(cell.Count),
			int64(cell.State), int64(cell.Rotation), int64(cell.Value),
		})
	}

	for p := 1; p < len(c.players); p++ {
		binary.Write(hasher, binary.LittleEndian, int64(c.players[p].score))
		binary.Write(hasher, binary.LittleEndian, c.players[p].active)
	}

	// map iteration order is random
	names := make([]string, 0, len(c.remembered))
	for name := range c.remembered {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		hasher.Write([]byte(name))
		for _, v := range c.remembered[name] {
			binary.Write(hasher, binary.LittleEndian, int64(v))
		}
	}

	names = names[:0]
	for name := range c.vars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		hasher.Write([]byte(name))
		binary.Write(hasher, binary.LittleEndian, int64(c.vars[name]))
	}

	return StateHash(hasher.Sum64())
}
