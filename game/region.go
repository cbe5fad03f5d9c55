package game

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Region is an immutable set of site indices. The zero value is empty.
type Region struct {
	bits *bitset.BitSet
}

// NewRegion returns the region holding the given sites. Negative sites are
// ignored.
func NewRegion(sites ...int) Region {
	b := bitset.New(0)
	for _, s := range sites {
		if s >= 0 {
			b.Set(uint(s))
		}
	}
	return Region{bits: b}
}

func regionOf(b *bitset.BitSet) Region {
	return Region{bits: b}
}

func (r Region) Contains(site int) bool {
	return r.bits != nil && site >= 0 && r.bits.Test(uint(site))
}

func (r Region) Count() int {
	if r.bits == nil {
		return 0
	}
	return int(r.bits.Count())
}

func (r Region) IsEmpty() bool {
	return r.Count() == 0
}

// Sites returns the sites in ascending order.
func (r Region) Sites() []int {
	if r.bits == nil {
		return nil
	}
	sites := make([]int, 0, r.bits.Count())
	for i, ok := r.bits.NextSet(0); ok; i, ok = r.bits.NextSet(i + 1) {
		sites = append(sites, int(i))
	}
	return sites
}

func (r Region) set() *bitset.BitSet {
	if r.bits == nil {
		return bitset.New(0)
	}
	return r.bits
}

func (r Region) Union(other Region) Region {
	return regionOf(r.set().Union(other.set()))
}

func (r Region) Intersection(other Region) Region {
	return regionOf(r.set().Intersection(other.set()))
}

func (r Region) Difference(other Region) Region {
	return regionOf(r.set().Difference(other.set()))
}

func (r Region) Equal(other Region) bool {
	return r.set().SymmetricDifference(other.set()).None()
}

func (r Region) String() string {
	sites := r.Sites()
	parts := make([]string, len(sites))
	for i, s := range sites {
		parts[i] = fmt.Sprint(s)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
