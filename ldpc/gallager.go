package ldpc

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// subGraph is one block of Gallager's construction: n/r checks each holding r
// variable nodes, every variable node used exactly once.
type subGraph [][]int

func newSubGraph(rng *rand.Rand, n, r int) subGraph {
	indices := rng.Perm(n)

	sub := make(subGraph, n/r)
	for i := range sub {
		sub[i] = indices[i*r : (i+1)*r : (i+1)*r]
	}
	return sub
}

// gallager stacks c random subGraphs. Each block has row weight r and column weight 1,
// so the stack has row weight r and column weight c.
func gallager(rng *rand.Rand, n, r, c int) ([][]int, error) {
	if r <= 0 || n%r != 0 {
		return nil, fmt.Errorf("%w: gallager construction requires r (%v) to divide n (%v)", ErrUnconstructible, r, n)
	}

	blocks := make([]subGraph, c)
	for i := range blocks {
		logrus.Debugf("Building gallager block %v of %v", i+1, c)
		blocks[i] = newSubGraph(rng, n, r)
	}
	return stack(blocks, n/r), nil
}

// stack places block i at rows i*height .. (i+1)*height-1
func stack(blocks []subGraph, height int) [][]int {
	merged := make([][]int, len(blocks)*height)
	for i, block := range blocks {
		for j, row := range block {
			merged[i*height+j] = row
		}
	}
	return merged
}
