package ldpc

import (
	"math/rand"

	"github.com/nathanhack/ldpc/tanner"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// populateRows gives every one of the m rows r entries while drawing columns from a
// pool that holds each column about c times.
func populateRows(rng *rand.Rand, n, m, r, c int) [][]int {
	return populate(rng, m, n, r, n*c)
}

// populateColumns gives every one of the n columns c entries while drawing rows from
// a pool holding n*c row indices, then transposes into row -> columns form.
func populateColumns(rng *rand.Rand, n, m, c int) [][]int {
	columns := populate(rng, n, m, c, n*c)

	t := tanner.FromRows(columns, m).Transpose()
	rows := make([][]int, t.Height())
	for i := range rows {
		rows[i], _ = t.Columns(i)
	}
	return rows
}

// populate fills lines (rows or columns) with weight distinct indices from 0..span-1.
// A pool of k indices, cycling through 0..span-1, is consumed at random. When no index
// left in the pool can go on the current line, a random unused index is placed
// instead without touching the pool.
func populate(rng *rand.Rand, lines, span, weight, k int) [][]int {
	pool := make([]int, 0, k)
	for i := k - 1; i >= 0; i-- {
		pool = append(pool, i%span)
	}

	result := make([][]int, lines)
	placed := 0
	free := 0
	for i := range result {
		line := make([]int, 0, weight)
		// a line can never hold more than span distinct indices
		for j := 0; j < weight && len(line) < span; j++ {
			usable := func(v int) bool { return !slices.Contains(line, v) }

			// len(pool) == k-placed so this is the l+placed == k case
			l := slices.IndexFunc(pool, usable)
			if l == -1 {
				v := rng.Intn(span)
				for !usable(v) {
					v = rng.Intn(span)
				}
				line = append(line, v)
				free++
				continue
			}

			candidates := make([]int, 0, len(pool)-l)
			for p := l; p < len(pool); p++ {
				if usable(pool[p]) {
					candidates = append(candidates, p)
				}
			}
			p := candidates[rng.Intn(len(candidates))]
			line = append(line, pool[p])
			pool = slices.Delete(pool, p, p+1)
			placed++
		}
		result[i] = line
	}

	logrus.Debugf("Placed %v of %v pooled entries, %v outside the pool", placed, k, free)
	return result
}
