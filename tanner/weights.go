package tanner

import (
	"fmt"
	"math"

	"github.com/nathanhack/avgstd"
)

//RowWeights returns the number of entries in each row.
func (g *Graph) RowWeights() []int {
	weights := make([]int, len(g.rows))
	for i, row := range g.rows {
		weights[i] = len(row)
	}
	return weights
}

//ColumnWeights returns the number of entries in each column, 0..Width()-1.
func (g *Graph) ColumnWeights() []int {
	weights := make([]int, g.Width())
	for _, row := range g.rows {
		for _, e := range row {
			weights[e.Index]++
		}
	}
	return weights
}

//Entries is the total number of entries in the graph.
func (g *Graph) Entries() int {
	count := 0
	for _, row := range g.rows {
		count += len(row)
	}
	return count
}

//IsRegular is true when every row has weight r and every column has weight c.
func (g *Graph) IsRegular(r, c int) bool {
	for _, w := range g.RowWeights() {
		if w != r {
			return false
		}
	}
	for _, w := range g.ColumnWeights() {
		if w != c {
			return false
		}
	}
	return true
}

//WeightStats summarizes how uniform the row and column weights are.
type WeightStats struct {
	Row    avgstd.AvgStd
	Column avgstd.AvgStd
}

func (s WeightStats) String() string {
	return fmt.Sprintf("{Row:%0.02f(+/-%0.02f), Column:%0.02f(+/-%0.02f)}",
		s.Row.Mean, math.Sqrt(s.Row.SampledVariance()),
		s.Column.Mean, math.Sqrt(s.Column.SampledVariance()),
	)
}

//Weights computes the WeightStats of g.
func (g *Graph) Weights() WeightStats {
	var stats WeightStats
	for _, w := range g.RowWeights() {
		stats.Row.Update(float64(w))
	}
	for _, w := range g.ColumnWeights() {
		stats.Column.Update(float64(w))
	}
	return stats
}
