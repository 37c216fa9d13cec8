package tanner

import (
	"context"
	"sync"

	"github.com/nathanhack/threadpool"
)

// Girth returns the length of the shortest cycle in the graph, or -1 when the graph
// has no cycles. A BFS is run from every check node; every cycle passes through at
// least one check node so this covers all of them.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func Girth(ctx context.Context, g *Graph, threads int) int {
	if g.Height() == 0 || g.Width() == 0 {
		return -1
	}
	H := g.H()
	rows, cols := H.Dims()

	checks := make([][]int, rows)
	for i := range checks {
		checks[i] = H.Row(i).NonzeroArray()
	}
	vars := make([][]int, cols)
	for j := range vars {
		vars[j] = H.Column(j).NonzeroArray()
	}

	pool := threadpool.New(ctx, threads)
	girth := -1
	mux := sync.Mutex{}
	for i := 0; i < rows; i++ {
		index := i
		pool.Add(func() {
			mux.Lock()
			bound := girth
			mux.Unlock()

			c := shortestCycle(checks, vars, index, bound)

			mux.Lock()
			if c > 0 && (girth == -1 || c < girth) {
				girth = c
			}
			mux.Unlock()
		})
	}
	pool.Wait()
	return girth
}

// shortestCycle is the shortest cycle seen by a BFS from check node start. Searching
// stops once nothing shorter than bound can be found (-1 means no bound).
// Check node i is vertex i and variable node j is vertex len(checks)+j.
func shortestCycle(checks, vars [][]int, start, bound int) int {
	m := len(checks)
	dist := make([]int, m+len(vars))
	parent := make([]int, len(dist))
	for i := range dist {
		dist[i] = -1
	}
	dist[start] = 0
	parent[start] = -1

	best := -1
	queue := []int{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		if best != -1 && 2*dist[u] >= best {
			break
		}
		if bound != -1 && 2*dist[u] >= bound {
			break
		}

		var next []int
		offset := 0
		if u < m {
			next = checks[u]
			offset = m
		} else {
			next = vars[u-m]
		}

		for _, n := range next {
			v := n + offset
			if dist[v] == -1 {
				dist[v] = dist[u] + 1
				parent[v] = u
				queue = append(queue, v)
				continue
			}
			if v == parent[u] {
				continue
			}
			l := dist[u] + dist[v] + 1
			if best == -1 || l < best {
				best = l
			}
		}
	}
	return best
}
