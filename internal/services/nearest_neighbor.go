package services

import (
	"route-optimizer-service/internal/domain"
)

// NearestNeighbor builds a route using a greedy nearest-neighbor algorithm.
//
// The algorithm minimizes immediate travel cost at each step. It does not
// attempt global route optimization. The design prioritizes determinism
// and O(N²) construction speed over optimality, which makes it the
// strategy of choice for instances too large for local search.
type NearestNeighbor struct{}

// Solve extends the path from index 0, always appending the cheapest
// unvisited location. Ties break toward the lowest index so two calls
// with the same matrix produce the same route. When every remaining
// candidate is unreachable from the last stop, the lowest unvisited index
// is taken so construction always finishes in exactly N-1 extension steps.
func (NearestNeighbor) Solve(m domain.Matrix) (domain.Route, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n := m.Side()
	route := make(domain.Route, 1, n)
	visited := make([]bool, n)
	visited[0] = true

	last := 0
	for len(route) < n {
		best := -1
		for candidate := 1; candidate < n; candidate++ {
			if visited[candidate] {
				continue
			}

			// First unvisited candidate wins by default; later ones must
			// be strictly cheaper. This keeps progress guaranteed even
			// when the whole frontier is unreachable.
			if best == -1 || m[last][candidate] < m[last][best] {
				best = candidate
			}
		}

		route = append(route, best)
		visited[best] = true
		last = best
	}

	return route, nil
}
