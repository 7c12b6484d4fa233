package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
)

// absMatrix builds matrix[i][j] = |i-j|, for which nearest-neighbor
// construction must walk straight up the indices.
func absMatrix(n int) domain.Matrix {
	m := make(domain.Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = math.Abs(float64(i - j))
		}
	}
	return m
}

func TestNearestNeighborIdentityOnMonotoneMatrix(t *testing.T) {
	route, err := NearestNeighbor{}.Solve(absMatrix(12))
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityRoute(12), route)
}

func TestNearestNeighborDeterministic(t *testing.T) {
	m := domain.Matrix{
		{0, 4, 1, 9},
		{4, 0, 7, 2},
		{1, 7, 0, 3},
		{9, 2, 3, 0},
	}

	first, err := NearestNeighbor{}.Solve(m)
	require.NoError(t, err)
	second, err := NearestNeighbor{}.Solve(m)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.IsPermutation())
	// 0 → 2 (1) → 3 (3) → 1 (2)
	assert.Equal(t, domain.Route{0, 2, 3, 1}, first)
}

func TestNearestNeighborTwoLocations(t *testing.T) {
	m := domain.Matrix{{0, 5}, {7, 0}}

	route, err := NearestNeighbor{}.Solve(m)
	require.NoError(t, err)
	assert.Equal(t, domain.Route{0, 1}, route)
	assert.Equal(t, 5.0, m.PathCost(route))
}

func TestNearestNeighborTieBreaksAscending(t *testing.T) {
	// Equal-cost candidates from every stop: the lowest index must win.
	m := domain.Matrix{
		{0, 1, 1, 1},
		{1, 0, 1, 1},
		{1, 1, 0, 1},
		{1, 1, 1, 0},
	}

	route, err := NearestNeighbor{}.Solve(m)
	require.NoError(t, err)
	assert.Equal(t, domain.Route{0, 1, 2, 3}, route)
}

func TestNearestNeighborAllUnreachable(t *testing.T) {
	n := 4
	m := make(domain.Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = domain.Unreachable
			}
		}
	}

	// Construction must still finish, taking indices in ascending order.
	route, err := NearestNeighbor{}.Solve(m)
	require.NoError(t, err)
	assert.Equal(t, domain.Route{0, 1, 2, 3}, route)
	assert.True(t, math.IsInf(m.PathCost(route), 1))
}

func TestNearestNeighborRoutesAroundUnreachablePair(t *testing.T) {
	// 0→1 is missing, but 0→2→1 is open: total cost must stay finite.
	m := domain.Matrix{
		{0, domain.Unreachable, 3},
		{1, 0, 2},
		{3, 2, 0},
	}

	route, err := NearestNeighbor{}.Solve(m)
	require.NoError(t, err)
	assert.Equal(t, domain.Route{0, 2, 1}, route)
	assert.Equal(t, 5.0, m.PathCost(route))
}

func TestNearestNeighborRejectsInvalidMatrix(t *testing.T) {
	_, err := NearestNeighbor{}.Solve(domain.Matrix{{0}})
	assert.ErrorIs(t, err, domain.ErrInvalidMatrix)

	_, err = NearestNeighbor{}.Solve(domain.Matrix{{0, -2}, {1, 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidMatrix)
}
