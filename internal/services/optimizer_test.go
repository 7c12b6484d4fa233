package services

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
)

type stubStrategy struct {
	calls int
	route domain.Route
	err   error
}

func (s *stubStrategy) Solve(m domain.Matrix) (domain.Route, error) {
	s.calls++
	return s.route, s.err
}

func TestOptimizerDispatchesBySize(t *testing.T) {
	small := &stubStrategy{route: domain.IdentityRoute(10)}
	large := &stubStrategy{route: domain.IdentityRoute(11)}
	o := &Optimizer{
		AnnealingThreshold: DefaultAnnealingThreshold,
		Small:              small,
		Large:              large,
	}

	// At the threshold the refiner still runs.
	_, _, err := o.Optimize(absMatrix(10))
	require.NoError(t, err)
	assert.Equal(t, 1, small.calls)
	assert.Equal(t, 0, large.calls)

	// One past the threshold switches to greedy construction.
	_, _, err = o.Optimize(absMatrix(11))
	require.NoError(t, err)
	assert.Equal(t, 1, small.calls)
	assert.Equal(t, 1, large.calls)
}

func TestOptimizerReturnsStrategyOutputVerbatim(t *testing.T) {
	want := domain.Route{0, 2, 1}
	o := &Optimizer{
		AnnealingThreshold: DefaultAnnealingThreshold,
		Small:              &stubStrategy{route: want},
		Large:              &stubStrategy{},
	}

	m := domain.Matrix{{0, 2, 9}, {2, 0, 5}, {9, 5, 0}}
	route, cost, err := o.Optimize(m)
	require.NoError(t, err)
	assert.Equal(t, want, route)
	assert.Equal(t, m.PathCost(route), cost)
}

func TestOptimizerFailsFastOnInvalidInput(t *testing.T) {
	small := &stubStrategy{}
	o := &Optimizer{AnnealingThreshold: 10, Small: small, Large: small}

	cases := []struct {
		name   string
		matrix domain.Matrix
	}{
		{"single location", domain.Matrix{{0}}},
		{"empty", domain.Matrix{}},
		{"non-square", domain.Matrix{{0, 1, 2}, {1, 0}}},
		{"negative", domain.Matrix{{0, -3}, {3, 0}}},
		{"NaN", domain.Matrix{{0, math.NaN()}, {3, 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := o.Optimize(tc.matrix)
			assert.ErrorIs(t, err, domain.ErrInvalidMatrix)
		})
	}

	// Validation rejects before any strategy runs.
	assert.Equal(t, 0, small.calls)
}

func TestOptimizerPropagatesStrategyError(t *testing.T) {
	boom := errors.New("boom")
	o := &Optimizer{
		AnnealingThreshold: 10,
		Small:              &stubStrategy{err: boom},
		Large:              &stubStrategy{},
	}

	_, _, err := o.Optimize(domain.Matrix{{0, 1}, {1, 0}})
	assert.ErrorIs(t, err, boom)
}

func TestOptimizeEndToEndSmallInstance(t *testing.T) {
	m := domain.Matrix{{0, 2, 9}, {2, 0, 5}, {9, 5, 0}}

	route, cost, err := Optimize(m)
	require.NoError(t, err)
	assert.Equal(t, domain.Route{0, 1, 2}, route)
	assert.Equal(t, 7.0, cost)
}

func TestOptimizeEndToEndTwoLocations(t *testing.T) {
	m := domain.Matrix{{0, 42}, {13, 0}}

	route, cost, err := Optimize(m)
	require.NoError(t, err)
	assert.Equal(t, domain.Route{0, 1}, route)
	assert.Equal(t, 42.0, cost)
}

func TestOptimizeEndToEndLargeInstance(t *testing.T) {
	// 15 locations route via greedy construction; |i-j| costs make the
	// identity route the expected output.
	route, cost, err := Optimize(absMatrix(15))
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityRoute(15), route)
	assert.Equal(t, 14.0, cost)
}

func TestNewOptimizerDefaults(t *testing.T) {
	o := NewOptimizer(rand.New(rand.NewSource(1)))
	assert.Equal(t, DefaultAnnealingThreshold, o.AnnealingThreshold)
	assert.IsType(t, Annealer{}, o.Small)
	assert.IsType(t, NearestNeighbor{}, o.Large)
}
