package services

import (
	"fmt"
	"math/rand"
	"time"

	"route-optimizer-service/internal/domain"
)

// RouteStrategy produces a visiting order for a cost matrix. Strategies
// are interchangeable: the optimizer picks one per instance size.
type RouteStrategy interface {
	Solve(m domain.Matrix) (domain.Route, error)
}

// DefaultAnnealingThreshold is the largest instance still refined by
// simulated annealing. Above ~10 locations the swap neighborhood grows
// too large for the fixed cooling schedule to search usefully, while
// greedy construction stays cheap at any size. Below it, annealing is
// affordable and markedly better than greedy.
const DefaultAnnealingThreshold = 10

// Optimizer selects between exhaustive local search and greedy
// construction based on instance size. Each Optimize call works on its
// own route buffers; the input matrix is only ever read, so one matrix
// may be shared across concurrent calls.
type Optimizer struct {
	AnnealingThreshold int
	Small              RouteStrategy
	Large              RouteStrategy
}

// NewOptimizer wires the default strategy pair: an Annealer drawing from
// rng for small instances, nearest-neighbor for the rest.
func NewOptimizer(rng Rand) *Optimizer {
	return &Optimizer{
		AnnealingThreshold: DefaultAnnealingThreshold,
		Small:              NewAnnealer(rng),
		Large:              NearestNeighbor{},
	}
}

// Optimize returns an approximately cost-minimal visiting order over
// 0..N-1 starting at 0, and its open-path cost. It fails fast on
// matrices with fewer than two locations, non-square shapes, or
// negative/NaN entries.
func (o *Optimizer) Optimize(m domain.Matrix) (domain.Route, float64, error) {
	if err := m.Validate(); err != nil {
		return nil, 0, fmt.Errorf("optimize route: %w", err)
	}

	strategy := o.Large
	if m.Side() <= o.AnnealingThreshold {
		strategy = o.Small
	}

	route, err := strategy.Solve(m)
	if err != nil {
		return nil, 0, fmt.Errorf("optimize route: %w", err)
	}

	return route, m.PathCost(route), nil
}

// Optimize runs a default Optimizer with a time-seeded random source.
// A fresh source per call keeps concurrent requests independent.
func Optimize(m domain.Matrix) (domain.Route, float64, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewOptimizer(rng).Optimize(m)
}
