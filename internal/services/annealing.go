package services

import (
	"errors"
	"fmt"
	"math"

	"route-optimizer-service/internal/domain"
)

// Annealing schedule defaults. Empirically chosen; kept configurable
// rather than treated as tuned optima.
const (
	DefaultInitialTemp = 1000.0
	DefaultCoolingRate = 0.995
)

// ErrInvalidConfig reports an annealing schedule that would never
// terminate or never run.
var ErrInvalidConfig = errors.New("invalid annealing config")

// Rand supplies the uniform random draws the annealer consumes. It is
// satisfied by *math/rand.Rand; tests substitute scripted sequences to
// verify the acceptance logic deterministically.
type Rand interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

// Annealer refines a seed route by simulated annealing: random position
// swaps accepted by the Metropolis criterion under a geometrically
// cooling temperature. The walk may drift into worse routes; the best
// route seen over the whole run is what escapes.
type Annealer struct {
	InitialTemp float64
	CoolingRate float64
	Rand        Rand
}

// NewAnnealer returns an Annealer with the default schedule.
func NewAnnealer(rng Rand) Annealer {
	return Annealer{
		InitialTemp: DefaultInitialTemp,
		CoolingRate: DefaultCoolingRate,
		Rand:        rng,
	}
}

func (a Annealer) validate() error {
	if a.Rand == nil {
		return fmt.Errorf("%w: random source must be non-nil", ErrInvalidConfig)
	}
	if math.IsNaN(a.InitialTemp) || a.InitialTemp <= 0 {
		return fmt.Errorf("%w: initial temperature %v must be positive", ErrInvalidConfig, a.InitialTemp)
	}
	// Rates outside (0,1) either never cool below the cutoff or never move.
	if math.IsNaN(a.CoolingRate) || a.CoolingRate <= 0 || a.CoolingRate >= 1 {
		return fmt.Errorf("%w: cooling rate %v must be in (0, 1)", ErrInvalidConfig, a.CoolingRate)
	}
	return nil
}

// Solve refines the identity route, satisfying RouteStrategy.
func (a Annealer) Solve(m domain.Matrix) (domain.Route, error) {
	route, _, err := a.Refine(m, domain.IdentityRoute(m.Side()))
	return route, err
}

// Refine runs the annealing loop from seed and returns the best route and
// cost observed. The returned cost is never worse than the seed's cost.
// The seed and matrix are not modified.
func (a Annealer) Refine(m domain.Matrix, seed domain.Route) (domain.Route, float64, error) {
	if err := a.validate(); err != nil {
		return nil, 0, err
	}
	if err := m.Validate(); err != nil {
		return nil, 0, err
	}

	n := m.Side()
	if len(seed) != n || !seed.IsPermutation() {
		return nil, 0, fmt.Errorf("%w: seed is not a permutation of 0..%d starting at 0", domain.ErrInvalidMatrix, n-1)
	}

	current := seed.Clone()
	currentCost := m.PathCost(current)
	best := seed.Clone()
	bestCost := currentCost

	// Geometric cooling: the iteration count depends only on the two
	// schedule constants, so the loop is bounded regardless of input.
	for temp := a.InitialTemp; temp > 1; temp *= a.CoolingRate {
		// Swap two positions in 1..n-1; position 0 is the fixed start.
		// Picking the same position twice is a tolerated no-op move.
		i := 1 + a.Rand.Intn(n-1)
		j := 1 + a.Rand.Intn(n-1)

		current[i], current[j] = current[j], current[i]
		proposedCost := m.PathCost(current)

		// Best-tracking is decoupled from the accept/reject walk.
		if proposedCost < bestCost {
			bestCost = proposedCost
			copy(best, current)
		}

		if a.accept(currentCost, proposedCost, temp) {
			currentCost = proposedCost
		} else {
			current[i], current[j] = current[j], current[i]
		}
	}

	return best, bestCost, nil
}

// accept applies the Metropolis criterion: improving moves always pass,
// worsening moves pass with probability exp(-Δ/temp). When both costs are
// Unreachable the difference is NaN, exp is NaN, and the comparison below
// is false, so moves between unreachable states are rejected.
func (a Annealer) accept(currentCost, proposedCost, temp float64) bool {
	if proposedCost < currentCost {
		return true
	}
	return a.Rand.Float64() < math.Exp((currentCost-proposedCost)/temp)
}
