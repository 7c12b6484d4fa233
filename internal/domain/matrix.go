package domain

import (
	"errors"
	"fmt"
	"math"
)

// Unreachable marks a pair of locations with no known route between them.
// It orders above every finite cost and propagates through path sums.
var Unreachable = math.Inf(1)

// ErrInvalidMatrix reports a cost table that violates the optimizer's
// input contract. Callers must reject such input before optimization.
var ErrInvalidMatrix = errors.New("invalid distance matrix")

// Matrix is a square table of directed travel costs between locations.
// Matrix[i][j] is the cost of traveling directly from location i to
// location j. Symmetry is provider-dependent and never assumed.
type Matrix [][]float64

// Side returns the number of locations the matrix covers.
func (m Matrix) Side() int { return len(m) }

// Validate checks the optimizer's preconditions: at least two locations,
// square shape, and no negative or NaN entries. Unreachable entries are
// valid. Diagonal entries are never read by cost accounting, but must
// still be well-formed numbers.
func (m Matrix) Validate() error {
	n := len(m)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 locations, got %d", ErrInvalidMatrix, n)
	}

	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidMatrix, i, len(row), n)
		}

		for j, c := range row {
			if math.IsNaN(c) {
				return fmt.Errorf("%w: entry [%d][%d] is NaN", ErrInvalidMatrix, i, j)
			}
			if c < 0 {
				return fmt.Errorf("%w: entry [%d][%d] is negative (%v)", ErrInvalidMatrix, i, j, c)
			}
		}
	}

	return nil
}

// PathCost sums the directed edge costs along route, visiting the
// locations in order with no return leg to the start. A route crossing an
// Unreachable pair yields an Unreachable total rather than an error.
func (m Matrix) PathCost(route Route) float64 {
	total := 0.0
	for k := 0; k+1 < len(route); k++ {
		total += m[route[k]][route[k+1]]
	}
	return total
}
