package distance

import (
	"context"
	"fmt"

	"route-optimizer-service/internal/domain"
)

// MockMatrixProvider serves a fixed matrix keyed by location name,
// for tests and offline runs.
type MockMatrixProvider struct {
	m map[string]map[string]float64
}

type MockPair struct {
	From, To string
	Meters   float64
}

func NewMockMatrixProvider(pairs []MockPair) *MockMatrixProvider {
	m := make(map[string]map[string]float64, len(pairs))
	for _, p := range pairs {
		if m[p.From] == nil {
			m[p.From] = make(map[string]float64)
		}
		m[p.From][p.To] = p.Meters
	}
	return &MockMatrixProvider{m: m}
}

// GetMatrix builds the matrix from the configured pairs. Pairs that were
// never configured are unreachable, matching how the real provider maps
// unroutable cells.
func (p *MockMatrixProvider) GetMatrix(ctx context.Context, locations []string) (domain.Matrix, error) {
	if len(locations) < 2 {
		return nil, fmt.Errorf("mock matrix: need at least 2 locations, got %d", len(locations))
	}

	matrix := make(domain.Matrix, len(locations))
	for i, from := range locations {
		matrix[i] = make([]float64, len(locations))
		for j, to := range locations {
			if i == j {
				continue
			}

			meters, ok := p.m[from][to]
			if !ok {
				matrix[i][j] = domain.Unreachable
				continue
			}
			matrix[i][j] = meters
		}
	}

	return matrix, nil
}
