package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Contract for obtaining a full pairwise travel-cost matrix for an
// ordered list of locations. Row and column i correspond to
// locations[i]; pairs with no known route are domain.Unreachable.
type MatrixProvider interface {
	// Return the N×N directed travel-cost matrix for locations.
	GetMatrix(ctx context.Context, locations []string) (domain.Matrix, error)
}
