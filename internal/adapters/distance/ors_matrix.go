package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"route-optimizer-service/internal/domain"
)

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
}

// fetchMatrix retrieves the full N×N distance matrix for coords using the
// OpenRouteService matrix endpoint. ORS reports unroutable pairs as null
// cells; those become domain.Unreachable so the optimizer can route
// around them.
func (o *ORSMatrixProvider) fetchMatrix(
	ctx context.Context,
	coords []domain.Coordinates,
) (domain.Matrix, error) {
	if len(coords) == 0 {
		return domain.Matrix{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, len(coords))
	for _, c := range coords {
		locations = append(locations, c.CoordsToList())
	}

	// Omitting sources/destinations asks ORS for every pair.
	bodyObj := matrixRequest{
		Locations: locations,
		Metrics:   []string{"distance"},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != len(coords) {
		return nil, fmt.Errorf(
			"expected %d matrix rows; got %d",
			len(coords), len(mr.Distances),
		)
	}

	matrix := make(domain.Matrix, len(coords))
	for i, row := range mr.Distances {
		if len(row) != len(coords) {
			return nil, fmt.Errorf(
				"matrix row %d has %d entries, want %d",
				i, len(row), len(coords),
			)
		}

		matrix[i] = make([]float64, len(coords))
		for j, cell := range row {
			if cell == nil {
				matrix[i][j] = domain.Unreachable
				continue
			}
			matrix[i][j] = *cell
		}
	}

	return matrix, nil
}
