package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// ORSMatrixProvider implements MatrixProvider using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Persistent pairwise distance caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSMatrixProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	matrixCache  *cache.SQLMatrixCache
	geocodeCache *cache.RedisGeocodeCache
}

func NewORSMatrixProvider(
	apiKey string,
	matrixCache *cache.SQLMatrixCache,
	geocodeCache *cache.RedisGeocodeCache,
) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSMatrixProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		profile:      "driving-car",
		matrixCache:  matrixCache,
		geocodeCache: geocodeCache,
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSMatrixProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetMatrix returns the full directed travel-cost matrix for locations,
// row and column i corresponding to locations[i]. Every pair is checked
// against the persistent cache first; a single cache miss falls through
// to one full ORS matrix call so the external API is hit at most once
// per request.
func (o *ORSMatrixProvider) GetMatrix(
	ctx context.Context,
	locations []string,
) (_ domain.Matrix, err error) {
	defer obs.Time(ctx, "ors.GetMatrix")(&err)

	if len(locations) < 2 {
		return nil, fmt.Errorf("get matrix: need at least 2 locations, got %d", len(locations))
	}

	norm := make([]string, 0, len(locations))
	for _, l := range locations {
		nl := o.normalize(l)
		if nl == "" {
			return nil, fmt.Errorf("get matrix: location %q is empty after normalization", l)
		}
		norm = append(norm, nl)
	}

	if matrix, ok := o.assembleFromCache(ctx, norm); ok {
		return matrix, nil
	}

	coords, err := o.resolveCoordinates(ctx, norm)
	if err != nil {
		return nil, fmt.Errorf("get matrix: resolve coordinates: %w", err)
	}

	matrix, err := o.fetchMatrix(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("get matrix: fetch matrix: %w", err)
	}

	o.storeInCache(ctx, norm, matrix)

	return matrix, nil
}

// assembleFromCache rebuilds the matrix from cached pairwise distances.
// The second return value is false as soon as any pair is missing.
func (o *ORSMatrixProvider) assembleFromCache(ctx context.Context, norm []string) (domain.Matrix, bool) {
	if o.matrixCache == nil {
		return nil, false
	}

	n := len(norm)
	matrix := make(domain.Matrix, n)

	for i, origin := range norm {
		matrix[i] = make([]float64, n)

		wanted := make([]string, 0, n-1)
		for j, dest := range norm {
			if j != i && dest != origin {
				wanted = append(wanted, dest)
			}
		}

		hits, err := o.matrixCache.GetMany(ctx, origin, wanted)
		if err != nil {
			log.Printf("matrix cache read failed: origin=%q err=%v", origin, err)
			return nil, false
		}

		for j, dest := range norm {
			if j == i || dest == origin {
				continue
			}

			meters, ok := hits[dest]
			if !ok {
				return nil, false
			}
			matrix[i][j] = meters
		}
	}

	return matrix, true
}

// resolveCoordinates maps each normalized address to coordinates,
// consulting the geocode cache before calling ORS.
func (o *ORSMatrixProvider) resolveCoordinates(ctx context.Context, norm []string) ([]domain.Coordinates, error) {
	unique := make([]string, 0, len(norm))
	seen := make(map[string]struct{}, len(norm))
	for _, a := range norm {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		unique = append(unique, a)
	}

	hits := make(map[string]domain.Coordinates)
	if o.geocodeCache != nil {
		var err error
		hits, err = o.geocodeCache.GetMany(ctx, unique)
		if err != nil {
			return nil, fmt.Errorf("geocode cache read: %w", err)
		}
	}

	misses := make([]string, 0, len(unique))
	for _, a := range unique {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}

	fresh := make(map[string]domain.Coordinates)
	if len(misses) > 0 {
		var err error
		fresh, err = o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, err
		}
	}

	if o.geocodeCache != nil && len(fresh) > 0 {
		if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	coords := make([]domain.Coordinates, 0, len(norm))
	for _, a := range norm {
		coord, ok := hits[a]
		if !ok {
			coord, ok = fresh[a]
		}
		if !ok {
			return nil, fmt.Errorf("missing coordinate for %q", a)
		}
		coords = append(coords, coord)
	}

	return coords, nil
}

// storeInCache persists every finite off-diagonal cell. Unreachable
// cells are skipped so transient ORS gaps are retried next request.
// Cache write failures are logged, never fatal.
func (o *ORSMatrixProvider) storeInCache(ctx context.Context, norm []string, matrix domain.Matrix) {
	if o.matrixCache == nil {
		return
	}

	for i, origin := range norm {
		row := make(map[string]float64, len(norm)-1)
		for j, dest := range norm {
			if j == i || dest == origin {
				continue
			}
			if math.IsInf(matrix[i][j], 1) {
				continue
			}
			row[dest] = matrix[i][j]
		}

		if len(row) == 0 {
			continue
		}

		if err := o.matrixCache.PutMany(ctx, origin, row); err != nil {
			log.Printf("matrix cache write failed: origin=%q err=%v", origin, err)
		}
	}
}
