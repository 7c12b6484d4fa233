package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// maxLocations bounds one request to a single reasonably sized ORS
// matrix call.
const maxLocations = 50

type RouteHandler struct {
	Provider ports.MatrixProvider
}

// Optimize computes a visiting order over the submitted locations.
// It coordinates request validation, matrix retrieval, and the route
// optimizer; the first location is always the start of the route.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	locations := make([]string, 0, len(req.Locations))
	for i, l := range req.Locations {
		l = strings.TrimSpace(l)
		if l == "" {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("locations[%d] must be non-empty", i))
			return
		}
		locations = append(locations, l)
	}

	if len(locations) < 2 {
		writeError(w, r, http.StatusBadRequest, "at least 2 locations are required")
		return
	}
	if len(locations) > maxLocations {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d locations are supported", maxLocations))
		return
	}

	matrix, err := h.Provider.GetMatrix(r.Context(), locations)
	if err != nil {
		log.Printf("get matrix failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "distance provider unavailable")
		return
	}

	route, cost, err := services.Optimize(matrix)
	if err != nil {
		log.Printf("optimize route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	ordered := make([]string, 0, len(route))
	for _, idx := range route {
		ordered = append(ordered, locations[idx])
	}

	res := dto.OptimizeRouteResponse{
		Route:         ordered,
		TotalDistance: formatDistance(cost),
	}
	// JSON cannot carry +Inf, so unreachable totals stay string-only.
	if !math.IsInf(cost, 1) {
		res.TotalDistanceMeters = &cost
	}

	writeJSON(w, r, http.StatusOK, res)
}

// formatDistance renders meters as a human-readable unit string.
func formatDistance(meters float64) string {
	if math.IsInf(meters, 1) {
		return "unreachable"
	}
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}
