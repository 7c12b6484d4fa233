package dto

type OptimizeRouteRequest struct {
	Locations []string `json:"locations"`
}

type OptimizeRouteResponse struct {
	// Route lists the input locations in visiting order, starting with
	// the first location from the request.
	Route []string `json:"route"`
	// TotalDistanceMeters is omitted when the route crosses a pair with
	// no known connection.
	TotalDistanceMeters *float64 `json:"total_distance_meters,omitempty"`
	TotalDistance       string   `json:"total_distance"`
}
