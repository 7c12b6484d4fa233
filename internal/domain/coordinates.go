package domain

// Geocoded point for a location address. Serialized into the geocode
// cache, so field names are part of the cache format.
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Return coordinates as [lon, lat], the order ORS expects.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
