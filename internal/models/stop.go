package models

// Coordinate is a point resolved from a postcode. It is passed by value and never mutated.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StopPoint is a public transport stop as reported by the transit directory.
type StopPoint struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
