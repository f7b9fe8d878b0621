package postcode

import (
	"context"

	"github.com/bbernstein/nearbystops/internal/models"
)

// Geocoder defines the interface for turning a postcode into a coordinate
type Geocoder interface {
	Resolve(ctx context.Context, postcode string) (models.Coordinate, error)
}
