package stoppoint

import (
	"context"

	"github.com/bbernstein/nearbystops/internal/models"
)

// Locator defines the interface for finding stops around a coordinate
type Locator interface {
	Nearby(ctx context.Context, coordinate models.Coordinate, maxCount int) ([]models.StopPoint, error)
}
