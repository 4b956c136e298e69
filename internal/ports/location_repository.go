package ports

import (
	"context"
	"delivery-sim/internal/domain"
)

// Port: a boundary for retrieving the location labels and distance table.
type LocationRepository interface {
	// Return the fully populated, read-only location matrix.
	LoadMatrix(ctx context.Context) (*domain.LocationMatrix, error)
}
