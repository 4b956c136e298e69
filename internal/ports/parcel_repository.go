package ports

import (
	"context"
	"delivery-sim/internal/domain"
)

// Port: a boundary for retrieving ingested Parcel records from a data source.
type ParcelRepository interface {
	// Retrieve all parcels, ordered by id.
	ListParcels(ctx context.Context) ([]*domain.Parcel, error)
}
