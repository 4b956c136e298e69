package ports

import "delivery-sim/internal/domain"

// ParcelStore is the keyed parcel table the dispatch engine and the query
// layer work against.
type ParcelStore interface {
	Get(id int) (*domain.Parcel, bool)
	All() []*domain.Parcel
}
