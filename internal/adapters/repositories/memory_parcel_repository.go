package repositories

import (
	"context"
	"delivery-sim/internal/domain"
	"slices"
)

// MemoryParcelRepository serves a fixed parcel list. Each call returns fresh
// copies so repeated simulations start from the ingested state.
type MemoryParcelRepository struct {
	parcels []domain.Parcel
}

func NewMemoryParcelRepository(parcels ...*domain.Parcel) *MemoryParcelRepository {
	r := &MemoryParcelRepository{parcels: make([]domain.Parcel, 0, len(parcels))}
	for _, p := range parcels {
		r.parcels = append(r.parcels, *p)
	}
	slices.SortFunc(r.parcels, func(a, b domain.Parcel) int { return a.ID - b.ID })
	return r
}

func (r *MemoryParcelRepository) ListParcels(ctx context.Context) ([]*domain.Parcel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]*domain.Parcel, 0, len(r.parcels))
	for _, p := range r.parcels {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}
