package store

import (
	"delivery-sim/internal/domain"
	"fmt"
	"slices"
)

// ParcelTable holds parcel records keyed by id.
// Concurrent Get calls are safe once loading is finished; records themselves
// are mutated through their pointers by the single vehicle that owns them.
type ParcelTable struct {
	byID map[int]*domain.Parcel
}

func NewParcelTable(capacity int) *ParcelTable {
	return &ParcelTable{byID: make(map[int]*domain.Parcel, capacity)}
}

// FromParcels builds a table, rejecting duplicate or non-positive ids.
func FromParcels(parcels []*domain.Parcel) (*ParcelTable, error) {
	t := NewParcelTable(len(parcels))
	for _, p := range parcels {
		if p == nil {
			continue
		}
		if p.ID <= 0 {
			return nil, fmt.Errorf("parcel table: invalid parcel id %d", p.ID)
		}
		if _, ok := t.byID[p.ID]; ok {
			return nil, fmt.Errorf("parcel table: duplicate parcel id %d", p.ID)
		}
		t.byID[p.ID] = p
	}
	return t, nil
}

// Put inserts or replaces a record.
func (t *ParcelTable) Put(p *domain.Parcel) {
	t.byID[p.ID] = p
}

func (t *ParcelTable) Get(id int) (*domain.Parcel, bool) {
	p, ok := t.byID[id]
	return p, ok
}

func (t *ParcelTable) Len() int { return len(t.byID) }

// IDs returns every id in ascending order.
func (t *ParcelTable) IDs() []int {
	ids := make([]int, 0, len(t.byID))
	for id := range t.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// All returns every record ordered by id.
func (t *ParcelTable) All() []*domain.Parcel {
	out := make([]*domain.Parcel, 0, len(t.byID))
	for _, id := range t.IDs() {
		out = append(out, t.byID[id])
	}
	return out
}
