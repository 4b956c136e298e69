package services

import (
	"delivery-sim/internal/domain"
	"delivery-sim/internal/ports"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrParcelNotFound is returned by lookups for ids with no record.
var ErrParcelNotFound = errors.New("parcel not found")

// StatusReading is a parcel's status as of a queried instant.
type StatusReading struct {
	Status      domain.Status
	DeliveredAt *time.Time
}

func (r StatusReading) String() string {
	if r.Status == domain.StatusDelivered && r.DeliveredAt != nil {
		return fmt.Sprintf("%s at %s", r.Status, domain.ClockString(*r.DeliveredAt))
	}
	return string(r.Status)
}

// StatusAt reconstructs a parcel's status at t from the timestamps left by
// the dispatch engine. It never re-runs the simulation.
func StatusAt(p *domain.Parcel, t time.Time) StatusReading {
	if p.DeliveredAt != nil && !t.Before(*p.DeliveredAt) {
		at := *p.DeliveredAt
		return StatusReading{Status: domain.StatusDelivered, DeliveredAt: &at}
	}
	if p.LeftHubAt != nil && !t.Before(*p.LeftHubAt) {
		if p.HeldAt(t) {
			return StatusReading{Status: domain.StatusDelayed}
		}
		return StatusReading{Status: domain.StatusEnRoute}
	}
	if p.HeldAt(t) {
		return StatusReading{Status: domain.StatusDelayed}
	}
	return StatusReading{Status: domain.StatusAtHub}
}

// ParcelView is the per-parcel tuple exposed to reporting surfaces.
type ParcelView struct {
	ID        int
	VehicleID *int
	Address   string
	Deadline  string
	Weight    string
	Status    StatusReading
}

// VehicleMileage is one line of the mileage report.
type VehicleMileage struct {
	VehicleID int
	Mileage   float64
}

type MileageReport struct {
	Vehicles []VehicleMileage
	Total    float64
}

// History answers point-in-time questions over post-run parcel records.
// It is read-only and must only be used after Simulation.Run returns.
type History struct {
	matrix   *domain.LocationMatrix
	parcels  ports.ParcelStore
	vehicles []*domain.Vehicle
}

func NewHistory(matrix *domain.LocationMatrix, parcels ports.ParcelStore, vehicles []*domain.Vehicle) *History {
	return &History{matrix: matrix, parcels: parcels, vehicles: vehicles}
}

// NewHistoryFor builds a History over a finished simulation.
func NewHistoryFor(sim *Simulation) *History {
	return NewHistory(sim.Matrix(), sim.Parcels(), sim.Vehicles())
}

// DisplayAddressAt returns the address text to show for p at t. It branches
// on the same correction timestamp as Parcel.DeliverableLocationAt.
func (h *History) DisplayAddressAt(p *domain.Parcel, t time.Time) string {
	c := p.Correction
	if c == nil {
		return p.Address.String()
	}
	if t.Before(c.At) {
		return "Address pending correction at " + domain.ClockString(c.At)
	}
	if !c.Address.IsZero() {
		return c.Address.String()
	}
	if c.Location != nil && h.matrix != nil {
		if street := streetLine(h.matrix.Label(*c.Location)); street != "" {
			return fmt.Sprintf("%s, %s, %s %s", street, p.Address.City, p.Address.State, p.Address.Zip)
		}
	}
	return p.Address.String()
}

// View assembles the reporting tuple for p at t.
func (h *History) View(p *domain.Parcel, t time.Time) ParcelView {
	return ParcelView{
		ID:        p.ID,
		VehicleID: p.VehicleID,
		Address:   h.DisplayAddressAt(p, t),
		Deadline:  p.Deadline,
		Weight:    p.Weight,
		Status:    StatusAt(p, t),
	}
}

// Snapshot returns every parcel's view at t, ordered by id.
func (h *History) Snapshot(t time.Time) []ParcelView {
	all := h.parcels.All()
	out := make([]ParcelView, 0, len(all))
	for _, p := range all {
		out = append(out, h.View(p, t))
	}
	return out
}

// Lookup returns one parcel's view at t, or ErrParcelNotFound.
func (h *History) Lookup(id int, t time.Time) (ParcelView, error) {
	p, ok := h.parcels.Get(id)
	if !ok {
		return ParcelView{}, fmt.Errorf("lookup parcel %d: %w", id, ErrParcelNotFound)
	}
	return h.View(p, t), nil
}

// Mileage returns per-vehicle mileage and the grand total.
func (h *History) Mileage() MileageReport {
	var r MileageReport
	for _, v := range h.vehicles {
		r.Vehicles = append(r.Vehicles, VehicleMileage{VehicleID: v.ID, Mileage: v.Mileage})
		r.Total += v.Mileage
	}
	return r
}

// streetLine picks the line of a multi-line location label that looks like a
// street address; otherwise the label joined on one line.
func streetLine(label string) string {
	var parts []string
	for _, line := range strings.Split(label, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	for _, p := range parts {
		if strings.ContainsAny(p, "0123456789") {
			return p
		}
	}
	return strings.Join(parts, " ")
}
