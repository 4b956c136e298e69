package services

import (
	"context"
	"delivery-sim/internal/domain"
	"delivery-sim/internal/ports"
	"delivery-sim/internal/store"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// VehiclePlan is one vehicle's static manifest and departure time.
type VehiclePlan struct {
	ID        int
	StartAt   time.Time
	ParcelIDs []int
}

// Delay marks parcels as delayed at the hub until a release instant.
type Delay struct {
	ParcelIDs []int
	Until     time.Time
}

// AddressCorrection fixes a parcel's destination from At onwards. When
// Location is nil the corrected street is resolved against matrix labels.
type AddressCorrection struct {
	ParcelID int
	At       time.Time
	Address  domain.Address
	Location *int
}

// AddressMatcher resolves a street to a matrix index.
type AddressMatcher func(street string, labels []string) (int, bool)

// FleetPlan is the static configuration of one simulated day.
type FleetPlan struct {
	Day             time.Time
	HubIndex        int
	SpeedMPH        float64
	Capacity        int
	EnforceCapacity bool
	AutoAssign      bool
	Vehicles        []VehiclePlan
	Delays          []Delay
	Corrections     []AddressCorrection
	Matcher         AddressMatcher
}

// PlanDeliveries loads the matrix and parcel records, applies the fleet plan
// (delays, corrections, manifests) and returns a validated Simulation ready
// to Run.
func PlanDeliveries(
	ctx context.Context,
	plan FleetPlan,
	parcelRepo ports.ParcelRepository,
	locationRepo ports.LocationRepository,
	opts ...Option,
) (*Simulation, error) {
	if len(plan.Vehicles) == 0 {
		return nil, errors.New("plan deliveries: fleet has no vehicles")
	}
	if plan.SpeedMPH <= 0 {
		return nil, fmt.Errorf("plan deliveries: speed must be positive, got %v", plan.SpeedMPH)
	}

	var (
		matrix  *domain.LocationMatrix
		parcels []*domain.Parcel
	)

	// Matrix and parcel records come from independent sources.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := locationRepo.LoadMatrix(gctx)
		if err != nil {
			return fmt.Errorf("plan deliveries: load location matrix: %w", err)
		}
		matrix = m
		return nil
	})
	g.Go(func() error {
		ps, err := parcelRepo.ListParcels(gctx)
		if err != nil {
			return fmt.Errorf("plan deliveries: list parcels: %w", err)
		}
		parcels = ps
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table, err := store.FromParcels(parcels)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	for _, d := range plan.Delays {
		for _, id := range d.ParcelIDs {
			p, ok := table.Get(id)
			if !ok {
				return nil, fmt.Errorf("plan deliveries: delay for unknown parcel %d", id)
			}
			p.MarkDelayed(d.Until)
		}
	}

	for _, c := range plan.Corrections {
		p, ok := table.Get(c.ParcelID)
		if !ok {
			return nil, fmt.Errorf("plan deliveries: correction for unknown parcel %d", c.ParcelID)
		}

		loc := c.Location
		if loc == nil && plan.Matcher != nil && !c.Address.IsZero() {
			if idx, ok := plan.Matcher(c.Address.Street, matrix.Labels()); ok {
				loc = &idx
			}
		}
		p.SetCorrection(domain.Correction{At: c.At, Location: loc, Address: c.Address})
	}

	vehicles := make([]*domain.Vehicle, 0, len(plan.Vehicles))
	for _, vp := range plan.Vehicles {
		v := domain.NewVehicle(vp.ID, plan.Capacity, plan.SpeedMPH, vp.StartAt)
		v.EnforceCapacity = plan.EnforceCapacity
		if err := v.LoadMultiple(vp.ParcelIDs); err != nil {
			return nil, fmt.Errorf("plan deliveries: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if plan.AutoAssign {
		if err := AssignByHubDistance(vehicles, table.All(), matrix, plan.HubIndex); err != nil {
			return nil, fmt.Errorf("plan deliveries: %w", err)
		}
	}

	sim, err := NewSimulation(matrix, table, vehicles, plan.HubIndex, plan.Day, opts...)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	return sim, nil
}
