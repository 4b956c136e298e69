package services

import (
	"delivery-sim/internal/domain"
	"errors"
	"fmt"
	"math"
	"slices"
)

// AssignByHubDistance loads parcels that are on no manifest yet onto vehicles
// using a simple heuristic.
//
// Destinations are sorted by hub distance and chunked across vehicles to
// produce a deterministic, reasonably balanced distribution without solving a
// full VRP. A vehicle that fills up spills its band onto the next vehicle with
// room. Parcels without any resolvable location sort last.
func AssignByHubDistance(
	vehicles []*domain.Vehicle,
	parcels []*domain.Parcel,
	matrix *domain.LocationMatrix,
	hub int,
) error {
	if len(vehicles) == 0 {
		return errors.New("assign parcels: vehicle list must not be empty")
	}

	manifested := make(map[int]struct{})
	for _, v := range vehicles {
		for _, id := range v.Manifest {
			manifested[id] = struct{}{}
		}
	}

	byLocation := make(map[int][]int)
	for _, p := range parcels {
		if _, ok := manifested[p.ID]; ok {
			continue
		}
		loc := routingLocation(p)
		byLocation[loc] = append(byLocation[loc], p.ID)
	}
	if len(byLocation) == 0 {
		return nil
	}

	hubDistance := func(loc int) float64 {
		if !matrix.Contains(loc) {
			return math.Inf(1)
		}
		return matrix.Distance(hub, loc)
	}

	locations := make([]int, 0, len(byLocation))
	for loc := range byLocation {
		locations = append(locations, loc)
	}
	// Sort by hub distance so each vehicle receives a contiguous band.
	slices.SortFunc(locations, func(a, b int) int {
		da, db := hubDistance(a), hubDistance(b)
		if da < db {
			return -1
		}
		if da > db {
			return 1
		}
		return a - b
	})

	nVehicles := len(vehicles)
	nLocs := len(locations)

	// Ceiling division: spread destinations as evenly as possible.
	chunkSize := (nLocs + nVehicles - 1) / nVehicles

	for vi := 0; vi < nVehicles; vi++ {
		start := vi * chunkSize
		if start >= nLocs {
			break
		}
		end := min(start+chunkSize, nLocs)

		for _, loc := range locations[start:end] {
			for _, id := range byLocation[loc] {
				if err := loadWithSpill(vehicles, vi, id); err != nil {
					return fmt.Errorf("assign parcels: parcel %d: %w", id, err)
				}
			}
		}
	}

	return nil
}

func loadWithSpill(vehicles []*domain.Vehicle, from, id int) error {
	var lastErr error
	for i := 0; i < len(vehicles); i++ {
		v := vehicles[(from+i)%len(vehicles)]
		err := v.Load(id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrOverCapacity) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// routingLocation is where the parcel is expected to end up: the corrected
// location if known, else the original, else -1.
func routingLocation(p *domain.Parcel) int {
	if p.Correction != nil && p.Correction.Location != nil {
		return *p.Correction.Location
	}
	if p.Location != nil {
		return *p.Location
	}
	return -1
}
