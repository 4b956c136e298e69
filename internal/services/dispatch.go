package services

import (
	"delivery-sim/internal/domain"
	"delivery-sim/internal/ports"
	"slices"
	"time"
)

// RunResult summarizes one vehicle's simulated run.
type RunResult struct {
	VehicleID int
	Delivered []int
	// Stranded parcels were still undelivered when no further unblock
	// instant existed. This is a normal terminal state, not an error.
	Stranded []int
	Mileage  float64
	Route    []int
	ReturnAt time.Time
}

// RunVehicle simulates one vehicle from hub departure to hub return using a
// greedy nearest-neighbor heuristic under time-dependent availability.
//
// At each step the nearest location among feasible parcels (available and
// with a deliverable location at the current clock) is chosen; ties go to the
// first feasible parcel in manifest order. When nothing is feasible the clock
// jumps to the next availability-change instant of the remaining parcels;
// when none is left the loop ends and the rest is stranded.
// The route is not optimal and is not meant to be.
func RunVehicle(
	v *domain.Vehicle,
	matrix *domain.LocationMatrix,
	parcels ports.ParcelStore,
	hub int,
) RunResult {
	v.Reset()

	now := v.StartAt
	current := hub
	v.Route = []int{hub}

	remaining := make([]*domain.Parcel, 0, len(v.Manifest))
	for _, id := range v.Manifest {
		p, ok := parcels.Get(id)
		if !ok {
			continue
		}
		p.Depart(now)
		remaining = append(remaining, p)
	}

	unblocks := newUnblockQueue(remaining)
	delivered := make([]int, 0, len(remaining))

	for len(remaining) > 0 {
		next, distance, ok := nearestFeasible(remaining, matrix, current, now)
		if !ok {
			at, more := unblocks.after(now)
			if !more {
				break
			}
			now = at
			continue
		}

		now = now.Add(v.TravelTime(distance))
		v.Mileage += distance
		current = next
		if v.Route[len(v.Route)-1] != current {
			v.Route = append(v.Route, current)
		}

		// Deliver everything bound for this location in one stop, held or
		// not. Holds only gate which location is chosen next.
		stop := domain.RouteStop{Location: current, ArriveAt: now}
		kept := remaining[:0]
		for _, p := range remaining {
			if loc := p.DeliverableLocationAt(now); loc != nil && *loc == current {
				p.Deliver(now)
				stop.ParcelIDs = append(stop.ParcelIDs, p.ID)
				continue
			}
			kept = append(kept, p)
		}
		remaining = kept
		delivered = append(delivered, stop.ParcelIDs...)
		v.Stops = append(v.Stops, stop)
	}

	v.Mileage += matrix.Distance(current, hub)
	now = now.Add(v.TravelTime(matrix.Distance(current, hub)))
	if v.Route[len(v.Route)-1] != hub {
		v.Route = append(v.Route, hub)
	}
	v.ReturnAt = now

	stranded := make([]int, 0, len(remaining))
	for _, p := range remaining {
		stranded = append(stranded, p.ID)
	}

	return RunResult{
		VehicleID: v.ID,
		Delivered: delivered,
		Stranded:  stranded,
		Mileage:   v.Mileage,
		Route:     slices.Clone(v.Route),
		ReturnAt:  v.ReturnAt,
	}
}

// nearestFeasible picks the closest deliverable location among parcels that
// are feasible at now. First minimum in slice order wins.
func nearestFeasible(
	remaining []*domain.Parcel,
	matrix *domain.LocationMatrix,
	current int,
	now time.Time,
) (int, float64, bool) {
	best, bestDistance := -1, 0.0
	for _, p := range remaining {
		if !p.IsAvailableAt(now) {
			continue
		}
		loc := p.DeliverableLocationAt(now)
		if loc == nil || !matrix.Contains(*loc) {
			continue
		}

		d := matrix.Distance(current, *loc)
		if d < 0 {
			continue
		}
		if best < 0 || d < bestDistance {
			best, bestDistance = *loc, d
		}
	}

	return best, bestDistance, best >= 0
}

// unblockQueue is the ascending set of instants at which a remaining parcel
// may become feasible: hold releases and address corrections.
type unblockQueue struct {
	instants []time.Time
}

func newUnblockQueue(parcels []*domain.Parcel) *unblockQueue {
	instants := make([]time.Time, 0, len(parcels))
	for _, p := range parcels {
		if p.AvailableFrom != nil {
			instants = append(instants, *p.AvailableFrom)
		}
		if p.Correction != nil {
			instants = append(instants, p.Correction.At)
		}
	}

	slices.SortFunc(instants, func(a, b time.Time) int { return a.Compare(b) })
	instants = slices.CompactFunc(instants, func(a, b time.Time) bool { return a.Equal(b) })

	return &unblockQueue{instants: instants}
}

// after pops and returns the smallest instant strictly later than now.
func (q *unblockQueue) after(now time.Time) (time.Time, bool) {
	for len(q.instants) > 0 {
		t := q.instants[0]
		q.instants = q.instants[1:]
		if t.After(now) {
			return t, true
		}
	}
	return time.Time{}, false
}
