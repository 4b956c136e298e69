package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrOverCapacity is returned when a manifest would exceed vehicle capacity.
var ErrOverCapacity = errors.New("vehicle at full capacity")

// Vehicle is a dispatch unit. Its manifest is fixed before the run; route,
// stops and mileage are written only by the dispatch engine.
type Vehicle struct {
	ID       int
	Capacity int
	SpeedMPH float64
	StartAt  time.Time
	Manifest []int

	// EnforceCapacity makes Load reject parcels beyond Capacity.
	EnforceCapacity bool

	Mileage  float64
	Route    []int
	Stops    []RouteStop
	ReturnAt time.Time
}

func NewVehicle(id, capacity int, speedMPH float64, startAt time.Time) *Vehicle {
	return &Vehicle{
		ID:              id,
		Capacity:        capacity,
		SpeedMPH:        speedMPH,
		StartAt:         startAt,
		EnforceCapacity: true,
	}
}

// Load a single parcel id onto the vehicle's manifest.
func (v *Vehicle) Load(parcelID int) error {
	if v.EnforceCapacity && len(v.Manifest) >= v.Capacity {
		return fmt.Errorf("load vehicle %d (capacity=%d): %w", v.ID, v.Capacity, ErrOverCapacity)
	}
	v.Manifest = append(v.Manifest, parcelID)
	return nil
}

// Load multiple parcel ids, stopping at the first failure.
func (v *Vehicle) LoadMultiple(ids []int) error {
	for _, id := range ids {
		if err := v.Load(id); err != nil {
			return err
		}
	}

	return nil
}

// Free reports the remaining manifest slots.
func (v *Vehicle) Free() int {
	if n := v.Capacity - len(v.Manifest); n > 0 {
		return n
	}
	return 0
}

// TravelTime converts miles at the vehicle's speed into a clock advance.
func (v *Vehicle) TravelTime(miles float64) time.Duration {
	if v.SpeedMPH <= 0 {
		return 0
	}
	return time.Duration(miles / v.SpeedMPH * float64(time.Hour))
}

// Reset clears run output so the vehicle can be simulated again.
func (v *Vehicle) Reset() {
	v.Mileage = 0
	v.Route = nil
	v.Stops = nil
	v.ReturnAt = time.Time{}
}
