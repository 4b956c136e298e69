package config

import (
	"delivery-sim/internal/domain"
	"delivery-sim/internal/services"
	"errors"
	"fmt"
	"strings"
	"time"
)

// FleetConfig is the static description of one simulated day.
type FleetConfig struct {
	// ServiceDate is YYYY-MM-DD; empty means today in Timezone.
	ServiceDate string `json:"service_date"`
	Timezone    string `json:"timezone"`

	SpeedMPH float64 `json:"speed_mph"`
	Capacity int     `json:"capacity"`
	HubIndex int     `json:"hub_index"`

	// EnforceCapacity defaults to true when unset.
	EnforceCapacity *bool `json:"enforce_capacity"`
	AutoAssign      bool  `json:"auto_assign"`

	Vehicles    []VehicleConfig    `json:"vehicles"`
	Delays      []DelayConfig      `json:"delays"`
	Corrections []CorrectionConfig `json:"corrections"`
}

type VehicleConfig struct {
	ID      int    `json:"id"`
	Start   string `json:"start"`
	Parcels []int  `json:"parcels"`
}

type DelayConfig struct {
	Parcels []int  `json:"parcels"`
	Until   string `json:"until"`
}

// CorrectionConfig fixes one parcel's address from At onwards. Location
// pins the matrix index; otherwise the street is matched against labels.
type CorrectionConfig struct {
	Parcel   int    `json:"parcel"`
	At       string `json:"at"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Location *int   `json:"location"`
}

func (c *FleetConfig) SetDefaults() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.SpeedMPH == 0 {
		c.SpeedMPH = 18
	}
	if c.Capacity == 0 {
		c.Capacity = 16
	}
	if c.EnforceCapacity == nil {
		enforce := true
		c.EnforceCapacity = &enforce
	}
}

func (c FleetConfig) Validate() error {
	if c.SpeedMPH <= 0 {
		return fmt.Errorf("fleet.speed_mph must be positive, got %v", c.SpeedMPH)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("fleet.capacity must be positive, got %d", c.Capacity)
	}
	if c.HubIndex < 0 {
		return fmt.Errorf("fleet.hub_index must not be negative, got %d", c.HubIndex)
	}
	if len(c.Vehicles) == 0 {
		return errors.New("fleet.vehicles is required")
	}

	seen := make(map[int]bool, len(c.Vehicles))
	for i, v := range c.Vehicles {
		if v.ID <= 0 {
			return fmt.Errorf("fleet.vehicles[%d]: id must be positive", i)
		}
		if seen[v.ID] {
			return fmt.Errorf("fleet.vehicles[%d]: duplicate id %d", i, v.ID)
		}
		seen[v.ID] = true
		if strings.TrimSpace(v.Start) == "" {
			return fmt.Errorf("fleet.vehicles[%d]: start is required", i)
		}
	}
	return nil
}

// Day resolves the service date at midnight in the configured zone.
func (c FleetConfig) Day() (time.Time, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("fleet.timezone: %w", err)
	}

	if strings.TrimSpace(c.ServiceDate) == "" {
		return domain.At(time.Now().In(loc), 0, 0, 0), nil
	}

	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(c.ServiceDate), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("fleet.service_date: %w", err)
	}
	return day, nil
}

// Plan converts the configuration into a services.FleetPlan. Clock strings
// are resolved on the service day.
func (c FleetConfig) Plan(matcher services.AddressMatcher) (services.FleetPlan, error) {
	day, err := c.Day()
	if err != nil {
		return services.FleetPlan{}, err
	}

	enforce := true
	if c.EnforceCapacity != nil {
		enforce = *c.EnforceCapacity
	}

	plan := services.FleetPlan{
		Day:             day,
		HubIndex:        c.HubIndex,
		SpeedMPH:        c.SpeedMPH,
		Capacity:        c.Capacity,
		EnforceCapacity: enforce,
		AutoAssign:      c.AutoAssign,
		Matcher:         matcher,
	}

	for _, v := range c.Vehicles {
		start, err := domain.ParseClock(day, v.Start)
		if err != nil {
			return services.FleetPlan{}, fmt.Errorf("fleet: vehicle %d start: %w", v.ID, err)
		}
		plan.Vehicles = append(plan.Vehicles, services.VehiclePlan{
			ID:        v.ID,
			StartAt:   start,
			ParcelIDs: append([]int(nil), v.Parcels...),
		})
	}

	for i, d := range c.Delays {
		until, err := domain.ParseClock(day, d.Until)
		if err != nil {
			return services.FleetPlan{}, fmt.Errorf("fleet: delays[%d] until: %w", i, err)
		}
		plan.Delays = append(plan.Delays, services.Delay{
			ParcelIDs: append([]int(nil), d.Parcels...),
			Until:     until,
		})
	}

	for _, corr := range c.Corrections {
		at, err := domain.ParseClock(day, corr.At)
		if err != nil {
			return services.FleetPlan{}, fmt.Errorf("fleet: correction for parcel %d at: %w", corr.Parcel, err)
		}
		plan.Corrections = append(plan.Corrections, services.AddressCorrection{
			ParcelID: corr.Parcel,
			At:       at,
			Address: domain.Address{
				Street: strings.TrimSpace(corr.Address),
				City:   strings.TrimSpace(corr.City),
				State:  strings.TrimSpace(corr.State),
				Zip:    strings.TrimSpace(corr.Zip),
			},
			Location: corr.Location,
		})
	}

	return plan, nil
}
