package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the delivery lifecycle state of a Parcel.
type Status string

const (
	StatusAtHub     Status = "AT_HUB"
	StatusDelayed   Status = "DELAYED"
	StatusEnRoute   Status = "EN_ROUTE"
	StatusDelivered Status = "DELIVERED"
)

// Address is the free-text destination of a parcel. Display only; routing
// uses location ids.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.Zip)
}

// IsZero reports whether no street text is present.
func (a Address) IsZero() bool { return strings.TrimSpace(a.Street) == "" }

// Correction describes an address fix that becomes usable at a fixed instant.
// Before At the parcel has no deliverable location at all.
type Correction struct {
	At       time.Time
	Location *int
	Address  Address
}

// Parcel is a single delivery unit and its time-dependent deliverability.
// Timestamps are populated by the dispatch engine during simulation.
type Parcel struct {
	ID       int
	Address  Address
	Deadline string
	Weight   string
	Notes    string
	Location *int

	Status      Status
	LeftHubAt   *time.Time
	DeliveredAt *time.Time

	// AvailableFrom holds the parcel back until the given instant.
	AvailableFrom *time.Time
	Correction    *Correction
	VehicleID     *int
}

func NewParcel(id int, addr Address, deadline, weight, notes string, loc *int) *Parcel {
	return &Parcel{
		ID:       id,
		Address:  addr,
		Deadline: strings.TrimSpace(deadline),
		Weight:   strings.TrimSpace(weight),
		Notes:    strings.TrimSpace(notes),
		Location: loc,
		Status:   StatusAtHub,
	}
}

// MarkDelayed flags the parcel as delayed at the hub until the given instant.
func (p *Parcel) MarkDelayed(until time.Time) {
	p.Status = StatusDelayed
	p.HoldUntil(until)
}

// HoldUntil makes the parcel unavailable before t. A later hold wins.
func (p *Parcel) HoldUntil(t time.Time) {
	if p.AvailableFrom != nil && !t.After(*p.AvailableFrom) {
		return
	}
	p.AvailableFrom = &t
}

func (p *Parcel) SetCorrection(c Correction) {
	p.Correction = &c
}

func (p *Parcel) AssignVehicle(id int) {
	p.VehicleID = &id
}

// HeldAt reports whether the structured hold still applies at t.
func (p *Parcel) HeldAt(t time.Time) bool {
	return p.AvailableFrom != nil && t.Before(*p.AvailableFrom)
}

// IsAvailableAt reports whether the parcel may be picked as a route stop at t.
// The hold decides once set. A DELAYED parcel without one has no known
// release and stays unavailable until departure clears the status.
func (p *Parcel) IsAvailableAt(t time.Time) bool {
	if p.Status == StatusDelayed && p.AvailableFrom == nil {
		return false
	}
	return !p.HeldAt(t)
}

// DeliverableLocationAt returns the location the parcel can be delivered to
// at t, or nil when it has none.
func (p *Parcel) DeliverableLocationAt(t time.Time) *int {
	if p.Correction != nil {
		if t.Before(p.Correction.At) {
			return nil
		}
		if p.Correction.Location != nil {
			return p.Correction.Location
		}
	}
	return p.Location
}

// Depart records the vehicle leaving the hub with this parcel on board.
func (p *Parcel) Depart(t time.Time) {
	p.LeftHubAt = &t
	if p.Status == StatusAtHub || p.Status == StatusDelayed {
		p.Status = StatusEnRoute
	}
}

// Deliver records delivery at t.
func (p *Parcel) Deliver(t time.Time) {
	p.DeliveredAt = &t
	p.Status = StatusDelivered
}

func (p *Parcel) Delivered() bool { return p.DeliveredAt != nil }

// DeadlineOn resolves the deadline text on the service day. EOD and
// unparseable text yield ok=false.
func (p *Parcel) DeadlineOn(day time.Time) (time.Time, bool) {
	s := strings.ToUpper(strings.TrimSpace(p.Deadline))
	if s == "" || s == "EOD" || s == "END OF DAY" {
		return time.Time{}, false
	}

	t, err := ParseClock(day, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
