package domain

import "time"

// Represents a single stop in a realized delivery route.
// A RouteStop corresponds to arriving at a location at a simulated time,
// and delivering every parcel deliverable there at that moment.
type RouteStop struct {
	Location  int
	ArriveAt  time.Time
	ParcelIDs []int
}
