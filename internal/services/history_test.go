package services

import (
	"delivery-sim/internal/domain"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusAt(t *testing.T) {
	p := parcelAt(1, loc(1))
	p.Depart(clock(8, 0))
	p.Deliver(clock(9, 0))

	tests := []struct {
		at   time.Time
		want domain.Status
	}{
		{clock(7, 59), domain.StatusAtHub},
		{clock(8, 0), domain.StatusEnRoute},
		{clock(8, 59), domain.StatusEnRoute},
		{clock(9, 0), domain.StatusDelivered},
		{clock(17, 0), domain.StatusDelivered},
	}
	for _, tt := range tests {
		got := StatusAt(p, tt.at)
		assert.Equal(t, tt.want, got.Status, "at %s", domain.ClockString(tt.at))
	}

	delivered := StatusAt(p, clock(12, 0))
	require.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, "DELIVERED at 09:00", delivered.String())
	assert.Equal(t, "EN_ROUTE", StatusAt(p, clock(8, 30)).String())
}

func TestStatusAtHeldParcel(t *testing.T) {
	p := parcelAt(6, loc(1))
	p.MarkDelayed(clock(9, 5))
	p.Depart(clock(8, 0))
	p.Deliver(clock(9, 30))

	assert.Equal(t, domain.StatusDelayed, StatusAt(p, clock(7, 0)).Status)
	assert.Equal(t, domain.StatusDelayed, StatusAt(p, clock(8, 30)).Status)
	assert.Equal(t, domain.StatusEnRoute, StatusAt(p, clock(9, 5)).Status)
	assert.Equal(t, domain.StatusDelivered, StatusAt(p, clock(9, 30)).Status)
}

func TestStatusAtNeverDeparted(t *testing.T) {
	p := parcelAt(3, loc(1))
	p.HoldUntil(clock(9, 5))

	assert.Equal(t, domain.StatusDelayed, StatusAt(p, clock(9, 0)).Status)
	assert.Equal(t, domain.StatusAtHub, StatusAt(p, clock(9, 5)).Status)
}

func correctedParcel() *domain.Parcel {
	p := domain.NewParcel(9,
		domain.Address{Street: "300 State St", City: "Salt Lake City", State: "UT", Zip: "84103"},
		"EOD", "2", "Wrong address listed", loc(3))
	p.SetCorrection(domain.Correction{
		At:       clock(10, 20),
		Location: loc(7),
		Address:  domain.Address{Street: "410 S State St", City: "Salt Lake City", State: "UT", Zip: "84111"},
	})
	return p
}

func TestDisplayAddressAtCorrection(t *testing.T) {
	p := correctedParcel()
	h := NewHistory(nil, newTable(t, p), nil)

	assert.Equal(t, "Address pending correction at 10:20", h.DisplayAddressAt(p, clock(10, 0)))
	assert.Nil(t, p.DeliverableLocationAt(clock(10, 0)))

	assert.Equal(t, "410 S State St, Salt Lake City, UT 84111", h.DisplayAddressAt(p, clock(10, 20)))
	require.NotNil(t, p.DeliverableLocationAt(clock(10, 20)))
	assert.Equal(t, 7, *p.DeliverableLocationAt(clock(10, 20)))
}

func TestDisplayAddressAtUsesLabelStreetLine(t *testing.T) {
	matrix := newMatrix(t,
		[]string{"HUB", "Third District Juvenile Court\n410 S State St"},
		[][]float64{{0, 2}, {2, 0}},
	)
	p := parcelAt(9, loc(1))
	p.SetCorrection(domain.Correction{At: clock(10, 20), Location: loc(1)})
	h := NewHistory(matrix, newTable(t, p), nil)

	assert.Equal(t, "410 S State St, Salt Lake City, UT 84101", h.DisplayAddressAt(p, clock(11, 0)))
}

func TestDisplayAddressWithoutCorrection(t *testing.T) {
	p := parcelAt(1, loc(1))
	h := NewHistory(nil, newTable(t, p), nil)

	assert.Equal(t, "1 Main St, Salt Lake City, UT 84101", h.DisplayAddressAt(p, clock(8, 0)))
}

func TestHistoryLookupNotFound(t *testing.T) {
	h := NewHistory(nil, newTable(t, parcelAt(1, loc(1))), nil)

	_, err := h.Lookup(999, clock(9, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParcelNotFound))
}

func TestHistoryQueriesAreIdempotent(t *testing.T) {
	matrix := fiveStops(t)
	corrected := parcelAt(7, loc(3))
	corrected.SetCorrection(domain.Correction{At: clock(10, 20), Location: loc(4)})
	table := newTable(t, parcelAt(1, loc(1)), parcelAt(2, loc(2)), corrected)
	v := newVehicle(t, 1, clock(8, 0), 1, 2, 7)
	RunVehicle(v, matrix, table, 0)

	h := NewHistory(matrix, table, []*domain.Vehicle{v})
	for _, at := range []time.Time{clock(8, 0), clock(9, 0), clock(10, 20), clock(12, 0)} {
		first := h.Snapshot(at)
		second := h.Snapshot(at)
		assert.Equal(t, first, second)

		v1, err := h.Lookup(7, at)
		require.NoError(t, err)
		v2, err := h.Lookup(7, at)
		require.NoError(t, err)
		assert.Equal(t, v1, v2)
	}
}

func TestHistorySnapshotAndMileage(t *testing.T) {
	matrix := newMatrix(t, []string{"HUB", "A"}, [][]float64{{0, 3}, {3, 0}})
	table := newTable(t, parcelAt(2, loc(1)), parcelAt(1, loc(1)))
	v1 := newVehicle(t, 1, clock(8, 0), 1)
	v2 := newVehicle(t, 2, clock(9, 0), 2)
	sim, err := NewSimulation(matrix, table, []*domain.Vehicle{v1, v2}, 0, testDay)
	require.NoError(t, err)
	RunVehicle(v1, matrix, table, 0)
	RunVehicle(v2, matrix, table, 0)

	h := NewHistoryFor(sim)
	snap := h.Snapshot(clock(8, 30))
	require.Len(t, snap, 2)
	assert.Equal(t, 1, snap[0].ID)
	require.NotNil(t, snap[0].VehicleID)
	assert.Equal(t, 1, *snap[0].VehicleID)
	assert.Equal(t, domain.StatusDelivered, snap[0].Status.Status)
	assert.Equal(t, domain.StatusAtHub, snap[1].Status.Status)
	assert.Equal(t, "EOD", snap[1].Deadline)
	assert.Equal(t, "5", snap[1].Weight)

	m := h.Mileage()
	require.Len(t, m.Vehicles, 2)
	assert.Equal(t, 6.0, m.Vehicles[0].Mileage)
	assert.Equal(t, 12.0, m.Total)
}

func TestStreetLine(t *testing.T) {
	assert.Equal(t, "410 S State St", streetLine("Court\n410 S State St"))
	assert.Equal(t, "Western Governors University", streetLine("Western Governors\nUniversity"))
	assert.Equal(t, "", streetLine(""))
}
