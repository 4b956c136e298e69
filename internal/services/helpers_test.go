package services

import (
	"delivery-sim/internal/domain"
	"delivery-sim/internal/store"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func clock(h, m int) time.Time { return domain.At(testDay, h, m, 0) }

func loc(i int) *int { return &i }

func parcelAt(id int, location *int) *domain.Parcel {
	return domain.NewParcel(
		id,
		domain.Address{Street: "1 Main St", City: "Salt Lake City", State: "UT", Zip: "84101"},
		"EOD", "5", "", location,
	)
}

func newMatrix(t *testing.T, labels []string, rows [][]float64) *domain.LocationMatrix {
	t.Helper()
	m, err := domain.NewLocationMatrix(labels, rows)
	require.NoError(t, err)
	return m
}

func newTable(t *testing.T, parcels ...*domain.Parcel) *store.ParcelTable {
	t.Helper()
	table, err := store.FromParcels(parcels)
	require.NoError(t, err)
	return table
}

func newVehicle(t *testing.T, id int, start time.Time, manifest ...int) *domain.Vehicle {
	t.Helper()
	v := domain.NewVehicle(id, 16, 18, start)
	require.NoError(t, v.LoadMultiple(manifest))
	return v
}

// fiveStops is a small symmetric network: hub plus four drop points.
func fiveStops(t *testing.T) *domain.LocationMatrix {
	return newMatrix(t,
		[]string{"HUB", "A", "B", "C", "D"},
		[][]float64{
			{0, 3, 6, 2.5, 7},
			{3, 0, 4, 1.5, 5},
			{6, 4, 0, 3.5, 2},
			{2.5, 1.5, 3.5, 0, 4.5},
			{7, 5, 2, 4.5, 0},
		},
	)
}
