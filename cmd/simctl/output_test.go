package main

import (
	"bytes"
	"delivery-sim/internal/domain"
	"delivery-sim/internal/services"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func TestParseAt(t *testing.T) {
	at, err := parseAt(day, "")
	require.NoError(t, err)
	assert.Equal(t, domain.At(day, 23, 59, 59), at)

	at, err = parseAt(day, "10:25 am")
	require.NoError(t, err)
	assert.Equal(t, domain.At(day, 10, 25, 0), at)

	_, err = parseAt(day, "soon")
	assert.ErrorContains(t, err, "--at")
}

func TestPrintSnapshot(t *testing.T) {
	vid := 2
	delivered := domain.At(day, 9, 40, 0)
	views := []services.ParcelView{
		{ID: 1, VehicleID: &vid, Address: "1 Main St", Deadline: "EOD", Weight: "5",
			Status: services.StatusReading{Status: domain.StatusDelivered, DeliveredAt: &delivered}},
		{ID: 2, Address: "2 Main St", Deadline: "10:30 AM", Weight: "7",
			Status: services.StatusReading{Status: domain.StatusAtHub}},
	}

	var buf bytes.Buffer
	require.NoError(t, printSnapshot(&buf, domain.At(day, 10, 0, 0), views))

	out := buf.String()
	assert.Contains(t, out, "Parcel status at 10:00")
	assert.Contains(t, out, "DELIVERED at 09:40")
	assert.Contains(t, out, "AT_HUB")
	assert.Contains(t, out, "10:30 AM")
}

func TestPrintMileage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMileage(&buf, services.MileageReport{
		Vehicles: []services.VehicleMileage{{VehicleID: 1, Mileage: 40.5}, {VehicleID: 2, Mileage: 30}},
		Total:    70.5,
	}))

	out := buf.String()
	assert.Contains(t, out, "40.5")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "70.5")
}

func TestPrintReport(t *testing.T) {
	matrix, err := domain.NewLocationMatrix(
		[]string{"Hub\n4001 South 700 East", "Park\n1330 2100 S"},
		[][]float64{{0, 3}, {3, 0}},
	)
	require.NoError(t, err)

	report := &services.CompletionReport{
		RunID: "run-1",
		Vehicles: []services.VehicleReport{{RunResult: services.RunResult{
			VehicleID: 1,
			Delivered: []int{1},
			Stranded:  []int{2},
			Mileage:   6,
			Route:     []int{0, 1, 0},
			ReturnAt:  domain.At(day, 8, 20, 0),
		}}},
		TotalMileage: 6,
		Delivered:    1,
		Stranded:     []int{2},
		Late: []services.LateDelivery{{
			ParcelID: 1, VehicleID: 1,
			Deadline: domain.At(day, 8, 5, 0), DeliveredAt: domain.At(day, 8, 10, 0),
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, matrix, report))

	out := buf.String()
	assert.Contains(t, out, "route: Hub -> Park -> Hub")
	assert.Contains(t, out, "back at hub 08:20")
	assert.Contains(t, out, "stranded: 2")
	assert.Contains(t, out, "Stranded: 2")
	assert.Contains(t, out, "Late: parcel 1 on vehicle 1 delivered 08:10, deadline 08:05")

	assert.Error(t, printReport(&buf, matrix, nil))
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "-", joinInts(nil))
	assert.Equal(t, "3, 1, 2", joinInts([]int{3, 1, 2}))
}
