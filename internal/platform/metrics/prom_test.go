package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPromRecorder(reg)
	if err != nil {
		t.Fatalf("create recorder: %v", err)
	}

	rec.RecordVehicleRun(1, 42.5, 15, 1, 2)
	rec.RecordVehicleRun(2, 30, 16, 0, 0)
	rec.ObserveRunDuration(20 * time.Millisecond)

	expected := `
# HELP sim_parcels_total Parcels by run outcome
# TYPE sim_parcels_total counter
sim_parcels_total{outcome="delivered",vehicle_id="1"} 15
sim_parcels_total{outcome="delivered",vehicle_id="2"} 16
sim_parcels_total{outcome="late",vehicle_id="1"} 2
sim_parcels_total{outcome="late",vehicle_id="2"} 0
sim_parcels_total{outcome="stranded",vehicle_id="1"} 1
sim_parcels_total{outcome="stranded",vehicle_id="2"} 0
`
	if err := testutil.CollectAndCompare(rec.parcels, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}

	if got := testutil.ToFloat64(rec.mileage.WithLabelValues("1")); got != 42.5 {
		t.Errorf("mileage = %v, want 42.5", got)
	}
	if c := testutil.CollectAndCount(rec.duration); c != 1 {
		t.Errorf("duration series = %d, want 1", c)
	}
}

func TestPromRecorderReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromRecorder(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewPromRecorder(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	first.RecordVehicleRun(3, 1, 1, 0, 0)
	second.RecordVehicleRun(3, 1, 1, 0, 0)

	if got := testutil.ToFloat64(first.parcels.WithLabelValues("3", "delivered")); got != 2 {
		t.Errorf("delivered = %v, want 2", got)
	}
}
