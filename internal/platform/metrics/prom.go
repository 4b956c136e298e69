package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromRecorder records simulation outcomes in Prometheus metrics.
type PromRecorder struct {
	parcels  *prometheus.CounterVec
	mileage  *prometheus.GaugeVec
	duration prometheus.Histogram
}

// NewPromRecorder registers the simulation metrics on reg. A nil registerer
// defaults to the global Prometheus registerer.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	parcels := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_parcels_total",
		Help: "Parcels by run outcome",
	}, []string{"vehicle_id", "outcome"})
	mileage := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sim_vehicle_mileage_miles",
		Help: "Miles driven by each vehicle in the last run",
	}, []string{"vehicle_id"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_run_duration_seconds",
		Help:    "Wall-clock time to simulate the whole fleet",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(parcels); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			parcels = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(mileage); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			mileage = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromRecorder{parcels: parcels, mileage: mileage, duration: duration}, nil
}

// RecordVehicleRun adds one vehicle's outcome counts and sets its mileage.
func (r *PromRecorder) RecordVehicleRun(vehicleID int, mileage float64, delivered, stranded, late int) {
	id := strconv.Itoa(vehicleID)
	r.parcels.WithLabelValues(id, "delivered").Add(float64(delivered))
	r.parcels.WithLabelValues(id, "stranded").Add(float64(stranded))
	r.parcels.WithLabelValues(id, "late").Add(float64(late))
	r.mileage.WithLabelValues(id).Set(mileage)
}

func (r *PromRecorder) ObserveRunDuration(d time.Duration) {
	r.duration.Observe(d.Seconds())
}
