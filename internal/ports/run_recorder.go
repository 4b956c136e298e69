package ports

import "time"

// RunRecorder receives per-vehicle outcomes of a simulation run.
type RunRecorder interface {
	RecordVehicleRun(vehicleID int, mileage float64, delivered, stranded, late int)
	ObserveRunDuration(d time.Duration)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) RecordVehicleRun(int, float64, int, int, int) {}
func (NopRecorder) ObserveRunDuration(time.Duration)             {}
