package services

import (
	"context"
	"delivery-sim/internal/domain"
	"delivery-sim/internal/ports"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrAlreadyRun is returned when Run is called twice on one Simulation.
var ErrAlreadyRun = errors.New("simulation already run")

// LateDelivery is a parcel delivered after its deadline.
type LateDelivery struct {
	ParcelID    int
	VehicleID   int
	Deadline    time.Time
	DeliveredAt time.Time
}

// VehicleReport is one vehicle's part of the completion report.
type VehicleReport struct {
	RunResult
	Late []LateDelivery
}

// CompletionReport makes the outcome of a run observable, stranded parcels
// included.
type CompletionReport struct {
	RunID        string
	Vehicles     []VehicleReport
	TotalMileage float64
	Delivered    int
	Stranded     []int
	Late         []LateDelivery
}

// Complete reports whether every manifested parcel was delivered.
func (r *CompletionReport) Complete() bool { return len(r.Stranded) == 0 }

// Simulation runs every vehicle of a fleet against one matrix and parcel table.
type Simulation struct {
	matrix   *domain.LocationMatrix
	parcels  ports.ParcelStore
	vehicles []*domain.Vehicle
	hub      int
	day      time.Time

	log      zerolog.Logger
	recorder ports.RunRecorder

	mu     sync.Mutex
	report *CompletionReport
}

type Option func(*Simulation)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

func WithRecorder(r ports.RunRecorder) Option {
	return func(s *Simulation) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewSimulation validates the fleet before any run starts: the hub and every
// resolved parcel location must be in the matrix, and manifests must be a
// disjoint partition of known parcel ids. Parcels are stamped with their
// vehicle id.
func NewSimulation(
	matrix *domain.LocationMatrix,
	parcels ports.ParcelStore,
	vehicles []*domain.Vehicle,
	hub int,
	day time.Time,
	opts ...Option,
) (*Simulation, error) {
	if matrix == nil {
		return nil, errors.New("new simulation: matrix is nil")
	}
	if parcels == nil {
		return nil, errors.New("new simulation: parcel store is nil")
	}
	if !matrix.Contains(hub) {
		return nil, fmt.Errorf("new simulation: hub index %d outside matrix of size %d", hub, matrix.Size())
	}

	owner := make(map[int]int)
	for _, v := range vehicles {
		if v == nil {
			return nil, errors.New("new simulation: nil vehicle")
		}
		for _, id := range v.Manifest {
			if prev, ok := owner[id]; ok {
				return nil, fmt.Errorf("new simulation: parcel %d on vehicle %d and vehicle %d", id, prev, v.ID)
			}
			if _, ok := parcels.Get(id); !ok {
				return nil, fmt.Errorf("new simulation: vehicle %d manifest: unknown parcel %d", v.ID, id)
			}
			owner[id] = v.ID
		}
	}

	for _, p := range parcels.All() {
		if p.Location != nil && !matrix.Contains(*p.Location) {
			return nil, fmt.Errorf("new simulation: parcel %d location %d outside matrix", p.ID, *p.Location)
		}
		if p.Correction != nil && p.Correction.Location != nil && !matrix.Contains(*p.Correction.Location) {
			return nil, fmt.Errorf("new simulation: parcel %d corrected location %d outside matrix", p.ID, *p.Correction.Location)
		}
	}

	for id, vid := range owner {
		p, _ := parcels.Get(id)
		p.AssignVehicle(vid)
	}

	s := &Simulation{
		matrix:   matrix,
		parcels:  parcels,
		vehicles: vehicles,
		hub:      hub,
		day:      day,
		log:      zerolog.Nop(),
		recorder: ports.NopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Run simulates every vehicle concurrently, one goroutine per vehicle, and
// waits for all of them. Vehicles own disjoint parcel sets and share only the
// read-only matrix, so no locking is needed inside a run.
func (s *Simulation) Run(ctx context.Context) (*CompletionReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.report != nil {
		return nil, ErrAlreadyRun
	}

	runID := uuid.NewString()
	start := time.Now()
	log := s.log.With().Str("run_id", runID).Logger()

	results := make([]RunResult, len(s.vehicles))
	g, ctx := errgroup.WithContext(ctx)
	for i, v := range s.vehicles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = RunVehicle(v, s.matrix, s.parcels, s.hub)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run simulation: %w", err)
	}

	report := &CompletionReport{RunID: runID}
	for _, res := range results {
		vr := VehicleReport{RunResult: res, Late: s.lateDeliveries(res)}

		report.Vehicles = append(report.Vehicles, vr)
		report.TotalMileage += res.Mileage
		report.Delivered += len(res.Delivered)
		report.Stranded = append(report.Stranded, res.Stranded...)
		report.Late = append(report.Late, vr.Late...)

		s.recorder.RecordVehicleRun(res.VehicleID, res.Mileage, len(res.Delivered), len(res.Stranded), len(vr.Late))

		var ev *zerolog.Event
		if len(res.Stranded) > 0 {
			ev = log.Warn().Ints("stranded", res.Stranded)
		} else {
			ev = log.Info()
		}
		ev.Int("vehicle_id", res.VehicleID).
			Int("delivered", len(res.Delivered)).
			Float64("mileage", res.Mileage).
			Str("return_at", domain.ClockString(res.ReturnAt)).
			Msg("vehicle run complete")
	}
	slices.Sort(report.Stranded)

	dur := time.Since(start)
	s.recorder.ObserveRunDuration(dur)
	log.Info().
		Int("vehicles", len(s.vehicles)).
		Int("delivered", report.Delivered).
		Int("stranded", len(report.Stranded)).
		Int("late", len(report.Late)).
		Float64("total_mileage", report.TotalMileage).
		Dur("dur", dur).
		Msg("simulation complete")

	s.report = report
	return report, nil
}

// Report returns the completion report, or nil before Run.
func (s *Simulation) Report() *CompletionReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

func (s *Simulation) Vehicles() []*domain.Vehicle { return s.vehicles }

func (s *Simulation) Matrix() *domain.LocationMatrix { return s.matrix }

func (s *Simulation) Parcels() ports.ParcelStore { return s.parcels }

func (s *Simulation) Day() time.Time { return s.day }

func (s *Simulation) lateDeliveries(res RunResult) []LateDelivery {
	var late []LateDelivery
	for _, id := range res.Delivered {
		p, ok := s.parcels.Get(id)
		if !ok || p.DeliveredAt == nil {
			continue
		}
		deadline, ok := p.DeadlineOn(s.day)
		if !ok || !p.DeliveredAt.After(deadline) {
			continue
		}
		late = append(late, LateDelivery{
			ParcelID:    id,
			VehicleID:   res.VehicleID,
			Deadline:    deadline,
			DeliveredAt: *p.DeliveredAt,
		})
	}
	return late
}
