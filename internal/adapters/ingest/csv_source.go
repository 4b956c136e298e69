package ingest

import (
	"context"
	"delivery-sim/internal/domain"
	"delivery-sim/internal/platform/obs"
	"fmt"
	"os"
	"time"
)

// CSVSource reads the distance table and parcel list from two files. It
// serves both the location and the parcel repository ports.
type CSVSource struct {
	DistancesPath string
	ParcelsPath   string
	Day           time.Time
}

func NewCSVSource(distancesPath, parcelsPath string, day time.Time) *CSVSource {
	return &CSVSource{DistancesPath: distancesPath, ParcelsPath: parcelsPath, Day: day}
}

func (s *CSVSource) LoadMatrix(ctx context.Context) (_ *domain.LocationMatrix, err error) {
	defer obs.Time(ctx, "csv.LoadMatrix")(&err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.DistancesPath)
	if err != nil {
		return nil, fmt.Errorf("csv source: open %q: %w", s.DistancesPath, err)
	}
	defer f.Close()

	return LoadDistances(f)
}

// ListParcels reads the distance table too, since addresses are resolved
// against its labels.
func (s *CSVSource) ListParcels(ctx context.Context) (_ []*domain.Parcel, err error) {
	defer obs.Time(ctx, "csv.ListParcels")(&err)

	m, err := s.LoadMatrix(ctx)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.ParcelsPath)
	if err != nil {
		return nil, fmt.Errorf("csv source: open %q: %w", s.ParcelsPath, err)
	}
	defer f.Close()

	return LoadParcels(f, m.Labels(), s.Day)
}
