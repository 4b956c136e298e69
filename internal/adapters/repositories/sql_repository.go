package repositories

import (
	"context"
	"database/sql"
	"delivery-sim/internal/domain"
	"delivery-sim/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// holdClockLayout is the stored form of a parcel hold: wall clock only, so
// seeded data can be simulated on any service day.
const holdClockLayout = "15:04:05"

// SQLRepository reads seeded locations and parcels. It implements both the
// parcel and the location repository ports. Stored holds are placed on Day.
type SQLRepository struct {
	DB      *sql.DB
	Dialect Dialect
	Day     time.Time
}

func NewSQLRepository(db *sql.DB, d Dialect, day time.Time) *SQLRepository {
	return &SQLRepository{DB: db, Dialect: d, Day: day}
}

// LoadMatrix rebuilds the symmetric matrix from the stored lower triangle.
func (s *SQLRepository) LoadMatrix(ctx context.Context) (_ *domain.LocationMatrix, err error) {
	defer obs.Time(ctx, "sql.LoadMatrix")(&err)

	if s.DB == nil {
		return nil, errors.New("sql repository: DB is nil")
	}

	labels, err := s.loadLabels(ctx)
	if err != nil {
		return nil, err
	}

	n := len(labels)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}

	query := `
	SELECT
		from_idx,
		to_idx,
		miles
	FROM location_distances;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load matrix: query location_distances table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var from, to int
		var miles float64
		if err := rows.Scan(&from, &to, &miles); err != nil {
			return nil, fmt.Errorf("load matrix: scan row: %w", err)
		}
		if from < 0 || from >= n || to < 0 || to >= n {
			return nil, fmt.Errorf("load matrix: distance %d->%d outside %d locations", from, to, n)
		}
		dist[from][to], dist[to][from] = miles, miles
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load matrix: row iteration: %w", err)
	}

	m, err := domain.NewLocationMatrix(labels, dist)
	if err != nil {
		return nil, fmt.Errorf("load matrix: %w", err)
	}
	return m, nil
}

func (s *SQLRepository) loadLabels(ctx context.Context) ([]string, error) {
	query := `
	SELECT
		location_idx,
		label
	FROM locations
	ORDER BY location_idx;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load matrix: query locations table: %w", err)
	}
	defer rows.Close()

	labels := make([]string, 0, 32)
	for rows.Next() {
		var idx int
		var label string
		if err := rows.Scan(&idx, &label); err != nil {
			return nil, fmt.Errorf("load matrix: scan location: %w", err)
		}
		if idx != len(labels) {
			return nil, fmt.Errorf("load matrix: location indexes not contiguous at %d", idx)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load matrix: location iteration: %w", err)
	}

	return labels, nil
}

// ListParcels returns every stored parcel ordered by id, in its ingested state.
func (s *SQLRepository) ListParcels(ctx context.Context) (_ []*domain.Parcel, err error) {
	defer obs.Time(ctx, "sql.ListParcels")(&err)

	if s.DB == nil {
		return nil, errors.New("sql repository: DB is nil")
	}

	query := `
	SELECT
		parcel_id,
		street,
		city,
		state,
		zip,
		deadline,
		weight,
		notes,
		location_idx,
		available_from
	FROM parcels
	ORDER BY parcel_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list parcels: query parcels table: %w", err)
	}
	defer rows.Close()

	parcels := make([]*domain.Parcel, 0, 64)
	for rows.Next() {
		var (
			id                      int
			addr                    domain.Address
			deadline, weight, notes string
			loc                     sql.NullInt64
			from                    sql.NullString
		)
		err := rows.Scan(&id, &addr.Street, &addr.City, &addr.State, &addr.Zip,
			&deadline, &weight, &notes, &loc, &from)
		if err != nil {
			return nil, fmt.Errorf("list parcels: scan row: %w", err)
		}

		var locPtr *int
		if loc.Valid {
			idx := int(loc.Int64)
			locPtr = &idx
		}
		p := domain.NewParcel(id, addr, deadline, weight, notes, locPtr)

		if from.Valid {
			until, err := domain.ParseClock(s.Day, from.String)
			if err != nil {
				return nil, fmt.Errorf("list parcels: parcel_id=%d available_from: %w", id, err)
			}
			p.MarkDelayed(until)
		}

		parcels = append(parcels, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parcels: row iteration: %w", err)
	}

	return parcels, nil
}
