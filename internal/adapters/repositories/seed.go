package repositories

import (
	"context"
	"database/sql"
	"delivery-sim/internal/domain"
	"errors"
	"fmt"
)

// Seed replaces the stored location matrix and upserts the parcel records in
// one transaction. Only ingested state is stored; run output is not.
func Seed(ctx context.Context, db *sql.DB, d Dialect, matrix *domain.LocationMatrix, parcels []*domain.Parcel) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}
	if matrix == nil {
		return errors.New("seed: matrix is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := seedMatrix(ctx, tx, d, matrix); err != nil {
		return err
	}
	if err := seedParcels(ctx, tx, d, parcels); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func seedMatrix(ctx context.Context, tx *sql.Tx, d Dialect, matrix *domain.LocationMatrix) error {
	for _, q := range []string{`DELETE FROM location_distances;`, `DELETE FROM locations;`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("seed locations: clear: %w", err)
		}
	}

	locStmt, err := tx.PrepareContext(ctx, d.rebind(`
	INSERT INTO locations (location_idx, label)
	VALUES (?, ?);
	`))
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer locStmt.Close()

	distStmt, err := tx.PrepareContext(ctx, d.rebind(`
	INSERT INTO location_distances (from_idx, to_idx, miles)
	VALUES (?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("seed distances: prepare insert: %w", err)
	}
	defer distStmt.Close()

	n := matrix.Size()
	for i := 0; i < n; i++ {
		if _, err := locStmt.ExecContext(ctx, i, matrix.Label(i)); err != nil {
			return fmt.Errorf("seed locations: insert location_idx=%d: %w", i, err)
		}
		// Lower triangle only; the matrix is symmetric.
		for j := 0; j < i; j++ {
			if _, err := distStmt.ExecContext(ctx, i, j, matrix.Distance(i, j)); err != nil {
				return fmt.Errorf("seed distances: insert %d->%d: %w", i, j, err)
			}
		}
	}

	return nil
}

func seedParcels(ctx context.Context, tx *sql.Tx, d Dialect, parcels []*domain.Parcel) error {
	stmt, err := tx.PrepareContext(ctx, d.rebind(`
	INSERT INTO parcels (
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
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (parcel_id) DO UPDATE SET
		street = excluded.street,
		city = excluded.city,
		state = excluded.state,
		zip = excluded.zip,
		deadline = excluded.deadline,
		weight = excluded.weight,
		notes = excluded.notes,
		location_idx = excluded.location_idx,
		available_from = excluded.available_from;
	`))
	if err != nil {
		return fmt.Errorf("seed parcels: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for i, p := range parcels {
		if p == nil || p.ID <= 0 {
			return fmt.Errorf("seed parcels: invalid parcel at index %d", i)
		}

		var loc sql.NullInt64
		if p.Location != nil {
			loc = sql.NullInt64{Int64: int64(*p.Location), Valid: true}
		}
		var from sql.NullString
		if p.AvailableFrom != nil {
			from = sql.NullString{String: p.AvailableFrom.Format(holdClockLayout), Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			p.ID,
			p.Address.Street,
			p.Address.City,
			p.Address.State,
			p.Address.Zip,
			p.Deadline,
			p.Weight,
			p.Notes,
			loc,
			from,
		)
		if err != nil {
			return fmt.Errorf("seed parcels: upsert parcel_id=%d: %w", p.ID, err)
		}
	}

	return nil
}
