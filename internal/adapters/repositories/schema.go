package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the location, distance and parcel tables.
func InitSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		location_idx INTEGER PRIMARY KEY,
		label TEXT NOT NULL
	);
	`

	createDistancesQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS location_distances (
		from_idx INTEGER NOT NULL,
		to_idx INTEGER NOT NULL,
		miles %s NOT NULL,
		PRIMARY KEY (from_idx, to_idx)
	);
	`, d.realType())

	createParcelsQuery := `
	CREATE TABLE IF NOT EXISTS parcels (
		parcel_id INTEGER PRIMARY KEY,
		street TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip TEXT NOT NULL,
		deadline TEXT NOT NULL,
		weight TEXT NOT NULL,
		notes TEXT NOT NULL,
		location_idx INTEGER,
		available_from TEXT
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_location_distances_to_from
	ON location_distances(to_idx, from_idx);
	`

	statements := []string{
		createLocationsQuery,
		createDistancesQuery,
		createParcelsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
