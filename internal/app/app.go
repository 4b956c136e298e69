package app

import (
	"context"
	"database/sql"
	"delivery-sim/internal/adapters/ingest"
	"delivery-sim/internal/adapters/repositories"
	"delivery-sim/internal/config"
	"delivery-sim/internal/platform/db"
	"delivery-sim/internal/ports"
	"delivery-sim/internal/services"
	"fmt"

	"github.com/rs/zerolog"
)

// Sources bundles the repositories selected by data.source and the resource
// that backs them.
type Sources struct {
	Parcels   ports.ParcelRepository
	Locations ports.LocationRepository

	db *sql.DB
}

func (s *Sources) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenSources returns the CSV files or the seeded database as configured.
func OpenSources(ctx context.Context, cfg *config.Config) (*Sources, error) {
	switch cfg.Data.Source {
	case "csv":
		day, err := cfg.Fleet.Day()
		if err != nil {
			return nil, fmt.Errorf("open sources: %w", err)
		}
		src := ingest.NewCSVSource(cfg.Data.Distances, cfg.Data.Parcels, day)
		return &Sources{Parcels: src, Locations: src}, nil

	case "db":
		day, err := cfg.Fleet.Day()
		if err != nil {
			return nil, fmt.Errorf("open sources: %w", err)
		}
		dialect, err := repositories.DialectFor(cfg.Database.Driver)
		if err != nil {
			return nil, fmt.Errorf("open sources: %w", err)
		}
		conn, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sources: %w", err)
		}
		repo := repositories.NewSQLRepository(conn, dialect, day)
		return &Sources{Parcels: repo, Locations: repo, db: conn}, nil

	default:
		return nil, fmt.Errorf("open sources: unknown data source %q", cfg.Data.Source)
	}
}

// Simulate loads the configured data, applies the fleet plan and runs the
// simulation once.
func Simulate(ctx context.Context, cfg *config.Config, log zerolog.Logger, rec ports.RunRecorder) (*services.Simulation, error) {
	plan, err := cfg.Fleet.Plan(ingest.MatchAddress)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	src, err := OpenSources(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Error().Err(err).Msg("close data source")
		}
	}()

	ctx = log.WithContext(ctx)
	sim, err := services.PlanDeliveries(ctx, plan, src.Parcels, src.Locations,
		services.WithLogger(log), services.WithRecorder(rec))
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	if _, err := sim.Run(ctx); err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	return sim, nil
}

// SeedDatabase creates the schema and stores the configured CSV data in the
// configured database.
func SeedDatabase(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	dialect, err := repositories.DialectFor(cfg.Database.Driver)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	day, err := cfg.Fleet.Day()
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	ctx = log.WithContext(ctx)
	src := ingest.NewCSVSource(cfg.Data.Distances, cfg.Data.Parcels, day)
	matrix, err := src.LoadMatrix(ctx)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	parcels, err := src.ListParcels(ctx)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	conn, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	if err := repositories.Seed(ctx, conn, dialect, matrix, parcels); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	log.Info().
		Str("dialect", dialect.String()).
		Int("locations", matrix.Size()).
		Int("parcels", len(parcels)).
		Msg("database seeded")
	return nil
}

// InitDatabase creates the schema only.
func InitDatabase(ctx context.Context, cfg *config.Config) error {
	dialect, err := repositories.DialectFor(cfg.Database.Driver)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	conn, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	return nil
}
