package main

import (
	"context"
	"delivery-sim/internal/api"
	"delivery-sim/internal/app"
	"delivery-sim/internal/config"
	"delivery-sim/internal/platform/logger"
	"delivery-sim/internal/platform/metrics"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It loads the configured data, runs the simulation once and serves the
// results over HTTP until interrupted.
func main() {
	log := logger.New("server")

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	cfgPath := config.Get("SIM_CONFIG", "config.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", cfgPath).Msg("cannot load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec, err := metrics.NewPromRecorder(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot register metrics")
	}

	sim, err := app.Simulate(ctx, cfg, logger.New("simulation"), rec)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(sim, reg, logger.New("http")),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	waitGroup, ctx := errgroup.WithContext(ctx)

	waitGroup.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	waitGroup.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("graceful shutdown http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info().Msg("http server is stopped")
		return nil
	})

	if err := waitGroup.Wait(); err != nil {
		log.Fatal().Err(err).Msg("error from wait group")
	}
}
