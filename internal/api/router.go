package api

import (
	"delivery-sim/internal/api/handlers"
	"delivery-sim/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers over a finished simulation and returns an
// http.Handler. Metrics are served from gatherer.
func NewRouter(sim *services.Simulation, gatherer prometheus.Gatherer, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	parcelHandler := &handlers.ParcelHandler{
		History: services.NewHistoryFor(sim),
		Day:     sim.Day(),
	}
	vehicleHandler := &handlers.VehicleHandler{Sim: sim}
	reportHandler := &handlers.ReportHandler{Sim: sim}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/parcels", parcelHandler.List)
	mux.HandleFunc("/parcels/{id}", parcelHandler.Get)
	mux.HandleFunc("/vehicles", vehicleHandler.List)
	mux.HandleFunc("/report", reportHandler.Get)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return loggingMiddleware(log, mux)
}
