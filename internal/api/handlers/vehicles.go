package handlers

import (
	"delivery-sim/internal/api/dto"
	"delivery-sim/internal/domain"
	"delivery-sim/internal/services"
	"net/http"
)

// VehicleHandler reports realized routes and mileage.
type VehicleHandler struct {
	Sim *services.Simulation
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	matrix := h.Sim.Matrix()
	vehicles := h.Sim.Vehicles()
	res := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vehicles))}
	for _, v := range vehicles {
		stops := make([]dto.StopResponse, 0, len(v.Stops))
		for _, s := range v.Stops {
			stops = append(stops, dto.StopResponse{
				Location:  s.Location,
				Label:     matrix.Label(s.Location),
				ArriveAt:  domain.ClockString(s.ArriveAt),
				ParcelIDs: s.ParcelIDs,
			})
		}

		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			VehicleID: v.ID,
			StartAt:   domain.ClockString(v.StartAt),
			ReturnAt:  domain.ClockString(v.ReturnAt),
			Mileage:   v.Mileage,
			Route:     v.Route,
			Stops:     stops,
		})
		res.TotalMileage += v.Mileage
	}

	writeJSON(w, r, http.StatusOK, res)
}
