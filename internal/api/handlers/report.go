package handlers

import (
	"delivery-sim/internal/api/dto"
	"delivery-sim/internal/domain"
	"delivery-sim/internal/services"
	"net/http"
)

type ReportHandler struct {
	Sim *services.Simulation
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	report := h.Sim.Report()
	if report == nil {
		writeError(w, r, http.StatusServiceUnavailable, "simulation has not run")
		return
	}

	res := dto.ReportResponse{
		RunID:        report.RunID,
		Complete:     report.Complete(),
		Delivered:    report.Delivered,
		Stranded:     append([]int{}, report.Stranded...),
		Late:         make([]dto.LateDeliveryResponse, 0, len(report.Late)),
		TotalMileage: report.TotalMileage,
	}
	for _, l := range report.Late {
		res.Late = append(res.Late, dto.LateDeliveryResponse{
			ParcelID:    l.ParcelID,
			VehicleID:   l.VehicleID,
			Deadline:    domain.ClockString(l.Deadline),
			DeliveredAt: domain.ClockString(l.DeliveredAt),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
