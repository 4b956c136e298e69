package handlers

import (
	"delivery-sim/internal/api/dto"
	"delivery-sim/internal/domain"
	"delivery-sim/internal/services"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// ParcelHandler exposes point-in-time parcel status queries.
type ParcelHandler struct {
	History *services.History
	Day     time.Time
}

func (h *ParcelHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	at, err := queryAt(r, h.Day)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "at must be HH:MM or H:MM AM/PM")
		return
	}

	views := h.History.Snapshot(at)
	res := dto.ListParcelsResponse{
		At:      domain.ClockString(at),
		Parcels: make([]dto.ParcelResponse, 0, len(views)),
	}
	for _, v := range views {
		res.Parcels = append(res.Parcels, toParcelResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ParcelHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "parcel id must be a positive integer")
		return
	}

	at, err := queryAt(r, h.Day)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "at must be HH:MM or H:MM AM/PM")
		return
	}

	view, err := h.History.Lookup(id, at)
	if errors.Is(err, services.ErrParcelNotFound) {
		writeError(w, r, http.StatusNotFound, "parcel not found")
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("parcel_id", id).Msg("lookup parcel failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toParcelResponse(view))
}

func toParcelResponse(v services.ParcelView) dto.ParcelResponse {
	return dto.ParcelResponse{
		ParcelID:    v.ID,
		VehicleID:   v.VehicleID,
		Address:     v.Address,
		Deadline:    v.Deadline,
		Weight:      v.Weight,
		Status:      string(v.Status.Status),
		DeliveredAt: clockPtr(v.Status.DeliveredAt),
	}
}
