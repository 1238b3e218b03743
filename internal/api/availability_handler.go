package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"revonn/internal/entities"
	"revonn/internal/service"
)

type AvailabilityHandler struct {
	Service *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailability answers GET /api/garages/{garage_id}/availability?date=YYYY-MM-DD.
// Data-source failures degrade to an empty slot list; only malformed input
// is rejected.
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	garageID := mux.Vars(r)["garage_id"]
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}

	slots, err := h.Service.AvailableSlots(r.Context(), garageID, date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entities.AvailabilityResponse{
		GarageID: garageID,
		Date:     date,
		Slots:    slots,
	})
}
