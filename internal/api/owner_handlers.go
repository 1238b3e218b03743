package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"revonn/internal/db"
	"revonn/internal/service"
)

// OwnerHandler serves the garage owner's schedule, roster and booking
// management endpoints.
type OwnerHandler struct {
	Admin    *service.GarageAdminService
	Bookings *service.BookingService
}

func NewOwnerHandler(admin *service.GarageAdminService, bookings *service.BookingService) *OwnerHandler {
	return &OwnerHandler{Admin: admin, Bookings: bookings}
}

func (h *OwnerHandler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	garageID, err := uuid.Parse(mux.Vars(r)["garage_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid garage id")
		return
	}
	slots, err := h.Admin.ListTimeSlots(r.Context(), garageID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *OwnerHandler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	garageID, err := uuid.Parse(mux.Vars(r)["garage_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid garage id")
		return
	}
	var req CreateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}
	slot := &db.GarageTimeSlot{
		GarageID:    garageID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: isAvailable,
	}
	if err := h.Admin.CreateTimeSlot(r.Context(), slot); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

func (h *OwnerHandler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(mux.Vars(r)["slot_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot id")
		return
	}
	var req UpdateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Admin.SetTimeSlotAvailability(r.Context(), slotID, req.IsAvailable); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Time slot updated"})
}

func (h *OwnerHandler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(mux.Vars(r)["slot_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot id")
		return
	}
	if err := h.Admin.DeleteTimeSlot(r.Context(), slotID); err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Time slot deleted"})
}

func (h *OwnerHandler) ListMechanics(w http.ResponseWriter, r *http.Request) {
	garageID, err := uuid.Parse(mux.Vars(r)["garage_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid garage id")
		return
	}
	mechanics, err := h.Admin.ListMechanics(r.Context(), garageID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, mechanics)
}

func (h *OwnerHandler) CreateMechanic(w http.ResponseWriter, r *http.Request) {
	garageID, err := uuid.Parse(mux.Vars(r)["garage_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid garage id")
		return
	}
	var req CreateMechanicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mechanic := &db.Mechanic{GarageID: garageID, Name: req.Name, Status: req.Status}
	if err := h.Admin.CreateMechanic(r.Context(), mechanic); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, mechanic)
}

func (h *OwnerHandler) UpdateMechanic(w http.ResponseWriter, r *http.Request) {
	mechanicID, err := uuid.Parse(mux.Vars(r)["mechanic_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid mechanic id")
		return
	}
	var req UpdateMechanicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Admin.SetMechanicStatus(r.Context(), mechanicID, req.Status); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Mechanic updated"})
}

func (h *OwnerHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	garageID, err := uuid.Parse(mux.Vars(r)["garage_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid garage id")
		return
	}
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")

	list, err := h.Bookings.ListBookings(r.Context(), garageID, date, status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OwnerHandler) AssignMechanic(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])
	var req AssignMechanicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mechanicID, err := uuid.Parse(req.MechanicID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid mechanic id")
		return
	}

	if err := h.Bookings.AssignMechanic(r.Context(), code, mechanicID); err != nil {
		if errors.Is(err, service.ErrMechanicTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Mechanic assigned"})
}
