package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revonn/internal/db"
	"revonn/internal/entities"
	"revonn/internal/service"
)

type stubSlotStore struct {
	slots []db.GarageTimeSlot
}

func (s *stubSlotStore) ListAvailableByWeekday(_ context.Context, _ uuid.UUID, _ int) ([]db.GarageTimeSlot, error) {
	return s.slots, nil
}

type stubStaffingStore struct {
	mechanics []db.Mechanic
	bookings  []db.Booking
}

func (s *stubStaffingStore) ListActiveMechanics(_ context.Context, _ uuid.UUID) ([]db.Mechanic, error) {
	return s.mechanics, nil
}

func (s *stubStaffingStore) ListOccupyingBookings(_ context.Context, _ uuid.UUID, _ string) ([]db.Booking, error) {
	return s.bookings, nil
}

func newAvailabilityRouter(slots *stubSlotStore, staffing *stubStaffingStore) *mux.Router {
	svc := service.NewAvailabilityService(slots, staffing, service.AvailabilityConfig{
		ShowSlotsOnDegradedStaffing: true,
	}, zerolog.Nop())
	handler := NewAvailabilityHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/garages/{garage_id}/availability", handler.GetAvailability).Methods("GET")
	return r
}

func TestGetAvailability(t *testing.T) {
	garageID := uuid.New()
	mech := db.Mechanic{ID: uuid.New(), Name: "Ravi", Status: "active"}
	slots := &stubSlotStore{slots: []db.GarageTimeSlot{
		{ID: uuid.New(), GarageID: garageID, DayOfWeek: 1, StartTime: "09:00:00", EndTime: "09:30:00", IsAvailable: true},
		{ID: uuid.New(), GarageID: garageID, DayOfWeek: 1, StartTime: "09:30:00", EndTime: "10:00:00", IsAvailable: true},
	}}
	staffing := &stubStaffingStore{
		mechanics: []db.Mechanic{mech},
		bookings: []db.Booking{{
			ID:                 uuid.New(),
			BookingTime:        "09:00:00",
			Status:             "confirmed",
			AssignedMechanicID: uuid.NullUUID{UUID: mech.ID, Valid: true},
		}},
	}
	router := newAvailabilityRouter(slots, staffing)

	req := httptest.NewRequest(http.MethodGet, "/api/garages/"+garageID.String()+"/availability?date=2024-01-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entities.AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, garageID.String(), resp.GarageID)
	assert.Equal(t, "2024-01-15", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "9:30 AM - 10:00 AM", resp.Slots[0].Label)
}

func TestGetAvailability_MissingDate(t *testing.T) {
	router := newAvailabilityRouter(&stubSlotStore{}, &stubStaffingStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/garages/"+uuid.NewString()+"/availability", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAvailability_InvalidDate(t *testing.T) {
	router := newAvailabilityRouter(&stubSlotStore{}, &stubStaffingStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/garages/"+uuid.NewString()+"/availability?date=garbage", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
