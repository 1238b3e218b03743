package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revonn/internal/db"
	"revonn/internal/entities"
)

type fakeBookingStore struct {
	created     []*db.Booking
	byCode      map[string]*db.Booking
	statusCalls map[uuid.UUID]string
	assigned    map[uuid.UUID]uuid.UUID
	listed      []db.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		byCode:      make(map[string]*db.Booking),
		statusCalls: make(map[uuid.UUID]string),
		assigned:    make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeBookingStore) Create(_ context.Context, booking *db.Booking) error {
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = append(f.created, booking)
	f.byCode[booking.Code] = booking
	return nil
}

func (f *fakeBookingStore) GetByCode(_ context.Context, code string) (*db.Booking, error) {
	booking, ok := f.byCode[code]
	if !ok {
		return nil, fmt.Errorf("booking with code '%s' not found", code)
	}
	return booking, nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.statusCalls[id] = status
	return nil
}

func (f *fakeBookingStore) AssignMechanic(_ context.Context, id uuid.UUID, mechanicID uuid.UUID) error {
	f.assigned[id] = mechanicID
	return nil
}

func (f *fakeBookingStore) ListByGarage(_ context.Context, _ uuid.UUID, _, _ string) ([]db.Booking, error) {
	return f.listed, nil
}

type fakeGarageStore struct {
	garage *db.Garage
}

func (f *fakeGarageStore) GetByID(_ context.Context, id uuid.UUID) (*db.Garage, error) {
	if f.garage == nil {
		return nil, fmt.Errorf("garage %s not found", id)
	}
	return f.garage, nil
}

type fakeMechanicStore struct {
	mechanics map[uuid.UUID]*db.Mechanic
}

func (f *fakeMechanicStore) GetMechanic(_ context.Context, id uuid.UUID) (*db.Mechanic, error) {
	mechanic, ok := f.mechanics[id]
	if !ok {
		return nil, fmt.Errorf("mechanic %s not found", id)
	}
	return mechanic, nil
}

type fakeNotifier struct {
	statuses []string
}

func (f *fakeNotifier) NotifyBookingStatus(_ entities.BookingResponse, _, status string) {
	f.statuses = append(f.statuses, status)
}

type bookingFixture struct {
	svc      *BookingService
	store    *fakeBookingStore
	staffing *fakeStaffingStore
	notifier *fakeNotifier
	garageID uuid.UUID
}

func newBookingFixture(t *testing.T, staffing *fakeStaffingStore) *bookingFixture {
	t.Helper()
	garageID := uuid.New()
	store := newFakeBookingStore()
	notifier := &fakeNotifier{}
	mechStore := &fakeMechanicStore{mechanics: make(map[uuid.UUID]*db.Mechanic)}
	for i := range staffing.mechanics {
		mechStore.mechanics[staffing.mechanics[i].ID] = &staffing.mechanics[i]
	}
	availability := newTestService(&fakeSlotStore{slots: mondayTemplates(garageID)}, staffing, true)
	svc := NewBookingService(store, &fakeGarageStore{garage: &db.Garage{ID: garageID, Name: "AutoCare Hub"}},
		mechStore, availability, notifier, zerolog.Nop())
	return &bookingFixture{svc: svc, store: store, staffing: staffing, notifier: notifier, garageID: garageID}
}

func validRequest(garageID uuid.UUID) *entities.BookingRequest {
	return &entities.BookingRequest{
		GarageID:      garageID.String(),
		BookingDate:   "2024-01-15",
		BookingTime:   "09:00",
		CustomerName:  "Priya",
		CustomerEmail: "priya@example.com",
		VehicleModel:  "Honda City",
	}
}

func TestCreateBooking_AssignsFirstFreeMechanic(t *testing.T) {
	m1, m2 := mechanic("Ravi"), mechanic("Arun")
	staffing := &fakeStaffingStore{
		mechanics: []db.Mechanic{m1, m2},
		bookings:  []db.Booking{assignedBooking("09:00:00", m1.ID)},
	}
	fx := newBookingFixture(t, staffing)

	resp, err := fx.svc.CreateBooking(context.Background(), validRequest(fx.garageID))
	require.NoError(t, err)

	require.Len(t, fx.store.created, 1)
	created := fx.store.created[0]
	require.True(t, created.AssignedMechanicID.Valid)
	assert.Equal(t, m2.ID, created.AssignedMechanicID.UUID)
	assert.Equal(t, "confirmed", created.Status)
	assert.Equal(t, "09:00:00", created.BookingTime)
	assert.Equal(t, "Arun", resp.AssignedMechanic)
	assert.Len(t, resp.Code, 8)
	assert.Equal(t, []string{"confirmed"}, fx.notifier.statuses)
}

func TestCreateBooking_SlotFull(t *testing.T) {
	m1 := mechanic("Ravi")
	staffing := &fakeStaffingStore{
		mechanics: []db.Mechanic{m1},
		bookings:  []db.Booking{assignedBooking("09:00:00", m1.ID)},
	}
	fx := newBookingFixture(t, staffing)

	_, err := fx.svc.CreateBooking(context.Background(), validRequest(fx.garageID))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, fx.store.created)
	assert.Empty(t, fx.notifier.statuses)
}

func TestCreateBooking_SlotFull_UnpaddedTimeSpelling(t *testing.T) {
	m1 := mechanic("Ravi")
	staffing := &fakeStaffingStore{
		mechanics: []db.Mechanic{m1},
		bookings:  []db.Booking{assignedBooking("09:00:00", m1.ID)},
	}
	fx := newBookingFixture(t, staffing)

	// "9:00" and "09:00" are the same slot; the full slot stays rejected.
	req := validRequest(fx.garageID)
	req.BookingTime = "9:00"
	_, err := fx.svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, fx.store.created)
}

func TestCreateBooking_OffScheduleTime(t *testing.T) {
	fx := newBookingFixture(t, &fakeStaffingStore{mechanics: []db.Mechanic{mechanic("Ravi")}})

	// 11:00 is not on the Monday template.
	req := validRequest(fx.garageID)
	req.BookingTime = "11:00"
	_, err := fx.svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotOffered)
	assert.Empty(t, fx.store.created)
}

func TestCreateBooking_EmptyRosterBooksUnassigned(t *testing.T) {
	fx := newBookingFixture(t, &fakeStaffingStore{})

	resp, err := fx.svc.CreateBooking(context.Background(), validRequest(fx.garageID))
	require.NoError(t, err)

	require.Len(t, fx.store.created, 1)
	assert.False(t, fx.store.created[0].AssignedMechanicID.Valid)
	assert.Empty(t, resp.AssignedMechanic)
}

func TestCreateBooking_Validation(t *testing.T) {
	fx := newBookingFixture(t, &fakeStaffingStore{})

	req := validRequest(fx.garageID)
	req.CustomerEmail = ""
	_, err := fx.svc.CreateBooking(context.Background(), req)
	assert.Error(t, err)

	req = validRequest(fx.garageID)
	req.BookingDate = "15-01-2024"
	_, err = fx.svc.CreateBooking(context.Background(), req)
	assert.Error(t, err)

	req = validRequest(fx.garageID)
	req.BookingTime = "9am"
	_, err = fx.svc.CreateBooking(context.Background(), req)
	assert.Error(t, err)
}

func TestCancelBooking(t *testing.T) {
	fx := newBookingFixture(t, &fakeStaffingStore{})
	resp, err := fx.svc.CreateBooking(context.Background(), validRequest(fx.garageID))
	require.NoError(t, err)

	// Well before the slot.
	fx.svc.now = func() time.Time {
		return time.Date(2024, 1, 14, 9, 0, 0, 0, time.Local)
	}
	require.NoError(t, fx.svc.CancelBooking(context.Background(), resp.Code))

	created := fx.store.created[0]
	assert.Equal(t, "cancelled", fx.store.statusCalls[created.ID])
	assert.Equal(t, []string{"confirmed", "cancelled"}, fx.notifier.statuses)
}

func TestCancelBooking_InsideCutoff(t *testing.T) {
	fx := newBookingFixture(t, &fakeStaffingStore{})
	resp, err := fx.svc.CreateBooking(context.Background(), validRequest(fx.garageID))
	require.NoError(t, err)

	// 90 minutes before the 09:00 slot.
	fx.svc.now = func() time.Time {
		return time.Date(2024, 1, 15, 7, 30, 0, 0, time.Local)
	}
	err = fx.svc.CancelBooking(context.Background(), resp.Code)
	assert.ErrorIs(t, err, ErrTooLateToCancel)
}

func TestCancelBooking_AlreadyFinalized(t *testing.T) {
	fx := newBookingFixture(t, &fakeStaffingStore{})
	resp, err := fx.svc.CreateBooking(context.Background(), validRequest(fx.garageID))
	require.NoError(t, err)

	fx.store.byCode[resp.Code].Status = "cancelled"
	err = fx.svc.CancelBooking(context.Background(), resp.Code)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestAssignMechanic_RejectsTakenMechanic(t *testing.T) {
	m1, m2 := mechanic("Ravi"), mechanic("Arun")
	staffing := &fakeStaffingStore{mechanics: []db.Mechanic{m1, m2}}
	fx := newBookingFixture(t, staffing)

	resp, err := fx.svc.CreateBooking(context.Background(), validRequest(fx.garageID))
	require.NoError(t, err)
	created := fx.store.created[0]

	// Another confirmed booking already holds m2 at the same slot.
	other := assignedBooking("09:00:00", m2.ID)
	fx.staffing.bookings = []db.Booking{*created, other}

	err = fx.svc.AssignMechanic(context.Background(), resp.Code, m2.ID)
	assert.ErrorIs(t, err, ErrMechanicTaken)

	// m1 is free for that slot (the created booking's own row is skipped).
	require.NoError(t, fx.svc.AssignMechanic(context.Background(), resp.Code, m1.ID))
	assert.Equal(t, m1.ID, fx.store.assigned[created.ID])
}
