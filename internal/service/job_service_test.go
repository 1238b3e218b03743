package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revonn/internal/db"
)

type fakeJobStore struct {
	slotEnds    []db.OccupiedSlotEnd
	slotEndsErr error
	updatedIDs  []uuid.UUID
	updatedWith string
	purged      int64
}

func (f *fakeJobStore) ListOccupyingSlotEnds(_ context.Context) ([]db.OccupiedSlotEnd, error) {
	return f.slotEnds, f.slotEndsErr
}

func (f *fakeJobStore) UpdateBookingStatuses(_ context.Context, ids []uuid.UUID, newStatus string) (int64, error) {
	f.updatedIDs = ids
	f.updatedWith = newStatus
	return int64(len(ids)), nil
}

func (f *fakeJobStore) DeletePendingBookingsOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return f.purged, nil
}

func TestCompletePastBookings(t *testing.T) {
	ended := uuid.New()
	yesterday := uuid.New()
	store := &fakeJobStore{slotEnds: []db.OccupiedSlotEnd{
		{BookingID: ended, BookingDate: "2024-01-15", SlotEnd: "09:30:00"},
		{BookingID: yesterday, BookingDate: "2024-01-14", SlotEnd: "17:00:00"},
	}}
	svc := NewJobService(store, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2024, 1, 15, 9, 45, 0, 0, time.Local)
	}

	require.NoError(t, svc.CompletePastBookings(context.Background()))
	assert.Equal(t, []uuid.UUID{ended, yesterday}, store.updatedIDs)
	assert.Equal(t, "completed", store.updatedWith)
}

func TestCompletePastBookings_StartedSlotStaysOccupying(t *testing.T) {
	running := uuid.New()
	store := &fakeJobStore{slotEnds: []db.OccupiedSlotEnd{
		// 09:00-10:00 slot.
		{BookingID: running, BookingDate: "2024-01-15", SlotEnd: "10:00:00"},
	}}
	svc := NewJobService(store, zerolog.Nop())

	// Mid-slot: started but not ended, so nothing completes.
	svc.now = func() time.Time {
		return time.Date(2024, 1, 15, 9, 45, 0, 0, time.Local)
	}
	require.NoError(t, svc.CompletePastBookings(context.Background()))
	assert.Empty(t, store.updatedIDs)

	// Past the slot end it completes.
	svc.now = func() time.Time {
		return time.Date(2024, 1, 15, 10, 0, 1, 0, time.Local)
	}
	require.NoError(t, svc.CompletePastBookings(context.Background()))
	assert.Equal(t, []uuid.UUID{running}, store.updatedIDs)
}

func TestCompletePastBookings_NothingToDo(t *testing.T) {
	store := &fakeJobStore{}
	svc := NewJobService(store, zerolog.Nop())

	require.NoError(t, svc.CompletePastBookings(context.Background()))
	assert.Empty(t, store.updatedIDs)
}

func TestCompletePastBookings_QueryError(t *testing.T) {
	store := &fakeJobStore{slotEndsErr: errors.New("connection refused")}
	svc := NewJobService(store, zerolog.Nop())

	assert.Error(t, svc.CompletePastBookings(context.Background()))
}

func TestPurgeStalePendingBookings(t *testing.T) {
	store := &fakeJobStore{purged: 3}
	svc := NewJobService(store, zerolog.Nop())

	require.NoError(t, svc.PurgeStalePendingBookings(context.Background(), 24*time.Hour))
}
