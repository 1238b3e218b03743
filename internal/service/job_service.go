package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"revonn/internal/db"
	"revonn/internal/utils"
)

type JobStore interface {
	ListOccupyingSlotEnds(ctx context.Context) ([]db.OccupiedSlotEnd, error)
	UpdateBookingStatuses(ctx context.Context, ids []uuid.UUID, newStatus string) (int64, error)
	DeletePendingBookingsOlderThan(ctx context.Context, before time.Time) (int64, error)
}

type JobService struct {
	repo JobStore
	log  zerolog.Logger
	now  func() time.Time
}

func NewJobService(repo JobStore, log zerolog.Logger) *JobService {
	return &JobService{repo: repo, log: log, now: time.Now}
}

// CompletePastBookings marks confirmed/in-progress bookings whose slot has
// ended as completed. A booking stays occupying for its whole slot window;
// only the end time passing completes it.
func (s *JobService) CompletePastBookings(ctx context.Context) error {
	candidates, err := s.repo.ListOccupyingSlotEnds(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to list occupied slot ends: %w", err)
	}

	now := s.now()
	var ids []uuid.UUID
	for _, c := range candidates {
		end, err := time.ParseInLocation("2006-01-02 15:04:05",
			c.BookingDate+" "+utils.NormalizeClock(c.SlotEnd), time.Local)
		if err != nil {
			s.log.Warn().Str("booking_id", c.BookingID.String()).
				Str("slot_end", c.SlotEnd).Msg("unparseable slot end, skipping")
			continue
		}
		if end.Before(now) {
			ids = append(ids, c.BookingID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	updated, err := s.repo.UpdateBookingStatuses(ctx, ids, statusCompleted)
	if err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	s.log.Info().Int64("updated", updated).Msg("marked past bookings as completed")
	return nil
}

// PurgeStalePendingBookings deletes pending bookings older than maxAge.
func (s *JobService) PurgeStalePendingBookings(ctx context.Context, maxAge time.Duration) error {
	deleted, err := s.repo.DeletePendingBookingsOlderThan(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return fmt.Errorf("cron job: failed to purge stale pending bookings: %w", err)
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Msg("purged stale pending bookings")
	}
	return nil
}
