package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"revonn/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// ListOccupyingSlotEnds returns confirmed/in-progress bookings up to today
// together with the end time of the template slot they occupy. Bookings whose
// template row has since been deleted fall back to the booking start time.
func (r *JobRepository) ListOccupyingSlotEnds(ctx context.Context) ([]db.OccupiedSlotEnd, error) {
	query := `
		SELECT b.id, b.booking_date::text, COALESCE(s.end_time, b.booking_time)::text
		FROM bookings b
		LEFT JOIN garage_time_slots s
		  ON s.garage_id = b.garage_id
		 AND s.start_time = b.booking_time
		 AND s.day_of_week = EXTRACT(DOW FROM b.booking_date)::int
		WHERE b.status = ANY($1)
		  AND b.booking_date <= CURRENT_DATE`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(occupyingStatuses))
	if err != nil {
		return nil, fmt.Errorf("error querying occupied slot ends: %w", err)
	}
	defer rows.Close()

	var ends []db.OccupiedSlotEnd
	for rows.Next() {
		var e db.OccupiedSlotEnd
		if err := rows.Scan(&e.BookingID, &e.BookingDate, &e.SlotEnd); err != nil {
			return nil, fmt.Errorf("error scanning occupied slot end: %w", err)
		}
		ends = append(ends, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ends, nil
}

func (r *JobRepository) UpdateBookingStatuses(ctx context.Context, ids []uuid.UUID, newStatus string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.ExecContext(ctx, query, newStatus, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error updating booking statuses: %w", err)
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}

// DeletePendingBookingsOlderThan removes stale pending bookings created
// before the given time.
func (r *JobRepository) DeletePendingBookingsOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM bookings WHERE status = 'pending' AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending bookings: %w", err)
	}
	return result.RowsAffected()
}
