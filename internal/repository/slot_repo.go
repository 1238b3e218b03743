package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"revonn/internal/db"
)

type SlotTemplateRepository struct {
	DB *sql.DB
}

func NewSlotTemplateRepository(db *sql.DB) *SlotTemplateRepository {
	return &SlotTemplateRepository{DB: db}
}

// ListAvailableByWeekday returns the bookable template rows for one garage
// and weekday, ordered by start time.
func (r *SlotTemplateRepository) ListAvailableByWeekday(ctx context.Context, garageID uuid.UUID, dayOfWeek int) ([]db.GarageTimeSlot, error) {
	query := `
		SELECT id, garage_id, day_of_week, start_time::text, end_time::text, is_available
		FROM garage_time_slots
		WHERE garage_id = $1 AND day_of_week = $2 AND is_available = true
		ORDER BY start_time ASC`

	rows, err := r.DB.QueryContext(ctx, query, garageID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("error querying time slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

func (r *SlotTemplateRepository) ListByGarage(ctx context.Context, garageID uuid.UUID) ([]db.GarageTimeSlot, error) {
	query := `
		SELECT id, garage_id, day_of_week, start_time::text, end_time::text, is_available
		FROM garage_time_slots
		WHERE garage_id = $1
		ORDER BY day_of_week ASC, start_time ASC`

	rows, err := r.DB.QueryContext(ctx, query, garageID)
	if err != nil {
		return nil, fmt.Errorf("error querying time slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

func (r *SlotTemplateRepository) Create(ctx context.Context, slot *db.GarageTimeSlot) error {
	query := `
		INSERT INTO garage_time_slots (garage_id, day_of_week, start_time, end_time, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.DB.QueryRowContext(ctx, query,
		slot.GarageID,
		slot.DayOfWeek,
		slot.StartTime,
		slot.EndTime,
		slot.IsAvailable,
	).Scan(&slot.ID)
	if err != nil {
		return fmt.Errorf("error creating time slot: %w", err)
	}
	return nil
}

func (r *SlotTemplateRepository) SetAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE garage_time_slots SET is_available = $2 WHERE id = $1`, id, isAvailable)
	if err != nil {
		return fmt.Errorf("error updating time slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("time slot %s not found", id)
	}
	return nil
}

func (r *SlotTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM garage_time_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting time slot: %w", err)
	}
	return nil
}

func scanSlots(rows *sql.Rows) ([]db.GarageTimeSlot, error) {
	var slots []db.GarageTimeSlot
	for rows.Next() {
		var s db.GarageTimeSlot
		if err := rows.Scan(&s.ID, &s.GarageID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.IsAvailable); err != nil {
			return nil, fmt.Errorf("error scanning time slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating time slot rows: %w", err)
	}
	return slots, nil
}
