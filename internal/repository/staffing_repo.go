package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"revonn/internal/db"
)

// Statuses that consume mechanic capacity for their date and time.
var occupyingStatuses = []string{"confirmed", "in_progress"}

type StaffingRepository struct {
	DB *sql.DB
}

func NewStaffingRepository(db *sql.DB) *StaffingRepository {
	return &StaffingRepository{DB: db}
}

// ListActiveMechanics returns the active roster in a deterministic order;
// slot assignment picks the first free mechanic in this order.
func (r *StaffingRepository) ListActiveMechanics(ctx context.Context, garageID uuid.UUID) ([]db.Mechanic, error) {
	query := `
		SELECT id, garage_id, name, status, created_at
		FROM mechanics
		WHERE garage_id = $1 AND status = 'active'
		ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query, garageID)
	if err != nil {
		return nil, fmt.Errorf("error querying mechanics: %w", err)
	}
	defer rows.Close()

	return scanMechanics(rows)
}

func (r *StaffingRepository) ListMechanics(ctx context.Context, garageID uuid.UUID) ([]db.Mechanic, error) {
	query := `
		SELECT id, garage_id, name, status, created_at
		FROM mechanics
		WHERE garage_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query, garageID)
	if err != nil {
		return nil, fmt.Errorf("error querying mechanics: %w", err)
	}
	defer rows.Close()

	return scanMechanics(rows)
}

// ListOccupyingBookings returns the confirmed/in-progress bookings for one
// garage on one calendar date.
func (r *StaffingRepository) ListOccupyingBookings(ctx context.Context, garageID uuid.UUID, date string) ([]db.Booking, error) {
	query := `
		SELECT id, code, garage_id, booking_date::text, booking_time::text,
		       assigned_mechanic_id, status, customer_name, customer_email,
		       COALESCE(customer_phone, ''), COALESCE(vehicle_model, ''),
		       COALESCE(service_notes, ''), created_at, updated_at
		FROM bookings
		WHERE garage_id = $1 AND booking_date = $2::date AND status = ANY($3)`

	rows, err := r.DB.QueryContext(ctx, query, garageID, date, pq.Array(occupyingStatuses))
	if err != nil {
		return nil, fmt.Errorf("error querying occupying bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *StaffingRepository) GetMechanic(ctx context.Context, id uuid.UUID) (*db.Mechanic, error) {
	query := `SELECT id, garage_id, name, status, created_at FROM mechanics WHERE id = $1`

	var m db.Mechanic
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.GarageID, &m.Name, &m.Status, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("mechanic %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying mechanic: %w", err)
	}
	return &m, nil
}

func (r *StaffingRepository) CreateMechanic(ctx context.Context, mechanic *db.Mechanic) error {
	query := `
		INSERT INTO mechanics (garage_id, name, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		mechanic.GarageID, mechanic.Name, mechanic.Status,
	).Scan(&mechanic.ID, &mechanic.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating mechanic: %w", err)
	}
	return nil
}

func (r *StaffingRepository) SetMechanicStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE mechanics SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating mechanic status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("mechanic %s not found", id)
	}
	return nil
}

func scanMechanics(rows *sql.Rows) ([]db.Mechanic, error) {
	var mechanics []db.Mechanic
	for rows.Next() {
		var m db.Mechanic
		if err := rows.Scan(&m.ID, &m.GarageID, &m.Name, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning mechanic: %w", err)
		}
		mechanics = append(mechanics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating mechanic rows: %w", err)
	}
	return mechanics, nil
}

func scanBookings(rows *sql.Rows) ([]db.Booking, error) {
	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		err := rows.Scan(
			&b.ID, &b.Code, &b.GarageID, &b.BookingDate, &b.BookingTime,
			&b.AssignedMechanicID, &b.Status, &b.CustomerName, &b.CustomerEmail,
			&b.CustomerPhone, &b.VehicleModel, &b.ServiceNotes, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}
