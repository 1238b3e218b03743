package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"revonn/internal/db"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, garage_id, booking_date, booking_time, assigned_mechanic_id, status,
		 customer_name, customer_email, customer_phone, vehicle_model, service_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		booking.Code,
		booking.GarageID,
		booking.BookingDate,
		booking.BookingTime,
		booking.AssignedMechanicID,
		booking.Status,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.VehicleModel,
		booking.ServiceNotes,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByCode(ctx context.Context, code string) (*db.Booking, error) {
	query := `
		SELECT id, code, garage_id, booking_date::text, booking_time::text,
		       assigned_mechanic_id, status, customer_name, customer_email,
		       COALESCE(customer_phone, ''), COALESCE(vehicle_model, ''),
		       COALESCE(service_notes, ''), created_at, updated_at
		FROM bookings WHERE code = $1`

	var b db.Booking
	err := r.DB.QueryRowContext(ctx, query, code).Scan(
		&b.ID, &b.Code, &b.GarageID, &b.BookingDate, &b.BookingTime,
		&b.AssignedMechanicID, &b.Status, &b.CustomerName, &b.CustomerEmail,
		&b.CustomerPhone, &b.VehicleModel, &b.ServiceNotes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (r *BookingRepository) AssignMechanic(ctx context.Context, id uuid.UUID, mechanicID uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET assigned_mechanic_id = $2, updated_at = NOW() WHERE id = $1`,
		id, mechanicID)
	if err != nil {
		return fmt.Errorf("error assigning mechanic: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

// ListByGarage lists a garage's bookings, optionally filtered by date and status.
func (r *BookingRepository) ListByGarage(ctx context.Context, garageID uuid.UUID, date, status string) ([]db.Booking, error) {
	query := `
		SELECT id, code, garage_id, booking_date::text, booking_time::text,
		       assigned_mechanic_id, status, customer_name, customer_email,
		       COALESCE(customer_phone, ''), COALESCE(vehicle_model, ''),
		       COALESCE(service_notes, ''), created_at, updated_at
		FROM bookings
		WHERE garage_id = $1`
	args := []interface{}{garageID}
	idx := 2

	if date != "" {
		query += " AND booking_date = $" + strconv.Itoa(idx) + "::date"
		args = append(args, date)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY booking_date DESC, booking_time DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}
