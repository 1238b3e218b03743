package db

import (
	"time"

	"github.com/google/uuid"
)

type Garage struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Mechanic struct {
	ID        uuid.UUID
	GarageID  uuid.UUID
	Name      string
	Status    string
	CreatedAt time.Time
}

// GarageTimeSlot is a recurring weekly template row. Times are stored as
// Postgres TIME and carried here as "HH:MM:SS" strings.
type GarageTimeSlot struct {
	ID          uuid.UUID
	GarageID    uuid.UUID
	DayOfWeek   int
	StartTime   string
	EndTime     string
	IsAvailable bool
}

// OccupiedSlotEnd pairs a capacity-occupying booking with the end time of the
// template slot it sits in.
type OccupiedSlotEnd struct {
	BookingID   uuid.UUID
	BookingDate string
	SlotEnd     string
}

type Booking struct {
	ID                 uuid.UUID
	Code               string
	GarageID           uuid.UUID
	BookingDate        string
	BookingTime        string
	AssignedMechanicID uuid.NullUUID
	Status             string
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	VehicleModel       string
	ServiceNotes       string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
