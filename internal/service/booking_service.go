package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"revonn/internal/db"
	"revonn/internal/entities"
	"revonn/internal/utils"
)

const (
	statusConfirmed  = "confirmed"
	statusInProgress = "in_progress"
	statusCompleted  = "completed"
	statusCancelled  = "cancelled"
)

// Cancellations are rejected this close to the slot start.
const cancellationCutoff = 2 * time.Hour

var (
	ErrSlotNotOffered   = errors.New("the garage does not offer a time slot at that time")
	ErrSlotUnavailable  = errors.New("time slot is fully booked")
	ErrTooLateToCancel  = errors.New("bookings can only be cancelled more than 2 hours before the slot")
	ErrAlreadyFinalized = errors.New("booking is already cancelled or completed")
	ErrMechanicTaken    = errors.New("mechanic is already assigned to a booking at that time")
)

type BookingStore interface {
	Create(ctx context.Context, booking *db.Booking) error
	GetByCode(ctx context.Context, code string) (*db.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	AssignMechanic(ctx context.Context, id uuid.UUID, mechanicID uuid.UUID) error
	ListByGarage(ctx context.Context, garageID uuid.UUID, date, status string) ([]db.Booking, error)
}

type GarageStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db.Garage, error)
}

type MechanicStore interface {
	GetMechanic(ctx context.Context, id uuid.UUID) (*db.Mechanic, error)
}

// Notifier delivers booking status notifications. Implementations must not
// block the request path.
type Notifier interface {
	NotifyBookingStatus(booking entities.BookingResponse, garageName, status string)
}

type BookingService struct {
	bookings     BookingStore
	garages      GarageStore
	mechanics    MechanicStore
	availability *AvailabilityService
	notifier     Notifier
	log          zerolog.Logger
	now          func() time.Time
}

func NewBookingService(bookings BookingStore, garages GarageStore, mechanics MechanicStore, availability *AvailabilityService, notifier Notifier, log zerolog.Logger) *BookingService {
	return &BookingService{
		bookings:     bookings,
		garages:      garages,
		mechanics:    mechanics,
		availability: availability,
		notifier:     notifier,
		log:          log,
		now:          time.Now,
	}
}

// CreateBooking verifies the requested time is a slot the garage offers that
// weekday, re-checks mechanic capacity, assigns the first free mechanic when
// one exists (an empty roster still books, with assignment deferred to the
// owner) and confirms the booking.
func (s *BookingService) CreateBooking(ctx context.Context, req *entities.BookingRequest) (*entities.BookingResponse, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}
	garageID, err := uuid.Parse(req.GarageID)
	if err != nil {
		return nil, fmt.Errorf("invalid garage id %q: %w", req.GarageID, err)
	}
	garage, err := s.garages.GetByID(ctx, garageID)
	if err != nil {
		return nil, err
	}

	offered, err := s.availability.SlotOffered(ctx, garageID, req.BookingDate, req.BookingTime)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, ErrSlotNotOffered
	}

	snapshot := s.availability.ResolveStaffing(ctx, req.GarageID, req.BookingDate)
	if !snapshot.IsTimeSlotAvailable(req.BookingTime) {
		return nil, ErrSlotUnavailable
	}

	booking := &db.Booking{
		Code:          newBookingCode(),
		GarageID:      garageID,
		BookingDate:   req.BookingDate,
		BookingTime:   utils.NormalizeClock(req.BookingTime),
		Status:        statusConfirmed,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		VehicleModel:  req.VehicleModel,
		ServiceNotes:  req.ServiceNotes,
	}

	var mechanicName string
	if mech := snapshot.AvailableMechanicForSlot(req.BookingTime); mech != nil {
		booking.AssignedMechanicID = uuid.NullUUID{UUID: mech.ID, Valid: true}
		mechanicName = mech.Name
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.log.Error().Err(err).Str("garage_id", req.GarageID).Msg("failed to create booking")
		return nil, err
	}

	resp := toBookingResponse(booking, mechanicName)
	s.notifier.NotifyBookingStatus(*resp, garage.Name, statusConfirmed)
	return resp, nil
}

func (s *BookingService) GetBooking(ctx context.Context, code string) (*entities.BookingResponse, error) {
	booking, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toBookingResponse(booking, s.mechanicName(ctx, booking)), nil
}

// CancelBooking cancels a booking and notifies the customer. Bookings inside
// the cancellation cutoff, or already finalized, are rejected.
func (s *BookingService) CancelBooking(ctx context.Context, code string) error {
	booking, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if booking.Status == statusCancelled || booking.Status == statusCompleted {
		return ErrAlreadyFinalized
	}

	slotStart, err := time.ParseInLocation("2006-01-02 15:04:05",
		booking.BookingDate+" "+utils.NormalizeClock(booking.BookingTime), time.Local)
	if err == nil && slotStart.Sub(s.now()) < cancellationCutoff {
		return ErrTooLateToCancel
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, statusCancelled); err != nil {
		return err
	}

	garageName := ""
	if garage, err := s.garages.GetByID(ctx, booking.GarageID); err == nil {
		garageName = garage.Name
	}
	s.notifier.NotifyBookingStatus(*toBookingResponse(booking, s.mechanicName(ctx, booking)), garageName, statusCancelled)
	return nil
}

func (s *BookingService) ListBookings(ctx context.Context, garageID uuid.UUID, date, status string) (*entities.BookingsList, error) {
	bookings, err := s.bookings.ListByGarage(ctx, garageID, date, status)
	if err != nil {
		return nil, err
	}
	list := &entities.BookingsList{Total: len(bookings), Bookings: make([]entities.BookingResponse, 0, len(bookings))}
	for i := range bookings {
		list.Bookings = append(list.Bookings, *toBookingResponse(&bookings[i], s.mechanicName(ctx, &bookings[i])))
	}
	return list, nil
}

// AssignMechanic lets the owner staff a booking manually. The mechanic must
// not already hold a booking in the same slot.
func (s *BookingService) AssignMechanic(ctx context.Context, code string, mechanicID uuid.UUID) error {
	booking, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	mechanic, err := s.mechanics.GetMechanic(ctx, mechanicID)
	if err != nil {
		return err
	}

	snapshot := s.availability.ResolveStaffing(ctx, booking.GarageID.String(), booking.BookingDate)
	clock := utils.NormalizeClock(booking.BookingTime)
	for _, b := range snapshot.Bookings {
		if b.ID == booking.ID {
			continue
		}
		if utils.NormalizeClock(b.BookingTime) == clock && b.AssignedMechanicID.Valid && b.AssignedMechanicID.UUID == mechanic.ID {
			return ErrMechanicTaken
		}
	}

	return s.bookings.AssignMechanic(ctx, booking.ID, mechanic.ID)
}

func (s *BookingService) mechanicName(ctx context.Context, booking *db.Booking) string {
	if !booking.AssignedMechanicID.Valid {
		return ""
	}
	mechanic, err := s.mechanics.GetMechanic(ctx, booking.AssignedMechanicID.UUID)
	if err != nil {
		return ""
	}
	return mechanic.Name
}

func validateBookingRequest(req *entities.BookingRequest) error {
	if req.GarageID == "" || req.BookingDate == "" || req.BookingTime == "" {
		return errors.New("garage_id, booking_date and booking_time are required")
	}
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return errors.New("customer_name and customer_email are required")
	}
	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		return fmt.Errorf("invalid booking_date %q: %w", req.BookingDate, err)
	}
	if _, err := time.Parse("15:04:05", utils.NormalizeClock(req.BookingTime)); err != nil {
		return fmt.Errorf("invalid booking_time %q: %w", req.BookingTime, err)
	}
	return nil
}

func toBookingResponse(booking *db.Booking, mechanicName string) *entities.BookingResponse {
	return &entities.BookingResponse{
		Code:             booking.Code,
		GarageID:         booking.GarageID.String(),
		BookingDate:      booking.BookingDate,
		BookingTime:      booking.BookingTime,
		Status:           booking.Status,
		AssignedMechanic: mechanicName,
		CustomerName:     booking.CustomerName,
		CustomerEmail:    booking.CustomerEmail,
		CustomerPhone:    booking.CustomerPhone,
		VehicleModel:     booking.VehicleModel,
		ServiceNotes:     booking.ServiceNotes,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}
}

func newBookingCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
